// Package eval maps expressions over the elements of a tree. An
// expression such as "x * x + 1" runs once per element of every leaf
// array, with the element bound to x, and the results reassemble into
// a tree congruent to the input. Expressions follow expr-lang syntax;
// note that / always divides as float64 there, so dividing an integer
// tree yields float leaves.
package eval

import (
	"fmt"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/grovekit/grove/debug"
	"github.com/grovekit/grove/dense"
	"github.com/grovekit/grove/tree"
)

// Env holds the variables visible to an expression, alongside the
// per-element binding x.
type Env map[string]any

const cacheSize = 128

// Evaluator compiles and runs expressions, keeping recently compiled
// programs in an LRU cache so evaluating the same source over many
// leaves compiles it once.
type Evaluator struct {
	cache *lru.Cache[string, *vm.Program]
}

func New() *Evaluator {
	cache, err := lru.New[string, *vm.Program](cacheSize)
	if err != nil {
		panic(err)
	}
	return &Evaluator{cache: cache}
}

// Eval compiles src, runs it once against env, and returns the raw
// result.
func (e *Evaluator) Eval(src string, env Env) (any, error) {
	prg, err := e.program(src)
	if err != nil {
		return nil, err
	}
	res, err := vm.Run(prg, map[string]any(env))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrEval, err)
	}
	if debug.Eval() {
		debug.Logf("eval %q gave %#v\n", src, res)
	}
	return res, nil
}

// EvalTree evaluates src once per element of every leaf of t, with the
// element bound to x, and reassembles the results into a congruent
// tree. Leaf dtypes are inferred from the values the expression
// returns, so a predicate yields bool leaves and a division yields
// float leaves.
func (e *Evaluator) EvalTree(t *tree.Node, src string, env Env) (*tree.Node, error) {
	switch t.Kind {
	case tree.LeafKind:
		a, err := e.evalLeaf(t.Arr, src, env)
		if err != nil {
			return nil, err
		}
		return tree.Leaf(a), nil
	case tree.ListKind, tree.MapKind:
		res := &tree.Node{
			Kind:   t.Kind,
			Keys:   append([]string(nil), t.Keys...),
			Values: make([]*tree.Node, len(t.Values)),
		}
		for i, v := range t.Values {
			sub, err := e.EvalTree(v, src, env)
			if err != nil {
				return nil, err
			}
			res.Values[i] = sub
		}
		return res, nil
	default:
		return t.Clone(), nil
	}
}

// CacheLen reports how many compiled programs the evaluator holds.
func (e *Evaluator) CacheLen() int {
	return e.cache.Len()
}

func (e *Evaluator) evalLeaf(a *dense.Array, src string, env Env) (*dense.Array, error) {
	prg, err := e.program(src)
	if err != nil {
		return nil, err
	}
	flat := a.AtLeast1D().Ravel(dense.RowMajor)
	elems := flat.ToList().([]any)
	if len(elems) == 0 {
		return a.Clone(), nil
	}
	out := make([]any, len(elems))
	for i, x := range elems {
		scope := make(map[string]any, len(env)+1)
		for k, v := range env {
			scope[k] = v
		}
		scope["x"] = x
		v, err := vm.Run(prg, scope)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrEval, err)
		}
		out[i] = v
	}
	res, err := dense.FromAny(out)
	if err != nil {
		return nil, fmt.Errorf("%w: expression result: %v", ErrEval, err)
	}
	return res.Reshape(a.Shape(), dense.RowMajor)
}

func (e *Evaluator) program(src string) (*vm.Program, error) {
	if prg, ok := e.cache.Get(src); ok {
		if debug.Eval() {
			debug.Logf("eval: cached program for %q\n", src)
		}
		return prg, nil
	}
	prg, err := expr.Compile(src, exprOpts()...)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrEval, err)
	}
	e.cache.Add(src, prg)
	return prg, nil
}

var def = New()

// Eval runs src once against env on a shared evaluator.
func Eval(src string, env Env) (any, error) {
	return def.Eval(src, env)
}

// EvalTree maps src over t's elements on a shared evaluator.
func EvalTree(t *tree.Node, src string, env Env) (*tree.Node, error) {
	return def.EvalTree(t, src, env)
}
