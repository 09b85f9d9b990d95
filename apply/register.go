package apply

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/grovekit/grove/debug"
)

var (
	mu sync.RWMutex
	d  = map[string]Symbol{}
)

var (
	ErrSymbolExists = errors.New("symbol exists")
	ErrNoSymbol     = errors.New("no such symbol")
)

// Register adds a named operation to the process-wide registry.
func Register(s Symbol) error {
	mu.Lock()
	defer mu.Unlock()
	_, present := d[s.String()]
	if present {
		return fmt.Errorf("%s: %w", s, ErrSymbolExists)
	}
	d[s.String()] = s
	return nil
}

// Lookup returns the symbol registered under s, nil when absent.
func Lookup(s string) Symbol {
	mu.RLock()
	defer mu.RUnlock()
	return d[s]
}

// Symbols returns every registered symbol sorted by name.
func Symbols() []Symbol {
	mu.RLock()
	defer mu.RUnlock()
	res := make([]Symbol, 0, len(d))
	for _, s := range d {
		res = append(res, s)
	}
	sort.Slice(res, func(i, j int) bool { return res[i].String() < res[j].String() })
	return res
}

// Op dispatches the named operation across its arguments.
func Op(opName string, args ...any) (any, error) {
	return OpKW(opName, args, nil)
}

// OpKW is Op with named arguments.
func OpKW(opName string, args []any, kw map[string]any) (any, error) {
	sym := Lookup(opName)
	if sym == nil {
		return nil, fmt.Errorf("%s: %w", opName, ErrNoSymbol)
	}
	if debug.Apply() {
		debug.Logf("op %s called on %d args\n", opName, len(args))
	}
	return CallKW(sym.Func(), args, kw)
}

func init() {
	for n, fn := range builtins() {
		Register(NewSymbol(n, fn))
	}
}
