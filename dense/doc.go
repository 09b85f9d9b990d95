// Package dense implements the n-dimensional numeric arrays that sit at
// the leaves of grove trees.
//
// An Array owns contiguous row major storage of one of three element
// types, Float64, Int64 or Bool, and carries an explicit Shape. All
// operations copy: there are no views, and methods never alias their
// receiver's storage into a result. Binary operations broadcast shapes
// from the trailing dimension and widen dtypes in the order
// Bool < Int64 < Float64, with arithmetic on Bool widening to Int64 and
// division always producing Float64.
//
// Selection uses Index, a slice of per dimension Sel values built with
// At, Span, Step, From, To, All and NewAxis. Point selections drop
// their dimension, span bounds clamp rather than fail, and negative
// positions count from the end. Boolean masks and integer position
// arrays are handled separately by Mask, Take and their Set
// counterparts.
package dense
