// Package apply routes array operations across trees. Call takes a
// plain leaf-level function and a mixed argument list; when any
// argument is (or contains) a tree container, the call is repeated per
// shared key with each tree argument projected onto that key, and the
// per key results are assembled into a copy of the widest operand.
// Arguments that never mention a tree pass through untouched, and a
// call with no tree operands at all runs the function natively.
//
// Operand trees must share a keying mode and every operand's keys must
// be a subset of the widest operand's; keys outside the intersection
// keep the widest operand's values in the result. Functions receive
// leaf arrays and must treat them as read only.
//
// The package also keeps a registry of named operations backed by the
// dense kernels, so "add" or "reshape" can be looked up and dispatched
// by name.
package apply
