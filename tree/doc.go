// Package tree implements recursive containers of dense arrays. A tree
// is a leaf holding one array, a sequence of subtrees, a mapping from
// names to subtrees, or a stored array selection, so a single value can
// mirror an arbitrarily nested collection of numeric data.
//
// Trees are built from plain Go values with Build, which turns
// sequences and mappings into containers, collapses nested numeric
// sequences into single multi dimensional leaves, and deep copies any
// node or array it is handed unless sharing is requested.
//
// Indexing branches on the key. A position or name addresses one
// child. A selection or an array applies to every leaf at once,
// returning a tree of the same layout. Another tree applies a
// different sub index per branch, returning a tree shaped like the
// index. The same three modes drive assignment.
package tree
