// Package grove manipulates nested trees of numeric arrays as if they
// were one array. A tree is a recursive structure of sequence and
// mapping containers whose leaves are dense arrays; arithmetic,
// comparisons and reductions broadcast through the containers down to
// the leaves, and indexing reaches through every container level into
// the arrays below.
//
// The subpackages divide the work: tree holds the data model,
// construction and indexing, dense the array kernels, apply the named
// operation registry and the dispatch engine, parse and encode the
// YAML/JSON document forms, eval expression evaluation over leaves,
// and treediff structural comparison. This package ties them together
// into the operations most callers want.
package grove
