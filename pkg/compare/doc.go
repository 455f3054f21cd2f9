// Package compare implements the tree-differencing engine: a merge-join
// traversal that walks two sorted directory snapshots in lockstep, classifies
// each pairing (type change, metadata change, content change), recurses into
// matched subdirectories, and reports added or removed subtrees recursively.
// Classified differences are delivered to a Sink in a deterministic, total
// order.
//
// The engine uses a partial-failure model: enumeration failure at either
// root is fatal, but any other I/O failure only marks the affected pairing
// or subtree as failed while sibling comparisons proceed. Any failure
// anywhere forces an overall comparison error.
package compare
