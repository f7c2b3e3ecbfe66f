// Package ir defines the builder-neutral intermediate representation emitted
// by the converter and consumed by downstream code generators.
//
// This package contains the node types, the Builder capability used to
// construct them, and a deterministic JSON encoding. All other internal
// packages import ir; ir imports nothing internal. This keeps IR the
// foundational layer with no circular dependencies.
//
// Key design constraints:
//   - Node is a sealed interface; only types in this package implement it.
//   - Nodes are constructed exclusively through a Builder. Callers that need
//     to know whether a node is an identifier use the Builder query method
//     (IdentName) rather than matching on package internals.
//   - Absent children (a bare return, a declarator without an initializer,
//     an empty for-clause) are nil Node values and stay observably absent
//     through encoding.
package ir
