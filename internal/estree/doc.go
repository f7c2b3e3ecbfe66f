// Package estree models the parse trees limn consumes.
//
// Trees arrive as ESTree JSON documents produced by an external JavaScript
// parser (acorn, esprima, or any ESTree-compliant producer). Nodes follow the
// standard tagged convention: a "type" field plus kind-specific children,
// operator tokens as strings, and boolean shape flags.
//
// Decoding is deliberately tolerant: a document may contain node kinds limn
// does not support, including kinds whose fields reuse a supported field name
// with a different JSON shape (SwitchCase reuses "consequent" as a list, a
// Property reuses "value" as a node). Such nodes still decode; rejecting them
// is the converter's job, not the decoder's.
package estree
