// Package graph provides the typed concept graph and its validator.
//
// A concept graph arrives as loosely typed JSON (see pkg/extract). [Validate]
// turns that object into a [Validated] graph: nodes are coerced to strings,
// duplicate ids and dangling edges are dropped with diagnostics, and the root
// candidates are resolved.
//
// # Core Types
//
//   - [Spec]: nodes, edges and optional title
//   - [Node], [Edge]: structural types with JSON tags matching the wire format
//   - [Validated]: a Spec plus roots, dropped edges and diagnostics
//
// # Wire Format
//
//	{
//	  "title": "Python vs JavaScript",
//	  "nodes": [{"id": "py", "label": "Python"}, {"id": "js", "label": "JavaScript"}],
//	  "edges": []
//	}
//
// # Roots
//
// Root candidates are the nodes with no incoming edge, in array order. The
// resolved root is the first candidate, or the first node when every node has
// an incoming edge (a cycle covering the whole graph).
//
// # Concurrency
//
// A Validated graph is never mutated after construction and is safe for
// concurrent reads.
package graph
