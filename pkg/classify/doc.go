// Package classify decides which diagram template fits a concept graph.
//
// [Classify] is a pure function of the graph's nodes, edges and title. It
// checks, in order:
//
//  1. Title: the lower-cased title (or root label) mentions " vs ", " versus",
//     " contra ", " vs. " or the word "vs". Flags a comparison.
//  2. Structure: exactly two root candidates. Flags a comparison of the roots.
//  3. Root and children: one root with exactly two children and a title
//     mentioning "comparación", "comparar", "entre", "vs" or "versus". Flags a
//     comparison of the two children.
//  4. A flagged comparison without two entities falls back to "<A> vs <B>"
//     label matching, then the first two non-root nodes, then the first two
//     nodes. If that fails the graph is downgraded to a hierarchy with an
//     UNRESOLVED_COMPARISON diagnostic.
//  5. Otherwise the root's children (every non-root node when there are no
//     edges) decide: four or more is a quadrant of the first four, fewer is a
//     hierarchy.
//
// The root's children are always preferred over arbitrary non-root nodes when
// resolving comparison entities.
package classify
