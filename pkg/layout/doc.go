// Package layout computes deterministic geometry for concept graphs.
//
// The hierarchy template goes through three steps:
//
//  1. [AssignLevels] runs a BFS from the root candidates so every node gets
//     a level equal to its edge distance from the nearest root.
//  2. [SolveHierarchy] centres each level horizontally on a shared axis and
//     stacks levels vertically, emphasising the root box.
//  3. [Route] joins parents to children with vertical cubic beziers.
//
// The comparison and quadrant templates use [SolveSectors], which places a
// fixed circle split into 2 or 4 sectors between the entity content boxes.
//
// All functions are pure; the same input always yields the same geometry.
package layout
