// Package svg draws a RenderPlan as a standalone SVG document.
//
// It is a reference sink: the production renderer lives outside this
// module and reads the same plan JSON. Hierarchy plans become rounded boxes
// joined by bezier connectors; comparison and quadrant plans become a
// sectored circle flanked by content boxes.
//
//	data := svg.Render(p)
//	os.WriteFile("diagram.svg", data, 0644)
package svg
