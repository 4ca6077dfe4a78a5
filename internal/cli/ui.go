package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/paupedrejon/conceptmap/pkg/pipeline"
)

// stdout receives every human-readable status line. Artifacts written without
// -o go to os.Stdout directly so they can be piped.
var stdout io.Writer = os.Stdout

// =============================================================================
// Palette & Styles
// =============================================================================

var (
	colorAccent = lipgloss.Color("36")  // teal
	colorOK     = lipgloss.Color("35")  // green
	colorWarn   = lipgloss.Color("220") // amber
	colorFail   = lipgloss.Color("167") // soft red
	colorCmd    = lipgloss.Color("75")  // light blue
	colorValue  = lipgloss.Color("255")
	colorLabel  = lipgloss.Color("245")
	colorMuted  = lipgloss.Color("240")
)

var (
	// StyleTitle renders headings, such as the inspect header.
	StyleTitle = lipgloss.NewStyle().Bold(true).Foreground(colorAccent)
	// StyleHighlight renders values the user should notice.
	StyleHighlight = lipgloss.NewStyle().Foreground(colorAccent)
	// StyleDim renders secondary text.
	StyleDim = lipgloss.NewStyle().Foreground(colorMuted)
	// StyleValue renders plain data values.
	StyleValue = lipgloss.NewStyle().Foreground(colorValue)
)

var (
	styleIconSpinner = lipgloss.NewStyle().Foreground(colorAccent)
	styleWarning     = lipgloss.NewStyle().Foreground(colorWarn)
	styleCode        = lipgloss.NewStyle().Foreground(colorWarn).Bold(true)
	styleCommand     = lipgloss.NewStyle().Foreground(colorCmd)
	styleKey         = lipgloss.NewStyle().Foreground(colorLabel).Width(12)

	statusIcons = map[string]string{
		"success": lipgloss.NewStyle().Foreground(colorOK).Render("✓"),
		"error":   lipgloss.NewStyle().Foreground(colorFail).Render("✗"),
		"warning": lipgloss.NewStyle().Foreground(colorWarn).Render("!"),
		"info":    lipgloss.NewStyle().Foreground(colorLabel).Render("›"),
	}
)

// =============================================================================
// Status Lines
// =============================================================================

func status(kind, format string, args ...any) {
	fmt.Fprintln(stdout, statusIcons[kind]+" "+fmt.Sprintf(format, args...))
}

func printSuccess(format string, args ...any) { status("success", format, args...) }

func printError(format string, args ...any) { status("error", format, args...) }

func printInfo(format string, args ...any) { status("info", format, args...) }

func printWarning(format string, args ...any) {
	status("warning", "%s", styleWarning.Render(fmt.Sprintf(format, args...)))
}

// printDetail prints an indented, dimmed line under a status line.
func printDetail(format string, args ...any) {
	fmt.Fprintln(stdout, "  "+StyleDim.Render(fmt.Sprintf(format, args...)))
}

// printFile prints the path an artifact was written to.
func printFile(path string) {
	fmt.Fprintln(stdout, "  "+StyleDim.Render("→")+" "+StyleValue.Render(path))
}

func printKeyValue(key, value string) {
	fmt.Fprintln(stdout, styleKey.Render(key)+" "+StyleValue.Render(value))
}

// printNextStep suggests a follow-up command.
func printNextStep(description, cmd string) {
	fmt.Fprintln(stdout, StyleDim.Render(description+":")+" "+styleCommand.Render(cmd))
}

// =============================================================================
// Plan Summaries
// =============================================================================

// printStats prints "N nodes · M connectors · cached|fresh". Zero counts are
// left out.
func printStats(nodeCount, connectorCount int, cached bool) {
	var parts []string
	if nodeCount > 0 {
		parts = append(parts, StyleDim.Render(fmt.Sprintf("%d nodes", nodeCount)))
	}
	if connectorCount > 0 {
		parts = append(parts, StyleDim.Render(fmt.Sprintf("%d connectors", connectorCount)))
	}
	if cached {
		parts = append(parts, lipgloss.NewStyle().Foreground(colorOK).Render("cached"))
	} else {
		parts = append(parts, StyleDim.Render("fresh"))
	}
	fmt.Fprintln(stdout, "  "+strings.Join(parts, StyleDim.Render(" · ")))
}

// printDiagnostics prints one warning per problem the pipeline recovered from.
func printDiagnostics(res *pipeline.Result) {
	if res.Repaired {
		printWarning("Repaired truncated JSON")
	}
	for _, d := range res.Diagnostics {
		printWarning("%s %s", styleCode.Render(string(d.Code)), d.Message)
	}
}
