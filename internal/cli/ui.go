package cli

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/matzehuels/stickerboard/pkg/board"
	"github.com/matzehuels/stickerboard/pkg/sink"
)

// =============================================================================
// Color Palette
// =============================================================================

var (
	colorCyan   = lipgloss.Color("36")  // Teal - primary actions
	colorGreen  = lipgloss.Color("35")  // Green - success
	colorYellow = lipgloss.Color("220") // Amber - warnings
	colorBlue   = lipgloss.Color("75")  // Light blue - commands
	colorWhite  = lipgloss.Color("255") // Bright white - values
	colorGray   = lipgloss.Color("245") // Gray - secondary text
	colorDim    = lipgloss.Color("240") // Dim gray - muted text
)

// stickerColors tint stickers by creation order.
var stickerColors = []lipgloss.Color{
	lipgloss.Color("216"), lipgloss.Color("211"), lipgloss.Color("117"),
	lipgloss.Color("183"), lipgloss.Color("73"), lipgloss.Color("224"),
}

// =============================================================================
// Public Styles
// =============================================================================

var (
	// StyleTitle for main headings.
	StyleTitle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)

	// StyleDim for secondary/muted text.
	StyleDim = lipgloss.NewStyle().Foreground(colorDim)

	// StyleValue for data values.
	StyleValue = lipgloss.NewStyle().Foreground(colorWhite)

	// StyleNumber for numeric values.
	StyleNumber = lipgloss.NewStyle().Foreground(colorCyan)

	// StyleWarning for warning messages.
	StyleWarning = lipgloss.NewStyle().Foreground(colorYellow)
)

// =============================================================================
// Internal Styles
// =============================================================================

var (
	styleIconSuccess = lipgloss.NewStyle().Foreground(colorGreen)
	styleIconWarning = lipgloss.NewStyle().Foreground(colorYellow)
	styleIconInfo    = lipgloss.NewStyle().Foreground(colorGray)
	styleIconSpinner = lipgloss.NewStyle().Foreground(colorCyan)

	styleComplete = lipgloss.NewStyle().Foreground(colorGreen)
	stylePartial  = lipgloss.NewStyle().Foreground(colorYellow)

	styleCommand = lipgloss.NewStyle().Foreground(colorBlue)
	styleHeader  = lipgloss.NewStyle().Foreground(colorGray).Bold(true)
)

// =============================================================================
// Icons
// =============================================================================

const (
	iconSuccess = "✓"
	iconWarning = "!"
	iconInfo    = "›"
	iconArrow   = "→"
)

// =============================================================================
// Status Output
// =============================================================================

func printSuccess(format string, args ...any) {
	fmt.Println(styleIconSuccess.Render(iconSuccess) + " " + fmt.Sprintf(format, args...))
}

func printWarning(format string, args ...any) {
	fmt.Println(styleIconWarning.Render(iconWarning) + " " + StyleWarning.Render(fmt.Sprintf(format, args...)))
}

func printInfo(format string, args ...any) {
	fmt.Println(styleIconInfo.Render(iconInfo) + " " + fmt.Sprintf(format, args...))
}

// printDetail prints a detail line (indented).
func printDetail(format string, args ...any) {
	fmt.Println("  " + StyleDim.Render(fmt.Sprintf(format, args...)))
}

// printFile prints a file output line.
func printFile(path string) {
	fmt.Println("  " + StyleDim.Render(iconArrow) + " " + StyleValue.Render(path))
}

// printKeyValue prints a labeled value.
func printKeyValue(key, value string) {
	keyStyle := lipgloss.NewStyle().Foreground(colorGray).Width(12)
	fmt.Println(keyStyle.Render(key) + " " + StyleValue.Render(value))
}

// printNextStep prints a suggested next command.
func printNextStep(description, cmd string) {
	fmt.Println(StyleDim.Render(description+":") + " " + styleCommand.Render(cmd))
}

// =============================================================================
// Board Output
// =============================================================================

// printPlacement prints the placement summary on a single line.
func printPlacement(requested, placed int, snap board.Snapshot) {
	status := styleComplete.Render("complete")
	if placed < requested {
		status = stylePartial.Render(fmt.Sprintf("%d without room", requested-placed))
	}
	sep := StyleDim.Render(" · ")
	fmt.Println("  " +
		StyleNumber.Render(fmt.Sprintf("%d/%d", placed, requested)) + StyleDim.Render(" placed") + sep +
		StyleDim.Render(fmt.Sprintf("%.0fx%.0f", snap.Viewport.Width, snap.Viewport.Height)) + sep +
		StyleDim.Render(fmt.Sprintf("%.0fpx stickers", snap.ItemSize)) + sep +
		status)
}

// itemsTable renders the items of snap as a bordered table.
func itemsTable(snap board.Snapshot) string {
	rows := make([][]string, len(snap.Items))
	for i, it := range snap.Items {
		rows[i] = []string{
			it.ID,
			strconv.FormatFloat(it.X, 'f', 1, 64),
			strconv.FormatFloat(it.Y, 'f', 1, 64),
			strconv.FormatFloat(it.Rotation, 'f', 1, 64) + "°",
			sink.Label(it.Asset),
		}
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("ID", "X", "Y", "Rotation", "Sticker").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return styleHeader
			}
			base := lipgloss.NewStyle().Padding(0, 1)
			switch col {
			case 1, 2, 3:
				return base.Foreground(colorCyan).Align(lipgloss.Right)
			case 4:
				return base.Foreground(stickerColors[row%len(stickerColors)])
			}
			return base
		})
	return t.Render()
}
