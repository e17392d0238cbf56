package ui

import "github.com/charmbracelet/lipgloss"

// Course palette
var (
	ColorFairway      = lipgloss.Color("#4CAF50")
	ColorGreen        = lipgloss.Color("#81C784")
	ColorRough        = lipgloss.Color("#2E7D32")
	ColorDimGreen     = lipgloss.Color("#1B5E20")
	ColorSand         = lipgloss.Color("#FFD54F")
	ColorWater        = lipgloss.Color("#29B6F6")
	ColorWhite        = lipgloss.Color("#FFFFFF")
	ColorBlack        = lipgloss.Color("#000000")
	ColorBorderBright = lipgloss.Color("#81C784")
	ColorBorderNorm   = lipgloss.Color("#2E7D32")
	ColorError        = lipgloss.Color("#F44336")
	ColorWarning      = lipgloss.Color("#FF9800")

	// Score classes
	ColorEagle  = lipgloss.Color("#FFD700")
	ColorBirdie = lipgloss.Color("#F44336")
	ColorPar    = lipgloss.Color("#FFFFFF")
	ColorBogey  = lipgloss.Color("#2196F3")
	ColorDouble = lipgloss.Color("#9C27B0")
)

// Pre-built styles
var (
	StyleMenuBar = lipgloss.NewStyle().
			Background(lipgloss.Color("#0D2B12")).
			Foreground(ColorGreen).
			Bold(true).
			Padding(0, 1)

	StyleMenuKey = lipgloss.NewStyle().
			Foreground(ColorSand).
			Bold(true)

	StyleMenuLabel = lipgloss.NewStyle().
			Foreground(ColorGreen)

	StyleTabActive = lipgloss.NewStyle().
			Foreground(ColorBlack).
			Background(ColorFairway).
			Bold(true).
			Padding(0, 1)

	StyleTabInactive = lipgloss.NewStyle().
				Foreground(ColorFairway).
				Padding(0, 1)

	StyleStatusBar = lipgloss.NewStyle().
			Background(lipgloss.Color("#0D2B12")).
			Foreground(ColorGreen).
			Padding(0, 1)

	StyleStatusScanning = lipgloss.NewStyle().
				Foreground(ColorSand).
				Bold(true)

	StyleStatusIdle = lipgloss.NewStyle().
			Foreground(ColorFairway).
			Bold(true)

	StyleStatusError = lipgloss.NewStyle().
				Foreground(ColorError).
				Bold(true)

	StyleStatusInfo = lipgloss.NewStyle().
			Foreground(ColorWater)

	StylePanelBorder = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(ColorBorderNorm)

	StylePanelActive = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(ColorBorderBright)

	StylePanelTitle = lipgloss.NewStyle().
			Foreground(ColorGreen).
			Bold(true).
			Padding(0, 1)

	StyleName = lipgloss.NewStyle().
			Foreground(ColorWhite).
			Bold(true)

	StyleSubtle = lipgloss.NewStyle().
			Foreground(ColorRough)

	StyleValue = lipgloss.NewStyle().
			Foreground(ColorGreen).
			Bold(true)

	StyleSeparator = lipgloss.NewStyle().
			Foreground(ColorRough)

	StyleHelp = lipgloss.NewStyle().
			Foreground(ColorDimGreen)

	StyleCursorRow = lipgloss.NewStyle().
			Foreground(ColorBlack).
			Background(ColorFairway).
			Bold(true)

	StyleCheckOn = lipgloss.NewStyle().
			Foreground(ColorFairway).
			Bold(true)

	StyleCheckOff = lipgloss.NewStyle().
			Foreground(ColorDimGreen)
)
