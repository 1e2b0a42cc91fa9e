package styles

import (
	"github.com/charmbracelet/lipgloss/v2"
	"github.com/charmbracelet/x/exp/charmtone"
)

// Listing viewer styles.
var (
	Menu = lipgloss.NewStyle().
		Background(lipgloss.Color("235")).
		Foreground(lipgloss.Color("252")).
		Padding(0, 1)

	Title = lipgloss.NewStyle().
		Foreground(lipgloss.Color(charmtone.Charple.Hex())).
		MarginLeft(2)

	SymbolAddress  = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	SelectedSymbol = lipgloss.NewStyle().Foreground(lipgloss.Color("170"))
	SymbolName     = lipgloss.NewStyle().Foreground(lipgloss.Color(charmtone.Malibu.Hex()))

	Status = lipgloss.NewStyle().Foreground(lipgloss.Color(charmtone.Squid.Hex()))
)
