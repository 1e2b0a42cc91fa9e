// Package colorize turns chroma styles into the escape sequences the
// disassembler prints around addresses, mnemonics and labels.
package colorize

import (
	"log/slog"
	"os"
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/formatters"
	"github.com/alecthomas/chroma/v2/styles"
	"github.com/charmbracelet/x/term"

	"rvdis/internal/disasm"
)

const reset = "\033[0m"

// Palette maps each category to an escape sequence.
type Palette map[disasm.Category]string

// tokenFor is the chroma token type whose style colours each category.
var tokenFor = map[disasm.Category]chroma.TokenType{
	disasm.CategoryAddress: chroma.LiteralNumberHex,
	disasm.CategoryOpcode:  chroma.Keyword,
	disasm.CategoryLabel:   chroma.NameLabel,
}

// getStyle returns the named style with fallbacks
func getStyle(name string) *chroma.Style {
	candidates := []string{name, DefaultStyle, "dracula", "monokai"}
	for _, n := range candidates {
		if n == "" {
			continue
		}
		// styles.Get falls back silently, so check the registry directly
		if s, ok := styles.Registry[n]; ok {
			return s
		}
	}
	return styles.Fallback
}

// NewPalette builds a palette from a registered chroma style. Unknown
// names fall back to the default style.
func NewPalette(styleName string) Palette {
	style := getStyle(styleName)
	if style.Name != styleName && styleName != "" {
		slog.Debug("Unknown colour style, using fallback", "style", styleName, "using", style.Name)
	}
	p := Palette{disasm.CategoryReset: reset}
	for cat, tok := range tokenFor {
		p[cat] = escape(style, tok)
	}
	return p
}

// escape returns what the true-colour terminal formatter writes ahead of
// a token of type tok.
func escape(style *chroma.Style, tok chroma.TokenType) string {
	const marker = "\x00"
	var b strings.Builder
	it := chroma.Literator(chroma.Token{Type: tok, Value: marker})
	if err := formatters.TTY16m.Format(&b, style, it); err != nil {
		slog.Debug("Formatting colour escape failed", "token", tok, "error", err)
		return ""
	}
	prefix, _, _ := strings.Cut(b.String(), marker)
	return prefix
}

// Colorizer adapts p to the disassembler's capability.
func (p Palette) Colorizer() disasm.Colorizer {
	return func(c disasm.Category) string { return p[c] }
}

// Enabled reports whether output to f should be coloured: not disabled by
// configuration or RVDIS_NO_COLOR, and f is a terminal.
func Enabled(noColor bool, f *os.File) bool {
	if noColor || os.Getenv("RVDIS_NO_COLOR") != "" {
		return false
	}
	return f != nil && term.IsTerminal(f.Fd())
}

// For returns the colorizer to use for output to f.
func For(styleName string, noColor bool, f *os.File) disasm.Colorizer {
	if !Enabled(noColor, f) {
		return disasm.NoColor
	}
	return NewPalette(styleName).Colorizer()
}

// Styles lists the registered chroma style names.
func Styles() []string { return styles.Names() }
