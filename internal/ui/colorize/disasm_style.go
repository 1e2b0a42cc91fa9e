package colorize

import (
	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/styles"
)

// DefaultStyle is the style used when none is configured.
const DefaultStyle = "rvdis-dark"

// RvdisDark is the default listing style. Only the token types the palette
// reads matter; the rest keep chroma defaults.
var RvdisDark = styles.Register(chroma.MustNewStyle("rvdis-dark", chroma.StyleEntries{
	chroma.Text:             "#FFFFFF",
	chroma.Background:       "bg:#1e1e1e",
	chroma.Comment:          "#4F4F4F",
	chroma.Keyword:          "bold #FFFFFF",
	chroma.NameLabel:        "#FFD700",
	chroma.NameVariable:     "#7C9C9D",
	chroma.LiteralNumberHex: "#4F4F4F",
	chroma.String:           "#EACD53",
}))

// RvdisLight suits light terminal backgrounds.
var RvdisLight = styles.Register(chroma.MustNewStyle("rvdis-light", chroma.StyleEntries{
	chroma.Text:             "#1e1e1e",
	chroma.Background:       "bg:#ffffff",
	chroma.Comment:          "#8a8a8a",
	chroma.Keyword:          "bold #005f87",
	chroma.NameLabel:        "#af5f00",
	chroma.NameVariable:     "#5f8700",
	chroma.LiteralNumberHex: "#8a8a8a",
	chroma.String:           "#875f00",
}))
