package cmd

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"slices"
	"strconv"
	"strings"

	"github.com/invopop/jsonschema"
	"github.com/spf13/cobra"

	"rvdis/internal/disasm"
	"rvdis/internal/ui/colorize"
)

// Addr is an address in the config file, written as a JSON number or a
// hex string such as "0x80000000".
type Addr uint64

func (a *Addr) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		v, err := parseAddr(s)
		if err != nil {
			return err
		}
		*a = Addr(v)
		return nil
	}
	var n uint64
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("address %s: want a number or hex string", b)
	}
	*a = Addr(n)
	return nil
}

func (a Addr) MarshalJSON() ([]byte, error) {
	return json.Marshal(fmt.Sprintf("0x%x", uint64(a)))
}

func (Addr) JSONSchema() *jsonschema.Schema {
	return &jsonschema.Schema{
		OneOf: []*jsonschema.Schema{
			{Type: "integer", Minimum: json.Number("0")},
			{Type: "string", Pattern: "^(0[xX])?[0-9a-fA-F]+$"},
		},
	}
}

// parseAddr accepts hex with or without 0x, or decimal with a 0d prefix.
func parseAddr(s string) (uint64, error) {
	s = strings.TrimSpace(s)
	if d, ok := strings.CutPrefix(s, "0d"); ok {
		return strconv.ParseUint(d, 10, 64)
	}
	s = strings.TrimPrefix(strings.TrimPrefix(s, "0x"), "0X")
	v, err := strconv.ParseUint(s, 16, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid address %q: %w", s, err)
	}
	return v, nil
}

// Config is the rvdis configuration file.
type Config struct {
	Debug         bool   `json:"debug,omitempty" jsonschema:"title=Debug,description=Enable debug logging"`
	NoColor       bool   `json:"noColor,omitempty" jsonschema:"title=No Color,description=Disable colored listings"`
	Style         string `json:"style,omitempty" jsonschema:"title=Style,description=Chroma style used to color listings,default=rvdis-dark"`
	HistoryLength int    `json:"historyLength,omitempty" jsonschema:"title=History Length,description=Instructions remembered for address reconstruction,minimum=1,default=16"`
	PCOffset      Addr   `json:"pcOffset,omitempty" jsonschema:"title=PC Offset,description=Subtracted from every pc before display"`
	GP            *Addr  `json:"gp,omitempty" jsonschema:"title=Global Pointer,description=Value of gp for gp-relative annotations; read from __global_pointer$ when unset"`
	Strings       *bool  `json:"strings,omitempty" jsonschema:"title=Strings,description=Annotate addresses of string literals with the literal,default=true"`
}

// DefaultConfig returns the configuration used when no file is given.
func DefaultConfig() Config {
	return Config{
		Style:         colorize.DefaultStyle,
		HistoryLength: disasm.DefaultHistoryLen,
	}
}

// StringAnnotations reports whether string literals are shown.
func (c Config) StringAnnotations() bool {
	return c.Strings == nil || *c.Strings
}

func (c Config) validate() error {
	if c.HistoryLength < 1 {
		return fmt.Errorf("historyLength must be at least 1, got %d", c.HistoryLength)
	}
	if !slices.Contains(colorize.Styles(), c.Style) {
		slog.Warn("Unknown style, using default", "style", c.Style, "default", colorize.DefaultStyle)
	}
	return nil
}

// LoadConfig reads path over the defaults. An empty path yields the
// defaults.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := json.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.validate(); err != nil {
		return cfg, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// applyFlags overrides cfg with the persistent flags the user set.
func applyFlags(cmd *cobra.Command, cfg *Config) error {
	flags := cmd.Flags()
	if flags.Changed("debug") {
		cfg.Debug, _ = flags.GetBool("debug")
	}
	if flags.Changed("no-color") {
		cfg.NoColor, _ = flags.GetBool("no-color")
	}
	if flags.Changed("style") {
		cfg.Style, _ = flags.GetString("style")
	}
	if flags.Changed("history") {
		cfg.HistoryLength, _ = flags.GetInt("history")
	}
	if flags.Changed("pc-offset") {
		s, _ := flags.GetString("pc-offset")
		v, err := parseAddr(s)
		if err != nil {
			return fmt.Errorf("--pc-offset: %w", err)
		}
		cfg.PCOffset = Addr(v)
	}
	if flags.Changed("gp") {
		s, _ := flags.GetString("gp")
		v, err := parseAddr(s)
		if err != nil {
			return fmt.Errorf("--gp: %w", err)
		}
		gp := Addr(v)
		cfg.GP = &gp
	}
	if flags.Changed("no-strings") {
		off, _ := flags.GetBool("no-strings")
		on := !off
		cfg.Strings = &on
	}
	return cfg.validate()
}

// Options builds session options for output to f. gp discovered in an
// image is used when the config leaves gp unset.
func (c Config) Options(symbols disasm.SymbolLookup, f *os.File, imageGP uint64, hasImageGP bool) disasm.Options {
	opts := disasm.Options{
		PCOffset:   uint64(c.PCOffset),
		HistoryLen: c.HistoryLength,
		Symbols:    symbols,
		Color:      colorize.For(c.Style, c.NoColor, f),
	}
	switch {
	case c.GP != nil:
		opts.GP, opts.HasGP = uint64(*c.GP), true
	case hasImageGP:
		opts.GP, opts.HasGP = imageGP, true
	}
	return opts
}
