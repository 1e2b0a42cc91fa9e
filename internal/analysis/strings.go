package analysis

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"rvdis/internal/disasm"
	"rvdis/internal/elfx"
)

// EscapeUnprintable returns a string where printable Unicode runes are preserved.
// Control and unprintable runes are escaped as \uXXXX. Invalid UTF-8 is escaped as \xXX.
func EscapeUnprintable(b []byte) string {
	var sb strings.Builder
	for len(b) > 0 {
		r, size := utf8.DecodeRune(b)
		if r == utf8.RuneError && size == 1 {
			fmt.Fprintf(&sb, "\\x%02X", b[0])
		} else if unicode.IsPrint(r) {
			sb.WriteRune(r)
		} else {
			fmt.Fprintf(&sb, "\\u%04X", r)
		}
		b = b[size:]
	}
	return sb.String()
}

// CString extracts the NUL-terminated prefix of b. It fails when b holds
// no terminator.
func CString(b []byte) ([]byte, bool) {
	for i, c := range b {
		if c == 0 {
			return b[:i], true
		}
	}
	return nil, false
}

// Printable reports whether s is valid UTF-8 made of printable runes,
// tabs and newlines.
func Printable(s []byte) bool {
	if !utf8.Valid(s) {
		return false
	}
	for _, r := range string(s) {
		if r != '\n' && r != '\t' && !unicode.IsPrint(r) {
			return false
		}
	}
	return true
}

// ReadString reads a printable C string of at least MinStringLength bytes
// at va in read-only data.
func ReadString(im *elfx.Image, va uint64) (string, bool) {
	if !im.InReadOnlyData(va) {
		return "", false
	}
	raw, ok := im.ReadBytesVA(va, MaxStringLength)
	if !ok {
		return "", false
	}
	s, ok := CString(raw)
	if !ok || len(s) < MinStringLength || !Printable(s) {
		return "", false
	}
	return string(s), true
}

// QuoteLiteral renders s as a Go-quoted literal, truncated to
// MaxStringDisplay runes.
func QuoteLiteral(s string) string {
	if utf8.RuneCountInString(s) <= MaxStringDisplay {
		return strconv.Quote(s)
	}
	r := []rune(s)
	return strconv.Quote(string(r[:MaxStringDisplay])) + "..."
}

// WithStrings decorates a symbol lookup: nearest queries for an address
// holding a string literal answer with the quoted literal instead of a
// symbol offset. Exact queries pass through.
func WithStrings(next disasm.SymbolLookup, read func(uint64) (string, bool)) disasm.SymbolLookup {
	if next == nil {
		next = disasm.NoSymbols
	}
	return func(addr uint64, nearest bool) (string, bool) {
		if nearest {
			if s, ok := read(addr); ok {
				return QuoteLiteral(s), true
			}
		}
		return next(addr, nearest)
	}
}

// ImageLookup is the symbol capability for listings of im: symbol names
// plus string literals in read-only data.
func ImageLookup(im *elfx.Image, syms *SymbolTable) disasm.SymbolLookup {
	return WithStrings(syms.Lookup, func(va uint64) (string, bool) {
		return ReadString(im, va)
	})
}
