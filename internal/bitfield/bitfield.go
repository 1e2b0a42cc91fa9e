// Package bitfield maps scattered bit ranges of an instruction word onto
// contiguous decoded values and back.
//
// A Codec is plain data: an ordered list of Segments, each taking one
// contiguous span of the instruction word and distributing it over one or
// more destination ranges of the decoded value. A single pair of Decode and
// Encode routines evaluates every codec, so operand kinds differ only in
// their tables.
package bitfield

import "fmt"

// Range is the closed bit span [Hi:Lo] of a 64-bit value.
type Range struct {
	Hi, Lo uint
}

// B returns the range [hi:lo].
func B(hi, lo uint) Range { return Range{Hi: hi, Lo: lo} }

// Bit returns the single-bit range [n:n].
func Bit(n uint) Range { return Range{Hi: n, Lo: n} }

// Width is the number of bits covered by r.
func (r Range) Width() uint { return r.Hi - r.Lo + 1 }

// Mask returns r as a bit mask.
func (r Range) Mask() uint64 {
	if r.Hi >= 63 {
		return ^uint64(0) << r.Lo
	}
	return (uint64(1)<<(r.Hi+1) - 1) &^ (uint64(1)<<r.Lo - 1)
}

func (r Range) String() string {
	if r.Hi == r.Lo {
		return fmt.Sprintf("%d", r.Hi)
	}
	return fmt.Sprintf("%d:%d", r.Hi, r.Lo)
}

// Segment takes instruction bits [Hi:Lo] and scatters them over Dest.
// Dest is listed from the instruction MSB downward: the first range
// receives the highest instruction bits.
type Segment struct {
	Hi, Lo uint
	Dest   []Range
}

// Seg builds a segment. With no destinations the span maps onto the low
// bits of the decoded value unchanged in order.
func Seg(hi, lo uint, dest ...Range) Segment {
	if len(dest) == 0 {
		dest = []Range{B(hi-lo, 0)}
	}
	return Segment{Hi: hi, Lo: lo, Dest: dest}
}

// Decode extracts the segment's contribution to the decoded value.
func (s Segment) Decode(raw uint64) uint64 {
	var v uint64
	pos := s.Hi + 1
	for _, d := range s.Dest {
		pos -= d.Width()
		shift := int(pos) - int(d.Lo)
		if shift < 0 {
			v |= (raw << uint(-shift)) & d.Mask()
		} else {
			v |= (raw >> uint(shift)) & d.Mask()
		}
	}
	return v
}

// Encode places the relevant bits of v into the segment's instruction
// positions. Bits outside the segment are zero; callers OR fragments into
// a base word.
func (s Segment) Encode(v uint64) uint64 {
	var w uint64
	pos := s.Hi + 1
	for _, d := range s.Dest {
		pos -= d.Width()
		shift := int(pos) - int(d.Lo)
		if shift < 0 {
			w |= (v & d.Mask()) >> uint(-shift)
		} else {
			w |= (v & d.Mask()) << uint(shift)
		}
	}
	return w
}

// Check reports layout errors in s: destination widths must add up to the
// instruction span and every range must be well formed.
func (s Segment) Check() error {
	if s.Hi < s.Lo || s.Hi > 63 {
		return fmt.Errorf("segment %d:%d: bad instruction span", s.Hi, s.Lo)
	}
	var total uint
	for _, d := range s.Dest {
		if d.Hi < d.Lo || d.Hi > 63 {
			return fmt.Errorf("segment %d:%d: bad destination %s", s.Hi, s.Lo, d)
		}
		total += d.Width()
	}
	if want := s.Hi - s.Lo + 1; total != want {
		return fmt.Errorf("segment %d:%d: destinations cover %d bits, want %d", s.Hi, s.Lo, total, want)
	}
	return nil
}
