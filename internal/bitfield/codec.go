package bitfield

import "fmt"

// Codec decodes and encodes one fixed-width operand.
type Codec struct {
	Width    uint
	Signed   bool
	Segments []Segment
}

// Unsigned returns a zero-extended codec of the given width.
func Unsigned(width uint, segs ...Segment) Codec {
	return Codec{Width: width, Segments: segs}
}

// Signed returns a codec whose decoded value is sign extended from bit width-1.
func Signed(width uint, segs ...Segment) Codec {
	return Codec{Width: width, Signed: true, Segments: segs}
}

// Decode returns the operand held in raw. Signed values come back as two's
// complement in the full 64 bits.
func (c Codec) Decode(raw uint64) uint64 {
	var v uint64
	for _, s := range c.Segments {
		v |= s.Decode(raw)
	}
	if c.Signed {
		v = SignExtend(v, c.Width)
	}
	return v
}

// DecodeInt is Decode reinterpreted as a signed integer.
func (c Codec) DecodeInt(raw uint64) int64 { return int64(c.Decode(raw)) }

// Encode returns the instruction bits holding v. Only the codec's own
// slots are set.
func (c Codec) Encode(v uint64) uint64 {
	var w uint64
	for _, s := range c.Segments {
		w |= s.Encode(v)
	}
	return w
}

// Mask returns every instruction bit the codec reads.
func (c Codec) Mask() uint64 {
	var m uint64
	for _, s := range c.Segments {
		m |= B(s.Hi, s.Lo).Mask()
	}
	return m
}

// DecodedMask returns every bit of the decoded value the codec can set
// before sign extension.
func (c Codec) DecodedMask() uint64 {
	var m uint64
	for _, s := range c.Segments {
		for _, d := range s.Dest {
			m |= d.Mask()
		}
	}
	return m
}

// Min is the smallest representable value.
func (c Codec) Min() int64 {
	if !c.Signed {
		return 0
	}
	return -int64(1) << (c.Width - 1)
}

// Max is the largest representable value. Implicit zero bits (such as the
// low bit of branch offsets) are not accounted for; see Fits.
func (c Codec) Max() int64 {
	if c.Signed {
		return int64(1)<<(c.Width-1) - 1
	}
	if c.Width >= 63 {
		return int64(^uint64(0) >> 1)
	}
	return int64(1)<<c.Width - 1
}

// Fits reports whether v is in range and uses only bits the codec carries.
func (c Codec) Fits(v int64) bool {
	if v < c.Min() || v > c.Max() {
		return false
	}
	low := c.DecodedMask()
	if c.Signed {
		// bits at or above the sign position are carried by the sign bit
		low |= ^uint64(0) << (c.Width - 1)
	}
	return uint64(v)&^low == 0
}

// Check validates the layout: segments are well formed, no two segments
// write the same decoded bit or read the same instruction bit, and
// nothing lands above Width.
func (c Codec) Check() error {
	if c.Width == 0 || c.Width > 64 {
		return fmt.Errorf("codec width %d out of range", c.Width)
	}
	var seenInst, seenDec uint64
	for _, s := range c.Segments {
		if err := s.Check(); err != nil {
			return err
		}
		im := B(s.Hi, s.Lo).Mask()
		if seenInst&im != 0 {
			return fmt.Errorf("segment %d:%d overlaps another segment", s.Hi, s.Lo)
		}
		seenInst |= im
		for _, d := range s.Dest {
			if d.Hi >= c.Width {
				return fmt.Errorf("destination %s exceeds width %d", d, c.Width)
			}
			dm := d.Mask()
			if seenDec&dm != 0 {
				return fmt.Errorf("destination %s written twice", d)
			}
			seenDec |= dm
		}
	}
	return nil
}

// SignExtend treats bit width-1 of v as the sign bit.
func SignExtend(v uint64, width uint) uint64 {
	if width == 0 || width >= 64 {
		return v
	}
	shift := 64 - width
	return uint64(int64(v<<shift) >> shift)
}
