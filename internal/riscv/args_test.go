package riscv

import "testing"

func TestCatalogCheck(t *testing.T) {
	for a := Arg(0); a < NumArgs; a++ {
		if err := Catalog[a].Check(); err != nil {
			t.Errorf("%s: %v", a, err)
		}
	}
}

func TestCatalogRoundTrip(t *testing.T) {
	for a := Arg(0); a < NumArgs; a++ {
		c := Catalog[a]
		step := (c.Max() - c.Min()) / 4096
		if step < 1 {
			step = 1
		}
		n := 0
		for v := c.Min(); v <= c.Max() && v >= c.Min(); v += step {
			if !c.Fits(v) {
				continue
			}
			n++
			w := c.Encode(uint64(v))
			if w&^c.Mask() != 0 {
				t.Fatalf("%s: Encode(%d) wrote outside its slots: %#x", a, v, w)
			}
			if got := c.DecodeInt(w); got != v {
				t.Fatalf("%s: Decode(Encode(%d)) = %d", a, v, got)
			}
		}
		if n == 0 {
			t.Errorf("%s: no representable values visited", a)
		}
	}
}

func TestCompressedOffsetSignedness(t *testing.T) {
	// the same all-ones slot pattern reads negative through a signed field
	// and positive through a zero-extended one
	signed := ArgCImmI.DecodeInt(0x107c)
	if signed != -1 {
		t.Errorf("cimmi = %d, want -1", signed)
	}
	if got := ArgCImmSh6.DecodeInt(0x107c); got != 63 {
		t.Errorf("cimmsh6 = %d, want 63", got)
	}
	if got := ArgCImmLWSP.DecodeInt(0x107c); got < 0 {
		t.Errorf("cimmlwsp decoded negative: %d", got)
	}
}

func TestArgString(t *testing.T) {
	if got := ArgJImm20.String(); got != "jimm20" {
		t.Errorf("ArgJImm20.String() = %q", got)
	}
	if got := ArgCImm4SPN.String(); got != "cimm4spn" {
		t.Errorf("ArgCImm4SPN.String() = %q", got)
	}
}
