package disasm

import "rvdis/internal/riscv"

// DefaultHistoryLen is the number of instructions a Session remembers.
const DefaultHistoryLen = 16

// Entry is a remembered instruction and the pc it was disassembled at.
type Entry struct {
	PC   uint64
	Inst riscv.Inst
}

// History is a fixed-capacity FIFO of recently disassembled instructions.
// When full, pushing drops the oldest entry.
type History struct {
	buf   []Entry
	start int
	n     int
}

// NewHistory returns an empty history holding at most n entries. A
// non-positive n means DefaultHistoryLen.
func NewHistory(n int) *History {
	if n <= 0 {
		n = DefaultHistoryLen
	}
	return &History{buf: make([]Entry, n)}
}

// Push appends an entry, evicting the oldest one when full.
func (h *History) Push(pc uint64, inst riscv.Inst) {
	if h.n < len(h.buf) {
		h.buf[(h.start+h.n)%len(h.buf)] = Entry{PC: pc, Inst: inst}
		h.n++
		return
	}
	h.buf[h.start] = Entry{PC: pc, Inst: inst}
	h.start = (h.start + 1) % len(h.buf)
}

// Clear drops every entry.
func (h *History) Clear() {
	h.start, h.n = 0, 0
}

// Len is the number of entries held.
func (h *History) Len() int { return h.n }

// Cap is the capacity.
func (h *History) Cap() int { return len(h.buf) }

// at returns the i-th entry counting from the oldest.
func (h *History) at(i int) Entry { return h.buf[(h.start+i)%len(h.buf)] }

// Entries returns a copy of the entries, oldest first.
func (h *History) Entries() []Entry {
	out := make([]Entry, h.n)
	for i := range out {
		out[i] = h.at(i)
	}
	return out
}

// LastWriter returns the most recent entry that wrote integer register
// reg.
func (h *History) LastWriter(reg uint8) (Entry, bool) {
	for i := h.n - 1; i >= 0; i-- {
		e := h.at(i)
		if rd, ok := e.Inst.WritesIntRd(); ok && rd == reg {
			return e, true
		}
	}
	return Entry{}, false
}
