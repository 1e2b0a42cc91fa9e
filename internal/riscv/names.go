package riscv

import "fmt"

// IntRegNames are the ABI names of x0-x31.
var IntRegNames = [32]string{
	"zero", "ra", "sp", "gp", "tp", "t0", "t1", "t2",
	"s0", "s1", "a0", "a1", "a2", "a3", "a4", "a5",
	"a6", "a7", "s2", "s3", "s4", "s5", "s6", "s7",
	"s8", "s9", "s10", "s11", "t3", "t4", "t5", "t6",
}

// FloatRegNames are the ABI names of f0-f31.
var FloatRegNames = [32]string{
	"ft0", "ft1", "ft2", "ft3", "ft4", "ft5", "ft6", "ft7",
	"fs0", "fs1", "fa0", "fa1", "fa2", "fa3", "fa4", "fa5",
	"fa6", "fa7", "fs2", "fs3", "fs4", "fs5", "fs6", "fs7",
	"fs8", "fs9", "fs10", "fs11", "ft8", "ft9", "ft10", "ft11",
}

// CSRNames maps CSR numbers to their names. Numbers missing from the map
// are printed in hex by the disassembler.
var CSRNames = map[uint16]string{
	0x000: "ustatus",
	0x001: "fflags",
	0x002: "frm",
	0x003: "fcsr",
	0x004: "uie",
	0x005: "utvec",
	0x040: "uscratch",
	0x041: "uepc",
	0x042: "ucause",
	0x043: "utval",
	0x044: "uip",
	0x100: "sstatus",
	0x102: "sedeleg",
	0x103: "sideleg",
	0x104: "sie",
	0x105: "stvec",
	0x106: "scounteren",
	0x140: "sscratch",
	0x141: "sepc",
	0x142: "scause",
	0x143: "stval",
	0x144: "sip",
	0x180: "satp",
	0x300: "mstatus",
	0x301: "misa",
	0x302: "medeleg",
	0x303: "mideleg",
	0x304: "mie",
	0x305: "mtvec",
	0x306: "mcounteren",
	0x320: "mcountinhibit",
	0x340: "mscratch",
	0x341: "mepc",
	0x342: "mcause",
	0x343: "mtval",
	0x344: "mip",
	0x3a0: "pmpcfg0",
	0x3a1: "pmpcfg1",
	0x3a2: "pmpcfg2",
	0x3a3: "pmpcfg3",
	0x3b0: "pmpaddr0",
	0x3b1: "pmpaddr1",
	0x3b2: "pmpaddr2",
	0x3b3: "pmpaddr3",
	0x3b4: "pmpaddr4",
	0x3b5: "pmpaddr5",
	0x3b6: "pmpaddr6",
	0x3b7: "pmpaddr7",
	0x3b8: "pmpaddr8",
	0x3b9: "pmpaddr9",
	0x3ba: "pmpaddr10",
	0x3bb: "pmpaddr11",
	0x3bc: "pmpaddr12",
	0x3bd: "pmpaddr13",
	0x3be: "pmpaddr14",
	0x3bf: "pmpaddr15",
	0x7a0: "tselect",
	0x7a1: "tdata1",
	0x7a2: "tdata2",
	0x7a3: "tdata3",
	0x7b0: "dcsr",
	0x7b1: "dpc",
	0x7b2: "dscratch",
	0xb00: "mcycle",
	0xb02: "minstret",
	0xc00: "cycle",
	0xc01: "time",
	0xc02: "instret",
	0xc80: "cycleh",
	0xc81: "timeh",
	0xc82: "instreth",
	0xf11: "mvendorid",
	0xf12: "marchid",
	0xf13: "mimpid",
	0xf14: "mhartid",
}

// CSRName returns the name of csr, or its number as 0x%03x.
func CSRName(csr uint16) string {
	if n, ok := CSRNames[csr&0xfff]; ok {
		return n
	}
	return fmt.Sprintf("0x%03x", csr&0xfff)
}

var roundingModes = [...]string{"rne", "rtz", "rdn", "rup", "rmm"}

// RoundingModeName returns the mnemonic of a static rounding mode. The
// reserved encodings and dyn (7) are reported as "unk".
func RoundingModeName(rm uint8) string {
	if int(rm) < len(roundingModes) {
		return roundingModes[rm]
	}
	return "unk"
}
