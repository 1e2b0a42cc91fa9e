package riscv

import (
	"fmt"
	"strings"
)

// Op is an instruction operation.
type Op uint16

const (
	OpIllegal Op = iota

	// RV32I / RV64I
	OpLUI
	OpAUIPC
	OpJAL
	OpJALR
	OpBEQ
	OpBNE
	OpBLT
	OpBGE
	OpBLTU
	OpBGEU
	OpLB
	OpLH
	OpLW
	OpLD
	OpLBU
	OpLHU
	OpLWU
	OpSB
	OpSH
	OpSW
	OpSD
	OpADDI
	OpSLTI
	OpSLTIU
	OpXORI
	OpORI
	OpANDI
	OpSLLI
	OpSRLI
	OpSRAI
	OpADD
	OpSUB
	OpSLL
	OpSLT
	OpSLTU
	OpXOR
	OpSRL
	OpSRA
	OpOR
	OpAND
	OpADDIW
	OpSLLIW
	OpSRLIW
	OpSRAIW
	OpADDW
	OpSUBW
	OpSLLW
	OpSRLW
	OpSRAW
	OpFENCE
	OpFENCEI
	OpECALL
	OpEBREAK

	// privileged
	OpURET
	OpSRET
	OpMRET
	OpWFI
	OpSFENCEVMA

	// Zicsr
	OpCSRRW
	OpCSRRS
	OpCSRRC
	OpCSRRWI
	OpCSRRSI
	OpCSRRCI

	// M
	OpMUL
	OpMULH
	OpMULHSU
	OpMULHU
	OpDIV
	OpDIVU
	OpREM
	OpREMU
	OpMULW
	OpDIVW
	OpDIVUW
	OpREMW
	OpREMUW

	// A
	OpLRW
	OpSCW
	OpAMOSWAPW
	OpAMOADDW
	OpAMOXORW
	OpAMOORW
	OpAMOANDW
	OpAMOMINW
	OpAMOMAXW
	OpAMOMINUW
	OpAMOMAXUW
	OpLRD
	OpSCD
	OpAMOSWAPD
	OpAMOADDD
	OpAMOXORD
	OpAMOORD
	OpAMOANDD
	OpAMOMIND
	OpAMOMAXD
	OpAMOMINUD
	OpAMOMAXUD

	// F
	OpFLW
	OpFSW
	OpFMADDS
	OpFMSUBS
	OpFNMSUBS
	OpFNMADDS
	OpFADDS
	OpFSUBS
	OpFMULS
	OpFDIVS
	OpFSGNJS
	OpFSGNJNS
	OpFSGNJXS
	OpFMINS
	OpFMAXS
	OpFSQRTS
	OpFLES
	OpFLTS
	OpFEQS
	OpFCVTWS
	OpFCVTWUS
	OpFCVTLS
	OpFCVTLUS
	OpFCVTSW
	OpFCVTSWU
	OpFCVTSL
	OpFCVTSLU
	OpFMVXW
	OpFCLASSS
	OpFMVWX

	// D
	OpFLD
	OpFSD
	OpFMADDD
	OpFMSUBD
	OpFNMSUBD
	OpFNMADDD
	OpFADDD
	OpFSUBD
	OpFMULD
	OpFDIVD
	OpFSGNJD
	OpFSGNJND
	OpFSGNJXD
	OpFMIND
	OpFMAXD
	OpFCVTSD
	OpFCVTDS
	OpFSQRTD
	OpFLED
	OpFLTD
	OpFEQD
	OpFCVTWD
	OpFCVTWUD
	OpFCVTLD
	OpFCVTLUD
	OpFCVTDW
	OpFCVTDWU
	OpFCVTDL
	OpFCVTDLU
	OpFMVXD
	OpFCLASSD
	OpFMVDX

	// C (RV64)
	OpCADDI4SPN
	OpCFLD
	OpCLW
	OpCLD
	OpCFSD
	OpCSW
	OpCSD
	OpCNOP
	OpCADDI
	OpCADDIW
	OpCLI
	OpCADDI16SP
	OpCLUI
	OpCSRLI
	OpCSRAI
	OpCANDI
	OpCSUB
	OpCXOR
	OpCOR
	OpCAND
	OpCSUBW
	OpCADDW
	OpCJ
	OpCBEQZ
	OpCBNEZ
	OpCSLLI
	OpCFLDSP
	OpCLWSP
	OpCLDSP
	OpCJR
	OpCMV
	OpCEBREAK
	OpCJALR
	OpCADD
	OpCFSDSP
	OpCSWSP
	OpCSDSP

	NumOps
)

// Layout says which operand fields a 32-bit encoding carries.
type Layout uint8

const (
	LayoutNone   Layout = iota
	LayoutU             // rd, imm20
	LayoutUJ            // rd, jimm20
	LayoutI             // rd, rs1, imm12
	LayoutISh5          // rd, rs1, shamt5
	LayoutISh6          // rd, rs1, shamt6
	LayoutS             // rs1, rs2, simm12
	LayoutSB            // rs1, rs2, sbimm12
	LayoutR             // rd, rs1, rs2
	LayoutRM            // rd, rs1, rs2, rm
	LayoutR4            // rd, rs1, rs2, rs3, rm
	LayoutRA            // rd, rs1, rs2, aq, rl
	LayoutRL            // rd, rs1, aq, rl
	LayoutFence         // pred, succ
	LayoutCSR           // rd, rs1, csr12
	LayoutCSRI          // rd, zimm, csr12
	LayoutSFence        // rs1, rs2
	LayoutCompressed
)

type opFlag uint8

const (
	flagPCRel opFlag = 1 << iota
	flagHigh
	flagLow
	flagGP
	flagJump
)

type opInfo struct {
	name   string
	layout Layout
	format string
	flags  opFlag
}

// operand format strings; see the disasm package for the meaning of each
// character
const (
	fmtNone      = "O"
	fmtRdImm     = "O\t0,i"
	fmtRdOffset  = "O\t0,o"
	fmtRdRs1Imm  = "O\t0,1,i"
	fmtRdRs1Rs2  = "O\t0,1,2"
	fmtLoad      = "O\t0,i(1)"
	fmtStore     = "O\t2,i(1)"
	fmtBranch    = "O\t1,2,o"
	fmtFence     = "O\tp,s"
	fmtCSR       = "O\t0,c,1"
	fmtCSRI      = "O\t0,c,7"
	fmtSFence    = "O\t1,2"
	fmtAMO       = "OAR\t0,2,(1)"
	fmtLR        = "OAR\t0,(1)"
	fmtFLoad     = "O\t3,i(1)"
	fmtFStore    = "O\t5,i(1)"
	fmtF3RM      = "O\t3,4,5,r"
	fmtF3        = "O\t3,4,5"
	fmtF4RM      = "O\t3,4,5,6,r"
	fmtF2RM      = "O\t3,4,r"
	fmtRdF2      = "O\t0,4,5"
	fmtRdFRM     = "O\t0,4,r"
	fmtRdF       = "O\t0,4"
	fmtFRs1RM    = "O\t3,1,r"
	fmtFRs1      = "O\t3,1"
	fmtRdRs2     = "O\t0,2"
	fmtRs1       = "O\t1"
	fmtOffset    = "O\to"
	fmtRs1Offset = "O\t1,o"
)

const (
	loadFlags  = flagLow | flagGP
	storeFlags = flagLow | flagGP
)

var ops = [NumOps]opInfo{
	OpIllegal: {"illegal", LayoutNone, fmtNone, 0},

	OpLUI:    {"lui", LayoutU, fmtRdImm, flagHigh},
	OpAUIPC:  {"auipc", LayoutU, fmtRdOffset, flagHigh | flagPCRel},
	OpJAL:    {"jal", LayoutUJ, fmtRdOffset, flagPCRel | flagJump},
	OpJALR:   {"jalr", LayoutI, fmtLoad, flagLow | flagJump},
	OpBEQ:    {"beq", LayoutSB, fmtBranch, flagPCRel},
	OpBNE:    {"bne", LayoutSB, fmtBranch, flagPCRel},
	OpBLT:    {"blt", LayoutSB, fmtBranch, flagPCRel},
	OpBGE:    {"bge", LayoutSB, fmtBranch, flagPCRel},
	OpBLTU:   {"bltu", LayoutSB, fmtBranch, flagPCRel},
	OpBGEU:   {"bgeu", LayoutSB, fmtBranch, flagPCRel},
	OpLB:     {"lb", LayoutI, fmtLoad, loadFlags},
	OpLH:     {"lh", LayoutI, fmtLoad, loadFlags},
	OpLW:     {"lw", LayoutI, fmtLoad, loadFlags},
	OpLD:     {"ld", LayoutI, fmtLoad, loadFlags},
	OpLBU:    {"lbu", LayoutI, fmtLoad, loadFlags},
	OpLHU:    {"lhu", LayoutI, fmtLoad, loadFlags},
	OpLWU:    {"lwu", LayoutI, fmtLoad, loadFlags},
	OpSB:     {"sb", LayoutS, fmtStore, storeFlags},
	OpSH:     {"sh", LayoutS, fmtStore, storeFlags},
	OpSW:     {"sw", LayoutS, fmtStore, storeFlags},
	OpSD:     {"sd", LayoutS, fmtStore, storeFlags},
	OpADDI:   {"addi", LayoutI, fmtRdRs1Imm, flagLow | flagGP},
	OpSLTI:   {"slti", LayoutI, fmtRdRs1Imm, 0},
	OpSLTIU:  {"sltiu", LayoutI, fmtRdRs1Imm, 0},
	OpXORI:   {"xori", LayoutI, fmtRdRs1Imm, 0},
	OpORI:    {"ori", LayoutI, fmtRdRs1Imm, 0},
	OpANDI:   {"andi", LayoutI, fmtRdRs1Imm, 0},
	OpSLLI:   {"slli", LayoutISh6, fmtRdRs1Imm, 0},
	OpSRLI:   {"srli", LayoutISh6, fmtRdRs1Imm, 0},
	OpSRAI:   {"srai", LayoutISh6, fmtRdRs1Imm, 0},
	OpADD:    {"add", LayoutR, fmtRdRs1Rs2, 0},
	OpSUB:    {"sub", LayoutR, fmtRdRs1Rs2, 0},
	OpSLL:    {"sll", LayoutR, fmtRdRs1Rs2, 0},
	OpSLT:    {"slt", LayoutR, fmtRdRs1Rs2, 0},
	OpSLTU:   {"sltu", LayoutR, fmtRdRs1Rs2, 0},
	OpXOR:    {"xor", LayoutR, fmtRdRs1Rs2, 0},
	OpSRL:    {"srl", LayoutR, fmtRdRs1Rs2, 0},
	OpSRA:    {"sra", LayoutR, fmtRdRs1Rs2, 0},
	OpOR:     {"or", LayoutR, fmtRdRs1Rs2, 0},
	OpAND:    {"and", LayoutR, fmtRdRs1Rs2, 0},
	OpADDIW:  {"addiw", LayoutI, fmtRdRs1Imm, 0},
	OpSLLIW:  {"slliw", LayoutISh5, fmtRdRs1Imm, 0},
	OpSRLIW:  {"srliw", LayoutISh5, fmtRdRs1Imm, 0},
	OpSRAIW:  {"sraiw", LayoutISh5, fmtRdRs1Imm, 0},
	OpADDW:   {"addw", LayoutR, fmtRdRs1Rs2, 0},
	OpSUBW:   {"subw", LayoutR, fmtRdRs1Rs2, 0},
	OpSLLW:   {"sllw", LayoutR, fmtRdRs1Rs2, 0},
	OpSRLW:   {"srlw", LayoutR, fmtRdRs1Rs2, 0},
	OpSRAW:   {"sraw", LayoutR, fmtRdRs1Rs2, 0},
	OpFENCE:  {"fence", LayoutFence, fmtFence, 0},
	OpFENCEI: {"fence.i", LayoutNone, fmtNone, 0},
	OpECALL:  {"ecall", LayoutNone, fmtNone, 0},
	OpEBREAK: {"ebreak", LayoutNone, fmtNone, 0},

	OpURET:      {"uret", LayoutNone, fmtNone, 0},
	OpSRET:      {"sret", LayoutNone, fmtNone, 0},
	OpMRET:      {"mret", LayoutNone, fmtNone, 0},
	OpWFI:       {"wfi", LayoutNone, fmtNone, 0},
	OpSFENCEVMA: {"sfence.vma", LayoutSFence, fmtSFence, 0},

	OpCSRRW:  {"csrrw", LayoutCSR, fmtCSR, 0},
	OpCSRRS:  {"csrrs", LayoutCSR, fmtCSR, 0},
	OpCSRRC:  {"csrrc", LayoutCSR, fmtCSR, 0},
	OpCSRRWI: {"csrrwi", LayoutCSRI, fmtCSRI, 0},
	OpCSRRSI: {"csrrsi", LayoutCSRI, fmtCSRI, 0},
	OpCSRRCI: {"csrrci", LayoutCSRI, fmtCSRI, 0},

	OpMUL:    {"mul", LayoutR, fmtRdRs1Rs2, 0},
	OpMULH:   {"mulh", LayoutR, fmtRdRs1Rs2, 0},
	OpMULHSU: {"mulhsu", LayoutR, fmtRdRs1Rs2, 0},
	OpMULHU:  {"mulhu", LayoutR, fmtRdRs1Rs2, 0},
	OpDIV:    {"div", LayoutR, fmtRdRs1Rs2, 0},
	OpDIVU:   {"divu", LayoutR, fmtRdRs1Rs2, 0},
	OpREM:    {"rem", LayoutR, fmtRdRs1Rs2, 0},
	OpREMU:   {"remu", LayoutR, fmtRdRs1Rs2, 0},
	OpMULW:   {"mulw", LayoutR, fmtRdRs1Rs2, 0},
	OpDIVW:   {"divw", LayoutR, fmtRdRs1Rs2, 0},
	OpDIVUW:  {"divuw", LayoutR, fmtRdRs1Rs2, 0},
	OpREMW:   {"remw", LayoutR, fmtRdRs1Rs2, 0},
	OpREMUW:  {"remuw", LayoutR, fmtRdRs1Rs2, 0},

	OpLRW:      {"lr.w", LayoutRL, fmtLR, 0},
	OpSCW:      {"sc.w", LayoutRA, fmtAMO, 0},
	OpAMOSWAPW: {"amoswap.w", LayoutRA, fmtAMO, 0},
	OpAMOADDW:  {"amoadd.w", LayoutRA, fmtAMO, 0},
	OpAMOXORW:  {"amoxor.w", LayoutRA, fmtAMO, 0},
	OpAMOORW:   {"amoor.w", LayoutRA, fmtAMO, 0},
	OpAMOANDW:  {"amoand.w", LayoutRA, fmtAMO, 0},
	OpAMOMINW:  {"amomin.w", LayoutRA, fmtAMO, 0},
	OpAMOMAXW:  {"amomax.w", LayoutRA, fmtAMO, 0},
	OpAMOMINUW: {"amominu.w", LayoutRA, fmtAMO, 0},
	OpAMOMAXUW: {"amomaxu.w", LayoutRA, fmtAMO, 0},
	OpLRD:      {"lr.d", LayoutRL, fmtLR, 0},
	OpSCD:      {"sc.d", LayoutRA, fmtAMO, 0},
	OpAMOSWAPD: {"amoswap.d", LayoutRA, fmtAMO, 0},
	OpAMOADDD:  {"amoadd.d", LayoutRA, fmtAMO, 0},
	OpAMOXORD:  {"amoxor.d", LayoutRA, fmtAMO, 0},
	OpAMOORD:   {"amoor.d", LayoutRA, fmtAMO, 0},
	OpAMOANDD:  {"amoand.d", LayoutRA, fmtAMO, 0},
	OpAMOMIND:  {"amomin.d", LayoutRA, fmtAMO, 0},
	OpAMOMAXD:  {"amomax.d", LayoutRA, fmtAMO, 0},
	OpAMOMINUD: {"amominu.d", LayoutRA, fmtAMO, 0},
	OpAMOMAXUD: {"amomaxu.d", LayoutRA, fmtAMO, 0},

	OpFLW:     {"flw", LayoutI, fmtFLoad, loadFlags},
	OpFSW:     {"fsw", LayoutS, fmtFStore, storeFlags},
	OpFMADDS:  {"fmadd.s", LayoutR4, fmtF4RM, 0},
	OpFMSUBS:  {"fmsub.s", LayoutR4, fmtF4RM, 0},
	OpFNMSUBS: {"fnmsub.s", LayoutR4, fmtF4RM, 0},
	OpFNMADDS: {"fnmadd.s", LayoutR4, fmtF4RM, 0},
	OpFADDS:   {"fadd.s", LayoutRM, fmtF3RM, 0},
	OpFSUBS:   {"fsub.s", LayoutRM, fmtF3RM, 0},
	OpFMULS:   {"fmul.s", LayoutRM, fmtF3RM, 0},
	OpFDIVS:   {"fdiv.s", LayoutRM, fmtF3RM, 0},
	OpFSGNJS:  {"fsgnj.s", LayoutR, fmtF3, 0},
	OpFSGNJNS: {"fsgnjn.s", LayoutR, fmtF3, 0},
	OpFSGNJXS: {"fsgnjx.s", LayoutR, fmtF3, 0},
	OpFMINS:   {"fmin.s", LayoutR, fmtF3, 0},
	OpFMAXS:   {"fmax.s", LayoutR, fmtF3, 0},
	OpFSQRTS:  {"fsqrt.s", LayoutRM, fmtF2RM, 0},
	OpFLES:    {"fle.s", LayoutR, fmtRdF2, 0},
	OpFLTS:    {"flt.s", LayoutR, fmtRdF2, 0},
	OpFEQS:    {"feq.s", LayoutR, fmtRdF2, 0},
	OpFCVTWS:  {"fcvt.w.s", LayoutRM, fmtRdFRM, 0},
	OpFCVTWUS: {"fcvt.wu.s", LayoutRM, fmtRdFRM, 0},
	OpFCVTLS:  {"fcvt.l.s", LayoutRM, fmtRdFRM, 0},
	OpFCVTLUS: {"fcvt.lu.s", LayoutRM, fmtRdFRM, 0},
	OpFCVTSW:  {"fcvt.s.w", LayoutRM, fmtFRs1RM, 0},
	OpFCVTSWU: {"fcvt.s.wu", LayoutRM, fmtFRs1RM, 0},
	OpFCVTSL:  {"fcvt.s.l", LayoutRM, fmtFRs1RM, 0},
	OpFCVTSLU: {"fcvt.s.lu", LayoutRM, fmtFRs1RM, 0},
	OpFMVXW:   {"fmv.x.w", LayoutR, fmtRdF, 0},
	OpFCLASSS: {"fclass.s", LayoutR, fmtRdF, 0},
	OpFMVWX:   {"fmv.w.x", LayoutR, fmtFRs1, 0},

	OpFLD:     {"fld", LayoutI, fmtFLoad, loadFlags},
	OpFSD:     {"fsd", LayoutS, fmtFStore, storeFlags},
	OpFMADDD:  {"fmadd.d", LayoutR4, fmtF4RM, 0},
	OpFMSUBD:  {"fmsub.d", LayoutR4, fmtF4RM, 0},
	OpFNMSUBD: {"fnmsub.d", LayoutR4, fmtF4RM, 0},
	OpFNMADDD: {"fnmadd.d", LayoutR4, fmtF4RM, 0},
	OpFADDD:   {"fadd.d", LayoutRM, fmtF3RM, 0},
	OpFSUBD:   {"fsub.d", LayoutRM, fmtF3RM, 0},
	OpFMULD:   {"fmul.d", LayoutRM, fmtF3RM, 0},
	OpFDIVD:   {"fdiv.d", LayoutRM, fmtF3RM, 0},
	OpFSGNJD:  {"fsgnj.d", LayoutR, fmtF3, 0},
	OpFSGNJND: {"fsgnjn.d", LayoutR, fmtF3, 0},
	OpFSGNJXD: {"fsgnjx.d", LayoutR, fmtF3, 0},
	OpFMIND:   {"fmin.d", LayoutR, fmtF3, 0},
	OpFMAXD:   {"fmax.d", LayoutR, fmtF3, 0},
	OpFCVTSD:  {"fcvt.s.d", LayoutRM, fmtF2RM, 0},
	OpFCVTDS:  {"fcvt.d.s", LayoutRM, fmtF2RM, 0},
	OpFSQRTD:  {"fsqrt.d", LayoutRM, fmtF2RM, 0},
	OpFLED:    {"fle.d", LayoutR, fmtRdF2, 0},
	OpFLTD:    {"flt.d", LayoutR, fmtRdF2, 0},
	OpFEQD:    {"feq.d", LayoutR, fmtRdF2, 0},
	OpFCVTWD:  {"fcvt.w.d", LayoutRM, fmtRdFRM, 0},
	OpFCVTWUD: {"fcvt.wu.d", LayoutRM, fmtRdFRM, 0},
	OpFCVTLD:  {"fcvt.l.d", LayoutRM, fmtRdFRM, 0},
	OpFCVTLUD: {"fcvt.lu.d", LayoutRM, fmtRdFRM, 0},
	OpFCVTDW:  {"fcvt.d.w", LayoutRM, fmtFRs1RM, 0},
	OpFCVTDWU: {"fcvt.d.wu", LayoutRM, fmtFRs1RM, 0},
	OpFCVTDL:  {"fcvt.d.l", LayoutRM, fmtFRs1RM, 0},
	OpFCVTDLU: {"fcvt.d.lu", LayoutRM, fmtFRs1RM, 0},
	OpFMVXD:   {"fmv.x.d", LayoutR, fmtRdF, 0},
	OpFCLASSD: {"fclass.d", LayoutR, fmtRdF, 0},
	OpFMVDX:   {"fmv.d.x", LayoutR, fmtFRs1, 0},

	OpCADDI4SPN: {"c.addi4spn", LayoutCompressed, fmtRdRs1Imm, 0},
	OpCFLD:      {"c.fld", LayoutCompressed, fmtFLoad, 0},
	OpCLW:       {"c.lw", LayoutCompressed, fmtLoad, 0},
	OpCLD:       {"c.ld", LayoutCompressed, fmtLoad, 0},
	OpCFSD:      {"c.fsd", LayoutCompressed, fmtFStore, 0},
	OpCSW:       {"c.sw", LayoutCompressed, fmtStore, 0},
	OpCSD:       {"c.sd", LayoutCompressed, fmtStore, 0},
	OpCNOP:      {"c.nop", LayoutCompressed, fmtNone, 0},
	OpCADDI:     {"c.addi", LayoutCompressed, fmtRdImm, flagLow},
	OpCADDIW:    {"c.addiw", LayoutCompressed, fmtRdImm, 0},
	OpCLI:       {"c.li", LayoutCompressed, fmtRdImm, 0},
	OpCADDI16SP: {"c.addi16sp", LayoutCompressed, fmtRdImm, 0},
	OpCLUI:      {"c.lui", LayoutCompressed, fmtRdImm, flagHigh},
	OpCSRLI:     {"c.srli", LayoutCompressed, fmtRdImm, 0},
	OpCSRAI:     {"c.srai", LayoutCompressed, fmtRdImm, 0},
	OpCANDI:     {"c.andi", LayoutCompressed, fmtRdImm, 0},
	OpCSUB:      {"c.sub", LayoutCompressed, fmtRdRs2, 0},
	OpCXOR:      {"c.xor", LayoutCompressed, fmtRdRs2, 0},
	OpCOR:       {"c.or", LayoutCompressed, fmtRdRs2, 0},
	OpCAND:      {"c.and", LayoutCompressed, fmtRdRs2, 0},
	OpCSUBW:     {"c.subw", LayoutCompressed, fmtRdRs2, 0},
	OpCADDW:     {"c.addw", LayoutCompressed, fmtRdRs2, 0},
	OpCJ:        {"c.j", LayoutCompressed, fmtOffset, flagPCRel | flagJump},
	OpCBEQZ:     {"c.beqz", LayoutCompressed, fmtRs1Offset, flagPCRel},
	OpCBNEZ:     {"c.bnez", LayoutCompressed, fmtRs1Offset, flagPCRel},
	OpCSLLI:     {"c.slli", LayoutCompressed, fmtRdImm, 0},
	OpCFLDSP:    {"c.fldsp", LayoutCompressed, fmtFLoad, 0},
	OpCLWSP:     {"c.lwsp", LayoutCompressed, fmtLoad, 0},
	OpCLDSP:     {"c.ldsp", LayoutCompressed, fmtLoad, 0},
	OpCJR:       {"c.jr", LayoutCompressed, fmtRs1, flagJump},
	OpCMV:       {"c.mv", LayoutCompressed, fmtRdRs2, 0},
	OpCEBREAK:   {"c.ebreak", LayoutCompressed, fmtNone, 0},
	OpCJALR:     {"c.jalr", LayoutCompressed, fmtRs1, flagJump},
	OpCADD:      {"c.add", LayoutCompressed, fmtRdRs2, 0},
	OpCFSDSP:    {"c.fsdsp", LayoutCompressed, fmtFStore, 0},
	OpCSWSP:     {"c.swsp", LayoutCompressed, fmtStore, 0},
	OpCSDSP:     {"c.sdsp", LayoutCompressed, fmtStore, 0},
}

func (op Op) String() string {
	if op < NumOps {
		return ops[op].name
	}
	return fmt.Sprintf("op(%d)", uint16(op))
}

// Format returns the operand format string of op.
func (op Op) Format() string {
	if op < NumOps {
		return ops[op].format
	}
	return fmtNone
}

// Layout returns the operand layout of a 32-bit op, or LayoutCompressed.
func (op Op) Layout() Layout {
	if op < NumOps {
		return ops[op].layout
	}
	return LayoutNone
}

func (op Op) has(f opFlag) bool { return op < NumOps && ops[op].flags&f != 0 }

// IsCompressed reports whether op is a 16-bit instruction.
func (op Op) IsCompressed() bool { return op.Layout() == LayoutCompressed }

// Base returns the 32-bit op a compressed op expands to, or op itself.
func (op Op) Base() Op {
	if b, ok := compressedBase[op]; ok {
		return b
	}
	return op
}

var compressedBase = map[Op]Op{
	OpCADDI4SPN: OpADDI,
	OpCFLD:      OpFLD,
	OpCLW:       OpLW,
	OpCLD:       OpLD,
	OpCFSD:      OpFSD,
	OpCSW:       OpSW,
	OpCSD:       OpSD,
	OpCNOP:      OpADDI,
	OpCADDI:     OpADDI,
	OpCADDIW:    OpADDIW,
	OpCLI:       OpADDI,
	OpCADDI16SP: OpADDI,
	OpCLUI:      OpLUI,
	OpCSRLI:     OpSRLI,
	OpCSRAI:     OpSRAI,
	OpCANDI:     OpANDI,
	OpCSUB:      OpSUB,
	OpCXOR:      OpXOR,
	OpCOR:       OpOR,
	OpCAND:      OpAND,
	OpCSUBW:     OpSUBW,
	OpCADDW:     OpADDW,
	OpCJ:        OpJAL,
	OpCBEQZ:     OpBEQ,
	OpCBNEZ:     OpBNE,
	OpCSLLI:     OpSLLI,
	OpCFLDSP:    OpFLD,
	OpCLWSP:     OpLW,
	OpCLDSP:     OpLD,
	OpCJR:       OpJALR,
	OpCMV:       OpADD,
	OpCEBREAK:   OpEBREAK,
	OpCJALR:     OpJALR,
	OpCADD:      OpADD,
	OpCFSDSP:    OpFSD,
	OpCSWSP:     OpSW,
	OpCSDSP:     OpSD,
}

// IsPCRelative reports whether the immediate of op is an offset from the
// instruction's own address.
func (op Op) IsPCRelative() bool { return op.has(flagPCRel) }

// IsHighPart reports whether op materializes the upper part of an address
// in its destination register.
func (op Op) IsHighPart() bool { return op.has(flagHigh) }

// IsLowPart reports whether op adds its immediate to a base register that
// may hold a high part.
func (op Op) IsLowPart() bool { return op.has(flagLow) }

// IsGPRelative reports whether op can address memory relative to gp.
func (op Op) IsGPRelative() bool { return op.has(flagGP) }

// IsUnconditionalJump reports whether op always transfers control.
func (op Op) IsUnconditionalJump() bool { return op.has(flagJump) }

// Lookup returns the op with the given mnemonic.
func Lookup(name string) (Op, bool) {
	op, ok := opsByName[strings.ToLower(name)]
	return op, ok
}

var opsByName = func() map[string]Op {
	m := make(map[string]Op, NumOps)
	for op := Op(1); op < NumOps; op++ {
		m[ops[op].name] = op
	}
	return m
}()
