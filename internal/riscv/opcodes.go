package riscv

// Major opcodes (inst[6:0]).
const (
	opcLoad    = 0x03
	opcLoadFP  = 0x07
	opcMiscMem = 0x0f
	opcOpImm   = 0x13
	opcAUIPC   = 0x17
	opcOpImm32 = 0x1b
	opcStore   = 0x23
	opcStoreFP = 0x27
	opcAMO     = 0x2f
	opcOp      = 0x33
	opcLUI     = 0x37
	opcOp32    = 0x3b
	opcMAdd    = 0x43
	opcMSub    = 0x47
	opcNMSub   = 0x4b
	opcNMAdd   = 0x4f
	opcOpFP    = 0x53
	opcBranch  = 0x63
	opcJALR    = 0x67
	opcJAL     = 0x6f
	opcSystem  = 0x73
)

type encoding struct {
	op          Op
	mask, match uint32
}

func f3(v uint32) uint32 { return v << 12 }
func f7(v uint32) uint32 { return v << 25 }

func encU(op Op, opc uint32) encoding { return encoding{op, 0x7f, opc} }

func encI(op Op, opc, funct3 uint32) encoding {
	return encoding{op, 0x707f, opc | f3(funct3)}
}

func encR(op Op, opc, funct3, funct7 uint32) encoding {
	return encoding{op, 0xfe00707f, opc | f3(funct3) | f7(funct7)}
}

// encSh6 is an RV64 shift by immediate: funct6 in inst[31:26].
func encSh6(op Op, funct3, funct6 uint32) encoding {
	return encoding{op, 0xfc00707f, opcOpImm | f3(funct3) | funct6<<26}
}

func encAMO(op Op, funct3, funct5 uint32) encoding {
	return encoding{op, 0xf800707f, opcAMO | f3(funct3) | funct5<<27}
}

func encLR(op Op, funct3 uint32) encoding {
	return encoding{op, 0xf9f0707f, opcAMO | f3(funct3) | 2<<27}
}

// encFRM is an OP-FP with a rounding mode field.
func encFRM(op Op, funct7 uint32) encoding {
	return encoding{op, 0xfe00007f, opcOpFP | f7(funct7)}
}

// encFRS2 is an OP-FP with a rounding mode and a fixed rs2.
func encFRS2(op Op, funct7, rs2 uint32) encoding {
	return encoding{op, 0xfff0007f, opcOpFP | f7(funct7) | rs2<<20}
}

// encFMv is an OP-FP with fixed funct3 and rs2 = 0.
func encFMv(op Op, funct7, funct3 uint32) encoding {
	return encoding{op, 0xfff0707f, opcOpFP | f3(funct3) | f7(funct7)}
}

func encR4(op Op, opc, fmt uint32) encoding {
	return encoding{op, 0x0600007f, opc | fmt<<25}
}

func encExact(op Op, word uint32) encoding { return encoding{op, 0xffffffff, word} }

// encodings is scanned in order; the first entry whose masked bits match
// wins.
var encodings = []encoding{
	encU(OpLUI, opcLUI),
	encU(OpAUIPC, opcAUIPC),
	encU(OpJAL, opcJAL),
	encI(OpJALR, opcJALR, 0),

	encI(OpBEQ, opcBranch, 0),
	encI(OpBNE, opcBranch, 1),
	encI(OpBLT, opcBranch, 4),
	encI(OpBGE, opcBranch, 5),
	encI(OpBLTU, opcBranch, 6),
	encI(OpBGEU, opcBranch, 7),

	encI(OpLB, opcLoad, 0),
	encI(OpLH, opcLoad, 1),
	encI(OpLW, opcLoad, 2),
	encI(OpLD, opcLoad, 3),
	encI(OpLBU, opcLoad, 4),
	encI(OpLHU, opcLoad, 5),
	encI(OpLWU, opcLoad, 6),
	encI(OpSB, opcStore, 0),
	encI(OpSH, opcStore, 1),
	encI(OpSW, opcStore, 2),
	encI(OpSD, opcStore, 3),

	encI(OpADDI, opcOpImm, 0),
	encSh6(OpSLLI, 1, 0x00),
	encI(OpSLTI, opcOpImm, 2),
	encI(OpSLTIU, opcOpImm, 3),
	encI(OpXORI, opcOpImm, 4),
	encSh6(OpSRLI, 5, 0x00),
	encSh6(OpSRAI, 5, 0x10),
	encI(OpORI, opcOpImm, 6),
	encI(OpANDI, opcOpImm, 7),

	encR(OpADD, opcOp, 0, 0x00),
	encR(OpSUB, opcOp, 0, 0x20),
	encR(OpSLL, opcOp, 1, 0x00),
	encR(OpSLT, opcOp, 2, 0x00),
	encR(OpSLTU, opcOp, 3, 0x00),
	encR(OpXOR, opcOp, 4, 0x00),
	encR(OpSRL, opcOp, 5, 0x00),
	encR(OpSRA, opcOp, 5, 0x20),
	encR(OpOR, opcOp, 6, 0x00),
	encR(OpAND, opcOp, 7, 0x00),

	encI(OpADDIW, opcOpImm32, 0),
	encR(OpSLLIW, opcOpImm32, 1, 0x00),
	encR(OpSRLIW, opcOpImm32, 5, 0x00),
	encR(OpSRAIW, opcOpImm32, 5, 0x20),
	encR(OpADDW, opcOp32, 0, 0x00),
	encR(OpSUBW, opcOp32, 0, 0x20),
	encR(OpSLLW, opcOp32, 1, 0x00),
	encR(OpSRLW, opcOp32, 5, 0x00),
	encR(OpSRAW, opcOp32, 5, 0x20),

	encI(OpFENCE, opcMiscMem, 0),
	encI(OpFENCEI, opcMiscMem, 1),

	encExact(OpECALL, 0x00000073),
	encExact(OpEBREAK, 0x00100073),
	encExact(OpURET, 0x00200073),
	encExact(OpSRET, 0x10200073),
	encExact(OpMRET, 0x30200073),
	encExact(OpWFI, 0x10500073),
	{OpSFENCEVMA, 0xfe007fff, 0x12000073},
	encI(OpCSRRW, opcSystem, 1),
	encI(OpCSRRS, opcSystem, 2),
	encI(OpCSRRC, opcSystem, 3),
	encI(OpCSRRWI, opcSystem, 5),
	encI(OpCSRRSI, opcSystem, 6),
	encI(OpCSRRCI, opcSystem, 7),

	encR(OpMUL, opcOp, 0, 0x01),
	encR(OpMULH, opcOp, 1, 0x01),
	encR(OpMULHSU, opcOp, 2, 0x01),
	encR(OpMULHU, opcOp, 3, 0x01),
	encR(OpDIV, opcOp, 4, 0x01),
	encR(OpDIVU, opcOp, 5, 0x01),
	encR(OpREM, opcOp, 6, 0x01),
	encR(OpREMU, opcOp, 7, 0x01),
	encR(OpMULW, opcOp32, 0, 0x01),
	encR(OpDIVW, opcOp32, 4, 0x01),
	encR(OpDIVUW, opcOp32, 5, 0x01),
	encR(OpREMW, opcOp32, 6, 0x01),
	encR(OpREMUW, opcOp32, 7, 0x01),

	encLR(OpLRW, 2),
	encAMO(OpSCW, 2, 0x03),
	encAMO(OpAMOSWAPW, 2, 0x01),
	encAMO(OpAMOADDW, 2, 0x00),
	encAMO(OpAMOXORW, 2, 0x04),
	encAMO(OpAMOANDW, 2, 0x0c),
	encAMO(OpAMOORW, 2, 0x08),
	encAMO(OpAMOMINW, 2, 0x10),
	encAMO(OpAMOMAXW, 2, 0x14),
	encAMO(OpAMOMINUW, 2, 0x18),
	encAMO(OpAMOMAXUW, 2, 0x1c),
	encLR(OpLRD, 3),
	encAMO(OpSCD, 3, 0x03),
	encAMO(OpAMOSWAPD, 3, 0x01),
	encAMO(OpAMOADDD, 3, 0x00),
	encAMO(OpAMOXORD, 3, 0x04),
	encAMO(OpAMOANDD, 3, 0x0c),
	encAMO(OpAMOORD, 3, 0x08),
	encAMO(OpAMOMIND, 3, 0x10),
	encAMO(OpAMOMAXD, 3, 0x14),
	encAMO(OpAMOMINUD, 3, 0x18),
	encAMO(OpAMOMAXUD, 3, 0x1c),

	encI(OpFLW, opcLoadFP, 2),
	encI(OpFSW, opcStoreFP, 2),
	encR4(OpFMADDS, opcMAdd, 0),
	encR4(OpFMSUBS, opcMSub, 0),
	encR4(OpFNMSUBS, opcNMSub, 0),
	encR4(OpFNMADDS, opcNMAdd, 0),
	encFRM(OpFADDS, 0x00),
	encFRM(OpFSUBS, 0x04),
	encFRM(OpFMULS, 0x08),
	encFRM(OpFDIVS, 0x0c),
	encR(OpFSGNJS, opcOpFP, 0, 0x10),
	encR(OpFSGNJNS, opcOpFP, 1, 0x10),
	encR(OpFSGNJXS, opcOpFP, 2, 0x10),
	encR(OpFMINS, opcOpFP, 0, 0x14),
	encR(OpFMAXS, opcOpFP, 1, 0x14),
	encFRS2(OpFSQRTS, 0x2c, 0),
	encR(OpFLES, opcOpFP, 0, 0x50),
	encR(OpFLTS, opcOpFP, 1, 0x50),
	encR(OpFEQS, opcOpFP, 2, 0x50),
	encFRS2(OpFCVTWS, 0x60, 0),
	encFRS2(OpFCVTWUS, 0x60, 1),
	encFRS2(OpFCVTLS, 0x60, 2),
	encFRS2(OpFCVTLUS, 0x60, 3),
	encFRS2(OpFCVTSW, 0x68, 0),
	encFRS2(OpFCVTSWU, 0x68, 1),
	encFRS2(OpFCVTSL, 0x68, 2),
	encFRS2(OpFCVTSLU, 0x68, 3),
	encFMv(OpFMVXW, 0x70, 0),
	encFMv(OpFCLASSS, 0x70, 1),
	encFMv(OpFMVWX, 0x78, 0),

	encI(OpFLD, opcLoadFP, 3),
	encI(OpFSD, opcStoreFP, 3),
	encR4(OpFMADDD, opcMAdd, 1),
	encR4(OpFMSUBD, opcMSub, 1),
	encR4(OpFNMSUBD, opcNMSub, 1),
	encR4(OpFNMADDD, opcNMAdd, 1),
	encFRM(OpFADDD, 0x01),
	encFRM(OpFSUBD, 0x05),
	encFRM(OpFMULD, 0x09),
	encFRM(OpFDIVD, 0x0d),
	encR(OpFSGNJD, opcOpFP, 0, 0x11),
	encR(OpFSGNJND, opcOpFP, 1, 0x11),
	encR(OpFSGNJXD, opcOpFP, 2, 0x11),
	encR(OpFMIND, opcOpFP, 0, 0x15),
	encR(OpFMAXD, opcOpFP, 1, 0x15),
	encFRS2(OpFCVTSD, 0x20, 1),
	encFRS2(OpFCVTDS, 0x21, 0),
	encFRS2(OpFSQRTD, 0x2d, 0),
	encR(OpFLED, opcOpFP, 0, 0x51),
	encR(OpFLTD, opcOpFP, 1, 0x51),
	encR(OpFEQD, opcOpFP, 2, 0x51),
	encFRS2(OpFCVTWD, 0x61, 0),
	encFRS2(OpFCVTWUD, 0x61, 1),
	encFRS2(OpFCVTLD, 0x61, 2),
	encFRS2(OpFCVTLUD, 0x61, 3),
	encFRS2(OpFCVTDW, 0x69, 0),
	encFRS2(OpFCVTDWU, 0x69, 1),
	encFRS2(OpFCVTDL, 0x69, 2),
	encFRS2(OpFCVTDLU, 0x69, 3),
	encFMv(OpFMVXD, 0x71, 0),
	encFMv(OpFCLASSD, 0x71, 1),
	encFMv(OpFMVDX, 0x79, 0),
}

// encodingOf indexes encodings by op for the encoder.
var encodingOf = func() map[Op]encoding {
	m := make(map[Op]encoding, len(encodings))
	for _, e := range encodings {
		m[e.op] = e
	}
	return m
}()
