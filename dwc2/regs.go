// Synopsys DesignWare USB 2.0 OTG device-mode driver
// https://github.com/albru123/synopsys-usb-otg
//
// Use of this source code is governed by the license
// that can be found in the LICENSE file.

package dwc2

// Register offsets and bit positions for the Synopsys DesignWare USB 2.0
// OTG controller, device-mode subset. Traceability names match spec.md §6;
// exact field encodings follow the original Rust driver this spec was
// distilled from (original_source/src/ral/mod.rs, src/bus.rs,
// src/endpoint_trait.rs).
const (
	maxEndpoints = 4

	// Global registers (base + offset).
	regGRSTCTL   = 0x010
	regGINTSTS   = 0x014
	regGINTMSK   = 0x018
	regGRXSTSR   = 0x01c
	regGRXSTSP   = 0x020
	regGRXFSIZ   = 0x024
	regGNPTXFSIZ = 0x028 // also DIEPTXF0 on FS cores; same logical register
	regGCCFG     = 0x038
	regGUSBCFG   = 0x00c
	regGAHBCFG   = 0x008

	regDIEPTXF1 = 0x104
	regDIEPTXF2 = 0x108
	regDIEPTXF3 = 0x10c

	regPCGCCTL = 0xe00

	// GRSTCTL
	bitAHBIDL  = 31
	bitTXFFLSH = 5
	bitRXFFLSH = 4
	posTXFNUM  = 6
	maskTXFNUM = 0x1f

	// GUSBCFG
	posTRDT    = 10
	maskTRDT   = 0xf
	bitFDMOD   = 30
	bitSRPCAP  = 8
	posTOCAL   = 0
	maskTOCAL  = 0x7
	bitPHYSEL  = 6

	// GAHBCFG
	bitGINT = 0

	// GCCFG
	bitNOVBUSSENS = 21
	bitPWRDWN     = 16

	// GINTSTS / GINTMSK
	bitRXFLVL  = 4
	bitUSBSUSP = 11
	bitUSBRST  = 12
	bitENUMDNE = 13
	bitIEPINT  = 18
	bitWKUPINT = 31

	// GRXSTSR/P
	posEPNUM   = 0
	maskEPNUM  = 0xf
	posBCNT    = 4
	maskBCNT   = 0x7ff
	posPKTSTS  = 17
	maskPKTSTS = 0xf

	pktstsOutRecv    = 0x02
	pktstsSetupRecv  = 0x06
	pktstsOutDone    = 0x03
	pktstsSetupDone  = 0x04

	// Device registers.
	regDCFG     = 0x800
	regDCTL     = 0x804
	regDIEPMSK  = 0x810
	regDAINTMSK = 0x81c

	posDSPD = 0
	maskDSPD = 0x3
	posDAD   = 4
	maskDAD  = 0x7f
	bitSDIS  = 1

	bitXFRCM = 0 // DIEPMSK

	// Per-endpoint IN/OUT control block bases and stride.
	regDIEPBase = 0x900
	regDOEPBase = 0xb00
	epStride    = 0x20

	offDIEPCTL  = 0x00
	offDIEPINT  = 0x08
	offDIEPTSIZ = 0x10
	offDTXFSTS  = 0x18

	offDOEPCTL  = 0x00
	offDOEPINT  = 0x08
	offDOEPTSIZ = 0x10

	// DIEPCTL / DOEPCTL
	posMPSIZ   = 0
	maskMPSIZ  = 0x7ff
	maskMPSIZ0 = 0x3
	bitUSBAEP  = 15
	posEPTYP   = 18
	maskEPTYP  = 0x3
	bitSTALL   = 21
	posTXFNUMep = 22
	maskTXFNUMep = 0xf
	bitCNAK    = 26
	bitSNAK    = 27
	bitSD0PID  = 28
	bitEPDIS   = 30
	bitEPENA   = 31

	// DIEPTSIZ / DOEPTSIZ (non-zero endpoints)
	posXFRSIZ  = 0
	maskXFRSIZ = 0x7ffff
	posPKTCNT  = 19
	maskPKTCNT = 0x3ff
	posMCNT    = 29 // DIEPTSIZ only, high-speed periodic multi-count
	maskMCNT   = 0x3

	// DOEPTSIZ0 (control endpoint only)
	posXFRSIZ0  = 0
	maskXFRSIZ0 = 0x7f
	posPKTCNT0  = 19
	maskPKTCNT0 = 0x1
	posSTUPCNT  = 29
	maskSTUPCNT = 0x3

	bitXFRC = 0 // DIEPINT/DOEPINT

	// DTXFSTS
	posINEPTFSAV  = 0
	maskINEPTFSAV = 0xffff

	fifoWindowBase = 0x1000
	fifoStride     = 0x1000
)
