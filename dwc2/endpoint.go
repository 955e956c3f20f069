// Synopsys DesignWare USB 2.0 OTG device-mode driver
// https://github.com/albru123/synopsys-usb-otg
//
// Use of this source code is governed by the license
// that can be found in the LICENSE file.

package dwc2

import "github.com/albru123/synopsys-usb-otg/dwc2/regio"

// Endpoint is a capability handle for one logical endpoint slot: address
// plus optional configuration plus (OUT only) a buffer reference. Every
// Endpoint value returned by AllocIn/AllocOut projects onto the same underlying
// MMIO registers and, for OUT endpoints, the same arena-owned buffer - it
// is freely copyable, not an exclusive resource (spec.md §3 "Ownership").
type Endpoint struct {
	addr   Address
	base   uint32
	regs   regio.Map
	config *EndpointConfig
	buffer *endpointBuffer
}

// Descriptor returns the endpoint's address, type, max packet size,
// interval and optional audio-streaming marker. Before initialize, it
// returns a control-endpoint descriptor with a zero max packet size.
func (e *Endpoint) Descriptor() EndpointDescriptor {
	if e.config == nil {
		return EndpointDescriptor{Address: e.addr, Type: TransferControl}
	}

	var ext *AudioStreamingExtension
	if e.config.IsAudioStreaming {
		ext = &AudioStreamingExtension{}
	}

	return EndpointDescriptor{
		Address:        e.addr,
		Type:           e.config.Type,
		MaxPacketSize:  e.config.MaxPacketSize,
		Interval:       e.config.Interval,
		AudioStreaming: ext,
	}
}

// initialize freezes the configuration and, for OUT endpoints, stores the
// buffer reference. Called by the allocator exactly once per slot.
func (e *Endpoint) initialize(cfg EndpointConfig, buf *endpointBuffer) {
	e.config = &cfg

	if e.addr.Direction == Out {
		e.buffer = buf
	}
}

func (e *Endpoint) isInitialized() bool {
	return e.config != nil
}

// fifoSizeWords is ceil(max packet size / 4) if initialized, else 0. Used
// by the bus controller at configure time to size TX FIFOs.
func (e *Endpoint) fifoSizeWords() int {
	if !e.isInitialized() {
		return 0
	}

	return (int(e.config.MaxPacketSize) + 3) / 4
}

func (e *Endpoint) number() uint32 {
	return uint32(e.addr.Number)
}

func (e *Endpoint) diepctl() uint32  { return e.base + regDIEPBase + e.number()*epStride + offDIEPCTL }
func (e *Endpoint) diepint() uint32  { return e.base + regDIEPBase + e.number()*epStride + offDIEPINT }
func (e *Endpoint) dieptsiz() uint32 { return e.base + regDIEPBase + e.number()*epStride + offDIEPTSIZ }
func (e *Endpoint) dtxfsts() uint32  { return e.base + regDIEPBase + e.number()*epStride + offDTXFSTS }
func (e *Endpoint) doepctl() uint32  { return e.base + regDOEPBase + e.number()*epStride + offDOEPCTL }
func (e *Endpoint) doepint() uint32  { return e.base + regDOEPBase + e.number()*epStride + offDOEPINT }
func (e *Endpoint) doeptsiz() uint32 { return e.base + regDOEPBase + e.number()*epStride + offDOEPTSIZ }
func (e *Endpoint) fifo() uint32 {
	return e.base + fifoWindowBase + e.number()*fifoStride
}

// mpsizEP0 encodes EP0's max packet size per spec.md §4.3.
func mpsizEP0(size uint16) uint32 {
	switch size {
	case 64:
		return 0b00
	case 32:
		return 0b01
	case 16:
		return 0b10
	case 8:
		return 0b11
	default:
		panic("dwc2: unsupported EP0 max packet size")
	}
}

// enable projects the endpoint's configuration onto hardware (spec.md
// §4.3), translated from original_source/src/endpoint_trait.rs.
func (e *Endpoint) enable() {
	max := e.config.MaxPacketSize

	if e.addr.Number == 0 {
		mpsiz := mpsizEP0(max)

		if e.addr.Direction == In {
			ctl := e.diepctl()
			regio.SetN(e.regs, ctl, posMPSIZ, maskMPSIZ0, mpsiz)
			regio.Set(e.regs, ctl, bitSNAK)

			regio.SetN(e.regs, e.dieptsiz(), posPKTCNT, maskPKTCNT, 0)
			regio.SetN(e.regs, e.dieptsiz(), posXFRSIZ, maskXFRSIZ, uint32(max))
		} else {
			regio.SetN(e.regs, e.doeptsiz(), posSTUPCNT, maskSTUPCNT, 1)
			regio.SetN(e.regs, e.doeptsiz(), posPKTCNT0, maskPKTCNT0, 1)
			regio.SetN(e.regs, e.doeptsiz(), posXFRSIZ0, maskXFRSIZ0, uint32(max))

			ctl := e.doepctl()
			regio.SetN(e.regs, ctl, posMPSIZ, maskMPSIZ0, mpsiz)
			regio.Set(e.regs, ctl, bitEPENA)
			regio.Set(e.regs, ctl, bitCNAK)
		}

		return
	}

	if e.addr.Direction == In {
		ctl := e.diepctl()
		regio.Set(e.regs, ctl, bitSNAK)
		regio.Set(e.regs, ctl, bitUSBAEP)
		regio.SetN(e.regs, ctl, posEPTYP, maskEPTYP, uint32(e.config.Type))
		regio.Set(e.regs, ctl, bitSD0PID)
		regio.SetN(e.regs, ctl, posTXFNUMep, maskTXFNUMep, e.number())
		regio.SetN(e.regs, ctl, posMPSIZ, maskMPSIZ, uint32(max))
	} else {
		ctl := e.doepctl()
		regio.Set(e.regs, ctl, bitSD0PID)
		regio.Set(e.regs, ctl, bitCNAK)
		regio.Set(e.regs, ctl, bitEPENA)
		regio.Set(e.regs, ctl, bitUSBAEP)
		regio.SetN(e.regs, ctl, posEPTYP, maskEPTYP, uint32(e.config.Type))
		regio.SetN(e.regs, ctl, posMPSIZ, maskMPSIZ, uint32(max))
	}
}

// disable clears USBAEP, disables the endpoint if active and non-zero, and
// clears all pending EP interrupts.
func (e *Endpoint) disable() {
	if e.addr.Direction == In {
		ctl := e.diepctl()
		regio.Clear(e.regs, ctl, bitUSBAEP)

		if regio.Get(e.regs, ctl, bitEPENA, 1) != 0 && e.addr.Number != 0 {
			regio.Set(e.regs, ctl, bitEPDIS)
		}

		e.regs.Write(e.diepint(), 0xffffffff)
	} else {
		ctl := e.doepctl()
		regio.Clear(e.regs, ctl, bitUSBAEP)

		if regio.Get(e.regs, ctl, bitEPENA, 1) != 0 && e.addr.Number != 0 {
			regio.Set(e.regs, ctl, bitEPDIS)
		}

		e.regs.Write(e.doepint(), 0xffffffff)
	}
}

func (e *Endpoint) ctrlAddr() uint32 {
	if e.addr.Direction == In {
		return e.diepctl()
	}
	return e.doepctl()
}

// IsStalled reads the STALL bit.
func (e *Endpoint) IsStalled() bool {
	return regio.Get(e.regs, e.ctrlAddr(), bitSTALL, 1) != 0
}

// SetStalled sets or clears the STALL bit. No-op if uninitialized or
// already in the requested state.
func (e *Endpoint) SetStalled(stalled bool) {
	if !e.isInitialized() {
		return
	}

	if e.IsStalled() == stalled {
		return
	}

	if stalled {
		regio.Set(e.regs, e.ctrlAddr(), bitSTALL)
	} else {
		regio.Clear(e.regs, e.ctrlAddr(), bitSTALL)
	}
}

// Read delegates to the endpoint buffer (OUT endpoints only).
func (e *Endpoint) Read(dest []byte) (int, error) {
	if !e.isInitialized() || e.addr.Direction != Out {
		return 0, ErrInvalidEndpoint
	}

	return e.buffer.readPacket(dest)
}

// Write pushes a packet to the hardware TX FIFO (IN endpoints only),
// following the sequence in spec.md §4.3.
func (e *Endpoint) Write(src []byte) error {
	if !e.isInitialized() || e.addr.Direction != In {
		return ErrInvalidEndpoint
	}

	ctl := e.diepctl()

	if e.addr.Number != 0 && regio.Get(e.regs, ctl, bitEPENA, 1) != 0 {
		return ErrWouldBlock
	}

	if len(src) > int(e.config.MaxPacketSize) {
		return ErrBufferOverflow
	}

	if len(src) > 0 {
		words := (len(src) + 3) / 4
		avail := regio.Get(e.regs, e.dtxfsts(), posINEPTFSAV, maskINEPTFSAV)

		if uint32(words) > avail {
			return ErrWouldBlock
		}
	}

	regio.SetN(e.regs, e.dieptsiz(), posPKTCNT, maskPKTCNT, 1)
	regio.SetN(e.regs, e.dieptsiz(), posXFRSIZ, maskXFRSIZ, uint32(len(src)))
	if highSpeed {
		// One transaction per microframe; spec.md excludes multi-packet
		// isochronous scheduling so this is always 1.
		regio.SetN(e.regs, e.dieptsiz(), posMCNT, maskMCNT, 1)
	}

	regio.Set(e.regs, ctl, bitCNAK)
	regio.Set(e.regs, ctl, bitEPENA)

	pushFIFO(e.regs, e.fifo(), src)

	return nil
}

// pushFIFO writes ceil(len(data)/4) words into the per-endpoint TX FIFO
// MMIO window, padding the last partial word with undefined high bits
// (spec.md §4.3).
func pushFIFO(m regio.Map, fifoAddr uint32, data []byte) {
	for i := 0; i < len(data); i += 4 {
		var w uint32

		for j := 0; j < 4 && i+j < len(data); j++ {
			w |= uint32(data[i+j]) << uint(8*j)
		}

		m.Write(fifoAddr, w)
	}
}
