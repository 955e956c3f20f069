// Synopsys DesignWare USB 2.0 OTG device-mode driver
// https://github.com/albru123/synopsys-usb-otg
//
// Use of this source code is governed by the license
// that can be found in the LICENSE file.

package dwc2

import (
	"github.com/albru123/synopsys-usb-otg/dwc2/critical"
	"github.com/albru123/synopsys-usb-otg/dwc2/regio"
)

// QUIRKSetAddressBeforeStatus matches the upper USB class stack's behavior
// contract: this controller requires SetDeviceAddress to be applied before
// the status stage of SET_ADDRESS completes, rather than after (spec.md
// §4.5).
const QUIRKSetAddressBeforeStatus = true

// Bus is the top-level controller handle: register window, critical
// section and endpoint allocator, translated from
// original_source/src/bus.rs's UsbBus.
type Bus struct {
	base     uint32
	regs     regio.Map
	section  critical.Section
	endpoint *endpointAllocator
}

// NewBus constructs a controller handle over regs (MMIO, or a regio.Fake in
// tests) with base added to every register offset, a critical section
// implementation, and an RX arena of rxArenaWords 32-bit words.
func NewBus(base uint32, regs regio.Map, section critical.Section, rxArenaWords int) *Bus {
	return &Bus{
		base:     base,
		regs:     regs,
		section:  section,
		endpoint: newEndpointAllocator(base, regs, newArena(rxArenaWords)),
	}
}

// AllocIn reserves an IN endpoint slot.
func (b *Bus) AllocIn(cfg EndpointConfig) (*Endpoint, error) {
	return b.endpoint.AllocIn(cfg)
}

// AllocOut reserves an OUT endpoint slot and its RX buffer.
func (b *Bus) AllocOut(cfg EndpointConfig) (*Endpoint, error) {
	return b.endpoint.AllocOut(cfg)
}

func (b *Bus) g(addr uint32) uint32 { return b.base + addr }

// configureAll programs the RX/TX FIFO partitioning and enables every
// initialized endpoint. Must be called from inside the bus's critical
// section.
func (b *Bus) configureAll() {
	rxFIFOSize := uint32(b.endpoint.arena.totalRxBufferSizeWords()) + rxFIFOSlack
	b.regs.Write(b.g(regGRXFSIZ), rxFIFOSize)
	fifoTop := rxFIFOSize

	ep0In := &b.endpoint.in[0]
	fifoSize := max32(uint32(ep0In.fifoSizeWords()), 16)
	regio.SetN(b.regs, b.g(regGNPTXFSIZ), 0, 0xffff, fifoTop)  // TX0FSA
	regio.SetN(b.regs, b.g(regGNPTXFSIZ), 16, 0xffff, fifoSize) // TX0FD
	fifoTop += fifoSize

	txfRegs := [3]uint32{regDIEPTXF1, regDIEPTXF2, regDIEPTXF3}
	for i, reg := range txfRegs {
		fifoSize = max32(uint32(b.endpoint.in[i+1].fifoSizeWords()), 16)
		regio.SetN(b.regs, b.g(reg), 0, 0xffff, fifoTop)   // INEPTXSAn
		regio.SetN(b.regs, b.g(reg), 16, 0xffff, fifoSize) // INEPTXFDn
		fifoTop += fifoSize
	}

	if fifoTop > fifoDepthWords {
		panic("dwc2: FIFO partition exceeds hardware FIFO depth")
	}

	// Flush RX & TX FIFOs (TXFNUM 0x10 selects "all TX FIFOs").
	grstctl := b.g(regGRSTCTL)
	regio.SetN(b.regs, grstctl, posTXFNUM, maskTXFNUM, 0x10)
	regio.Set(b.regs, grstctl, bitRXFFLSH)
	regio.Set(b.regs, grstctl, bitTXFFLSH)

	for regio.Get(b.regs, grstctl, bitRXFFLSH, 1) != 0 || regio.Get(b.regs, grstctl, bitTXFFLSH, 1) != 0 {
	}

	daintmsk := b.g(regDAINTMSK)

	for n := range b.endpoint.in {
		ep := &b.endpoint.in[n]
		if ep.isInitialized() {
			regio.Set(b.regs, daintmsk, n)
			ep.enable()
		}
	}

	for n := range b.endpoint.out {
		ep := &b.endpoint.out[n]
		if ep.isInitialized() {
			if n == 0 {
				regio.Set(b.regs, daintmsk, 16)
			}
			ep.enable()
		}
	}
}

// deconfigureAll masks endpoint interrupts and disables every endpoint.
func (b *Bus) deconfigureAll() {
	daintmsk := b.g(regDAINTMSK)
	b.regs.Write(daintmsk, 0)

	for n := range b.endpoint.in {
		b.endpoint.in[n].disable()
	}

	for n := range b.endpoint.out {
		b.endpoint.out[n].disable()
	}
}

// Enable brings the controller up in forced device mode and connects
// (spec.md §4.5), translated from UsbBus::enable.
func (b *Bus) Enable() {
	b.section.Do(func() {
		grstctl := b.g(regGRSTCTL)
		for regio.Get(b.regs, grstctl, bitAHBIDL, 1) == 0 {
		}

		gusbcfg := b.g(regGUSBCFG)
		regio.Clear(b.regs, gusbcfg, bitSRPCAP)
		regio.SetN(b.regs, gusbcfg, posTRDT, maskTRDT, turnaroundTime)
		if highSpeed {
			regio.SetN(b.regs, gusbcfg, posTOCAL, maskTOCAL, 0x1)
			regio.Set(b.regs, gusbcfg, bitPHYSEL)
		}
		regio.Set(b.regs, gusbcfg, bitFDMOD)

		b.regs.Write(b.g(regGCCFG), 1<<bitNOVBUSSENS)
		b.regs.Write(b.g(regPCGCCTL), 0)

		dctl := b.g(regDCTL)
		regio.Set(b.regs, dctl, bitSDIS)

		dcfg := b.g(regDCFG)
		regio.SetN(b.regs, dcfg, posDSPD, maskDSPD, 0b11)

		b.regs.Write(b.g(regDIEPMSK), 1<<bitXFRCM)

		gintmsk := uint32(0)
		gintmsk |= 1 << bitUSBRST
		gintmsk |= 1 << bitENUMDNE
		gintmsk |= 1 << bitUSBSUSP
		gintmsk |= 1 << bitWKUPINT
		gintmsk |= 1 << bitIEPINT
		gintmsk |= 1 << bitRXFLVL
		b.regs.Write(b.g(regGINTMSK), gintmsk)

		b.regs.Write(b.g(regGINTSTS), 0xffffffff)

		regio.Set(b.regs, b.g(regGAHBCFG), bitGINT)

		regio.Set(b.regs, b.g(regGCCFG), bitPWRDWN)
		regio.Clear(b.regs, dctl, bitSDIS)
	})
}

// Reset reconfigures every endpoint and zeroes the device address, called
// on a USB reset condition.
func (b *Bus) Reset() {
	b.section.Do(func() {
		b.configureAll()
		regio.SetN(b.regs, b.g(regDCFG), posDAD, maskDAD, 0)
	})
}

// SetDeviceAddress programs the device address assigned during enumeration.
func (b *Bus) SetDeviceAddress(addr uint8) {
	b.section.Do(func() {
		regio.SetN(b.regs, b.g(regDCFG), posDAD, maskDAD, uint32(addr))
	})
}

// SetStalled sets or clears STALL on the named endpoint; out-of-range
// addresses are ignored.
func (b *Bus) SetStalled(addr Address, stalled bool) {
	if addr.Number >= maxEndpoints {
		return
	}

	if addr.Direction == In {
		b.endpoint.in[addr.Number].SetStalled(stalled)
	} else {
		b.endpoint.out[addr.Number].SetStalled(stalled)
	}
}

// IsStalled reports STALL state; out-of-range addresses report stalled to
// fail closed.
func (b *Bus) IsStalled(addr Address) bool {
	if addr.Number >= maxEndpoints {
		return true
	}

	if addr.Direction == In {
		return b.endpoint.in[addr.Number].IsStalled()
	}

	return b.endpoint.out[addr.Number].IsStalled()
}

// Poll demultiplexes pending interrupt conditions into a single PollResult,
// translated from original_source/src/bus.rs's poll(), except that
// pollData pops GRXSTSP for every RX FIFO entry (see DESIGN.md).
func (b *Bus) Poll() PollResult {
	var result PollResult

	b.section.Do(func() {
		gintsts := b.g(regGINTSTS)

		wakeup := regio.Get(b.regs, gintsts, bitWKUPINT, 1)
		suspend := regio.Get(b.regs, gintsts, bitUSBSUSP, 1)
		enumDone := regio.Get(b.regs, gintsts, bitENUMDNE, 1)
		reset := regio.Get(b.regs, gintsts, bitUSBRST, 1)
		iep := regio.Get(b.regs, gintsts, bitIEPINT, 1)
		rxflvl := regio.Get(b.regs, gintsts, bitRXFLVL, 1)

		if reset != 0 {
			regio.Set(b.regs, gintsts, bitUSBRST)

			b.deconfigureAll()

			grstctl := b.g(regGRSTCTL)
			regio.Set(b.regs, grstctl, bitRXFFLSH)
			for regio.Get(b.regs, grstctl, bitRXFFLSH, 1) == 1 {
			}
		}

		switch {
		case enumDone != 0:
			regio.Set(b.regs, gintsts, bitENUMDNE)
			result = PollResult{Event: EventReset}

		case wakeup != 0:
			regio.Set(b.regs, gintsts, bitWKUPINT)
			result = PollResult{Event: EventResume}

		case suspend != 0:
			regio.Set(b.regs, gintsts, bitUSBSUSP)
			result = PollResult{Event: EventSuspend}

		default:
			result = b.pollData(rxflvl, iep)
		}
	})

	return result
}

// pollData handles the non-reset/enum/wakeup/suspend branch: RX FIFO
// dispatch, IN transfer-complete latches, and outstanding OUT buffer state.
func (b *Bus) pollData(rxflvl, iep uint32) PollResult {
	var epOut, epInComplete, epSetup uint16

	if rxflvl != 0 {
		grxstsr := b.g(regGRXSTSR)
		epnum := regio.Get(b.regs, grxstsr, posEPNUM, maskEPNUM)
		dataSize := regio.Get(b.regs, grxstsr, posBCNT, maskBCNT)
		status := regio.Get(b.regs, grxstsr, posPKTSTS, maskPKTSTS)

		switch status {
		case pktstsOutRecv, pktstsSetupRecv:
			if status == pktstsSetupRecv {
				inEP := &b.endpoint.in[epnum]
				if regio.Get(b.regs, inEP.dieptsiz(), posPKTCNT, maskPKTCNT) != 0 {
					grstctl := b.g(regGRSTCTL)
					regio.SetN(b.regs, grstctl, posTXFNUM, maskTXFNUM, epnum)
					regio.Set(b.regs, grstctl, bitTXFFLSH)
					for regio.Get(b.regs, grstctl, bitTXFFLSH, 1) == 1 {
					}
				}
				epSetup |= 1 << epnum
			} else {
				epOut |= 1 << epnum
			}

			// Drain the data words before popping GRXSTSP: once popped,
			// the FIFO has advanced past this entry. The packet is
			// dropped silently (no drain, no state change) if the
			// buffer is already non-Empty, but GRXSTSP is still popped
			// either way to advance the FIFO.
			if ep := b.endpoint.outEndpointByNumber(epnum); ep != nil && ep.buffer.State() == StateEmpty {
				ep.buffer.fillFromFIFO(b.regs, ep.fifo(), int(dataSize), status == pktstsSetupRecv)
			}
			b.regs.Read(b.g(regGRXSTSP)) // pop

		case pktstsOutDone, pktstsSetupDone:
			outEP := &b.endpoint.out[epnum]
			regio.Set(b.regs, outEP.doepctl(), bitCNAK)
			regio.Set(b.regs, outEP.doepctl(), bitEPENA)
			b.regs.Read(b.g(regGRXSTSP)) // pop

		default:
			b.regs.Read(b.g(regGRXSTSP)) // pop
		}
	}

	if iep != 0 {
		for n := range b.endpoint.in {
			ep := &b.endpoint.in[n]
			if !ep.isInitialized() {
				continue
			}

			if regio.Get(b.regs, ep.diepint(), bitXFRC, 1) != 0 {
				regio.Set(b.regs, ep.diepint(), bitXFRC)
				epInComplete |= 1 << n
			}
		}
	}

	for n := range b.endpoint.out {
		ep := &b.endpoint.out[n]
		if !ep.isInitialized() {
			continue
		}

		switch ep.buffer.State() {
		case StateDataOut:
			epOut |= 1 << n
		case StateDataSetup:
			epSetup |= 1 << n
		}
	}

	if epInComplete|epOut|epSetup == 0 {
		return PollResult{Event: EventNone}
	}

	return PollResult{Event: EventData, EPOut: epOut, EPInComplete: epInComplete, EPSetup: epSetup}
}

func max32(a, b uint32) uint32 {
	if a > b {
		return a
	}
	return b
}
