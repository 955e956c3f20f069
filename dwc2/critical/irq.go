// Synopsys DesignWare USB 2.0 OTG device-mode driver
// https://github.com/albru123/synopsys-usb-otg
//
// Use of this source code is governed by the license
// that can be found in the LICENSE file.

//go:build dwc2mmio

package critical

import "github.com/usbarmory/tamago/arm"

// IRQ is a Section backed by disabling core interrupts, the real primitive
// on the single-core bare-metal targets this driver is written for. Nesting
// is flat, matching spec.md §5: re-disabling interrupts while already
// disabled is harmless.
type IRQ struct {
	cpu *arm.CPU
}

// NewIRQ returns a Section that disables IRQ/FIQ delivery for the duration
// of Do.
func NewIRQ(cpu *arm.CPU) *IRQ {
	return &IRQ{cpu: cpu}
}

// Do runs fn with core interrupts disabled.
func (s *IRQ) Do(fn func()) {
	s.cpu.DisableInterrupts()
	defer s.cpu.EnableInterrupts()
	fn()
}
