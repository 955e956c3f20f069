// Synopsys DesignWare USB 2.0 OTG device-mode driver
// https://github.com/albru123/synopsys-usb-otg
//
// Use of this source code is governed by the license
// that can be found in the LICENSE file.

// Package regio provides primitives for retrieving and modifying hardware
// registers, abstracted behind the Map interface so that the driver can run
// against either real MMIO (MMIO) or a software double (Fake) in tests.
package regio

import "github.com/usbarmory/tamago/bits"

// Map is the register-access façade required by the bus controller and
// endpoint object. Addresses are absolute (base + offset); all accesses are
// 32-bit aligned words.
type Map interface {
	Read(addr uint32) uint32
	Write(addr uint32, val uint32)
}

// Get returns the value at a specific bit position and bitmask, read into a
// local copy and inspected with bits.GetN the same way
// soc/nxp/usb/endpoint.go reads its own registers.
func Get(m Map, addr uint32, pos int, mask uint32) uint32 {
	v := m.Read(addr)
	return bits.GetN(&v, pos, int(mask))
}

// Set sets an individual bit at the given position on a local copy, then
// writes the copy back.
func Set(m Map, addr uint32, pos int) {
	v := m.Read(addr)
	bits.Set(&v, pos)
	m.Write(addr, v)
}

// Clear clears an individual bit at the given position on a local copy,
// then writes the copy back.
func Clear(m Map, addr uint32, pos int) {
	v := m.Read(addr)
	bits.Clear(&v, pos)
	m.Write(addr, v)
}

// SetN sets a value at a specific bit position with a bitmask applied, on a
// local copy, then writes the copy back.
func SetN(m Map, addr uint32, pos int, mask uint32, val uint32) {
	v := m.Read(addr)
	bits.SetN(&v, pos, int(mask), val)
	m.Write(addr, v)
}

// Or ORs val into the register.
func Or(m Map, addr uint32, val uint32) {
	m.Write(addr, m.Read(addr)|val)
}

// Wait spins until a specific register bit field matches a value.
func Wait(m Map, addr uint32, pos int, mask uint32, val uint32) {
	for Get(m, addr, pos, mask) != val {
	}
}
