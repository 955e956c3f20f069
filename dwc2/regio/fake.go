// Synopsys DesignWare USB 2.0 OTG device-mode driver
// https://github.com/albru123/synopsys-usb-otg
//
// Use of this source code is governed by the license
// that can be found in the LICENSE file.

package regio

// Fake is an in-memory register-map double for tests. It supports declaring
// addresses whose written bits self-clear immediately (simulating hardware
// that completes a flush/reset within the write itself, e.g. RXFFLSH,
// TXFFLSH, USBCMD_RST-style bits) so that Wait loops in the driver under
// test terminate without a real device.
type Fake struct {
	words     map[uint32]uint32
	autoClear map[uint32]uint32
}

// NewFake returns an empty register map.
func NewFake() *Fake {
	return &Fake{
		words:     make(map[uint32]uint32),
		autoClear: make(map[uint32]uint32),
	}
}

// Read implements Map.
func (f *Fake) Read(addr uint32) uint32 {
	return f.words[addr]
}

// Write implements Map.
func (f *Fake) Write(addr uint32, val uint32) {
	f.words[addr] = val &^ f.autoClear[addr]
}

// Poke sets addr to val without applying auto-clear, for test setup.
func (f *Fake) Poke(addr uint32, val uint32) {
	f.words[addr] = val
}

// AutoClear marks the bits in mask at addr as self-clearing: any Write to
// addr observes those bits already cleared, as if hardware completed the
// operation instantaneously.
func (f *Fake) AutoClear(addr uint32, mask uint32) {
	f.autoClear[addr] |= mask
}
