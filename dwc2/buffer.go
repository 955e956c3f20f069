// Synopsys DesignWare USB 2.0 OTG device-mode driver
// https://github.com/albru123/synopsys-usb-otg
//
// Use of this source code is governed by the license
// that can be found in the LICENSE file.

package dwc2

import "github.com/albru123/synopsys-usb-otg/dwc2/regio"

// BufferState tags what, if anything, an endpointBuffer currently holds.
type BufferState int

const (
	// StateEmpty means no packet is pending.
	StateEmpty BufferState = iota
	// StateDataOut means a regular OUT data packet is pending.
	StateDataOut
	// StateDataSetup means an 8-byte SETUP packet is pending.
	StateDataSetup
)

// endpointBuffer is the per-OUT-endpoint software queue holding the most
// recent packet copied out of the shared RX FIFO. At most one packet is
// buffered; fillFromFIFO and readPacket never execute concurrently, which
// the bus controller guarantees by calling both only from within its
// critical section (spec.md §4.2).
type endpointBuffer struct {
	data   []byte // capacity >= endpoint max packet size
	length int
	state  BufferState
}

// newEndpointBuffer wraps a capacity-sized byte region reserved from the
// arena.
func newEndpointBuffer(region []byte) *endpointBuffer {
	return &endpointBuffer{data: region}
}

// State returns the current tag.
func (b *endpointBuffer) State() BufferState {
	return b.state
}

// fillFromFIFO reads exactly ceil(byteCount/4) 32-bit words from the
// peripheral's per-endpoint FIFO MMIO window at fifoAddr and packs them
// into the buffer, least-significant byte first within each word (the
// order bytes arrive on the wire within a FIFO word). It silently drops the
// incoming packet - no copy, no state change - if the buffer is not Empty,
// per the hardware re-arm policy described in spec.md §4.2.
func (b *endpointBuffer) fillFromFIFO(m regio.Map, fifoAddr uint32, byteCount int, isSetup bool) {
	if b.state != StateEmpty {
		return
	}

	words := (byteCount + 3) / 4

	if byteCount > len(b.data) {
		// Should not happen for a correctly sized arena allocation;
		// truncate the stored copy defensively rather than corrupt
		// adjacent buffers. All words are still read from the FIFO.
		byteCount = len(b.data)
	}

	for i := 0; i < words; i++ {
		w := m.Read(fifoAddr)

		o := i * 4
		for j := 0; j < 4 && o+j < byteCount; j++ {
			b.data[o+j] = byte(w >> uint(8*j))
		}
	}

	b.length = byteCount

	if isSetup {
		b.state = StateDataSetup
	} else {
		b.state = StateDataOut
	}
}

// readPacket copies up to the current packet length into dest, returning
// the number of bytes copied, and resets state to Empty.
func (b *endpointBuffer) readPacket(dest []byte) (int, error) {
	if b.state == StateEmpty {
		return 0, ErrWouldBlock
	}

	if len(dest) < b.length {
		return 0, ErrBufferOverflow
	}

	n := copy(dest, b.data[:b.length])
	b.state = StateEmpty
	b.length = 0

	return n, nil
}
