// Synopsys DesignWare USB 2.0 OTG device-mode driver
// https://github.com/albru123/synopsys-usb-otg
//
// Use of this source code is governed by the license
// that can be found in the LICENSE file.

package dwc2

import "errors"

// Error taxonomy, propagated by value per spec.md §7. All are recoverable
// locally by the upper stack; the only fatal conditions are programmer
// errors caught at startup (see enable() and configureAll()), which panic.
var (
	// ErrInvalidEndpoint indicates an operation against an uninitialized
	// slot, a wrong-direction slot, or a slot number >= 4.
	ErrInvalidEndpoint = errors.New("dwc2: invalid endpoint")

	// ErrEndpointOverflow indicates no free slot when allocating with an
	// unspecified endpoint number.
	ErrEndpointOverflow = errors.New("dwc2: endpoint overflow")

	// ErrOutOfMemory indicates the RX buffer arena is exhausted.
	ErrOutOfMemory = errors.New("dwc2: out of memory")

	// ErrBufferOverflow indicates a write longer than the max packet
	// size, or a read destination shorter than the pending packet.
	ErrBufferOverflow = errors.New("dwc2: buffer overflow")

	// ErrWouldBlock indicates a read against an empty buffer, or a write
	// while the endpoint is busy or the TX FIFO lacks space.
	ErrWouldBlock = errors.New("dwc2: would block")
)
