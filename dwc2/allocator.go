// Synopsys DesignWare USB 2.0 OTG device-mode driver
// https://github.com/albru123/synopsys-usb-otg
//
// Use of this source code is governed by the license
// that can be found in the LICENSE file.

package dwc2

import "github.com/albru123/synopsys-usb-otg/dwc2/regio"

// endpointAllocator owns the fixed maxEndpoints IN and OUT slots and the RX
// buffer arena backing them, translated from
// original_source/src/endpoint_allocator.rs. Endpoint 0 in each direction is
// reserved for the control transfer stack and is only handed out when
// explicitly requested by number.
type endpointAllocator struct {
	base  uint32
	regs  regio.Map
	arena *arena

	in  [maxEndpoints]Endpoint
	out [maxEndpoints]Endpoint
}

// newEndpointAllocator wires the allocator to the controller's register
// base and the RX arena sized by the bus controller at construction time.
func newEndpointAllocator(base uint32, regs regio.Map, rxArena *arena) *endpointAllocator {
	a := &endpointAllocator{base: base, regs: regs, arena: rxArena}

	for n := uint8(0); n < maxEndpoints; n++ {
		a.in[n] = Endpoint{addr: Address{Number: n, Direction: In}, base: base, regs: regs}
		a.out[n] = Endpoint{addr: Address{Number: n, Direction: Out}, base: base, regs: regs}
	}

	return a
}

// findSlot picks a slot index per cfg.Number, or the first free slot in
// 1..maxEndpoints-1 if cfg.Number is nil.
func findSlot(slots *[maxEndpoints]Endpoint, number *uint8) (int, error) {
	if number != nil {
		n := int(*number)

		if n < 0 || n >= maxEndpoints {
			return 0, ErrInvalidEndpoint
		}

		if slots[n].isInitialized() {
			return 0, ErrInvalidEndpoint
		}

		return n, nil
	}

	for n := 1; n < maxEndpoints; n++ {
		if !slots[n].isInitialized() {
			return n, nil
		}
	}

	return 0, ErrEndpointOverflow
}

// AllocIn reserves an IN endpoint slot matching cfg and returns a handle to
// it. The endpoint is not yet enabled; enable happens at bus Reset time,
// through configureAll (spec.md §4.4).
func (a *endpointAllocator) AllocIn(cfg EndpointConfig) (*Endpoint, error) {
	n, err := findSlot(&a.in, cfg.Number)
	if err != nil {
		return nil, err
	}

	a.in[n].initialize(cfg, nil)

	return &a.in[n], nil
}

// AllocOut reserves an OUT endpoint slot and its RX buffer from the arena.
func (a *endpointAllocator) AllocOut(cfg EndpointConfig) (*Endpoint, error) {
	n, err := findSlot(&a.out, cfg.Number)
	if err != nil {
		return nil, err
	}

	region, err := a.arena.allocateRxBuffer(int(cfg.MaxPacketSize))
	if err != nil {
		return nil, err
	}

	a.out[n].initialize(cfg, newEndpointBuffer(region))

	return &a.out[n], nil
}

// allEndpoints returns every initialized endpoint, IN before OUT, ordered by
// number. The bus controller does not call it; configureAll and
// deconfigureAll walk the slot arrays directly.
func (a *endpointAllocator) allEndpoints() []*Endpoint {
	eps := make([]*Endpoint, 0, 2*maxEndpoints)

	for n := range a.in {
		if a.in[n].isInitialized() {
			eps = append(eps, &a.in[n])
		}
	}

	for n := range a.out {
		if a.out[n].isInitialized() {
			eps = append(eps, &a.out[n])
		}
	}

	return eps
}

// outEndpointByNumber looks up an initialized OUT endpoint for RX FIFO
// dispatch. Returns nil if the number has no initialized OUT endpoint.
func (a *endpointAllocator) outEndpointByNumber(n uint32) *Endpoint {
	if n >= maxEndpoints || !a.out[n].isInitialized() {
		return nil
	}

	return &a.out[n]
}
