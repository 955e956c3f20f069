// Synopsys DesignWare USB 2.0 OTG device-mode driver
// https://github.com/albru123/synopsys-usb-otg
//
// Use of this source code is governed by the license
// that can be found in the LICENSE file.

package dwc2

import (
	"testing"

	"github.com/albru123/synopsys-usb-otg/dwc2/regio"
)

func TestAllocatorExplicitNumber(t *testing.T) {
	a := newEndpointAllocator(0, regio.NewFake(), newArena(256))

	n := uint8(2)
	ep, err := a.AllocIn(EndpointConfig{Number: &n, Type: TransferBulk, MaxPacketSize: 64})
	if err != nil {
		t.Fatal(err)
	}

	if ep.addr.Number != 2 {
		t.Fatalf("got endpoint number %d, want 2", ep.addr.Number)
	}
}

func TestAllocatorExplicitNumberConflict(t *testing.T) {
	a := newEndpointAllocator(0, regio.NewFake(), newArena(256))

	n := uint8(2)
	if _, err := a.AllocIn(EndpointConfig{Number: &n, Type: TransferBulk, MaxPacketSize: 64}); err != nil {
		t.Fatal(err)
	}

	if _, err := a.AllocIn(EndpointConfig{Number: &n, Type: TransferBulk, MaxPacketSize: 64}); err != ErrInvalidEndpoint {
		t.Fatalf("got %v, want ErrInvalidEndpoint", err)
	}
}

func TestAllocatorOutOfRangeNumber(t *testing.T) {
	a := newEndpointAllocator(0, regio.NewFake(), newArena(256))

	n := uint8(9)
	if _, err := a.AllocIn(EndpointConfig{Number: &n, Type: TransferBulk, MaxPacketSize: 64}); err != ErrInvalidEndpoint {
		t.Fatalf("got %v, want ErrInvalidEndpoint", err)
	}
}

func TestAllocatorScansFreeSlots(t *testing.T) {
	a := newEndpointAllocator(0, regio.NewFake(), newArena(256))

	for i := 0; i < 3; i++ {
		ep, err := a.AllocOut(EndpointConfig{Type: TransferBulk, MaxPacketSize: 64})
		if err != nil {
			t.Fatal(err)
		}

		if ep.addr.Number != uint8(i+1) {
			t.Fatalf("allocation %d got number %d, want %d", i, ep.addr.Number, i+1)
		}
	}

	if _, err := a.AllocOut(EndpointConfig{Type: TransferBulk, MaxPacketSize: 64}); err != ErrEndpointOverflow {
		t.Fatalf("got %v, want ErrEndpointOverflow once slots 1..3 are exhausted", err)
	}
}

func TestAllocatorOutReservesArenaBuffer(t *testing.T) {
	arena := newArena(64)
	a := newEndpointAllocator(0, regio.NewFake(), arena)

	if _, err := a.AllocOut(EndpointConfig{Type: TransferBulk, MaxPacketSize: 64}); err != nil {
		t.Fatal(err)
	}

	if arena.totalRxBufferSizeWords() != 16 {
		t.Fatalf("got %d words reserved, want 16", arena.totalRxBufferSizeWords())
	}
}

func TestAllocatorOutOfMemoryPropagates(t *testing.T) {
	a := newEndpointAllocator(0, regio.NewFake(), newArena(4))

	if _, err := a.AllocOut(EndpointConfig{Type: TransferBulk, MaxPacketSize: 64}); err != ErrOutOfMemory {
		t.Fatalf("got %v, want ErrOutOfMemory", err)
	}
}
