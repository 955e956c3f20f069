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

func newTestEndpoint(addr Address) (*Endpoint, *regio.Fake) {
	m := regio.NewFake()
	return &Endpoint{addr: addr, base: 0, regs: m}, m
}

func TestEndpointDescriptorBeforeInitialize(t *testing.T) {
	ep, _ := newTestEndpoint(Address{Number: 0, Direction: In})

	d := ep.Descriptor()
	if d.Type != TransferControl || d.MaxPacketSize != 0 {
		t.Fatalf("got %+v, want zero-value control descriptor", d)
	}
}

func TestEndpointFifoSizeWords(t *testing.T) {
	ep, _ := newTestEndpoint(Address{Number: 1, Direction: In})
	ep.initialize(EndpointConfig{Type: TransferBulk, MaxPacketSize: 64}, nil)

	if got := ep.fifoSizeWords(); got != 16 {
		t.Fatalf("got %d words, want 16", got)
	}
}

func TestEndpointEnableEP0Out(t *testing.T) {
	ep, m := newTestEndpoint(Address{Number: 0, Direction: Out})
	ep.initialize(EndpointConfig{Type: TransferControl, MaxPacketSize: 64}, newEndpointBuffer(make([]byte, 64)))

	ep.enable()

	if regio.Get(m, ep.doepctl(), bitEPENA, 1) == 0 {
		t.Fatal("EPENA not set after enable")
	}

	if regio.Get(m, ep.doeptsiz(), posSTUPCNT, maskSTUPCNT) != 1 {
		t.Fatal("STUPCNT not armed for 1 SETUP packet")
	}
}

func TestEndpointStall(t *testing.T) {
	ep, _ := newTestEndpoint(Address{Number: 1, Direction: In})
	ep.initialize(EndpointConfig{Type: TransferBulk, MaxPacketSize: 64}, nil)

	if ep.IsStalled() {
		t.Fatal("endpoint should not start stalled")
	}

	ep.SetStalled(true)
	if !ep.IsStalled() {
		t.Fatal("SetStalled(true) did not take effect")
	}

	ep.SetStalled(false)
	if ep.IsStalled() {
		t.Fatal("SetStalled(false) did not take effect")
	}
}

func TestEndpointReadWrongDirection(t *testing.T) {
	ep, _ := newTestEndpoint(Address{Number: 1, Direction: In})
	ep.initialize(EndpointConfig{Type: TransferBulk, MaxPacketSize: 64}, nil)

	if _, err := ep.Read(make([]byte, 8)); err != ErrInvalidEndpoint {
		t.Fatalf("got %v, want ErrInvalidEndpoint", err)
	}
}

func TestEndpointWriteWrongDirection(t *testing.T) {
	ep, _ := newTestEndpoint(Address{Number: 1, Direction: Out})
	ep.initialize(EndpointConfig{Type: TransferBulk, MaxPacketSize: 64}, newEndpointBuffer(make([]byte, 64)))

	if err := ep.Write([]byte{1, 2}); err != ErrInvalidEndpoint {
		t.Fatalf("got %v, want ErrInvalidEndpoint", err)
	}
}

func TestEndpointWriteTooLarge(t *testing.T) {
	ep, _ := newTestEndpoint(Address{Number: 1, Direction: In})
	ep.initialize(EndpointConfig{Type: TransferBulk, MaxPacketSize: 8}, nil)

	if err := ep.Write(make([]byte, 9)); err != ErrBufferOverflow {
		t.Fatalf("got %v, want ErrBufferOverflow", err)
	}
}

func TestEndpointWriteSuccess(t *testing.T) {
	ep, m := newTestEndpoint(Address{Number: 1, Direction: In})
	ep.initialize(EndpointConfig{Type: TransferBulk, MaxPacketSize: 64}, nil)
	m.Poke(ep.dtxfsts(), 16)

	if err := ep.Write([]byte{1, 2, 3, 4, 5}); err != nil {
		t.Fatal(err)
	}

	if regio.Get(m, ep.dieptsiz(), posXFRSIZ, maskXFRSIZ) != 5 {
		t.Fatal("XFRSIZ not set to packet length")
	}

	// Both words are pushed to the same FIFO address; the fake keeps the
	// last one, the partial word holding byte 5.
	if m.Read(ep.fifo()) != 0x00000005 {
		t.Fatalf("last FIFO word got %#x, want 0x00000005", m.Read(ep.fifo()))
	}
}

func TestEndpointWriteWouldBlockOnBusyNonZeroEndpoint(t *testing.T) {
	ep, m := newTestEndpoint(Address{Number: 1, Direction: In})
	ep.initialize(EndpointConfig{Type: TransferBulk, MaxPacketSize: 64}, nil)
	regio.Set(m, ep.diepctl(), bitEPENA)

	if err := ep.Write([]byte{1}); err != ErrWouldBlock {
		t.Fatalf("got %v, want ErrWouldBlock", err)
	}
}
