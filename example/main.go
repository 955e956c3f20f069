// Synopsys DesignWare USB 2.0 OTG device-mode driver
// https://github.com/albru123/synopsys-usb-otg
//
// Use of this source code is governed by the license
// that can be found in the LICENSE file.

// Command example drives the dwc2 controller against a regio.Fake register
// map, walking through enable, reset/enumeration and a control transfer so
// the driver can be exercised without real hardware.
package main

import (
	"io/ioutil"
	"log"
	"os"

	"github.com/albru123/synopsys-usb-otg/dwc2"
	"github.com/albru123/synopsys-usb-otg/dwc2/critical"
	"github.com/albru123/synopsys-usb-otg/dwc2/regio"
)

const verbose = true

func init() {
	log.SetFlags(0)

	if verbose {
		log.SetOutput(os.Stdout)
	} else {
		log.SetOutput(ioutil.Discard)
	}
}

func main() {
	regs := regio.NewFake()

	// AHBIDL is asserted once the AHB master is idle; a Fake never clears
	// it on its own, so seed it as if reset had already completed.
	regs.Poke(0x010, 1<<31)
	regs.AutoClear(0x010, (1<<4)|(1<<5)) // RXFFLSH, TXFFLSH self-clear on flush

	section := critical.NewMutex()
	bus := dwc2.NewBus(0, regs, section, 256)

	log.Println("-- enable --------------------------------------------------------")
	bus.Enable()

	n0 := uint8(0)
	ep0Out, err := bus.AllocOut(dwc2.EndpointConfig{Number: &n0, Type: dwc2.TransferControl, MaxPacketSize: 64})
	if err != nil {
		log.Fatalf("alloc EP0 OUT: %v", err)
	}

	ep0In, err := bus.AllocIn(dwc2.EndpointConfig{Number: &n0, Type: dwc2.TransferControl, MaxPacketSize: 64})
	if err != nil {
		log.Fatalf("alloc EP0 IN: %v", err)
	}

	log.Println("-- reset (enumeration) ---------------------------------------------")
	bus.Reset()

	log.Println("-- poll loop ---------------------------------------------------------")

	// Simulate a SETUP packet landing in the RX FIFO: GET_DESCRIPTOR
	// (device), 8 bytes, little-endian.
	setup := []byte{0x80, 0x06, 0x00, 0x01, 0x00, 0x00, 0x12, 0x00}
	for i := 0; i < len(setup); i += 4 {
		var w uint32
		for j := 0; j < 4; j++ {
			w |= uint32(setup[i+j]) << uint(8*j)
		}
		regs.Poke(0x1000, w) // EP0 FIFO window
	}

	grxstsr := uint32(0) // EPNUM=0
	grxstsr |= 8 << 4    // BCNT=8
	grxstsr |= 0x06 << 17
	regs.Poke(0x01c, grxstsr)
	regs.Poke(0x014, 1<<4) // RXFLVL only; Enable's write-all-ones clear left every bit set in the Fake

	result := bus.Poll()
	log.Printf("poll event=%v ep_setup=%#04x", result.Event, result.EPSetup)

	buf := make([]byte, 8)
	if n, err := ep0Out.Read(buf); err == nil {
		log.Printf("SETUP packet: % x (%d bytes)", buf[:n], n)
	} else {
		log.Printf("read: %v", err)
	}

	log.Println("-- device address ------------------------------------------------")
	bus.SetDeviceAddress(0x05)

	log.Println("-- status stage (zero-length IN) ----------------------------------")
	if err := ep0In.Write(nil); err != nil {
		log.Printf("write: %v", err)
	}

	log.Println("done")
}
