// Synopsys DesignWare USB 2.0 OTG device-mode driver
// https://github.com/albru123/synopsys-usb-otg
//
// Use of this source code is governed by the license
// that can be found in the LICENSE file.

// Package dwc2 implements a device-mode driver for the Synopsys DesignWare
// USB 2.0 OTG controller as integrated in a family of 32-bit
// microcontrollers, adopting the following specifications:
//   - Synopsys DesignWare Cores USB 2.0 OTG Controller Databook
//   - USB2.0 - USB Specification Revision 2.0
//
// The driver exposes a USB device-bus abstraction - endpoint allocation,
// enumeration events, packet I/O, stalls - to an upper USB device stack
// that consumes it to implement USB classes (CDC, HID, MSC, etc).
//
// Host mode, OTG role switching, SRP/HNP and isochronous transfer
// scheduling beyond one packet per microframe are not supported. Endpoints
// are frozen at bus-reset time: dynamic reconfiguration after enable is not
// supported.
//
// The dwc2hs build tag selects the high-speed configuration; without it
// (dwc2fs, or neither tag) the full-speed configuration is built. The
// choice fixes the hardware FIFO depth, the turnaround-time constant and
// the RX FIFO slack. TX FIFO 0 is programmed through the same register
// (GNPTXFSIZ, also named DIEPTXF0) in both configurations.
package dwc2
