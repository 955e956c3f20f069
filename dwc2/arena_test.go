// Synopsys DesignWare USB 2.0 OTG device-mode driver
// https://github.com/albru123/synopsys-usb-otg
//
// Use of this source code is governed by the license
// that can be found in the LICENSE file.

package dwc2

import "testing"

func TestArenaAllocateRxBuffer(t *testing.T) {
	a := newArena(16)

	buf, err := a.allocateRxBuffer(64)
	if err != nil {
		t.Fatal(err)
	}

	if len(buf) != 64 {
		t.Fatalf("got %d bytes, want 64", len(buf))
	}

	if a.totalRxBufferSizeWords() != 16 {
		t.Fatalf("got %d words, want 16", a.totalRxBufferSizeWords())
	}
}

func TestArenaRoundsUpToWord(t *testing.T) {
	a := newArena(4)

	buf, err := a.allocateRxBuffer(6)
	if err != nil {
		t.Fatal(err)
	}

	if len(buf) != 8 {
		t.Fatalf("got %d bytes, want 8 (2 words)", len(buf))
	}
}

func TestArenaOutOfMemory(t *testing.T) {
	a := newArena(8)

	if _, err := a.allocateRxBuffer(36); err != ErrOutOfMemory {
		t.Fatalf("got %v, want ErrOutOfMemory", err)
	}
}

func TestArenaSuccessiveAllocationsDoNotOverlap(t *testing.T) {
	a := newArena(8)

	first, err := a.allocateRxBuffer(8)
	if err != nil {
		t.Fatal(err)
	}

	second, err := a.allocateRxBuffer(8)
	if err != nil {
		t.Fatal(err)
	}

	first[0] = 0xaa
	second[0] = 0xbb

	if first[0] != 0xaa || second[0] != 0xbb {
		t.Fatal("buffers alias the same memory")
	}
}
