package threadid

import "testing"

// T1 (thread id roundtrip): for all (g, l) in [0,255]^2, decompose(compose(g,l)) = (g,l).
func TestComposeDecomposeRoundTrip(t *testing.T) {
	for g := 0; g < 256; g++ {
		for l := 0; l < 256; l++ {
			id := Compose(uint8(g), uint8(l))
			gotG, gotL := Decompose(id)
			if gotG != uint8(g) || gotL != uint8(l) {
				t.Fatalf("Decompose(Compose(%d,%d)) = (%d,%d), want (%d,%d)", g, l, gotG, gotL, g, l)
			}
		}
	}
}

// S1 — Compose/decompose: compose(3, 17) = 0x0311; decompose gives (3, 17).
func TestComposeS1(t *testing.T) {
	id := Compose(3, 17)
	if id != 0x0311 {
		t.Errorf("Compose(3,17) = 0x%04x, want 0x0311", uint16(id))
	}
	g, l := Decompose(id)
	if g != 3 || l != 17 {
		t.Errorf("Decompose(0x0311) = (%d,%d), want (3,17)", g, l)
	}
}

func TestDecomposeGroupLocal(t *testing.T) {
	tests := []struct {
		name        string
		group, local uint8
	}{
		{"zero", 0, 0},
		{"max", 255, 255},
		{"group only", 1, 0},
		{"local only", 0, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id := Compose(tt.group, tt.local)
			if got := DecomposeGroup(id); got != tt.group {
				t.Errorf("DecomposeGroup() = %d, want %d", got, tt.group)
			}
			if got := DecomposeLocal(id); got != tt.local {
				t.Errorf("DecomposeLocal() = %d, want %d", got, tt.local)
			}
		})
	}
}
