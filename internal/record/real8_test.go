package record

import (
	"errors"
	"math"
	"testing"
)

func TestEncodeReal8KnownValues(t *testing.T) {
	tests := []struct {
		value float64
		bits  uint64
	}{
		{0, 0x0000000000000000},
		{1, 0x4110000000000000},
		{-1, 0xC110000000000000},
		{0.5, 0x4080000000000000},
		{16, 0x4210000000000000},
		{0.0625, 0x4010000000000000},
	}

	for _, tt := range tests {
		got, err := EncodeReal8(tt.value)
		if err != nil {
			t.Fatalf("EncodeReal8(%v) failed: %v", tt.value, err)
		}
		if got != tt.bits {
			t.Errorf("EncodeReal8(%v): got 0x%016x, want 0x%016x", tt.value, got, tt.bits)
		}
		if back := DecodeReal8(tt.bits); back != tt.value {
			t.Errorf("DecodeReal8(0x%016x): got %v, want %v", tt.bits, back, tt.value)
		}
	}
}

func TestReal8RoundTrip(t *testing.T) {
	values := []float64{
		1e-3, 1e-9, 2.5e-10, 90, 180, 270, 0.1, 3.14159265358979,
		-42.125, 1e20, -7.5e-30, math.SmallestNonzeroFloat32,
	}

	for _, v := range values {
		bits, err := EncodeReal8(v)
		if err != nil {
			t.Fatalf("EncodeReal8(%v) failed: %v", v, err)
		}
		if got := DecodeReal8(bits); got != v {
			t.Errorf("round trip of %v gave %v (bits 0x%016x)", v, got, bits)
		}
	}
}

func TestEncodeReal8Range(t *testing.T) {
	for _, v := range []float64{1e80, -1e80, math.Inf(1), math.NaN()} {
		if _, err := EncodeReal8(v); !errors.Is(err, ErrRealOverflow) {
			t.Errorf("EncodeReal8(%v): expected ErrRealOverflow, got %v", v, err)
		}
	}

	bits, err := EncodeReal8(1e-90)
	if err != nil {
		t.Fatalf("EncodeReal8(1e-90) failed: %v", err)
	}
	if bits != 0 {
		t.Errorf("expected underflow to encode as zero, got 0x%016x", bits)
	}
}
