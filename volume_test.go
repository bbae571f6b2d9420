package isogrid_test

import (
	"bytes"
	"errors"
	"testing"

	"github.com/soypat/isogrid"
)

func TestRawVolumeRoundTrip(t *testing.T) {
	g := isogrid.NewGrid3(isogrid.V3i{3, 4, 5})
	for i := range g.Data {
		g.Data[i] = float64(i)*0.25 - 3
	}
	var b bytes.Buffer
	if err := isogrid.WriteRawVolume(&b, g); err != nil {
		t.Fatal(err)
	}
	if b.Len() != 16+4*g.Dims.Prod() {
		t.Fatalf("wrote %d bytes", b.Len())
	}
	got, err := isogrid.ReadRawVolume(&b)
	if err != nil {
		t.Fatal(err)
	}
	if got.Dims != g.Dims {
		t.Fatalf("dims %v, want %v", got.Dims, g.Dims)
	}
	for i := range g.Data {
		// Values are exactly representable in float32.
		if got.Data[i] != g.Data[i] {
			t.Fatalf("sample %d: %v != %v", i, got.Data[i], g.Data[i])
		}
	}
}

func TestReadRawVolumeErrors(t *testing.T) {
	if _, err := isogrid.ReadRawVolume(bytes.NewReader([]byte("ISO"))); err == nil {
		t.Error("expected error on short header")
	}
	bad := make([]byte, 16)
	copy(bad, "NOPE")
	if _, err := isogrid.ReadRawVolume(bytes.NewReader(bad)); !errors.Is(err, isogrid.ErrRawMagic) {
		t.Errorf("got %v, want ErrRawMagic", err)
	}
	var b bytes.Buffer
	if err := isogrid.WriteRawVolume(&b, isogrid.NewGrid3(isogrid.V3i{2, 2, 2})); err != nil {
		t.Fatal(err)
	}
	truncated := b.Bytes()[:b.Len()-4]
	if _, err := isogrid.ReadRawVolume(bytes.NewReader(truncated)); err == nil {
		t.Error("expected error on truncated samples")
	}
}
