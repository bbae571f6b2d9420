package isogrid_test

import (
	"testing"

	"github.com/soypat/isogrid"
	"github.com/soypat/isogrid/internal/d3"
	"gonum.org/v1/gonum/spatial/r3"
)

func TestBoxTransform(t *testing.T) {
	const tol = 1e-12
	box := r3.Box{Min: r3.Vec{X: -1, Y: 2, Z: 0}, Max: r3.Vec{X: 3, Y: 3, Z: 0.5}}
	tf := isogrid.BoxTransform(box)
	if got := tf.Transform(r3.Vec{}); !d3.EqualWithin(got, box.Min, tol) {
		t.Errorf("origin maps to %v, want %v", got, box.Min)
	}
	if got := tf.Transform(d3.Elem(1)); !d3.EqualWithin(got, box.Max, tol) {
		t.Errorf("unit corner maps to %v, want %v", got, box.Max)
	}
	if got := tf.Transform(r3.Vec{X: 0.5, Y: 0.25, Z: 1}); !d3.EqualWithin(got, r3.Vec{X: 1, Y: 2.25, Z: 0.5}, tol) {
		t.Errorf("interior point maps to %v", got)
	}
	// Scale then translate composes to the same transform.
	composed := isogrid.Transform{}.Scale(r3.Vec{}, d3.Box(box).Size()).Translate(box.Min)
	if !composed.Equal(tf, tol) {
		t.Errorf("composed transform differs from BoxTransform")
	}
	identity := isogrid.NewTransform([]float64{
		1, 0, 0, 0,
		0, 1, 0, 0,
		0, 0, 1, 0,
		0, 0, 0, 1,
	})
	if identity != (isogrid.Transform{}) {
		t.Error("zero Transform is not the identity")
	}
	if !tf.Mul(identity).Equal(tf, tol) {
		t.Error("multiplying by identity changed the transform")
	}
}
