package render_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/deadsy/sdfx/sdf"
	sdfxrender "github.com/deadsy/sdfx/render"
	"github.com/soypat/isogrid/render"
)

// benchCells is the number of cells along each axis of the sphere bounds.
const benchCells = 64

func BenchmarkSDFXSphere(b *testing.B) {
	stdout := os.Stdout
	defer func() {
		os.Stdout = stdout // sdfx prints progress
	}()
	os.Stdout, _ = os.Open(os.DevNull)
	output := filepath.Join(b.TempDir(), "sdfx_sphere.stl")
	object, err := sdf.Sphere3D(1)
	if err != nil {
		b.Fatal(err)
	}
	for i := 0; i < b.N; i++ {
		sdfxrender.ToSTL(object, benchCells, output, &sdfxrender.MarchingCubesOctree{})
	}
}

func BenchmarkSphereSTL(b *testing.B) {
	output := filepath.Join(b.TempDir(), "sphere.stl")
	var e render.Extractor
	for i := 0; i < b.N; i++ {
		m, err := e.Extract(sphereVolume(b, benchCells+1))
		if err != nil {
			b.Fatal(err)
		}
		if err := render.CreateSTL(output, m.Renderer()); err != nil {
			b.Fatal(err)
		}
	}
}
