package render

import (
	"errors"
	"image"

	"github.com/fogleman/fauxgl"
	"github.com/nfnt/resize"
	"gonum.org/v1/gonum/spatial/r3"
)

// Preview configures the camera of a shaded mesh preview.
type Preview struct {
	Width, Height int
	// Supersample renders at this many times the output size and downsamples
	// for antialiasing. Values below 1 are treated as 1.
	Supersample int
	// Eye is the camera position after the mesh is fit to the [-1,1] cube.
	// The zero value looks from (3.5, 3.5, 3.5).
	Eye r3.Vec
	// Up is the camera up direction. The zero value is +Z.
	Up r3.Vec
	// Background is the clear color as a hex string. Defaults to "#FFF8E3".
	Background string
}

// PreviewPNG renders a Phong shaded view of m with default camera settings.
func PreviewPNG(m *Mesh, width, height int) (image.Image, error) {
	return Preview{Width: width, Height: height, Supersample: 2}.Render(m)
}

// Render draws the world space mesh using its smoothed vertex normals and colors.
func (p Preview) Render(m *Mesh) (image.Image, error) {
	if m.NumTriangles() == 0 {
		return nil, ErrEmptyMesh
	}
	if p.Width <= 0 || p.Height <= 0 {
		return nil, errors.New("preview size must be positive")
	}
	const (
		fovy      = 35 // vertical field of view in degrees
		near, far = 1, 20
	)
	scale := max(p.Supersample, 1)
	eye := p.Eye
	if eye == (r3.Vec{}) {
		eye = r3.Vec{X: 3.5, Y: 3.5, Z: 3.5}
	}
	up := p.Up
	if up == (r3.Vec{}) {
		up = r3.Vec{Z: 1}
	}
	bg := p.Background
	if bg == "" {
		bg = "#FFF8E3"
	}
	mesh := fauxglMesh(m)
	// fit mesh in a bi-unit cube centered at the origin
	mesh.BiUnitCube()

	var (
		eyeV   = fauxgl.V(eye.X, eye.Y, eye.Z)
		center = fauxgl.V(0, 0, 0)
		upV    = fauxgl.V(up.X, up.Y, up.Z)
		light  = fauxgl.V(-0.75, 1, 0.25).Normalize()
	)
	context := fauxgl.NewContext(p.Width*scale, p.Height*scale)
	context.ClearColorBufferWith(fauxgl.HexColor(bg))
	aspect := float64(p.Width) / float64(p.Height)
	matrix := fauxgl.LookAt(eyeV, center, upV).Perspective(fovy, aspect, near, far)
	shader := fauxgl.NewPhongShader(matrix, light, eyeV)
	c := m.Vertices[m.Indices[0]].Color
	shader.ObjectColor = fauxgl.Color{R: float64(c[0]), G: float64(c[1]), B: float64(c[2]), A: float64(c[3])}
	context.Shader = shader
	context.DrawMesh(mesh)
	// downsample image for antialiasing
	img := context.Image()
	if scale > 1 {
		img = resize.Resize(uint(p.Width), uint(p.Height), img, resize.Bilinear)
	}
	return img, nil
}

// fauxglMesh converts m to a fauxgl mesh in world space. Normals are
// transformed by the cofactor matrix of the linear part of the mesh transform,
// which keeps them perpendicular to the surface under non-uniform scaling.
func fauxglMesh(m *Mesh) *fauxgl.Mesh {
	origin := m.Transform.Transform(r3.Vec{})
	c1 := r3.Sub(m.Transform.Transform(r3.Vec{X: 1}), origin)
	c2 := r3.Sub(m.Transform.Transform(r3.Vec{Y: 1}), origin)
	c3 := r3.Sub(m.Transform.Transform(r3.Vec{Z: 1}), origin)
	cof := [3]r3.Vec{r3.Cross(c2, c3), r3.Cross(c3, c1), r3.Cross(c1, c2)}
	tris := make([]*fauxgl.Triangle, m.NumTriangles())
	for i := range tris {
		var v [3]fauxgl.Vertex
		for j := range v {
			vert := m.Vertices[m.Indices[3*i+j]]
			pos := m.Transform.Transform(vert.Pos)
			n := r3.Add(r3.Add(r3.Scale(vert.Normal.X, cof[0]), r3.Scale(vert.Normal.Y, cof[1])), r3.Scale(vert.Normal.Z, cof[2]))
			if norm := r3.Norm(n); norm > 0 {
				n = r3.Scale(1/norm, n)
			}
			v[j] = fauxgl.Vertex{
				Position: fauxgl.V(pos.X, pos.Y, pos.Z),
				Normal:   fauxgl.V(n.X, n.Y, n.Z),
			}
		}
		tris[i] = &fauxgl.Triangle{V1: v[0], V2: v[1], V3: v[2]}
	}
	return fauxgl.NewTriangleMesh(tris)
}
