package interp

// Vector is a linear space element such as r2.Vec or r3.Vec.
type Vector[V any] interface {
	Add(V) V
	Scale(float64) V
}

// LinearVec is the component-wise version of Linear.
func LinearVec[V Vector[V]](a, b V, x float64) V {
	if x <= 0 {
		return a
	}
	if x >= 1 {
		return b
	}
	return a.Scale(1 - x).Add(b.Scale(x))
}

// BilinearVec is the component-wise version of Bilinear.
func BilinearVec[V Vector[V]](v [4]V, x, y float64) V {
	return LinearVec(LinearVec(v[0], v[1], x), LinearVec(v[2], v[3], x), y)
}

// QuadraticVec is the component-wise version of Quadratic.
func QuadraticVec[V Vector[V]](a, b, c V, x float64) V {
	return a.Scale((1 - x) * (1 - 2*x)).Add(b.Scale(4 * x * (1 - x))).Add(c.Scale(x * (2*x - 1)))
}

// BiQuadraticVec is the component-wise version of BiQuadratic.
func BiQuadraticVec[V Vector[V]](v [9]V, x, y float64) V {
	r0 := QuadraticVec(v[0], v[1], v[2], x)
	r1 := QuadraticVec(v[3], v[4], v[5], x)
	r2 := QuadraticVec(v[6], v[7], v[8], x)
	return QuadraticVec(r0, r1, r2, y)
}

// BarycentricVec is the component-wise version of Barycentric.
func BarycentricVec[V Vector[V]](v [4]V, x, y float64) V {
	alpha, beta, gamma := BarycentricWeights(x, y)
	a := v[0]
	if x+y >= 1 {
		a = v[3]
	}
	return a.Scale(alpha).Add(v[1].Scale(beta)).Add(v[2].Scale(gamma))
}
