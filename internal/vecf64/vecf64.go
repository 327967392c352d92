// Package vecf64 provides element-wise operations on fixed-length
// float64 sequences. The CFR+ traversal moves several such sequences
// simultaneously (counterfactual values, reach-probability vectors,
// accumulated regrets and strategies) and this package is the single
// place those operations are defined.
package vecf64

// Zeros returns a fresh length-n vector of zeros.
func Zeros(n int) []float64 {
	return make([]float64, n)
}

// Ones returns a fresh length-n vector of ones.
func Ones(n int) []float64 {
	v := make([]float64, n)
	for i := range v {
		v[i] = 1
	}
	return v
}

// Add returns lhs + rhs element-wise.
func Add(lhs, rhs []float64) []float64 {
	out := make([]float64, len(lhs))
	for i := range lhs {
		out[i] = lhs[i] + rhs[i]
	}
	return out
}

// AddInPlace adds rhs into lhs element-wise.
func AddInPlace(lhs, rhs []float64) {
	for i := range lhs {
		lhs[i] += rhs[i]
	}
}

// Sub returns lhs - rhs element-wise.
func Sub(lhs, rhs []float64) []float64 {
	out := make([]float64, len(lhs))
	for i := range lhs {
		out[i] = lhs[i] - rhs[i]
	}
	return out
}

// Mul returns lhs * rhs element-wise.
func Mul(lhs, rhs []float64) []float64 {
	out := make([]float64, len(lhs))
	for i := range lhs {
		out[i] = lhs[i] * rhs[i]
	}
	return out
}

// MulInPlace multiplies lhs by rhs element-wise.
func MulInPlace(lhs, rhs []float64) {
	for i := range lhs {
		lhs[i] *= rhs[i]
	}
}

// MulScalar returns v scaled by s.
func MulScalar(v []float64, s float64) []float64 {
	out := make([]float64, len(v))
	for i, x := range v {
		out[i] = x * s
	}
	return out
}

// Max returns the element-wise maximum of lhs and rhs.
func Max(lhs, rhs []float64) []float64 {
	out := make([]float64, len(lhs))
	for i := range lhs {
		if lhs[i] > rhs[i] {
			out[i] = lhs[i]
		} else {
			out[i] = rhs[i]
		}
	}
	return out
}

// Clip returns v with every entry floored at zero.
func Clip(v []float64) []float64 {
	out := make([]float64, len(v))
	for i, x := range v {
		if x > 0 {
			out[i] = x
		}
	}
	return out
}

// ClipInPlace floors every entry of v at zero.
func ClipInPlace(v []float64) {
	for i, x := range v {
		if x < 0 {
			v[i] = 0
		}
	}
}

// Dot returns the dot product of lhs and rhs.
func Dot(lhs, rhs []float64) float64 {
	var total float64
	for i := range lhs {
		total += lhs[i] * rhs[i]
	}
	return total
}

// Div returns lhs / rhs element-wise. Wherever rhs is exactly zero, the
// caller-supplied default is used instead of producing NaN/Inf.
func Div(lhs, rhs []float64, dflt float64) []float64 {
	out := make([]float64, len(lhs))
	for i := range lhs {
		if rhs[i] == 0 {
			out[i] = dflt
		} else {
			out[i] = lhs[i] / rhs[i]
		}
	}
	return out
}

// Sum returns the sum of all entries of v.
func Sum(v []float64) float64 {
	var total float64
	for _, x := range v {
		total += x
	}
	return total
}

// NewFilled returns a length-n vector with every entry set to x.
func NewFilled(n int, x float64) []float64 {
	v := make([]float64, n)
	for i := range v {
		v[i] = x
	}
	return v
}
