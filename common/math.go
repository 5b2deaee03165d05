package common

// Epsilon is the tolerance used for float comparisons around state
// transitions. Never compare simulation floats with ==.
const Epsilon = 1e-5

func Lerp(a, b, t float64) float64 {
	return a + t*(b-a)
}

func Clamp(v, min, max float64) float64 {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}

// ApproxZero reports whether v is within Epsilon of zero.
func ApproxZero(v float64) bool {
	return v > -Epsilon && v < Epsilon
}

// ApproxEqual reports whether a and b are within Epsilon of each other.
func ApproxEqual(a, b float64) bool {
	return ApproxZero(a - b)
}
