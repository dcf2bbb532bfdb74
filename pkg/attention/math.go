package attention

import "math"

// normFloor guards L2 normalization against near-zero vectors.
const normFloor = 1e-12

// sigmoidClamp bounds logits before squashing so extreme products cannot
// overflow math.Exp or saturate to exactly 0 or 1.
const sigmoidClamp = 10.0

// LeakyReLU applies the leaky rectifier with the given negative slope.
func LeakyReLU(x, slope float64) float64 {
	if x >= 0 {
		return x
	}
	return slope * x
}

// Softmax normalizes scores in place. The maximum is subtracted before
// exponentiation for numeric stability, and the denominator is floored so
// an all-negative-infinity row cannot divide by zero.
func Softmax(scores []float64, floor float64) {
	if len(scores) == 0 {
		return
	}
	max := scores[0]
	for _, s := range scores[1:] {
		if s > max {
			max = s
		}
	}
	sum := 0.0
	for i, s := range scores {
		e := math.Exp(s - max)
		scores[i] = e
		sum += e
	}
	if sum < floor {
		sum = floor
	}
	for i := range scores {
		scores[i] /= sum
	}
}

// LayerNorm normalizes vec in place to zero mean and unit variance over its
// features, then applies the per-feature scale gamma and shift beta.
func LayerNorm(vec, gamma, beta []float64, epsilon float64) {
	n := float64(len(vec))
	if n == 0 {
		return
	}
	mean := 0.0
	for _, v := range vec {
		mean += v
	}
	mean /= n

	variance := 0.0
	for _, v := range vec {
		d := v - mean
		variance += d * d
	}
	variance /= n

	inv := 1 / math.Sqrt(variance+epsilon)
	for i, v := range vec {
		vec[i] = gamma[i]*(v-mean)*inv + beta[i]
	}
}

// Dot returns the inner product of a and b. Lengths must match; the caller
// validates dimensions.
func Dot(a, b []float64) float64 {
	sum := 0.0
	for i, v := range a {
		sum += v * b[i]
	}
	return sum
}

// L2Normalize scales vec to unit length in place. Vectors with norm below
// normFloor are left unchanged rather than amplified into noise.
func L2Normalize(vec []float64) {
	sum := 0.0
	for _, v := range vec {
		sum += v * v
	}
	norm := math.Sqrt(sum)
	if norm < normFloor {
		return
	}
	for i := range vec {
		vec[i] /= norm
	}
}

// Sigmoid squashes x into (0,1), clamping the input to ±sigmoidClamp first.
func Sigmoid(x float64) float64 {
	if x > sigmoidClamp {
		x = sigmoidClamp
	} else if x < -sigmoidClamp {
		x = -sigmoidClamp
	}
	return 1 / (1 + math.Exp(-x))
}
