package attention

import (
	"math"
	"testing"
)

func TestLeakyReLU(t *testing.T) {
	if got := LeakyReLU(2.5, 0.1); got != 2.5 {
		t.Errorf("positive input = %v, want passthrough", got)
	}
	if got := LeakyReLU(-2.0, 0.1); math.Abs(got-(-0.2)) > 1e-12 {
		t.Errorf("negative input = %v, want -0.2", got)
	}
	if got := LeakyReLU(0, 0.1); got != 0 {
		t.Errorf("zero input = %v, want 0", got)
	}
}

func TestSoftmax_SumsToOne(t *testing.T) {
	scores := []float64{1.0, 2.0, 3.0}
	Softmax(scores, 1e-10)

	sum := 0.0
	for _, s := range scores {
		sum += s
		if s <= 0 || s >= 1 {
			t.Errorf("score %v outside (0,1)", s)
		}
	}
	if math.Abs(sum-1) > 1e-12 {
		t.Errorf("sum = %v, want 1", sum)
	}
	if !(scores[2] > scores[1] && scores[1] > scores[0]) {
		t.Errorf("ordering not preserved: %v", scores)
	}
}

func TestSoftmax_LargeScoresStable(t *testing.T) {
	scores := []float64{1000, 1001, 999}
	Softmax(scores, 1e-10)

	for _, s := range scores {
		if math.IsNaN(s) || math.IsInf(s, 0) {
			t.Fatalf("unstable softmax: %v", scores)
		}
	}
	sum := scores[0] + scores[1] + scores[2]
	if math.Abs(sum-1) > 1e-12 {
		t.Errorf("sum = %v, want 1", sum)
	}
}

func TestSoftmax_Empty(t *testing.T) {
	Softmax(nil, 1e-10) // must not panic
}

func TestLayerNorm(t *testing.T) {
	vec := []float64{1, 2, 3, 4}
	gamma := []float64{1, 1, 1, 1}
	beta := []float64{0, 0, 0, 0}
	LayerNorm(vec, gamma, beta, 1e-5)

	mean := 0.0
	for _, v := range vec {
		mean += v
	}
	mean /= 4
	if math.Abs(mean) > 1e-9 {
		t.Errorf("mean = %v, want ~0", mean)
	}

	variance := 0.0
	for _, v := range vec {
		variance += v * v
	}
	variance /= 4
	if math.Abs(variance-1) > 1e-3 {
		t.Errorf("variance = %v, want ~1", variance)
	}
}

func TestLayerNorm_GammaBeta(t *testing.T) {
	vec := []float64{-1, 1}
	LayerNorm(vec, []float64{2, 2}, []float64{5, 5}, 1e-5)

	// Normalized values are ~(-1, 1); scaled by 2 and shifted by 5.
	if math.Abs(vec[0]-3) > 1e-3 || math.Abs(vec[1]-7) > 1e-3 {
		t.Errorf("got %v, want ~[3 7]", vec)
	}
}

func TestLayerNorm_ConstantVector(t *testing.T) {
	vec := []float64{4, 4, 4}
	LayerNorm(vec, []float64{1, 1, 1}, []float64{0, 0, 0}, 1e-5)

	// Zero variance: epsilon keeps the division finite and centering
	// collapses everything onto beta.
	for i, v := range vec {
		if math.IsNaN(v) || math.Abs(v) > 1e-6 {
			t.Errorf("slot %d = %v, want ~0", i, v)
		}
	}
}

func TestDot(t *testing.T) {
	if got := Dot([]float64{1, 0}, []float64{0, 1}); got != 0 {
		t.Errorf("orthogonal dot = %v, want 0", got)
	}
	if got := Dot([]float64{1, 2, 3}, []float64{4, 5, 6}); got != 32 {
		t.Errorf("dot = %v, want 32", got)
	}
}

func TestL2Normalize(t *testing.T) {
	vec := []float64{3, 4}
	L2Normalize(vec)
	if math.Abs(vec[0]-0.6) > 1e-12 || math.Abs(vec[1]-0.8) > 1e-12 {
		t.Errorf("got %v, want [0.6 0.8]", vec)
	}

	zero := []float64{0, 0, 0}
	L2Normalize(zero)
	for _, v := range zero {
		if v != 0 {
			t.Errorf("zero vector changed: %v", zero)
		}
	}

	tiny := []float64{1e-13, 0}
	L2Normalize(tiny)
	if tiny[0] != 1e-13 {
		t.Errorf("sub-floor vector rescaled: %v", tiny)
	}
}

func TestSigmoid(t *testing.T) {
	if got := Sigmoid(0); got != 0.5 {
		t.Errorf("Sigmoid(0) = %v, want 0.5", got)
	}
	if Sigmoid(2) <= Sigmoid(1) {
		t.Error("sigmoid not monotonic")
	}
	if Sigmoid(50) != Sigmoid(10) {
		t.Errorf("clamp failed: Sigmoid(50)=%v Sigmoid(10)=%v", Sigmoid(50), Sigmoid(10))
	}
	if Sigmoid(-50) != Sigmoid(-10) {
		t.Errorf("clamp failed on negative side")
	}
	if Sigmoid(10) >= 1 || Sigmoid(-10) <= 0 {
		t.Error("sigmoid saturated to 0 or 1")
	}
}
