package noise

import (
	"math"
	"testing"
)

const tolerance = 1e-6

func near(a, b float32) bool {
	return math.Abs(float64(a-b)) <= tolerance*math.Max(1, math.Abs(float64(b)))
}

// field returns a deterministic, non-trivial 2D source for identity checks.
func field(seed int32) *Builder {
	return Perlin(0.071, seed).Fbm(3, 0.5, 2).Add(Simplex(0.033, seed+1).MulValue(0.5))
}

func sample(b *Builder) []float32 {
	values, _, _ := b.Build().Generate2D(-17, 3, 23, 9)
	return values
}

func TestConstantScenarios(t *testing.T) {
	values, lo, hi := Constant(0.5).Generate1D(0, 4)
	if len(values) != 4 || lo != 0.5 || hi != 0.5 {
		t.Fatalf("constant 1D = %v [%v, %v], want four 0.5", values, lo, hi)
	}
	for _, v := range values {
		if v != 0.5 {
			t.Fatalf("constant 1D = %v, want all 0.5", values)
		}
	}

	values, lo, hi = Constant(1).AddValue(2).Generate2D(0, 0, 3, 2)
	if len(values) != 6 || lo != 3 || hi != 3 {
		t.Fatalf("add value 2D = %v [%v, %v], want six 3.0", values, lo, hi)
	}

	values, lo, hi = Constant(5).Clamp(-1, 1).Generate3D(0, 0, 0, 2, 2, 2)
	if len(values) != 8 || lo != 1 || hi != 1 {
		t.Fatalf("clamped 3D = %v [%v, %v], want eight 1.0", values, lo, hi)
	}
}

func TestArithmeticIdentities(t *testing.T) {
	f := sample(field(3))

	tests := []struct {
		name string
		got  []float32
		want func(i int) float32
	}{
		{name: "add zero", got: sample(field(3).Add(Constant(0))), want: func(i int) float32 { return f[i] }},
		{name: "add value", got: sample(field(3).AddValue(0.25)), want: func(i int) float32 { return f[i] + 0.25 }},
		{name: "mul value", got: sample(field(3).MulValue(-3)), want: func(i int) float32 { return f[i] * -3 }},
		{name: "min self", got: sample(field(3).Min(field(3))), want: func(i int) float32 { return f[i] }},
		{name: "max self", got: sample(field(3).Max(field(3))), want: func(i int) float32 { return f[i] }},
		{name: "square", got: sample(field(3).Square()), want: func(i int) float32 { return f[i] * f[i] }},
		{name: "abs", got: sample(field(3).Abs()), want: func(i int) float32 { return float32(math.Abs(float64(f[i]))) }},
		{name: "min constant", got: sample(field(3).Min(Constant(0))), want: func(i int) float32 { return min(f[i], 0) }},
		{name: "max constant", got: sample(field(3).Max(Constant(0))), want: func(i int) float32 { return max(f[i], 0) }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for i, got := range tt.got {
				if want := tt.want(i); !near(got, want) {
					t.Fatalf("value %d = %v, want %v (source %v)", i, got, want, f[i])
				}
			}
		})
	}
}

func TestSquareAndAbsAreNonNegative(t *testing.T) {
	for _, values := range [][]float32{sample(field(8).Square()), sample(field(8).Abs())} {
		for i, v := range values {
			if v < 0 {
				t.Fatalf("value %d = %v, want >= 0", i, v)
			}
		}
	}
}

func TestClampIsIdempotent(t *testing.T) {
	once := sample(field(4).Clamp(-0.2, 0.3))
	twice := sample(field(4).Clamp(-0.2, 0.3).Clamp(-0.2, 0.3))
	for i := range once {
		if once[i] < -0.2 || once[i] > 0.3 {
			t.Fatalf("clamped value %d = %v outside [-0.2, 0.3]", i, once[i])
		}
		if once[i] != twice[i] {
			t.Fatalf("clamp twice at %d = %v, clamp once = %v", i, twice[i], once[i])
		}
	}
}

func TestLerpBoundaries(t *testing.T) {
	low := sample(field(5))
	high := sample(field(6))

	atLow := sample(Lerp(Constant(-1), field(5), field(6)))
	atHigh := sample(Lerp(Constant(1), field(5), field(6)))
	middle := sample(Lerp(Constant(0), field(5), field(6)))
	for i := range low {
		if atLow[i] != low[i] {
			t.Fatalf("selector -1 at %d = %v, want low %v", i, atLow[i], low[i])
		}
		if !near(atHigh[i], high[i]) {
			t.Fatalf("selector 1 at %d = %v, want high %v", i, atHigh[i], high[i])
		}
		if want := low[i] + (high[i]-low[i])*0.5; !near(middle[i], want) {
			t.Fatalf("selector 0 at %d = %v, want %v", i, middle[i], want)
		}
	}
}

func TestLerpExtrapolatesOutsideSelectorRange(t *testing.T) {
	values, _, _ := Lerp(Constant(3), Constant(0), Constant(1)).Generate1D(0, 3)
	for _, v := range values {
		if v != 2 {
			t.Fatalf("selector 3 between 0 and 1 = %v, want 2", v)
		}
	}
}

func TestRangeClipsAndBlends(t *testing.T) {
	const low, high = -0.25, 0.35
	wide := func(b *Builder) []float32 {
		values, _, _ := b.Build().Generate2D(0, 0, 200, 50)
		return values
	}
	sel := wide(field(7))
	lowSrc := wide(field(8))
	highSrc := wide(field(9))
	got := wide(Range(high, low, field(7), field(8), field(9)))

	clippedLow, clippedHigh, blended := 0, 0, 0
	for i := range got {
		var want float32
		switch s := sel[i]; {
		case s < low:
			want = lowSrc[i]
			clippedLow++
		case s > high:
			want = highSrc[i]
			clippedHigh++
		default:
			want = lowSrc[i] + (highSrc[i]-lowSrc[i])*((s-low)/(high-low))
			blended++
		}
		if !near(got[i], want) {
			t.Fatalf("range at %d (selector %v) = %v, want %v", i, sel[i], got[i], want)
		}
	}
	if clippedLow == 0 || clippedHigh == 0 || blended == 0 {
		t.Fatalf("sample does not cover all branches: low=%d high=%d blend=%d", clippedLow, clippedHigh, blended)
	}
}

func TestRangeConstantSelectors(t *testing.T) {
	tests := []struct {
		name     string
		selector float32
		low      float32
		high     float32
		want     float32
	}{
		{name: "below", selector: -2, low: -0.5, high: 0.5, want: 10},
		{name: "above", selector: 2, low: -0.5, high: 0.5, want: 20},
		{name: "midpoint", selector: 0, low: -0.5, high: 0.5, want: 15},
		{name: "at low bound", selector: -0.5, low: -0.5, high: 0.5, want: 10},
		{name: "at high bound", selector: 0.5, low: -0.5, high: 0.5, want: 20},
		{name: "degenerate on the point", selector: 0.049, low: 0.049, high: 0.049, want: 10},
		{name: "degenerate above", selector: 0.05, low: 0.049, high: 0.049, want: 20},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			values, _, _ := Range(tt.high, tt.low, Constant(tt.selector), Constant(10), Constant(20)).Generate1D(0, 5)
			for _, v := range values {
				if v != tt.want {
					t.Fatalf("range = %v, want %v", v, tt.want)
				}
			}
		})
	}
}

func TestFbmSingleOctaveIsScaledSource(t *testing.T) {
	for _, scale := range []float32{1, 0.7, -2} {
		got := sample(Perlin(0.09, 11).FbmWithScale(1, 0.3, 2.5, scale))
		want := sample(Perlin(0.09, 11).MulValue(scale))
		for i := range want {
			if got[i] != want[i] {
				t.Fatalf("scale %v: fbm at %d = %v, want %v", scale, i, got[i], want[i])
			}
		}
	}
}

func TestFbmSumsOctaves(t *testing.T) {
	// Power-of-two frequencies keep the octave coordinates exact.
	got := sample(Simplex(0.0625, 2).FbmWithScale(2, 0.5, 2, 1))
	first := sample(Simplex(0.0625, 2))
	second := sample(Simplex(0.125, 2).MulValue(0.5))
	for i := range got {
		if want := first[i] + second[i]; !near(got[i], want) {
			t.Fatalf("two octaves at %d = %v, want %v", i, got[i], want)
		}
	}
}

func TestWithFrequencyUsesHorizontalAxesIn2D(t *testing.T) {
	// In 2D the second coordinate is world z, so FrequencyY must not matter.
	a := sample(Perlin(1, 4).WithFrequency(0.05, 9, 0.02))
	b := sample(Perlin(1, 4).WithFrequency(0.05, 0, 0.02))
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("value %d changed with FrequencyY: %v vs %v", i, a[i], b[i])
		}
	}
}
