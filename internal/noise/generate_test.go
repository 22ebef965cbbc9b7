package noise

import (
	"fmt"
	"math"
	"sync"
	"testing"

	"voxelnoise/internal/simd"
)

// everyKind builds a tree that reaches every kernel at least once.
func everyKind() *Tree {
	shape := Perlin(0.013, 1).Fbm(4, 0.5, 2).Add(Simplex(0.021, 2).Abs().MulValue(0.5))
	caves := Simplex(0.05, 3).Square().Min(Perlin(0.04, 4).AddValue(0.1)).Max(Constant(-0.3))
	blend := Lerp(Perlin(0.007, 5), shape.Clone().Clamp(-0.5, 0.5), caves.Clone())
	return Range(0.2, -0.2, Simplex(0.009, 6).Fbm(2, 0.6, 2.1), blend, shape.Add(caves)).Build()
}

func TestGenerateIsDeterministic(t *testing.T) {
	a, aLo, aHi := everyKind().Generate3D(-5, 2, 9, 17, 5, 3)
	b, bLo, bHi := everyKind().Generate3D(-5, 2, 9, 17, 5, 3)
	if aLo != bLo || aHi != bHi {
		t.Fatalf("bounds differ between runs: [%v, %v] vs [%v, %v]", aLo, aHi, bLo, bHi)
	}
	for i := range a {
		if math.Float32bits(a[i]) != math.Float32bits(b[i]) {
			t.Fatalf("value %d differs between runs: %v vs %v", i, a[i], b[i])
		}
	}
}

func TestNoiseStaysInUnitRange(t *testing.T) {
	const eps = 0.05
	tests := []struct {
		name string
		gen  func(seed int32) ([]float32, float32, float32)
	}{
		{name: "perlin 1d", gen: func(seed int32) ([]float32, float32, float32) {
			return Perlin(0.173, seed).Generate1D(-5000, 20000)
		}},
		{name: "perlin 2d", gen: func(seed int32) ([]float32, float32, float32) {
			return Perlin(0.137, seed).Generate2D(-300, -300, 200, 200)
		}},
		{name: "perlin 3d", gen: func(seed int32) ([]float32, float32, float32) {
			return Perlin(0.119, seed).Generate3D(-20, -20, -20, 40, 40, 25)
		}},
		{name: "simplex 1d", gen: func(seed int32) ([]float32, float32, float32) {
			return Simplex(0.173, seed).Generate1D(-5000, 20000)
		}},
		{name: "simplex 2d", gen: func(seed int32) ([]float32, float32, float32) {
			return Simplex(0.137, seed).Generate2D(-300, -300, 200, 200)
		}},
		{name: "simplex 3d", gen: func(seed int32) ([]float32, float32, float32) {
			return Simplex(0.119, seed).Generate3D(-20, -20, -20, 40, 40, 25)
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for _, seed := range []int32{0, 1, -77, 1 << 30} {
				values, lo, hi := tt.gen(seed)
				if lo < -1-eps || hi > 1+eps {
					t.Fatalf("seed %d: range [%v, %v] exceeds [-1, 1]", seed, lo, hi)
				}
				if hi-lo < 0.5 {
					t.Fatalf("seed %d: range [%v, %v] is suspiciously flat", seed, lo, hi)
				}
				wantLo, wantHi := float32(math.MaxFloat32), float32(-math.MaxFloat32)
				for _, v := range values {
					wantLo = min(wantLo, v)
					wantHi = max(wantHi, v)
				}
				if lo != wantLo || hi != wantHi {
					t.Fatalf("seed %d: reported [%v, %v], values span [%v, %v]", seed, lo, hi, wantLo, wantHi)
				}
			}
		})
	}
}

func TestLaneWidthsAgree(t *testing.T) {
	tree := everyKind()
	widths := []int{1, 4, 8, 16}

	// Sizes that are not multiples of any width leave a partial last batch.
	ref1, _, _ := generatorFor(1).generate1D(tree.nodes, -31.5, 77)
	ref2, _, _ := generatorFor(1).generate2D(tree.nodes, -9, 4, 21, 7)
	ref3, _, _ := generatorFor(1).generate3D(tree.nodes, 3, -6, 11, 13, 5, 3)

	for _, w := range widths[1:] {
		t.Run(fmt.Sprintf("x%d", w), func(t *testing.T) {
			g := generatorFor(w)
			if g.width() != w {
				t.Fatalf("generator width = %d, want %d", g.width(), w)
			}
			got1, _, _ := g.generate1D(tree.nodes, -31.5, 77)
			got2, _, _ := g.generate2D(tree.nodes, -9, 4, 21, 7)
			got3, _, _ := g.generate3D(tree.nodes, 3, -6, 11, 13, 5, 3)
			compareLanes(t, "1d", got1, ref1)
			compareLanes(t, "2d", got2, ref2)
			compareLanes(t, "3d", got3, ref3)
		})
	}
}

func compareLanes(t *testing.T, label string, got, want []float32) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("%s: len = %d, want %d", label, len(got), len(want))
	}
	for i := range want {
		if !near(got[i], want[i]) {
			t.Fatalf("%s: value %d = %v, scalar = %v", label, i, got[i], want[i])
		}
	}
}

func TestSamplerForEveryTarget(t *testing.T) {
	tree := everyKind()
	want, wantLo, wantHi := NewSampler(simd.Scalar).Generate2D(tree, 0, 0, 19, 3)
	for _, target := range simd.Targets() {
		s := NewSampler(target)
		if s.Target() != target {
			t.Fatalf("sampler target = %v, want %v", s.Target(), target)
		}
		got, lo, hi := s.Generate2D(tree, 0, 0, 19, 3)
		compareLanes(t, target.Name, got, want)
		if !near(lo, wantLo) || !near(hi, wantHi) {
			t.Fatalf("%s: bounds [%v, %v], scalar [%v, %v]", target.Name, lo, hi, wantLo, wantHi)
		}
	}
}

func TestOutputLayout(t *testing.T) {
	tree := everyKind()
	const w, h, d = 5, 3, 2
	values, _, _ := tree.Generate3D(10, 20, 30, w, h, d)
	for z := 0; z < d; z++ {
		for y := 0; y < h; y++ {
			for x := 0; x < w; x++ {
				point, _, _ := tree.Generate3D(float32(10+x), float32(20+y), float32(30+z), 1, 1, 1)
				if got := values[(z*h+y)*w+x]; got != point[0] {
					t.Fatalf("(%d, %d, %d) stored %v, sampled alone %v", x, y, z, got, point[0])
				}
			}
		}
	}

	plane, _, _ := tree.Generate2D(-4, 7, w, h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			point, _, _ := tree.Generate2D(float32(-4+x), float32(7+y), 1, 1)
			if got := plane[y*w+x]; got != point[0] {
				t.Fatalf("(%d, %d) stored %v, sampled alone %v", x, y, got, point[0])
			}
		}
	}
}

func TestCoordinatesDoNotDrift(t *testing.T) {
	tree := everyKind()
	long, _, _ := tree.Generate1D(0, 300)
	tail, _, _ := tree.Generate1D(250, 50)
	for i := range tail {
		if tail[i] != long[250+i] {
			t.Fatalf("x=%d: offset start gives %v, long run gives %v", 250+i, tail[i], long[250+i])
		}
	}
}

func TestEmptyRanges(t *testing.T) {
	tree := everyKind()
	tests := []struct {
		name string
		gen  func() ([]float32, float32, float32)
	}{
		{name: "1d", gen: func() ([]float32, float32, float32) { return tree.Generate1D(0, 0) }},
		{name: "2d zero width", gen: func() ([]float32, float32, float32) { return tree.Generate2D(0, 0, 0, 4) }},
		{name: "2d zero height", gen: func() ([]float32, float32, float32) { return tree.Generate2D(0, 0, 4, 0) }},
		{name: "3d zero depth", gen: func() ([]float32, float32, float32) { return tree.Generate3D(0, 0, 0, 4, 4, 0) }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			values, lo, hi := tt.gen()
			if len(values) != 0 {
				t.Fatalf("len = %d, want 0", len(values))
			}
			if lo != math.MaxFloat32 || hi != -math.MaxFloat32 {
				t.Fatalf("bounds = [%v, %v], want [+max, -max]", lo, hi)
			}
		})
	}
}

func TestConcurrentGeneration(t *testing.T) {
	tree := everyKind()
	want, _, _ := tree.Generate2D(0, 0, 64, 16)

	const workers = 8
	errs := make(chan error, workers)
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			got, _, _ := tree.Generate2D(0, 0, 64, 16)
			for j := range want {
				if got[j] != want[j] {
					errs <- fmt.Errorf("value %d = %v, want %v", j, got[j], want[j])
					return
				}
			}
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		t.Fatal(err)
	}
}

func TestBuilderGenerateDoesNotConsume(t *testing.T) {
	b := Perlin(0.1, 3)
	first, _, _ := b.Generate1D(0, 8)
	second, _, _ := b.Build().Generate1D(0, 8)
	for i := range first {
		if first[i] != second[i] {
			t.Fatalf("value %d: builder %v, tree %v", i, first[i], second[i])
		}
	}
}

func BenchmarkGenerate3D(b *testing.B) {
	tree := everyKind()
	for _, target := range simd.Targets() {
		s := NewSampler(target)
		b.Run(target.Name, func(b *testing.B) {
			for i := 0; i < b.N; i++ {
				s.Generate3D(tree, 0, 0, 0, 16, 16, 16)
			}
		})
	}
}
