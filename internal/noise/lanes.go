package noise

import "math"

// Lanes is the set of batch shapes the kernels are instantiated for. One
// instantiation exists per simd target width.
type Lanes interface {
	[1]float32 | [4]float32 | [8]float32 | [16]float32
}

// The helpers below work lane by lane with plain index loops so that every
// width computes exactly the same float32 operations.

func splat[V Lanes](v float32) V {
	var out V
	for i := 0; i < len(out); i++ {
		out[i] = v
	}
	return out
}

func lanesScale[V Lanes](a V, s float32) V {
	for i := 0; i < len(a); i++ {
		a[i] *= s
	}
	return a
}

func lanesAdd[V Lanes](a, b V) V {
	for i := 0; i < len(a); i++ {
		a[i] += b[i]
	}
	return a
}

func lanesAddScalar[V Lanes](a V, s float32) V {
	for i := 0; i < len(a); i++ {
		a[i] += s
	}
	return a
}

func lanesMin[V Lanes](a, b V) V {
	for i := 0; i < len(a); i++ {
		if b[i] < a[i] {
			a[i] = b[i]
		}
	}
	return a
}

func lanesMax[V Lanes](a, b V) V {
	for i := 0; i < len(a); i++ {
		if b[i] > a[i] {
			a[i] = b[i]
		}
	}
	return a
}

func lanesClamp[V Lanes](a V, lo, hi float32) V {
	for i := 0; i < len(a); i++ {
		if a[i] < lo {
			a[i] = lo
		}
		if a[i] > hi {
			a[i] = hi
		}
	}
	return a
}

func lanesSquare[V Lanes](a V) V {
	for i := 0; i < len(a); i++ {
		a[i] *= a[i]
	}
	return a
}

func lanesAbs[V Lanes](a V) V {
	for i := 0; i < len(a); i++ {
		a[i] = math.Float32frombits(math.Float32bits(a[i]) &^ signBit)
	}
	return a
}

// lanesLerp maps selector from [-1, 1] onto [low, high] without clipping.
func lanesLerp[V Lanes](selector, low, high V) V {
	for i := 0; i < len(selector); i++ {
		t := (selector[i] + 1) * 0.5
		low[i] += (high[i] - low[i]) * t
	}
	return low
}

// lanesRange clips to low below lowBound and to high above highBound. A
// degenerate range (lowBound == highBound) resolves its single point to low.
func lanesRange[V Lanes](selector, low, high V, lowBound, highBound float32) V {
	span := highBound - lowBound
	for i := 0; i < len(selector); i++ {
		s := selector[i]
		switch {
		case s > highBound:
			low[i] = high[i]
		case s < lowBound || span == 0:
		default:
			t := (s - lowBound) / span
			low[i] += (high[i] - low[i]) * t
		}
	}
	return low
}
