package noise

import "math"

// Lattice primes. Coordinates are multiplied by these before hashing so the
// per-axis contributions do not cancel when XORed together.
const (
	primeX int32 = 501125321
	primeY int32 = 1136930381
	primeZ int32 = 1720413743

	hashMultiplier int32 = 0x27d4eb2d
)

const signBit = 1 << 31

// hash1 hashes a pre-multiplied 1D lattice coordinate.
func hash1(seed, i int32) int32 {
	h := seed ^ i
	h *= hashMultiplier
	return (h >> 15) ^ h
}

// hash2 hashes pre-multiplied 2D lattice coordinates. Arithmetic is int32
// with wrapping overflow.
func hash2(seed, i, j int32) int32 {
	h := seed ^ i ^ j
	h *= hashMultiplier
	return (h >> 15) ^ h
}

func hash3(seed, i, j, k int32) int32 {
	h := seed ^ i ^ j ^ k
	h *= hashMultiplier
	return (h >> 15) ^ h
}

// grad1 returns a 1D gradient in {-7..7}: the low three bits give the
// magnitude and bit 3 the sign.
func grad1(seed, hash int32) float32 {
	h := (seed ^ hash) & 15
	v := float32(h & 7)
	if h&8 == 0 {
		return -v
	}
	return v
}

const root2 = 1.4142135623730950488

// grad2 returns the dot product of (x, y) with one of eight gradient
// directions. Bits 0 and 1 of hash flip the signs of x and y, bit 2 swaps
// the weighted and unweighted axis.
func grad2(hash int32, x, y float32) float32 {
	x = math.Float32frombits(math.Float32bits(x) ^ uint32(hash)<<31)
	y = math.Float32frombits(math.Float32bits(y) ^ (uint32(hash)>>1)<<31)
	a, b := x, y
	if hash&4 != 0 {
		a, b = y, x
	}
	return (1+root2)*a + b
}

// grad3 returns the dot product of (x, y, z) with one of the twelve cube
// edge directions, picked from hash without building the vector.
func grad3(hash int32, x, y, z float32) float32 {
	h := hash & 13

	u := y
	if h < 8 {
		u = x
	}
	v := z
	if h == 12 {
		v = x
	}
	if h < 2 {
		v = y
	}

	u = math.Float32frombits(math.Float32bits(u) ^ uint32(hash)<<31)
	v = math.Float32frombits(math.Float32bits(v) ^ uint32(hash&2)<<30)
	return u + v
}

func floor32(v float32) float32 {
	return float32(math.Floor(float64(v)))
}

// quintic is the fade curve 6t^5 - 15t^4 + 10t^3.
func quintic(t float32) float32 {
	return t * t * t * (t*(t*6-15) + 10)
}

func lerp(a, b, t float32) float32 {
	return t*(b-a) + a
}
