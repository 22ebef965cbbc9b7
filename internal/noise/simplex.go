package noise

const (
	simplex1Scale = 256.0 / (81.0 * 7.0)
	simplex2Scale = 38.283687591552734375
	simplex3Scale = 32.0

	skew2   = 0.36602540378443864676 // (sqrt(3) - 1) / 2
	unskew2 = 0.21132486540518711775 // (3 - sqrt(3)) / 6
	skew3   = 1.0 / 3.0
	unskew3 = 1.0 / 6.0
)

// perm is Ken Perlin's reference permutation. The 1D kernel looks gradients
// up through it before mixing in the seed.
var perm = [256]int32{
	151, 160, 137, 91, 90, 15, 131, 13, 201, 95, 96, 53, 194, 233, 7, 225,
	140, 36, 103, 30, 69, 142, 8, 99, 37, 240, 21, 10, 23, 190, 6, 148,
	247, 120, 234, 75, 0, 26, 197, 62, 94, 252, 219, 203, 117, 35, 11, 32,
	57, 177, 33, 88, 237, 149, 56, 87, 174, 20, 125, 136, 171, 168, 68, 175,
	74, 165, 71, 134, 139, 48, 27, 166, 77, 146, 158, 231, 83, 111, 229, 122,
	60, 211, 133, 230, 220, 105, 92, 41, 55, 46, 245, 40, 244, 102, 143, 54,
	65, 25, 63, 161, 1, 216, 80, 73, 209, 76, 132, 187, 208, 89, 18, 169,
	200, 196, 135, 130, 116, 188, 159, 86, 164, 100, 109, 198, 173, 186, 3, 64,
	52, 217, 226, 250, 124, 123, 5, 202, 38, 147, 118, 126, 255, 82, 85, 212,
	207, 206, 59, 227, 47, 16, 58, 17, 182, 189, 28, 42, 223, 183, 170, 213,
	119, 248, 152, 2, 44, 154, 163, 70, 221, 153, 101, 155, 167, 43, 172, 9,
	129, 22, 39, 253, 19, 98, 108, 110, 79, 113, 224, 232, 178, 185, 112, 104,
	218, 246, 97, 228, 251, 34, 242, 193, 238, 210, 144, 12, 191, 179, 162, 241,
	81, 51, 145, 235, 249, 14, 239, 107, 49, 192, 214, 31, 181, 199, 106, 157,
	184, 84, 204, 176, 115, 121, 50, 45, 127, 4, 150, 254, 138, 236, 205, 93,
	222, 114, 67, 29, 24, 72, 243, 141, 128, 195, 78, 66, 215, 61, 156, 180,
}

func simplex1[V Lanes](_ *evaluator[V], n *Node, x V) V {
	s := n.settings.(SimplexSettings)
	var out V
	for i := 0; i < len(out); i++ {
		out[i] = simplexPoint1(s.Seed, x[i]*s.FrequencyX)
	}
	return out
}

// simplex2 samples the horizontal plane, like perlin2.
func simplex2[V Lanes](_ *evaluator[V], n *Node, x, y V) V {
	s := n.settings.(SimplexSettings)
	var out V
	for i := 0; i < len(out); i++ {
		out[i] = simplexPoint2(s.Seed, x[i]*s.FrequencyX, y[i]*s.FrequencyZ)
	}
	return out
}

func simplex3[V Lanes](_ *evaluator[V], n *Node, x, y, z V) V {
	s := n.settings.(SimplexSettings)
	var out V
	for i := 0; i < len(out); i++ {
		out[i] = simplexPoint3(s.Seed, x[i]*s.FrequencyX, y[i]*s.FrequencyY, z[i]*s.FrequencyZ)
	}
	return out
}

// falloff is max(r2 - d, 0)^4 where d is the squared distance to a corner.
func falloff(r2, d float32) float32 {
	t := r2 - d
	if t < 0 {
		return 0
	}
	t *= t
	return t * t
}

func simplexPoint1(seed int32, x float32) float32 {
	xs := floor32(x)
	i0 := int32(xs)
	i1 := (i0 + 1) & 0xff
	i0 &= 0xff

	x0 := x - xs
	x1 := x0 - 1

	g0 := grad1(seed, perm[i0])
	g1 := grad1(seed, perm[i1])

	n0 := falloff(1, x0*x0) * g0 * x0
	n1 := falloff(1, x1*x1) * g1 * x1
	return simplex1Scale * (n0 + n1)
}

func simplexPoint2(seed int32, x, y float32) float32 {
	f := skew2 * (x + y)
	xs := floor32(x + f)
	ys := floor32(y + f)

	i := int32(xs) * primeX
	j := int32(ys) * primeY

	g := unskew2 * (xs + ys)
	x0 := x - (xs - g)
	y0 := y - (ys - g)

	// The middle corner is one step along whichever axis is further in.
	i1, j1 := i, j+primeY
	x1, y1 := x0+unskew2, y0-1+unskew2
	if x0 > y0 {
		i1, j1 = i+primeX, j
		x1, y1 = x0-1+unskew2, y0+unskew2
	}
	x2 := x0 + (2*unskew2 - 1)
	y2 := y0 + (2*unskew2 - 1)

	n0 := falloff(0.5, x0*x0+y0*y0) * grad2(hash2(seed, i, j), x0, y0)
	n1 := falloff(0.5, x1*x1+y1*y1) * grad2(hash2(seed, i1, j1), x1, y1)
	n2 := falloff(0.5, x2*x2+y2*y2) * grad2(hash2(seed, i+primeX, j+primeY), x2, y2)
	return simplex2Scale * (n0 + n1 + n2)
}

func simplexPoint3(seed int32, x, y, z float32) float32 {
	f := skew3 * (x + y + z)
	xs := floor32(x + f)
	ys := floor32(y + f)
	zs := floor32(z + f)

	i := int32(xs) * primeX
	j := int32(ys) * primeY
	k := int32(zs) * primeZ

	g := unskew3 * (xs + ys + zs)
	x0 := x - (xs - g)
	y0 := y - (ys - g)
	z0 := z - (zs - g)

	// Offsets of the second and third corners, ranked by which coordinate
	// of the cell offset is largest.
	var i1, j1, k1, i2, j2, k2 float32
	if x0 >= y0 {
		switch {
		case y0 >= z0:
			i1, i2, j2 = 1, 1, 1
		case x0 >= z0:
			i1, i2, k2 = 1, 1, 1
		default:
			k1, i2, k2 = 1, 1, 1
		}
	} else {
		switch {
		case y0 < z0:
			k1, j2, k2 = 1, 1, 1
		case x0 < z0:
			j1, j2, k2 = 1, 1, 1
		default:
			j1, i2, j2 = 1, 1, 1
		}
	}

	x1, y1, z1 := x0-i1+unskew3, y0-j1+unskew3, z0-k1+unskew3
	x2, y2, z2 := x0-i2+2*unskew3, y0-j2+2*unskew3, z0-k2+2*unskew3
	x3, y3, z3 := x0-1+3*unskew3, y0-1+3*unskew3, z0-1+3*unskew3

	h0 := hash3(seed, i, j, k)
	h1 := hash3(seed, i+int32(i1)*primeX, j+int32(j1)*primeY, k+int32(k1)*primeZ)
	h2 := hash3(seed, i+int32(i2)*primeX, j+int32(j2)*primeY, k+int32(k2)*primeZ)
	h3 := hash3(seed, i+primeX, j+primeY, k+primeZ)

	n0 := falloff(0.6, x0*x0+y0*y0+z0*z0) * grad3(h0, x0, y0, z0)
	n1 := falloff(0.6, x1*x1+y1*y1+z1*z1) * grad3(h1, x1, y1, z1)
	n2 := falloff(0.6, x2*x2+y2*y2+z2*z2) * grad3(h2, x2, y2, z2)
	n3 := falloff(0.6, x3*x3+y3*y3+z3*z3) * grad3(h3, x3, y3, z3)
	return simplex3Scale * (n0 + n1 + n2 + n3)
}
