package noise

// Normalisation factors that map the reachable gradient-noise extremes onto
// [-1, 1] for the gradient sets used here.
const (
	perlin2Scale = 0.579106986522674560546875
	perlin3Scale = 0.964921414852142333984375
)

func perlin1[V Lanes](_ *evaluator[V], n *Node, x V) V {
	s := n.settings.(PerlinSettings)
	var out V
	for i := 0; i < len(out); i++ {
		out[i] = perlinPoint1(s.Seed, x[i]*s.FrequencyX)
	}
	return out
}

// perlin2 samples the horizontal plane: y carries world z and is scaled by
// FrequencyZ.
func perlin2[V Lanes](_ *evaluator[V], n *Node, x, y V) V {
	s := n.settings.(PerlinSettings)
	var out V
	for i := 0; i < len(out); i++ {
		out[i] = perlinPoint2(s.Seed, x[i]*s.FrequencyX, y[i]*s.FrequencyZ)
	}
	return out
}

func perlin3[V Lanes](_ *evaluator[V], n *Node, x, y, z V) V {
	s := n.settings.(PerlinSettings)
	var out V
	for i := 0; i < len(out); i++ {
		out[i] = perlinPoint3(s.Seed, x[i]*s.FrequencyX, y[i]*s.FrequencyY, z[i]*s.FrequencyZ)
	}
	return out
}

// perlinPoint1 blends the two neighbouring 1D gradients, each in [-1, 1],
// with the quintic fade. The raw result stays within [-0.5, 0.5].
func perlinPoint1(seed int32, x float32) float32 {
	xs := floor32(x)
	x0 := int32(xs) * primeX
	x1 := x0 + primeX

	xf0 := x - xs
	xf1 := xf0 - 1

	g0 := grad1(seed, hash1(seed, x0)) / 7
	g1 := grad1(seed, hash1(seed, x1)) / 7
	return 2 * lerp(g0*xf0, g1*xf1, quintic(xf0))
}

func perlinPoint2(seed int32, x, y float32) float32 {
	xs := floor32(x)
	ys := floor32(y)

	x0 := int32(xs) * primeX
	y0 := int32(ys) * primeY
	x1 := x0 + primeX
	y1 := y0 + primeY

	xf0 := x - xs
	yf0 := y - ys
	xf1 := xf0 - 1
	yf1 := yf0 - 1

	u := quintic(xf0)
	v := quintic(yf0)

	return perlin2Scale * lerp(
		lerp(grad2(hash2(seed, x0, y0), xf0, yf0), grad2(hash2(seed, x1, y0), xf1, yf0), u),
		lerp(grad2(hash2(seed, x0, y1), xf0, yf1), grad2(hash2(seed, x1, y1), xf1, yf1), u),
		v,
	)
}

func perlinPoint3(seed int32, x, y, z float32) float32 {
	xs := floor32(x)
	ys := floor32(y)
	zs := floor32(z)

	x0 := int32(xs) * primeX
	y0 := int32(ys) * primeY
	z0 := int32(zs) * primeZ
	x1 := x0 + primeX
	y1 := y0 + primeY
	z1 := z0 + primeZ

	xf0 := x - xs
	yf0 := y - ys
	zf0 := z - zs
	xf1 := xf0 - 1
	yf1 := yf0 - 1
	zf1 := zf0 - 1

	u := quintic(xf0)
	v := quintic(yf0)
	w := quintic(zf0)

	return perlin3Scale * lerp(
		lerp(
			lerp(grad3(hash3(seed, x0, y0, z0), xf0, yf0, zf0), grad3(hash3(seed, x1, y0, z0), xf1, yf0, zf0), u),
			lerp(grad3(hash3(seed, x0, y1, z0), xf0, yf1, zf0), grad3(hash3(seed, x1, y1, z0), xf1, yf1, zf0), u),
			v,
		),
		lerp(
			lerp(grad3(hash3(seed, x0, y0, z1), xf0, yf0, zf1), grad3(hash3(seed, x1, y0, z1), xf1, yf0, zf1), u),
			lerp(grad3(hash3(seed, x0, y1, z1), xf0, yf1, zf1), grad3(hash3(seed, x1, y1, z1), xf1, yf1, zf1), u),
			v,
		),
		w,
	)
}
