package noise

// Fractal Brownian motion: octave i samples the source at coordinates scaled
// by lacunarity^i and weights it by scale*gain^i.

func fbm1[V Lanes](e *evaluator[V], n *Node, x V) V {
	s := n.settings.(FbmSettings)
	var sum V
	amplitude := s.Scale
	for i := uint32(0); i < s.Octaves; i++ {
		sum = lanesAdd(sum, lanesScale(e.eval1(s.Source, x), amplitude))
		x = lanesScale(x, s.Lacunarity)
		amplitude *= s.Gain
	}
	return sum
}

func fbm2[V Lanes](e *evaluator[V], n *Node, x, y V) V {
	s := n.settings.(FbmSettings)
	var sum V
	amplitude := s.Scale
	for i := uint32(0); i < s.Octaves; i++ {
		sum = lanesAdd(sum, lanesScale(e.eval2(s.Source, x, y), amplitude))
		x = lanesScale(x, s.Lacunarity)
		y = lanesScale(y, s.Lacunarity)
		amplitude *= s.Gain
	}
	return sum
}

func fbm3[V Lanes](e *evaluator[V], n *Node, x, y, z V) V {
	s := n.settings.(FbmSettings)
	var sum V
	amplitude := s.Scale
	for i := uint32(0); i < s.Octaves; i++ {
		sum = lanesAdd(sum, lanesScale(e.eval3(s.Source, x, y, z), amplitude))
		x = lanesScale(x, s.Lacunarity)
		y = lanesScale(y, s.Lacunarity)
		z = lanesScale(z, s.Lacunarity)
		amplitude *= s.Gain
	}
	return sum
}
