package noise

func lerp1[V Lanes](e *evaluator[V], n *Node, x V) V {
	s := n.settings.(LerpSettings)
	return lanesLerp(e.eval1(s.Selector, x), e.eval1(s.LowSource, x), e.eval1(s.HighSource, x))
}

func lerp2[V Lanes](e *evaluator[V], n *Node, x, y V) V {
	s := n.settings.(LerpSettings)
	return lanesLerp(e.eval2(s.Selector, x, y), e.eval2(s.LowSource, x, y), e.eval2(s.HighSource, x, y))
}

func lerp3[V Lanes](e *evaluator[V], n *Node, x, y, z V) V {
	s := n.settings.(LerpSettings)
	return lanesLerp(
		e.eval3(s.Selector, x, y, z),
		e.eval3(s.LowSource, x, y, z),
		e.eval3(s.HighSource, x, y, z),
	)
}

// The range kernels evaluate both sources for the whole batch. Lanes in a
// batch can fall on either side of the bounds, so neither can be skipped.

func range1[V Lanes](e *evaluator[V], n *Node, x V) V {
	s := n.settings.(RangeSettings)
	return lanesRange(e.eval1(s.Selector, x), e.eval1(s.LowSource, x), e.eval1(s.HighSource, x), s.Low, s.High)
}

func range2[V Lanes](e *evaluator[V], n *Node, x, y V) V {
	s := n.settings.(RangeSettings)
	return lanesRange(e.eval2(s.Selector, x, y), e.eval2(s.LowSource, x, y), e.eval2(s.HighSource, x, y), s.Low, s.High)
}

func range3[V Lanes](e *evaluator[V], n *Node, x, y, z V) V {
	s := n.settings.(RangeSettings)
	return lanesRange(
		e.eval3(s.Selector, x, y, z),
		e.eval3(s.LowSource, x, y, z),
		e.eval3(s.HighSource, x, y, z),
		s.Low, s.High,
	)
}
