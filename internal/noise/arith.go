package noise

// Pointwise combinators. Each evaluates its children at the same coordinates
// and combines the results lane by lane.

func add1[V Lanes](e *evaluator[V], n *Node, x V) V {
	s := n.settings.(AddNoiseSettings)
	return lanesAdd(e.eval1(s.Left, x), e.eval1(s.Right, x))
}

func add2[V Lanes](e *evaluator[V], n *Node, x, y V) V {
	s := n.settings.(AddNoiseSettings)
	return lanesAdd(e.eval2(s.Left, x, y), e.eval2(s.Right, x, y))
}

func add3[V Lanes](e *evaluator[V], n *Node, x, y, z V) V {
	s := n.settings.(AddNoiseSettings)
	return lanesAdd(e.eval3(s.Left, x, y, z), e.eval3(s.Right, x, y, z))
}

func addValue1[V Lanes](e *evaluator[V], n *Node, x V) V {
	s := n.settings.(AddValueSettings)
	return lanesAddScalar(e.eval1(s.Source, x), s.Value)
}

func addValue2[V Lanes](e *evaluator[V], n *Node, x, y V) V {
	s := n.settings.(AddValueSettings)
	return lanesAddScalar(e.eval2(s.Source, x, y), s.Value)
}

func addValue3[V Lanes](e *evaluator[V], n *Node, x, y, z V) V {
	s := n.settings.(AddValueSettings)
	return lanesAddScalar(e.eval3(s.Source, x, y, z), s.Value)
}

func mulValue1[V Lanes](e *evaluator[V], n *Node, x V) V {
	s := n.settings.(MulValueSettings)
	return lanesScale(e.eval1(s.Source, x), s.Value)
}

func mulValue2[V Lanes](e *evaluator[V], n *Node, x, y V) V {
	s := n.settings.(MulValueSettings)
	return lanesScale(e.eval2(s.Source, x, y), s.Value)
}

func mulValue3[V Lanes](e *evaluator[V], n *Node, x, y, z V) V {
	s := n.settings.(MulValueSettings)
	return lanesScale(e.eval3(s.Source, x, y, z), s.Value)
}

func min1[V Lanes](e *evaluator[V], n *Node, x V) V {
	s := n.settings.(MinNoiseSettings)
	return lanesMin(e.eval1(s.Left, x), e.eval1(s.Right, x))
}

func min2[V Lanes](e *evaluator[V], n *Node, x, y V) V {
	s := n.settings.(MinNoiseSettings)
	return lanesMin(e.eval2(s.Left, x, y), e.eval2(s.Right, x, y))
}

func min3[V Lanes](e *evaluator[V], n *Node, x, y, z V) V {
	s := n.settings.(MinNoiseSettings)
	return lanesMin(e.eval3(s.Left, x, y, z), e.eval3(s.Right, x, y, z))
}

func max1[V Lanes](e *evaluator[V], n *Node, x V) V {
	s := n.settings.(MaxNoiseSettings)
	return lanesMax(e.eval1(s.Left, x), e.eval1(s.Right, x))
}

func max2[V Lanes](e *evaluator[V], n *Node, x, y V) V {
	s := n.settings.(MaxNoiseSettings)
	return lanesMax(e.eval2(s.Left, x, y), e.eval2(s.Right, x, y))
}

func max3[V Lanes](e *evaluator[V], n *Node, x, y, z V) V {
	s := n.settings.(MaxNoiseSettings)
	return lanesMax(e.eval3(s.Left, x, y, z), e.eval3(s.Right, x, y, z))
}

func clamp1[V Lanes](e *evaluator[V], n *Node, x V) V {
	s := n.settings.(ClampSettings)
	return lanesClamp(e.eval1(s.Source, x), s.Min, s.Max)
}

func clamp2[V Lanes](e *evaluator[V], n *Node, x, y V) V {
	s := n.settings.(ClampSettings)
	return lanesClamp(e.eval2(s.Source, x, y), s.Min, s.Max)
}

func clamp3[V Lanes](e *evaluator[V], n *Node, x, y, z V) V {
	s := n.settings.(ClampSettings)
	return lanesClamp(e.eval3(s.Source, x, y, z), s.Min, s.Max)
}

func square1[V Lanes](e *evaluator[V], n *Node, x V) V {
	return lanesSquare(e.eval1(n.settings.(SquareSettings).Source, x))
}

func square2[V Lanes](e *evaluator[V], n *Node, x, y V) V {
	return lanesSquare(e.eval2(n.settings.(SquareSettings).Source, x, y))
}

func square3[V Lanes](e *evaluator[V], n *Node, x, y, z V) V {
	return lanesSquare(e.eval3(n.settings.(SquareSettings).Source, x, y, z))
}

func abs1[V Lanes](e *evaluator[V], n *Node, x V) V {
	return lanesAbs(e.eval1(n.settings.(AbsSettings).Source, x))
}

func abs2[V Lanes](e *evaluator[V], n *Node, x, y V) V {
	return lanesAbs(e.eval2(n.settings.(AbsSettings).Source, x, y))
}

func abs3[V Lanes](e *evaluator[V], n *Node, x, y, z V) V {
	return lanesAbs(e.eval3(n.settings.(AbsSettings).Source, x, y, z))
}
