package noise

func constant1[V Lanes](_ *evaluator[V], n *Node, _ V) V {
	return splat[V](n.settings.(ConstantSettings).Value)
}

func constant2[V Lanes](_ *evaluator[V], n *Node, _, _ V) V {
	return splat[V](n.settings.(ConstantSettings).Value)
}

func constant3[V Lanes](_ *evaluator[V], n *Node, _, _, _ V) V {
	return splat[V](n.settings.(ConstantSettings).Value)
}
