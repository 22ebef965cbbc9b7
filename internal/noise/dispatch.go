package noise

import (
	"fmt"
	"sync"

	"voxelnoise/internal/simd"
)

// kernels holds the three entry points of one node kind at one lane width.
type kernels[V Lanes] struct {
	eval1 func(e *evaluator[V], n *Node, x V) V
	eval2 func(e *evaluator[V], n *Node, x, y V) V
	eval3 func(e *evaluator[V], n *Node, x, y, z V) V
}

type dispatchTable[V Lanes] [kindCount]kernels[V]

func newDispatchTable[V Lanes]() *dispatchTable[V] {
	return &dispatchTable[V]{
		KindConstant: {constant1[V], constant2[V], constant3[V]},
		KindPerlin:   {perlin1[V], perlin2[V], perlin3[V]},
		KindSimplex:  {simplex1[V], simplex2[V], simplex3[V]},
		KindFbm:      {fbm1[V], fbm2[V], fbm3[V]},
		KindAddNoise: {add1[V], add2[V], add3[V]},
		KindAddValue: {addValue1[V], addValue2[V], addValue3[V]},
		KindMulValue: {mulValue1[V], mulValue2[V], mulValue3[V]},
		KindMinNoise: {min1[V], min2[V], min3[V]},
		KindMaxNoise: {max1[V], max2[V], max3[V]},
		KindClamp:    {clamp1[V], clamp2[V], clamp3[V]},
		KindSquare:   {square1[V], square2[V], square3[V]},
		KindAbs:      {abs1[V], abs2[V], abs3[V]},
		KindLerp:     {lerp1[V], lerp2[V], lerp3[V]},
		KindRange:    {range1[V], range2[V], range3[V]},
	}
}

// evaluator walks one tree with one dispatch table. Children are reached
// through the table row of their kind, so a tree walk never switches on the
// settings type.
type evaluator[V Lanes] struct {
	nodes []Node
	table *dispatchTable[V]
}

func (e *evaluator[V]) eval1(i NodeIndex, x V) V {
	n := &e.nodes[i]
	return e.table[n.kind].eval1(e, n, x)
}

func (e *evaluator[V]) eval2(i NodeIndex, x, y V) V {
	n := &e.nodes[i]
	return e.table[n.kind].eval2(e, n, x, y)
}

func (e *evaluator[V]) eval3(i NodeIndex, x, y, z V) V {
	n := &e.nodes[i]
	return e.table[n.kind].eval3(e, n, x, y, z)
}

// batchGenerator fills output buffers at one fixed lane width.
type batchGenerator interface {
	width() int
	generate1D(nodes []Node, start float32, count int) ([]float32, float32, float32)
	generate2D(nodes []Node, startX, startY float32, width, height int) ([]float32, float32, float32)
	generate3D(nodes []Node, startX, startY, startZ float32, width, height, depth int) ([]float32, float32, float32)
}

type laneGenerator[V Lanes] struct {
	table *dispatchTable[V]
}

func newLaneGenerator[V Lanes]() batchGenerator {
	return &laneGenerator[V]{table: newDispatchTable[V]()}
}

func (g *laneGenerator[V]) width() int {
	var v V
	return len(v)
}

// One generator per width, each built on first use.
var (
	generatorX1  = sync.OnceValue(newLaneGenerator[[1]float32])
	generatorX4  = sync.OnceValue(newLaneGenerator[[4]float32])
	generatorX8  = sync.OnceValue(newLaneGenerator[[8]float32])
	generatorX16 = sync.OnceValue(newLaneGenerator[[16]float32])
)

func generatorFor(width int) batchGenerator {
	switch width {
	case 1:
		return generatorX1()
	case 4:
		return generatorX4()
	case 8:
		return generatorX8()
	case 16:
		return generatorX16()
	}
	panic(fmt.Sprintf("noise: no kernels for lane width %d", width))
}

var selectedSampler = sync.OnceValue(func() Sampler {
	return NewSampler(simd.Selected())
})

// Sampler runs trees at the lane width of one simd target. Most callers use
// the Tree methods, which go through the process-wide selected target.
type Sampler struct {
	target simd.Target
	gen    batchGenerator
}

// NewSampler returns a sampler for target. The kernels are portable Go, so
// any known target works on any host; only the batch width changes.
func NewSampler(target simd.Target) Sampler {
	return Sampler{target: target, gen: generatorFor(target.Width)}
}

func (s Sampler) Target() simd.Target { return s.target }

func (s Sampler) Generate1D(t *Tree, start float32, count int) ([]float32, float32, float32) {
	return s.gen.generate1D(t.nodes, start, count)
}

func (s Sampler) Generate2D(t *Tree, startX, startY float32, width, height int) ([]float32, float32, float32) {
	return s.gen.generate2D(t.nodes, startX, startY, width, height)
}

func (s Sampler) Generate3D(t *Tree, startX, startY, startZ float32, width, height, depth int) ([]float32, float32, float32) {
	return s.gen.generate3D(t.nodes, startX, startY, startZ, width, height, depth)
}
