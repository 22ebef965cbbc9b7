package noise

import "math"

// Generate1D samples the tree at start, start+1, ... for count points and
// returns the values with their minimum and maximum. For an empty range the
// minimum is +MaxFloat32 and the maximum -MaxFloat32.
func (t *Tree) Generate1D(start float32, count int) ([]float32, float32, float32) {
	return selectedSampler().Generate1D(t, start, count)
}

// Generate2D samples a width x height grid of the horizontal plane. Values are
// stored row by row: index y*width + x.
func (t *Tree) Generate2D(startX, startY float32, width, height int) ([]float32, float32, float32) {
	return selectedSampler().Generate2D(t, startX, startY, width, height)
}

// Generate3D samples a width x height x depth grid. x varies fastest, then y,
// then z: index (z*height+y)*width + x.
func (t *Tree) Generate3D(startX, startY, startZ float32, width, height, depth int) ([]float32, float32, float32) {
	return selectedSampler().Generate3D(t, startX, startY, startZ, width, height, depth)
}

// The Builder variants sample an unfinished graph without consuming it.

func (b *Builder) Generate1D(start float32, count int) ([]float32, float32, float32) {
	b.mustBeLive()
	return selectedSampler().gen.generate1D(b.nodes, start, count)
}

func (b *Builder) Generate2D(startX, startY float32, width, height int) ([]float32, float32, float32) {
	b.mustBeLive()
	return selectedSampler().gen.generate2D(b.nodes, startX, startY, width, height)
}

func (b *Builder) Generate3D(startX, startY, startZ float32, width, height, depth int) ([]float32, float32, float32) {
	b.mustBeLive()
	return selectedSampler().gen.generate3D(b.nodes, startX, startY, startZ, width, height, depth)
}

func emptyBounds() (float32, float32) {
	return math.MaxFloat32, -math.MaxFloat32
}

func (g *laneGenerator[V]) generate1D(nodes []Node, start float32, count int) ([]float32, float32, float32) {
	lo, hi := emptyBounds()
	if count <= 0 {
		return []float32{}, lo, hi
	}
	values := make([]float32, count)
	e := &evaluator[V]{nodes: nodes, table: g.table}
	root := NodeIndex(len(nodes) - 1)

	lo, hi = g.row(values, start, count, lo, hi, func(x V) V {
		return e.eval1(root, x)
	})
	return values, lo, hi
}

func (g *laneGenerator[V]) generate2D(nodes []Node, startX, startY float32, width, height int) ([]float32, float32, float32) {
	lo, hi := emptyBounds()
	if width <= 0 || height <= 0 {
		return []float32{}, lo, hi
	}
	values := make([]float32, width*height)
	e := &evaluator[V]{nodes: nodes, table: g.table}
	root := NodeIndex(len(nodes) - 1)

	for y := 0; y < height; y++ {
		yv := splat[V](startY + float32(y))
		lo, hi = g.row(values[y*width:(y+1)*width], startX, width, lo, hi, func(x V) V {
			return e.eval2(root, x, yv)
		})
	}
	return values, lo, hi
}

func (g *laneGenerator[V]) generate3D(nodes []Node, startX, startY, startZ float32, width, height, depth int) ([]float32, float32, float32) {
	lo, hi := emptyBounds()
	if width <= 0 || height <= 0 || depth <= 0 {
		return []float32{}, lo, hi
	}
	values := make([]float32, width*height*depth)
	e := &evaluator[V]{nodes: nodes, table: g.table}
	root := NodeIndex(len(nodes) - 1)

	for z := 0; z < depth; z++ {
		zv := splat[V](startZ + float32(z))
		for y := 0; y < height; y++ {
			yv := splat[V](startY + float32(y))
			offset := (z*height + y) * width
			lo, hi = g.row(values[offset:offset+width], startX, width, lo, hi, func(x V) V {
				return e.eval3(root, x, yv, zv)
			})
		}
	}
	return values, lo, hi
}

// row fills dst with count samples along x. Lane i of the batch at offset
// base sits at start+base+i. The last batch may run past count; its extra
// lanes are computed and dropped.
func (g *laneGenerator[V]) row(dst []float32, start float32, count int, lo, hi float32, eval func(x V) V) (float32, float32) {
	var x V
	w := len(x)
	for base := 0; base < count; base += w {
		for i := 0; i < w; i++ {
			x[i] = start + float32(base+i)
		}
		out := eval(x)
		n := count - base
		if n > w {
			n = w
		}
		for i := 0; i < n; i++ {
			v := out[i]
			dst[base+i] = v
			if v < lo {
				lo = v
			}
			if v > hi {
				hi = v
			}
		}
	}
	return lo, hi
}
