package noise

import (
	"errors"
	"fmt"
	"math"
	"slices"
)

// Construction errors. The builder reports misuse by panicking with an error
// wrapping one of these, so a caller that recovers can tell them apart with
// errors.Is.
var (
	ErrBuilderConsumed  = errors.New("noise builder already consumed")
	ErrForwardReference = errors.New("noise node reads a node that does not precede it")
	ErrInvalidParameter = errors.New("invalid noise parameter")
)

// Builder is an unfinished noise graph. Combinators take ownership of their
// operands: once a builder has been passed to one, or built, it is dead and
// any further use panics. Use Clone to keep a copy alive.
type Builder struct {
	nodes    []Node
	root     NodeIndex
	consumed bool
}

func leaf(s Settings) *Builder {
	return &Builder{nodes: []Node{newNode(s)}}
}

// Constant outputs value everywhere.
func Constant(value float32) *Builder {
	return leaf(ConstantSettings{Value: value})
}

// Perlin is gradient noise in [-1, 1] sampled at frequency on every axis.
func Perlin(frequency float32, seed int32) *Builder {
	return leaf(PerlinSettings{Seed: seed, FrequencyX: frequency, FrequencyY: frequency, FrequencyZ: frequency})
}

// Simplex is simplex noise in [-1, 1] sampled at frequency on every axis.
func Simplex(frequency float32, seed int32) *Builder {
	return leaf(SimplexSettings{Seed: seed, FrequencyX: frequency, FrequencyY: frequency, FrequencyZ: frequency})
}

// Len is the number of nodes in the builder's arena.
func (b *Builder) Len() int {
	b.mustBeLive()
	return len(b.nodes)
}

func (b *Builder) Root() NodeIndex {
	b.mustBeLive()
	return b.root
}

// Clone returns an independent copy of a live builder.
func (b *Builder) Clone() *Builder {
	b.mustBeLive()
	return &Builder{nodes: slices.Clone(b.nodes), root: b.root}
}

// Build consumes the builder and returns the finished tree.
func (b *Builder) Build() *Tree {
	return &Tree{nodes: b.take()}
}

func (b *Builder) String() string {
	if b == nil || b.consumed {
		return "<consumed>"
	}
	return describe(b.nodes)
}

// WithFrequency replaces the frequency of a bare Perlin or Simplex source with
// separate x, y and z frequencies. 2D sampling uses x and z.
func (b *Builder) WithFrequency(x, y, z float32) *Builder {
	nodes := b.take()
	if len(nodes) != 1 {
		panic(fmt.Errorf("with frequency on a %d node graph: %w", len(nodes), ErrInvalidParameter))
	}
	switch s := nodes[0].settings.(type) {
	case PerlinSettings:
		s.FrequencyX, s.FrequencyY, s.FrequencyZ = x, y, z
		nodes[0] = newNode(s)
	case SimplexSettings:
		s.FrequencyX, s.FrequencyY, s.FrequencyZ = x, y, z
		nodes[0] = newNode(s)
	default:
		panic(fmt.Errorf("with frequency on %s: %w", nodes[0].kind, ErrInvalidParameter))
	}
	return &Builder{nodes: nodes}
}

// Fbm sums octaves of the source. The amplitudes are normalised so that they
// add up to one.
func (b *Builder) Fbm(octaves uint32, gain, lacunarity float32) *Builder {
	total := float32(1)
	amplitude := gain
	for i := uint32(1); i < octaves; i++ {
		total += amplitude
		amplitude *= gain
	}
	scale := 1 / total
	if math.IsNaN(float64(scale)) || math.IsInf(float64(scale), 0) {
		panic(fmt.Errorf("fbm with %d octaves of gain %v has no finite scale: %w", octaves, gain, ErrInvalidParameter))
	}
	return b.FbmWithScale(octaves, gain, lacunarity, scale)
}

// FbmWithScale is Fbm with an explicit first-octave amplitude.
func (b *Builder) FbmWithScale(octaves uint32, gain, lacunarity, scale float32) *Builder {
	return b.unary(func(src NodeIndex) Settings {
		return FbmSettings{Octaves: octaves, Gain: gain, Lacunarity: lacunarity, Scale: scale, Source: src}
	})
}

func (b *Builder) AddValue(value float32) *Builder {
	return b.unary(func(src NodeIndex) Settings { return AddValueSettings{Value: value, Source: src} })
}

func (b *Builder) MulValue(value float32) *Builder {
	return b.unary(func(src NodeIndex) Settings { return MulValueSettings{Value: value, Source: src} })
}

// Clamp limits the output to [min, max].
func (b *Builder) Clamp(min, max float32) *Builder {
	if isNaN(min) || isNaN(max) || min > max {
		b.take()
		panic(fmt.Errorf("clamp to [%v, %v]: %w", min, max, ErrInvalidParameter))
	}
	return b.unary(func(src NodeIndex) Settings { return ClampSettings{Min: min, Max: max, Source: src} })
}

func (b *Builder) Square() *Builder {
	return b.unary(func(src NodeIndex) Settings { return SquareSettings{Source: src} })
}

func (b *Builder) Abs() *Builder {
	return b.unary(func(src NodeIndex) Settings { return AbsSettings{Source: src} })
}

// Add sums the outputs of b and other.
func (b *Builder) Add(other *Builder) *Builder {
	nodes, roots := merge(b, other)
	return finish(nodes, AddNoiseSettings{Left: roots[0], Right: roots[1]})
}

func (b *Builder) Min(other *Builder) *Builder {
	nodes, roots := merge(b, other)
	return finish(nodes, MinNoiseSettings{Left: roots[0], Right: roots[1]})
}

func (b *Builder) Max(other *Builder) *Builder {
	nodes, roots := merge(b, other)
	return finish(nodes, MaxNoiseSettings{Left: roots[0], Right: roots[1]})
}

// Lerp blends low into high as selector moves from -1 to 1. Selector values
// outside that interval extrapolate.
func Lerp(selector, low, high *Builder) *Builder {
	nodes, roots := merge(selector, low, high)
	return finish(nodes, LerpSettings{Selector: roots[0], LowSource: roots[1], HighSource: roots[2]})
}

// Range outputs lowSource where selector < low, highSource where
// selector > high and a linear blend of the two in between.
func Range(high, low float32, selector, lowSource, highSource *Builder) *Builder {
	if isNaN(low) || isNaN(high) || low > high {
		for _, op := range []*Builder{selector, lowSource, highSource} {
			if op != nil && !op.consumed {
				op.take()
			}
		}
		panic(fmt.Errorf("range over [%v, %v]: %w", low, high, ErrInvalidParameter))
	}
	nodes, roots := merge(selector, lowSource, highSource)
	return finish(nodes, RangeSettings{
		Low:        low,
		High:       high,
		Selector:   roots[0],
		LowSource:  roots[1],
		HighSource: roots[2],
	})
}

func (b *Builder) mustBeLive() {
	if b == nil {
		panic(fmt.Errorf("nil builder: %w", ErrBuilderConsumed))
	}
	if b.consumed {
		panic(fmt.Errorf("reusing builder: %w", ErrBuilderConsumed))
	}
}

// take marks b as consumed and hands over its arena.
func (b *Builder) take() []Node {
	b.mustBeLive()
	nodes := b.nodes
	b.nodes = nil
	b.consumed = true
	return nodes
}

func (b *Builder) unary(settings func(src NodeIndex) Settings) *Builder {
	b.mustBeLive()
	src := b.root
	nodes := append(b.take(), newNode(settings(src)))
	return &Builder{nodes: nodes, root: NodeIndex(len(nodes) - 1)}
}

// merge concatenates the operand arenas in order. Every arena after the first
// is shifted by the number of nodes before it. The returned roots are the
// shifted root of each operand.
func merge(operands ...*Builder) ([]Node, []NodeIndex) {
	total := 1
	for i, op := range operands {
		op.mustBeLive()
		for _, prev := range operands[:i] {
			if prev == op {
				panic(fmt.Errorf("builder passed twice to one combinator: %w", ErrBuilderConsumed))
			}
		}
		total += len(op.nodes)
	}

	nodes := make([]Node, 0, total)
	roots := make([]NodeIndex, len(operands))
	for i, op := range operands {
		offset := NodeIndex(len(nodes))
		roots[i] = op.root + offset
		for _, n := range op.take() {
			nodes = append(nodes, newNode(n.settings.shift(offset)))
		}
	}
	return nodes, roots
}

func finish(nodes []Node, s Settings) *Builder {
	nodes = append(nodes, newNode(s))
	if err := validate(nodes); err != nil {
		panic(fmt.Errorf("merging builders: %w", err))
	}
	return &Builder{nodes: nodes, root: NodeIndex(len(nodes) - 1)}
}

func isNaN(v float32) bool { return v != v }
