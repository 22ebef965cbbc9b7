package noise

// NodeIndex is the position of a node inside the tree that owns it. It is a
// relation, never a pointer: the same index means different nodes in
// different trees.
type NodeIndex uint32

// Kind identifies the operation a node performs. It doubles as the row of
// the dispatch table the node's kernels live in.
type Kind uint8

const (
	KindConstant Kind = iota
	KindPerlin
	KindSimplex
	KindFbm
	KindAddNoise
	KindAddValue
	KindMulValue
	KindMinNoise
	KindMaxNoise
	KindClamp
	KindSquare
	KindAbs
	KindLerp
	KindRange

	kindCount
)

var kindNames = [kindCount]string{
	KindConstant: "constant",
	KindPerlin:   "perlin",
	KindSimplex:  "simplex",
	KindFbm:      "fbm",
	KindAddNoise: "add",
	KindAddValue: "add_value",
	KindMulValue: "mul_value",
	KindMinNoise: "min",
	KindMaxNoise: "max",
	KindClamp:    "clamp",
	KindSquare:   "square",
	KindAbs:      "abs",
	KindLerp:     "lerp",
	KindRange:    "range",
}

func (k Kind) String() string {
	if k < kindCount {
		return kindNames[k]
	}
	return "unknown"
}

// Settings is the closed set of node parameter blocks. Only the types in
// this file implement it.
type Settings interface {
	Kind() Kind
	// Children lists the nodes this node reads from.
	Children() []NodeIndex
	// shift returns a copy whose child indices are moved by offset. Used when
	// one arena is appended after another.
	shift(offset NodeIndex) Settings
}

type ConstantSettings struct {
	Value float32
}

type PerlinSettings struct {
	Seed       int32
	FrequencyX float32
	FrequencyY float32
	FrequencyZ float32
}

type SimplexSettings struct {
	Seed       int32
	FrequencyX float32
	FrequencyY float32
	FrequencyZ float32
}

// FbmSettings layers Octaves copies of Source. Gain multiplies the amplitude and
// Lacunarity the coordinates of each successive octave; Scale is the
// amplitude of the first one.
type FbmSettings struct {
	Octaves    uint32
	Gain       float32
	Lacunarity float32
	Scale      float32
	Source     NodeIndex
}

type AddNoiseSettings struct {
	Left  NodeIndex
	Right NodeIndex
}

type AddValueSettings struct {
	Value  float32
	Source NodeIndex
}

type MulValueSettings struct {
	Value  float32
	Source NodeIndex
}

type MinNoiseSettings struct {
	Left  NodeIndex
	Right NodeIndex
}

type MaxNoiseSettings struct {
	Left  NodeIndex
	Right NodeIndex
}

type ClampSettings struct {
	Min    float32
	Max    float32
	Source NodeIndex
}

type SquareSettings struct {
	Source NodeIndex
}

type AbsSettings struct {
	Source NodeIndex
}

// LerpSettings blends LowSource into HighSource as Selector goes from -1 to 1.
type LerpSettings struct {
	Selector   NodeIndex
	LowSource  NodeIndex
	HighSource NodeIndex
}

// RangeSettings picks LowSource below Low, HighSource above High and blends the two
// linearly in between.
type RangeSettings struct {
	Low        float32
	High       float32
	Selector   NodeIndex
	LowSource  NodeIndex
	HighSource NodeIndex
}

func (ConstantSettings) Kind() Kind { return KindConstant }
func (PerlinSettings) Kind() Kind   { return KindPerlin }
func (SimplexSettings) Kind() Kind  { return KindSimplex }
func (FbmSettings) Kind() Kind      { return KindFbm }
func (AddNoiseSettings) Kind() Kind { return KindAddNoise }
func (AddValueSettings) Kind() Kind { return KindAddValue }
func (MulValueSettings) Kind() Kind { return KindMulValue }
func (MinNoiseSettings) Kind() Kind { return KindMinNoise }
func (MaxNoiseSettings) Kind() Kind { return KindMaxNoise }
func (ClampSettings) Kind() Kind    { return KindClamp }
func (SquareSettings) Kind() Kind   { return KindSquare }
func (AbsSettings) Kind() Kind      { return KindAbs }
func (LerpSettings) Kind() Kind     { return KindLerp }
func (RangeSettings) Kind() Kind    { return KindRange }

func (ConstantSettings) Children() []NodeIndex   { return nil }
func (PerlinSettings) Children() []NodeIndex     { return nil }
func (SimplexSettings) Children() []NodeIndex    { return nil }
func (s FbmSettings) Children() []NodeIndex      { return []NodeIndex{s.Source} }
func (s AddNoiseSettings) Children() []NodeIndex { return []NodeIndex{s.Left, s.Right} }
func (s AddValueSettings) Children() []NodeIndex { return []NodeIndex{s.Source} }
func (s MulValueSettings) Children() []NodeIndex { return []NodeIndex{s.Source} }
func (s MinNoiseSettings) Children() []NodeIndex { return []NodeIndex{s.Left, s.Right} }
func (s MaxNoiseSettings) Children() []NodeIndex { return []NodeIndex{s.Left, s.Right} }
func (s ClampSettings) Children() []NodeIndex    { return []NodeIndex{s.Source} }
func (s SquareSettings) Children() []NodeIndex   { return []NodeIndex{s.Source} }
func (s AbsSettings) Children() []NodeIndex      { return []NodeIndex{s.Source} }
func (s LerpSettings) Children() []NodeIndex {
	return []NodeIndex{s.Selector, s.LowSource, s.HighSource}
}
func (s RangeSettings) Children() []NodeIndex {
	return []NodeIndex{s.Selector, s.LowSource, s.HighSource}
}

func (s ConstantSettings) shift(NodeIndex) Settings { return s }
func (s PerlinSettings) shift(NodeIndex) Settings   { return s }
func (s SimplexSettings) shift(NodeIndex) Settings  { return s }

func (s FbmSettings) shift(offset NodeIndex) Settings {
	s.Source += offset
	return s
}

func (s AddNoiseSettings) shift(offset NodeIndex) Settings {
	s.Left += offset
	s.Right += offset
	return s
}

func (s AddValueSettings) shift(offset NodeIndex) Settings {
	s.Source += offset
	return s
}

func (s MulValueSettings) shift(offset NodeIndex) Settings {
	s.Source += offset
	return s
}

func (s MinNoiseSettings) shift(offset NodeIndex) Settings {
	s.Left += offset
	s.Right += offset
	return s
}

func (s MaxNoiseSettings) shift(offset NodeIndex) Settings {
	s.Left += offset
	s.Right += offset
	return s
}

func (s ClampSettings) shift(offset NodeIndex) Settings {
	s.Source += offset
	return s
}

func (s SquareSettings) shift(offset NodeIndex) Settings {
	s.Source += offset
	return s
}

func (s AbsSettings) shift(offset NodeIndex) Settings {
	s.Source += offset
	return s
}

func (s LerpSettings) shift(offset NodeIndex) Settings {
	s.Selector += offset
	s.LowSource += offset
	s.HighSource += offset
	return s
}

func (s RangeSettings) shift(offset NodeIndex) Settings {
	s.Selector += offset
	s.LowSource += offset
	s.HighSource += offset
	return s
}
