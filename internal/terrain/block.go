package terrain

// Block is the material stored at one voxel of a chunk.
type Block uint8

const (
	Air Block = iota
	Grass
	Dirt
	Stone
	Sand
	Water
	DeepWater
	blockCount
)

var blockNames = [blockCount]string{
	Air:       "air",
	Grass:     "grass",
	Dirt:      "dirt",
	Stone:     "stone",
	Sand:      "sand",
	Water:     "water",
	DeepWater: "deep_water",
}

func (b Block) String() string {
	if b < blockCount {
		return blockNames[b]
	}
	return "unknown"
}

// IsLiquid reports whether caves must leave the block in place.
func (b Block) IsLiquid() bool {
	return b == Water || b == DeepWater
}

func (b Block) IsSolid() bool {
	return b != Air && !b.IsLiquid() && b < blockCount
}

// Appearance captures visual styling for a block material.
type Appearance struct {
	Material string
	Color    string
}

// DefaultAppearances enumerates the built-in block visuals used by previews.
var DefaultAppearances = map[Block]Appearance{
	Grass:     {Material: "grass", Color: "#5d9b3d"},
	Dirt:      {Material: "dirt", Color: "#8b5a2b"},
	Stone:     {Material: "stone", Color: "#7d7d7d"},
	Sand:      {Material: "sand", Color: "#dbcf8e"},
	Water:     {Material: "water", Color: "#3f76e4"},
	DeepWater: {Material: "deep_water", Color: "#2b4f9e"},
}

// Color returns the hex color of the block, or "" for air and unknown blocks.
func (b Block) Color() string {
	return DefaultAppearances[b].Color
}
