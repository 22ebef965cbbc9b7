package terrain

import "fmt"

// ChunkCoord identifies a chunk in global chunk space. Block coordinates of
// the chunk start at Coord * size on every axis.
type ChunkCoord struct {
	X int
	Y int
	Z int
}

func (c ChunkCoord) String() string {
	return fmt.Sprintf("(%d,%d,%d)", c.X, c.Y, c.Z)
}

// Origin returns the global block coordinate of the chunk's lowest corner.
func (c ChunkCoord) Origin(size int) (x, y, z int) {
	return c.X * size, c.Y * size, c.Z * size
}

// Chunk stores a cube of blocks. A chunk made of one block type keeps only
// that block until it is modified. Dense storage is ordered x fastest, then y,
// then z, matching the layout of noise.Tree.Generate3D.
type Chunk struct {
	Coord   ChunkCoord
	size    int
	blocks  []Block
	uniform Block
}

// NewChunk returns a chunk filled with air.
func NewChunk(coord ChunkCoord, size int) *Chunk {
	return newUniformChunk(coord, size, Air)
}

func newChunk(coord ChunkCoord, size int) *Chunk {
	return &Chunk{Coord: coord, size: size, blocks: make([]Block, size*size*size)}
}

func newUniformChunk(coord ChunkCoord, size int, block Block) *Chunk {
	return &Chunk{Coord: coord, size: size, uniform: block}
}

// Size is the number of blocks along each edge.
func (c *Chunk) Size() int { return c.size }

func (c *Chunk) index(x, y, z int) int {
	return (z*c.size+y)*c.size + x
}

func (c *Chunk) inside(x, y, z int) bool {
	return x >= 0 && y >= 0 && z >= 0 && x < c.size && y < c.size && z < c.size
}

// Block returns the block at local coordinates. ok is false outside the chunk.
func (c *Chunk) Block(x, y, z int) (Block, bool) {
	if !c.inside(x, y, z) {
		return Air, false
	}
	if c.blocks == nil {
		return c.uniform, true
	}
	return c.blocks[c.index(x, y, z)], true
}

// SetBlock stores block at local coordinates, expanding a uniform chunk.
func (c *Chunk) SetBlock(x, y, z int, block Block) bool {
	if !c.inside(x, y, z) {
		return false
	}
	if c.blocks == nil {
		if block == c.uniform {
			return true
		}
		c.blocks = make([]Block, c.size*c.size*c.size)
		for i := range c.blocks {
			c.blocks[i] = c.uniform
		}
	}
	c.blocks[c.index(x, y, z)] = block
	return true
}

// Uniform reports the single block filling the chunk, if there is one.
func (c *Chunk) Uniform() (Block, bool) {
	if c.blocks == nil {
		return c.uniform, true
	}
	return Air, false
}

// compact drops dense storage when every block is the same.
func (c *Chunk) compact() {
	if c.blocks == nil || len(c.blocks) == 0 {
		return
	}
	first := c.blocks[0]
	for _, b := range c.blocks[1:] {
		if b != first {
			return
		}
	}
	c.blocks = nil
	c.uniform = first
}

// ForEachBlock iterates over non-air blocks in storage order, invoking fn with
// local coordinates. Iteration stops when fn returns false.
func (c *Chunk) ForEachBlock(fn func(x, y, z int, block Block) bool) {
	if c.blocks == nil && c.uniform == Air {
		return
	}
	for z := 0; z < c.size; z++ {
		for y := 0; y < c.size; y++ {
			for x := 0; x < c.size; x++ {
				block := c.uniform
				if c.blocks != nil {
					block = c.blocks[c.index(x, y, z)]
				}
				if block == Air {
					continue
				}
				if !fn(x, y, z, block) {
					return
				}
			}
		}
	}
}

// Counts tallies every block type in the chunk, air included.
func (c *Chunk) Counts() map[Block]int {
	counts := make(map[Block]int)
	if c.blocks == nil {
		if c.size > 0 {
			counts[c.uniform] = c.size * c.size * c.size
		}
		return counts
	}
	for _, b := range c.blocks {
		counts[b]++
	}
	return counts
}
