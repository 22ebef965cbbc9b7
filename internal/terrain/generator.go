package terrain

import (
	"context"
	"fmt"
	"log"
	"runtime"
	"sync"

	"voxelnoise/internal/config"
	"voxelnoise/internal/noise"
)

// Carving fades out above this height so caves do not open into the sea.
const caveDecayPoint = -32

// Generator creates repeatable voxel terrain from four noise fields: a
// continent mask, a hill height factor, a 3D shape density and a cave field.
// The trees are built once and shared by every worker.
type Generator struct {
	cfg    config.TerrainConfig
	logger *log.Logger

	continents *noise.Tree
	height     *noise.Tree
	shape      *noise.Tree
	caves      *noise.Tree
}

func NewGenerator(cfg config.TerrainConfig, logger *log.Logger) *Generator {
	if logger == nil {
		logger = log.Default()
	}
	return &Generator{
		cfg:        cfg,
		logger:     logger,
		continents: continentField(cfg).Build(),
		height:     heightField(cfg).Build(),
		shape:      shapeField(cfg).Build(),
		caves:      caveField(cfg).Build(),
	}
}

// continentField is the land/sea mask, in [-0.1, 0.05]. Multiplied by the
// maximum height it gives the base height of the terrain in blocks.
func continentField(cfg config.TerrainConfig) *noise.Builder {
	f := float32(cfg.ContinentFrequency)
	return noise.Perlin(f, cfg.Seed).
		WithFrequency(f, 0, f).
		Fbm(6, 0.5, 2).
		// Shift up so less of the world is sea.
		AddValue(0.25).
		Clamp(-0.1, 0.05)
}

// heightField scales how quickly density falls off above the base height,
// in [0.5, 1.5]. Out at sea it flattens to 0.5.
func heightField(cfg config.TerrainConfig) *noise.Builder {
	f := float32(cfg.HeightFrequency)
	hills := noise.Perlin(f, cfg.Seed+1).
		WithFrequency(f, 0, f).
		Fbm(5, 0.5, 2).
		AddValue(0.5).
		Clamp(0, 1).
		AddValue(0.5)
	return noise.Range(0, -0.05, continentField(cfg), noise.Constant(0.5), hills)
}

// shapeField switches between two detail fields to create sudden changes in
// elevation.
func shapeField(cfg config.TerrainConfig) *noise.Builder {
	detail := float32(cfg.HeightFrequency / 2)
	high := noise.Perlin(detail, cfg.Seed+2).Fbm(4, 0.5, 2)
	low := noise.Perlin(detail, cfg.Seed+3).Fbm(4, 0.5, 2)

	f := float32(cfg.ShapeFrequency)
	selector := noise.Perlin(f, cfg.Seed+4).Fbm(8, 0.5, 2)
	return noise.Range(0.1, -0.1, selector, low, high).MulValue(2)
}

// caveField is near zero inside tunnels. Tunnels only exist where the
// continent mask is saturated, elsewhere the field is a constant 1.
func caveField(cfg config.TerrainConfig) *noise.Builder {
	f := float32(cfg.CaveFrequency)
	tunnel := func(seed int32) *noise.Builder {
		return noise.Perlin(f, seed).
			WithFrequency(f, 2*f, f).
			Fbm(3, 0.5, 2).
			Square()
	}
	return noise.Range(0.049, 0.049, continentField(cfg), noise.Constant(1), tunnel(cfg.Seed+5).Add(tunnel(cfg.Seed+6)))
}

// GenerateChunk builds the chunk at coord. Chunks entirely above the maximum
// terrain height, and chunks that come out as nothing but air, are returned
// as uniform air.
func (g *Generator) GenerateChunk(coord ChunkCoord) *Chunk {
	size := g.cfg.ChunkSize
	ox, oy, oz := coord.Origin(size)
	if oy > g.cfg.MaxHeight {
		return newUniformChunk(coord, size, Air)
	}

	chunk := g.generateTerrain(coord, ox, oy, oz)
	if b, ok := chunk.Uniform(); ok && b == Air {
		return chunk
	}
	g.carveCaves(chunk, ox, oy, oz)
	chunk.compact()
	return chunk
}

func (g *Generator) generateTerrain(coord ChunkCoord, ox, oy, oz int) *Chunk {
	size := g.cfg.ChunkSize
	span := size + g.cfg.SurfaceProbe

	shape, _, _ := g.shape.Generate3D(float32(ox), float32(oy), float32(oz), size, span, size)
	continents, _, _ := g.continents.Generate2D(float32(ox), float32(oz), size, size)
	heights, _, _ := g.height.Generate2D(float32(ox), float32(oz), size, size)

	maxHeight := float32(g.cfg.MaxHeight)
	// Density lost per block above the base height, chosen so the tallest
	// terrain factor reaches maxHeight.
	decrement := 1.5 / maxHeight

	chunk := newChunk(coord, size)
	column := make([]float32, span)
	for z := 0; z < size; z++ {
		for x := 0; x < size; x++ {
			base := continents[z*size+x] * maxHeight
			factor := heights[z*size+x]
			for y := 0; y < span; y++ {
				compression := (float32(oy+y) - base) * decrement / factor
				if compression < 0 {
					// Below the surface density grows faster.
					compression *= 3
				}
				column[y] = shape[(z*span+y)*size+x] - compression
			}
			for y, block := range layerColumn(column, size, oy, base) {
				chunk.blocks[chunk.index(x, y, z)] = block
			}
		}
	}
	chunk.compact()
	return chunk
}

// layerColumn turns one column of density samples into blocks. density is
// ordered bottom to top and extends past the chunk by the surface probe; only
// the first size entries become blocks. base is the continent height in
// blocks.
func layerColumn(density []float32, size, originY int, base float32) []Block {
	blocks := make([]Block, size)

	// Depth below the surface at the top of the chunk, read from the probe.
	layer := 0
	for y := size; y < len(density); y++ {
		if density[y] <= 0 {
			if originY+y <= 0 {
				layer = 1
			}
			break
		}
		layer++
	}

	for y := size - 1; y >= 0; y-- {
		height := originY + y
		if density[y] <= 0 {
			switch {
			case height == 0:
				blocks[y] = Water
				layer = 1
			case height < 0:
				blocks[y] = DeepWater
				layer = 1
			default:
				blocks[y] = Air
				layer = 0
			}
			continue
		}

		switch {
		case layer > 3:
			blocks[y] = Stone
		case height < 2 && base < 2:
			blocks[y] = Sand
		case layer < 1:
			blocks[y] = Grass
		case layer < 3:
			blocks[y] = Dirt
		default:
			blocks[y] = Stone
		}
		layer++
	}
	return blocks
}

func (g *Generator) carveCaves(chunk *Chunk, ox, oy, oz int) {
	size := chunk.size
	caves, _, _ := g.caves.Generate3D(float32(ox), float32(oy), float32(oz), size, size, size)
	if chunk.blocks == nil {
		// Uniform chunks are expanded only if a tunnel reaches them.
		fill := chunk.uniform
		chunk.blocks = make([]Block, size*size*size)
		for i := range chunk.blocks {
			chunk.blocks[i] = fill
		}
	}
	for i, density := range caves {
		y := oy + (i/size)%size
		density += float32(max(y-caveDecayPoint, 0)) / 64
		if density/2 < 0.001 && !chunk.blocks[i].IsLiquid() {
			chunk.blocks[i] = Air
		}
	}
}

// ContinentMap samples the continent mask over a width x depth block area
// starting at (x, z). It returns the values row by row with their bounds.
func (g *Generator) ContinentMap(x, z, width, depth int) ([]float32, float32, float32) {
	return g.continents.Generate2D(float32(x), float32(z), width, depth)
}

// HeightMap samples the terrain height factor over the same kind of area.
func (g *Generator) HeightMap(x, z, width, depth int) ([]float32, float32, float32) {
	return g.height.Generate2D(float32(x), float32(z), width, depth)
}

// RegionCoords lists the chunks of a region, x fastest, then z, then y.
func RegionCoords(region config.RegionConfig) []ChunkCoord {
	n := region.Chunks
	if n.X <= 0 || n.Y <= 0 || n.Z <= 0 {
		return nil
	}
	coords := make([]ChunkCoord, 0, n.X*n.Y*n.Z)
	for y := 0; y < n.Y; y++ {
		for z := 0; z < n.Z; z++ {
			for x := 0; x < n.X; x++ {
				coords = append(coords, ChunkCoord{
					X: region.Origin.X + x,
					Y: region.Origin.Y + y,
					Z: region.Origin.Z + z,
				})
			}
		}
	}
	return coords
}

// GenerateRegion generates every chunk in coords on a worker pool and returns
// them in the order given. Progress is logged in 10% steps. The first error,
// including a chunk exceeding the configured timeout, stops the run.
func (g *Generator) GenerateRegion(ctx context.Context, coords []ChunkCoord) ([]*Chunk, error) {
	total := len(coords)
	chunks := make([]*Chunk, total)
	if total == 0 {
		g.logger.Printf("region generation progress: 100%%")
		return chunks, nil
	}

	g.logger.Printf("region generation progress: 0%%")

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	type chunkResult struct {
		index int
		chunk *Chunk
		err   error
	}

	workers := g.workerCount(total)
	tasks := make(chan int, workers)
	results := make(chan chunkResult, workers)

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for index := range tasks {
				if err := ctx.Err(); err != nil {
					select {
					case results <- chunkResult{err: err}:
					default:
					}
					return
				}

				chunk, err := g.generateWithTimeout(ctx, coords[index])
				select {
				case results <- chunkResult{index: index, chunk: chunk, err: err}:
				case <-ctx.Done():
					return
				}
			}
		}()
	}

	go func() {
		wg.Wait()
		close(results)
	}()

	go func() {
		defer close(tasks)
		for i := range coords {
			select {
			case <-ctx.Done():
				return
			case tasks <- i:
			}
		}
	}()

	generated := 0
	nextLogPercent := 10
	for result := range results {
		if result.err != nil {
			cancel()
			return nil, result.err
		}
		chunks[result.index] = result.chunk

		generated++
		progress := generated * 100 / total
		if progress >= nextLogPercent {
			g.logger.Printf("region generation progress: %d%%", progress)
			nextLogPercent = (progress/10 + 1) * 10
		}
	}

	if generated < total {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		return nil, fmt.Errorf("region generation stopped after %d of %d chunks", generated, total)
	}
	return chunks, nil
}

// generateWithTimeout bounds a single chunk by the configured timeout. Noise
// evaluation cannot be interrupted, so a chunk that runs late finishes in the
// background and is discarded.
func (g *Generator) generateWithTimeout(ctx context.Context, coord ChunkCoord) (*Chunk, error) {
	timeout := g.cfg.ChunkTimeout.Duration()
	if timeout <= 0 {
		return g.GenerateChunk(coord), nil
	}

	chunkCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	done := make(chan *Chunk, 1)
	go func() {
		done <- g.GenerateChunk(coord)
	}()

	select {
	case chunk := <-done:
		return chunk, nil
	case <-chunkCtx.Done():
		return nil, fmt.Errorf("generate chunk %v: %w", coord, chunkCtx.Err())
	}
}

func (g *Generator) workerCount(total int) int {
	if total <= 0 {
		return 0
	}
	if g.cfg.Workers > 0 {
		return min(g.cfg.Workers, total)
	}
	workers := runtime.GOMAXPROCS(0) * 2
	if workers <= 0 {
		workers = 1
	}
	return min(workers, total)
}
