package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"path/filepath"
	"slices"
	"time"

	"voxelnoise/internal/config"
	"voxelnoise/internal/preview"
	"voxelnoise/internal/simd"
	"voxelnoise/internal/terrain"
)

type regionSummary struct {
	target   simd.Target
	chunks   int
	uniform  int
	blocks   map[terrain.Block]int
	previews []string
	elapsed  time.Duration
}

func run(ctx context.Context, cfg *config.Config, logger *log.Logger) (*regionSummary, error) {
	target, err := simd.Configure(cfg.Noise.Target)
	if err != nil {
		return nil, fmt.Errorf("select simd target: %w", err)
	}
	logger.Printf("simd target %s (%d lanes)", target.Name, target.Width)

	gen := terrain.NewGenerator(cfg.Terrain, logger)
	coords := terrain.RegionCoords(cfg.Region)

	start := time.Now()
	chunks, err := gen.GenerateRegion(ctx, coords)
	if err != nil {
		return nil, err
	}

	summary := &regionSummary{
		target:  target,
		chunks:  len(chunks),
		blocks:  make(map[terrain.Block]int),
		elapsed: time.Since(start),
	}
	for _, chunk := range chunks {
		if _, ok := chunk.Uniform(); ok {
			summary.uniform++
		}
		for block, n := range chunk.Counts() {
			summary.blocks[block] += n
		}
	}

	if cfg.Output.Previews {
		paths, err := writePreviews(cfg, gen, chunks)
		if err != nil {
			return nil, err
		}
		summary.previews = paths
		logger.Printf("wrote %d previews to %s", len(paths), cfg.Output.PreviewDir)
	}
	return summary, nil
}

// writePreviews renders the continent and height maps covering the region,
// plus one isometric image per chunk that is not uniform.
func writePreviews(cfg *config.Config, gen *terrain.Generator, chunks []*terrain.Chunk) ([]string, error) {
	size := cfg.Terrain.ChunkSize
	x, z := cfg.Region.Origin.X*size, cfg.Region.Origin.Z*size
	width, depth := cfg.Region.Chunks.X*size, cfg.Region.Chunks.Z*size
	dir := cfg.Output.PreviewDir

	maps := []struct {
		name   string
		sample func(x, z, width, depth int) ([]float32, float32, float32)
	}{
		{name: "continents", sample: gen.ContinentMap},
		{name: "height", sample: gen.HeightMap},
	}

	var paths []string
	for _, m := range maps {
		values, lo, hi := m.sample(x, z, width, depth)
		path := filepath.Join(dir, m.name+".png")
		label := fmt.Sprintf("%s [%.3f, %.3f]", m.name, lo, hi)
		if err := preview.SaveField(values, width, depth, lo, hi, label, path); err != nil {
			return nil, fmt.Errorf("write %s preview: %w", m.name, err)
		}
		paths = append(paths, path)
	}

	for _, chunk := range chunks {
		if _, ok := chunk.Uniform(); ok {
			continue
		}
		path, err := preview.SaveChunk(chunk, dir)
		if err != nil {
			return nil, fmt.Errorf("write chunk %v preview: %w", chunk.Coord, err)
		}
		paths = append(paths, path)
	}
	return paths, nil
}

func (s *regionSummary) print(w io.Writer) {
	fmt.Fprintln(w, "== Terrain Generation ==")
	fmt.Fprintf(w, "SIMD target: %s (%d lanes)\n", s.target.Name, s.target.Width)
	fmt.Fprintf(w, "Chunks: %d (%d uniform)\n", s.chunks, s.uniform)
	fmt.Fprintf(w, "Wall clock duration: %s\n", s.elapsed)

	blocks := make([]terrain.Block, 0, len(s.blocks))
	for block := range s.blocks {
		blocks = append(blocks, block)
	}
	slices.Sort(blocks)
	for _, block := range blocks {
		fmt.Fprintf(w, "  %-10s %d\n", block, s.blocks[block])
	}
	if len(s.previews) > 0 {
		fmt.Fprintf(w, "Previews written: %d\n", len(s.previews))
	}
}
