// Package preview renders noise fields and generated chunks to PNG files.
package preview

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"math"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"voxelnoise/internal/terrain"
)

const (
	tileWidth    = 16
	tileHeight   = 8
	blockHeight  = 8
	ambientLight = 0.2
)

var background = color.NRGBA{R: 10, G: 10, B: 18, A: 255}

// Field renders a width x height field stored row by row as a grayscale
// image. lo maps to black and hi to white; a flat field renders mid gray.
func Field(values []float32, width, height int, lo, hi float32) (*image.Gray, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("invalid field dimensions %dx%d", width, height)
	}
	if len(values) != width*height {
		return nil, fmt.Errorf("field has %d values, want %d", len(values), width*height)
	}

	img := image.NewGray(image.Rect(0, 0, width, height))
	span := float64(hi) - float64(lo)
	for i, v := range values {
		level := 0.5
		if span > 0 {
			level = clamp((float64(v)-float64(lo))/span, 0, 1)
		}
		img.Pix[(i/width)*img.Stride+i%width] = uint8(math.Round(level * 255))
	}
	return img, nil
}

// SaveField writes the grayscale rendering of a field to path, captioned with
// label when it is not empty.
func SaveField(values []float32, width, height int, lo, hi float32, label, path string) error {
	img, err := Field(values, width, height, lo, hi)
	if err != nil {
		return err
	}
	if label != "" {
		Label(img, label)
	}
	if err := ensureDir(filepath.Dir(path)); err != nil {
		return err
	}
	return writePNG(path, img)
}

type blockSprite struct {
	x, y, z int
	block   terrain.Block
	screenX int
	screenY int
}

// Chunk renders an isometric view of a chunk with y pointing up.
func Chunk(chunk *terrain.Chunk) (*image.NRGBA, error) {
	if chunk == nil {
		return nil, errors.New("chunk is nil")
	}
	size := chunk.Size()
	if size <= 0 {
		return nil, fmt.Errorf("invalid chunk size %d", size)
	}

	width := size*tileWidth + tileWidth
	height := size*tileHeight + size*blockHeight + tileHeight
	img := image.NewNRGBA(image.Rect(0, 0, width, height))
	draw.Draw(img, img.Bounds(), &image.Uniform{background}, image.Point{}, draw.Src)

	sprites := collectSprites(chunk)
	// Back to front: far columns first, then bottom to top.
	slices.SortFunc(sprites, func(a, b blockSprite) int {
		if d := (a.x + a.z) - (b.x + b.z); d != 0 {
			return d
		}
		if d := a.y - b.y; d != 0 {
			return d
		}
		return a.x - b.x
	})

	offsetX := size*tileWidth/2 + tileWidth/2
	offsetY := size * blockHeight
	for _, s := range sprites {
		renderBlock(img, offsetX+s.screenX, offsetY+s.screenY, s.block)
	}
	return img, nil
}

// SaveChunk renders chunk into outputDir as chunk_<x>_<y>_<z>.png and returns
// the file path.
func SaveChunk(chunk *terrain.Chunk, outputDir string) (string, error) {
	img, err := Chunk(chunk)
	if err != nil {
		return "", err
	}
	if err := ensureDir(outputDir); err != nil {
		return "", err
	}
	c := chunk.Coord
	Label(img, c.String())
	path := filepath.Join(outputDir, fmt.Sprintf("chunk_%d_%d_%d.png", c.X, c.Y, c.Z))
	if err := writePNG(path, img); err != nil {
		return "", err
	}
	return path, nil
}

// Label draws text in the top-left corner of img, white over a dark shadow.
func Label(img draw.Image, text string) {
	for _, pass := range []struct {
		src    image.Image
		offset int
	}{{image.Black, 1}, {image.White, 0}} {
		d := &font.Drawer{
			Dst:  img,
			Src:  pass.src,
			Face: basicfont.Face7x13,
			Dot:  fixed.P(4+pass.offset, 13+pass.offset),
		}
		d.DrawString(text)
	}
}

func collectSprites(chunk *terrain.Chunk) []blockSprite {
	size := chunk.Size()
	sprites := make([]blockSprite, 0, max(size*size*size/4, 16))
	chunk.ForEachBlock(func(x, y, z int, block terrain.Block) bool {
		sprites = append(sprites, blockSprite{
			x:       x,
			y:       y,
			z:       z,
			block:   block,
			screenX: (x - z) * tileWidth / 2,
			screenY: (x+z)*tileHeight/2 - y*blockHeight,
		})
		return true
	})
	return sprites
}

func renderBlock(img *image.NRGBA, baseX, baseY int, block terrain.Block) {
	base := blockColor(block)
	top := applyLighting(base, ambientLight+0.8)
	left := applyLighting(base, ambientLight+0.55)
	right := applyLighting(base, ambientLight+0.4)

	const hw, hh = tileWidth / 2, tileHeight / 2
	roofY := baseY - blockHeight
	fillPolygon(img, []image.Point{
		{X: baseX - hw, Y: roofY + hh},
		{X: baseX, Y: roofY + tileHeight},
		{X: baseX, Y: baseY + tileHeight},
		{X: baseX - hw, Y: baseY + hh},
	}, left)
	fillPolygon(img, []image.Point{
		{X: baseX + hw, Y: roofY + hh},
		{X: baseX, Y: roofY + tileHeight},
		{X: baseX, Y: baseY + tileHeight},
		{X: baseX + hw, Y: baseY + hh},
	}, right)
	fillPolygon(img, []image.Point{
		{X: baseX, Y: roofY},
		{X: baseX + hw, Y: roofY + hh},
		{X: baseX, Y: roofY + tileHeight},
		{X: baseX - hw, Y: roofY + hh},
	}, top)
}

func blockColor(block terrain.Block) color.NRGBA {
	if col, ok := parseHexColor(block.Color()); ok {
		return col
	}
	return color.NRGBA{R: 128, G: 128, B: 128, A: 255}
}

func parseHexColor(value string) (color.NRGBA, bool) {
	hex := strings.TrimPrefix(strings.TrimSpace(value), "#")
	if len(hex) != 6 {
		return color.NRGBA{}, false
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return color.NRGBA{}, false
	}
	return color.NRGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 255}, true
}

func applyLighting(base color.NRGBA, factor float64) color.NRGBA {
	factor = clamp(factor, 0, 1)
	scale := func(c uint8) uint8 { return uint8(math.Round(float64(c) * factor)) }
	return color.NRGBA{R: scale(base.R), G: scale(base.G), B: scale(base.B), A: 255}
}

func clamp(value, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, value))
}

// fillPolygon scanline-fills a convex or concave polygon, clipped to img.
func fillPolygon(img *image.NRGBA, pts []image.Point, col color.NRGBA) {
	if len(pts) < 3 {
		return
	}
	bounds := img.Bounds()
	minY, maxY := pts[0].Y, pts[0].Y
	for _, p := range pts[1:] {
		minY = min(minY, p.Y)
		maxY = max(maxY, p.Y)
	}
	minY = max(minY, bounds.Min.Y)
	maxY = min(maxY, bounds.Max.Y-1)

	crossings := make([]int, 0, len(pts))
	for y := minY; y <= maxY; y++ {
		crossings = crossings[:0]
		for i, a := range pts {
			b := pts[(i+1)%len(pts)]
			if a.Y == b.Y || y < min(a.Y, b.Y) || y >= max(a.Y, b.Y) {
				continue
			}
			crossings = append(crossings, a.X+(y-a.Y)*(b.X-a.X)/(b.Y-a.Y))
		}
		slices.Sort(crossings)
		for i := 0; i+1 < len(crossings); i += 2 {
			from := max(crossings[i], bounds.Min.X)
			to := min(crossings[i+1], bounds.Max.X-1)
			for x := from; x <= to; x++ {
				img.SetNRGBA(x, y, col)
			}
		}
	}
}

func ensureDir(dir string) error {
	if dir == "" {
		return errors.New("output directory is empty")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create preview directory: %w", err)
	}
	return nil
}

func writePNG(path string, img image.Image) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create preview: %w", err)
	}
	if err := png.Encode(file, img); err != nil {
		file.Close()
		return fmt.Errorf("encode preview: %w", err)
	}
	if err := file.Close(); err != nil {
		return fmt.Errorf("close preview: %w", err)
	}
	return nil
}
