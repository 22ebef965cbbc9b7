package main

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"voxelnoise/internal/noise"
)

// workload is one benchmark graph together with the grid it is sampled on.
type workload struct {
	name     string
	build    func() *noise.Tree
	generate func(s noise.Sampler, t *noise.Tree) []float32
	points   int
}

var workloads = map[string]workload{
	"gradient_1d": {
		name:  "gradient_1d",
		build: func() *noise.Tree { return noise.Simplex(0.01, 0).Build() },
		generate: func(s noise.Sampler, t *noise.Tree) []float32 {
			values, _, _ := s.Generate1D(t, 0, 1_000_000)
			return values
		},
		points: 1_000_000,
	},
	"gradient_2d": {
		name:  "gradient_2d",
		build: func() *noise.Tree { return noise.Simplex(0.01, 0).Build() },
		generate: func(s noise.Sampler, t *noise.Tree) []float32 {
			values, _, _ := s.Generate2D(t, 0, 0, 1000, 1000)
			return values
		},
		points: 1000 * 1000,
	},
	"gradient_3d": {
		name:  "gradient_3d",
		build: func() *noise.Tree { return noise.Simplex(0.01, 0).Build() },
		generate: func(s noise.Sampler, t *noise.Tree) []float32 {
			values, _, _ := s.Generate3D(t, 0, 0, 0, 100, 100, 100)
			return values
		},
		points: 100 * 100 * 100,
	},
	"fbm_3d": {
		name:  "fbm_3d",
		build: buildTerrainShape,
		generate: func(s noise.Sampler, t *noise.Tree) []float32 {
			values, _, _ := s.Generate3D(t, 0, 0, 0, 16, 16, 16)
			return values
		},
		points: 16 * 16 * 16,
	},
	"add_3d": {
		name: "add_3d",
		build: func() *noise.Tree {
			return noise.Simplex(0.01, 0).Fbm(3, 1, 1).Add(noise.Simplex(0.01, 0).Fbm(3, 1, 1)).Build()
		},
		generate: func(s noise.Sampler, t *noise.Tree) []float32 {
			values, _, _ := s.Generate3D(t, 0, 0, 0, 100, 100, 100)
			return values
		},
		points: 100 * 100 * 100,
	},
}

// buildTerrainShape is the shape density used by the terrain generator.
func buildTerrainShape() *noise.Tree {
	const freq = 1.0 / 256
	high := noise.Perlin(freq, 2).WithFrequency(freq, freq, freq).Fbm(4, 0.5, 2)
	low := noise.Perlin(freq, 3).WithFrequency(freq, freq, freq).Fbm(4, 0.5, 2)
	return noise.Range(0.1, -0.1, noise.Perlin(0.01, 0).Fbm(8, 0.5, 2), low, high).MulValue(2).Build()
}

func workloadNames() []string {
	names := make([]string, 0, len(workloads))
	for name := range workloads {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// selectWorkloads resolves a comma separated list of workload names, or "all".
func selectWorkloads(list string) ([]workload, error) {
	if strings.TrimSpace(list) == "all" {
		list = strings.Join(workloadNames(), ",")
	}
	var selected []workload
	for _, name := range strings.Split(list, ",") {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		w, ok := workloads[name]
		if !ok {
			return nil, fmt.Errorf("unknown workload %q (have %s)", name, strings.Join(workloadNames(), ", "))
		}
		selected = append(selected, w)
	}
	if len(selected) == 0 {
		return nil, fmt.Errorf("no workloads selected")
	}
	return selected, nil
}

type profileResult struct {
	calls     int64
	points    int64
	totalCall time.Duration
	wall      time.Duration
}

func (r profileResult) pointsPerSecond() float64 {
	if r.wall <= 0 {
		return 0
	}
	return float64(r.points) / r.wall.Seconds()
}

func (r profileResult) averageCall() time.Duration {
	if r.calls == 0 {
		return 0
	}
	return r.totalCall / time.Duration(r.calls)
}

// profile issues requests generate calls of w across concurrency workers
// sharing one tree. Cancelling ctx stops handing out new calls.
func profile(ctx context.Context, s noise.Sampler, w workload, requests, concurrency int) profileResult {
	tree := w.build()

	jobs := make(chan struct{})
	go func() {
		defer close(jobs)
		for i := 0; i < requests; i++ {
			if ctx.Err() != nil {
				return
			}
			select {
			case <-ctx.Done():
				return
			case jobs <- struct{}{}:
			}
		}
	}()

	var (
		wg        sync.WaitGroup
		calls     atomic.Int64
		points    atomic.Int64
		totalCall atomic.Int64
	)
	worker := func() {
		defer wg.Done()
		for range jobs {
			start := time.Now()
			values := w.generate(s, tree)
			totalCall.Add(int64(time.Since(start)))
			calls.Add(1)
			points.Add(int64(len(values)))
		}
	}

	wg.Add(concurrency)
	startWall := time.Now()
	for i := 0; i < concurrency; i++ {
		go worker()
	}
	wg.Wait()

	return profileResult{
		calls:     calls.Load(),
		points:    points.Load(),
		totalCall: time.Duration(totalCall.Load()),
		wall:      time.Since(startWall),
	}
}
