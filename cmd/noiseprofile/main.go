package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"runtime"
	"strings"
	"time"

	"voxelnoise/internal/noise"
	"voxelnoise/internal/simd"
)

func main() {
	var (
		workloadFlag = flag.String("workloads", "fbm_3d", "comma separated workloads to profile, or \"all\"")
		targetFlag   = flag.String("targets", "available", "comma separated simd targets, or \"available\" for every target the host supports")
		requests     = flag.Int("requests", 200, "generate calls per workload and target")
		concurrency  = flag.Int("concurrency", runtime.NumCPU(), "number of concurrent workers")
		budget       = flag.Duration("budget", 30*time.Second, "time limit per workload and target")
	)
	flag.Parse()

	if *requests <= 0 {
		fmt.Fprintln(os.Stderr, "requests must be positive")
		os.Exit(1)
	}
	if *concurrency <= 0 {
		fmt.Fprintln(os.Stderr, "concurrency must be positive")
		os.Exit(1)
	}

	selected, err := selectWorkloads(*workloadFlag)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	targets, err := selectTargets(*targetFlag, simd.HostCapabilities())
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	fmt.Println("== Noise Generation Profile ==")
	fmt.Printf("Requests: %d\n", *requests)
	fmt.Printf("Concurrency: %d\n", *concurrency)
	for _, w := range selected {
		fmt.Printf("\n-- %s (%d points per call) --\n", w.name, w.points)
		for _, target := range targets {
			ctx, cancel := context.WithTimeout(context.Background(), *budget)
			result := profile(ctx, noise.NewSampler(target), w, *requests, *concurrency)
			timedOut := ctx.Err() == context.DeadlineExceeded
			cancel()

			fmt.Printf("%-8s calls: %d, avg call: %s, wall: %s, throughput: %.2f Mpoints/s",
				target.Name, result.calls, result.averageCall(), result.wall, result.pointsPerSecond()/1e6)
			if timedOut {
				fmt.Print(" (budget exhausted)")
			}
			fmt.Println()
		}
	}
}

// selectTargets resolves the -targets flag against the host capabilities.
func selectTargets(list string, caps simd.Capabilities) ([]simd.Target, error) {
	if strings.TrimSpace(list) == "available" {
		return caps.Available(), nil
	}
	var targets []simd.Target
	for _, name := range strings.Split(list, ",") {
		if strings.TrimSpace(name) == "" {
			continue
		}
		t, err := simd.Resolve(name, caps)
		if err != nil {
			return nil, fmt.Errorf("target %q: %w", name, err)
		}
		targets = append(targets, t)
	}
	if len(targets) == 0 {
		return nil, fmt.Errorf("no simd targets selected")
	}
	return targets, nil
}
