// Package simd picks the lane width the noise kernels run at. The choice is
// made once per process from the host's vector extensions and never changes
// afterwards.
package simd

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"

	"golang.org/x/sys/cpu"
)

// Target is one instruction-set variant of the batch kernels. Width is the
// number of float32 lanes that fit in the target's vector register.
type Target struct {
	Name  string
	Width int
}

func (t Target) String() string {
	return fmt.Sprintf("%s(x%d)", t.Name, t.Width)
}

var (
	Scalar = Target{Name: "scalar", Width: 1}
	SSE41  = Target{Name: "sse4.1", Width: 4}
	NEON   = Target{Name: "neon", Width: 4}
	AVX2   = Target{Name: "avx2", Width: 8}
	AVX512 = Target{Name: "avx512", Width: 16}
)

// Auto asks Configure to use the widest target the host supports.
const Auto = "auto"

var (
	ErrUnknownTarget     = errors.New("unknown simd target")
	ErrUnsupportedTarget = errors.New("simd target not supported by host")
	ErrAlreadySelected   = errors.New("simd target already selected")
)

// Targets lists every known target, widest first.
func Targets() []Target {
	return []Target{AVX512, AVX2, SSE41, NEON, Scalar}
}

// Lookup returns the target with the given name.
func Lookup(name string) (Target, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for _, t := range Targets() {
		if t.Name == name {
			return t, nil
		}
	}
	return Target{}, fmt.Errorf("%w: %q", ErrUnknownTarget, name)
}

// Capabilities is the subset of host CPU features the kernels care about.
type Capabilities struct {
	SSE41  bool
	AVX2   bool
	AVX512 bool
	NEON   bool
}

// HostCapabilities probes the running CPU.
func HostCapabilities() Capabilities {
	return Capabilities{
		SSE41:  cpu.X86.HasSSE41,
		AVX2:   cpu.X86.HasAVX2 && cpu.X86.HasFMA,
		AVX512: cpu.X86.HasAVX512F && cpu.X86.HasAVX512DQ,
		NEON:   cpu.ARM64.HasASIMD,
	}
}

// Supports reports whether t can run on a host with these capabilities.
func (c Capabilities) Supports(t Target) bool {
	switch t {
	case Scalar:
		return true
	case SSE41:
		return c.SSE41
	case NEON:
		return c.NEON
	case AVX2:
		return c.AVX2
	case AVX512:
		return c.AVX512
	}
	return false
}

// Best returns the widest supported target.
func (c Capabilities) Best() Target {
	for _, t := range Targets() {
		if c.Supports(t) {
			return t
		}
	}
	return Scalar
}

// Available lists the targets usable on this host, widest first.
func (c Capabilities) Available() []Target {
	var out []Target
	for _, t := range Targets() {
		if c.Supports(t) {
			out = append(out, t)
		}
	}
	return out
}

// Resolve maps a preference ("auto", "" or a target name) to a target the
// given host can run.
func Resolve(preference string, caps Capabilities) (Target, error) {
	preference = strings.TrimSpace(preference)
	if preference == "" || strings.EqualFold(preference, Auto) {
		return caps.Best(), nil
	}
	t, err := Lookup(preference)
	if err != nil {
		return Target{}, err
	}
	if !caps.Supports(t) {
		return Target{}, fmt.Errorf("%w: %s", ErrUnsupportedTarget, t.Name)
	}
	return t, nil
}

var (
	selectMu sync.Mutex
	selected atomic.Pointer[Target]
)

// Configure fixes the process-wide target. Only the first successful call has
// an effect; later calls return the already selected target, together with
// ErrAlreadySelected when they asked for a different one.
func Configure(preference string) (Target, error) {
	selectMu.Lock()
	defer selectMu.Unlock()

	caps := HostCapabilities()
	if current := selected.Load(); current != nil {
		want, err := Resolve(preference, caps)
		if err != nil {
			return *current, err
		}
		if want != *current && !strings.EqualFold(strings.TrimSpace(preference), Auto) && preference != "" {
			return *current, fmt.Errorf("%w: have %s, requested %s", ErrAlreadySelected, current.Name, want.Name)
		}
		return *current, nil
	}

	t, err := Resolve(preference, caps)
	if err != nil {
		return Target{}, err
	}
	selected.Store(&t)
	return t, nil
}

// Selected returns the process-wide target, resolving "auto" on first use.
func Selected() Target {
	if t := selected.Load(); t != nil {
		return *t
	}
	t, _ := Configure(Auto)
	return t
}
