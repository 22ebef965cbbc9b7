package simd

import (
	"errors"
	"sync"
	"testing"
)

func TestResolvePreferences(t *testing.T) {
	full := Capabilities{SSE41: true, AVX2: true, AVX512: true}
	avx2Only := Capabilities{SSE41: true, AVX2: true}
	arm := Capabilities{NEON: true}
	none := Capabilities{}

	tests := []struct {
		name       string
		preference string
		caps       Capabilities
		want       Target
		wantErr    error
	}{
		{name: "auto picks widest", preference: "auto", caps: full, want: AVX512},
		{name: "empty means auto", preference: "", caps: avx2Only, want: AVX2},
		{name: "arm host", preference: Auto, caps: arm, want: NEON},
		{name: "bare host falls back to scalar", preference: Auto, caps: none, want: Scalar},
		{name: "explicit narrower target", preference: "sse4.1", caps: full, want: SSE41},
		{name: "case and space insensitive", preference: "  AVX2 ", caps: avx2Only, want: AVX2},
		{name: "scalar always allowed", preference: "scalar", caps: none, want: Scalar},
		{name: "unsupported target", preference: "avx512", caps: avx2Only, wantErr: ErrUnsupportedTarget},
		{name: "unknown target", preference: "altivec", caps: full, wantErr: ErrUnknownTarget},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Resolve(tt.preference, tt.caps)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("Resolve(%q) error = %v, want %v", tt.preference, err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Resolve(%q) unexpected error: %v", tt.preference, err)
			}
			if got != tt.want {
				t.Fatalf("Resolve(%q) = %v, want %v", tt.preference, got, tt.want)
			}
		})
	}
}

func TestAvailableIsOrderedWidestFirst(t *testing.T) {
	got := Capabilities{SSE41: true, AVX2: true}.Available()
	want := []Target{AVX2, SSE41, Scalar}
	if len(got) != len(want) {
		t.Fatalf("Available() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Available()[%d] = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestSelectedIsStableAcrossGoroutines(t *testing.T) {
	const readers = 16
	results := make([]Target, readers)

	var wg sync.WaitGroup
	for i := 0; i < readers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i] = Selected()
		}(i)
	}
	wg.Wait()

	for i, got := range results {
		if got != results[0] {
			t.Fatalf("reader %d saw %v, reader 0 saw %v", i, got, results[0])
		}
	}
	if !HostCapabilities().Supports(results[0]) {
		t.Fatalf("selected target %v is not supported by the host", results[0])
	}
}

func TestConfigureAfterSelection(t *testing.T) {
	current := Selected()

	got, err := Configure(current.Name)
	if err != nil {
		t.Fatalf("re-configuring the selected target: %v", err)
	}
	if got != current {
		t.Fatalf("Configure(%q) = %v, want %v", current.Name, got, current)
	}

	got, err = Configure(Scalar.Name)
	if current == Scalar {
		if err != nil {
			t.Fatalf("Configure(scalar) with scalar selected: %v", err)
		}
	} else if !errors.Is(err, ErrAlreadySelected) {
		t.Fatalf("Configure(scalar) after %v: error = %v, want ErrAlreadySelected", current, err)
	}
	if got != current {
		t.Fatalf("selection changed from %v to %v", current, got)
	}
}
