package pipeline

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/tillvoss/archsketch/pkg/cache"
	skerrors "github.com/tillvoss/archsketch/pkg/errors"
)

const testText = "web app -> api gateway\napi gateway -> auth service, database"

func newTestRunner(t *testing.T) *Runner {
	t.Helper()
	c, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache: %v", err)
	}
	return NewRunner(c, nil, nil)
}

func TestExecuteFullPipeline(t *testing.T) {
	r := newTestRunner(t)
	defer r.Close()

	result, err := r.Execute(context.Background(), Options{
		Text:    testText,
		Formats: []string{FormatSVG, FormatDOT, FormatJSON},
	})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}

	if result.Stats.NodeCount != 4 {
		t.Errorf("NodeCount = %d, want 4", result.Stats.NodeCount)
	}
	if result.Stats.EdgeCount != 3 {
		t.Errorf("EdgeCount = %d, want 3", result.Stats.EdgeCount)
	}
	if result.GraphHash == "" {
		t.Error("missing graph hash")
	}

	for _, format := range []string{FormatSVG, FormatDOT, FormatJSON} {
		if len(result.Artifacts[format]) == 0 {
			t.Errorf("missing %s artifact", format)
		}
	}
	if !bytes.Contains(result.Artifacts[FormatSVG], []byte("<svg")) {
		t.Error("svg artifact does not look like SVG")
	}
	if !bytes.Contains(result.Artifacts[FormatDOT], []byte("digraph")) {
		t.Error("dot artifact does not look like DOT")
	}

	// Positions must be laid out, not left at the origin.
	for _, n := range result.Graph.Nodes() {
		if n.X == 0 && n.Y == 0 {
			t.Errorf("node %q still at origin", n.ID)
		}
	}
}

func TestExecuteCacheHitsOnSecondRun(t *testing.T) {
	r := newTestRunner(t)
	defer r.Close()
	ctx := context.Background()
	opts := Options{Text: testText, Formats: []string{FormatSVG}}

	first, err := r.Execute(ctx, opts)
	if err != nil {
		t.Fatalf("first Execute: %v", err)
	}
	if first.CacheInfo.ExtractHit || first.CacheInfo.LayoutHit || first.CacheInfo.RenderHit {
		t.Errorf("first run should be all misses: %+v", first.CacheInfo)
	}

	second, err := r.Execute(ctx, Options{Text: testText, Formats: []string{FormatSVG}})
	if err != nil {
		t.Fatalf("second Execute: %v", err)
	}
	if !second.CacheInfo.ExtractHit || !second.CacheInfo.LayoutHit || !second.CacheInfo.RenderHit {
		t.Errorf("second run should hit every stage: %+v", second.CacheInfo)
	}
	if !bytes.Equal(first.Artifacts[FormatSVG], second.Artifacts[FormatSVG]) {
		t.Error("cached artifact differs from the computed one")
	}
}

func TestExecuteRefreshBypassesCache(t *testing.T) {
	r := newTestRunner(t)
	defer r.Close()
	ctx := context.Background()

	if _, err := r.Execute(ctx, Options{Text: testText}); err != nil {
		t.Fatalf("warm-up Execute: %v", err)
	}
	result, err := r.Execute(ctx, Options{Text: testText, Refresh: true})
	if err != nil {
		t.Fatalf("refresh Execute: %v", err)
	}
	if result.CacheInfo.ExtractHit || result.CacheInfo.LayoutHit || result.CacheInfo.RenderHit {
		t.Errorf("refresh run must not read the cache: %+v", result.CacheInfo)
	}
}

func TestExecuteWithNullCache(t *testing.T) {
	r := NewRunner(cache.NewNullCache(), nil, nil)
	defer r.Close()
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		result, err := r.Execute(ctx, Options{Text: testText})
		if err != nil {
			t.Fatalf("Execute: %v", err)
		}
		if result.CacheInfo.ExtractHit || result.CacheInfo.LayoutHit || result.CacheInfo.RenderHit {
			t.Errorf("null cache must never hit: %+v", result.CacheInfo)
		}
	}
}

func TestExecuteDeterministicAcrossCacheStates(t *testing.T) {
	ctx := context.Background()

	cold := NewRunner(cache.NewNullCache(), nil, nil)
	r1, err := cold.Execute(ctx, Options{Text: testText, Formats: []string{FormatJSON}})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	r2, err := cold.Execute(ctx, Options{Text: testText, Formats: []string{FormatJSON}})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if r1.GraphHash != r2.GraphHash {
		t.Error("identical inputs must produce identical laid-out graphs")
	}
	if !bytes.Equal(r1.Artifacts[FormatJSON], r2.Artifacts[FormatJSON]) {
		t.Error("identical inputs must produce identical JSON artifacts")
	}
}

func TestExecuteValidation(t *testing.T) {
	r := NewRunner(nil, nil, nil)
	ctx := context.Background()

	tests := []struct {
		name string
		opts Options
		code skerrors.Code
	}{
		{"bad format", Options{Text: "a", Formats: []string{"bmp"}}, skerrors.ErrCodeInvalidFormat},
		{"bad dimensions", Options{Text: "a", Width: -5, Height: 100}, skerrors.ErrCodeInvalidDimensions},
		{"control chars", Options{Text: "a\x00b"}, skerrors.ErrCodeInvalidInput},
		{"oversized text", Options{Text: strings.Repeat("x", skerrors.MaxTextLen+1)}, skerrors.ErrCodeInvalidInput},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := r.Execute(ctx, tt.opts)
			if err == nil {
				t.Fatal("expected error")
			}
			if !skerrors.Is(err, tt.code) {
				t.Errorf("error code = %q, want %q (%v)", skerrors.GetCode(err), tt.code, err)
			}
		})
	}
}

func TestExecuteEmptyText(t *testing.T) {
	r := NewRunner(nil, nil, nil)
	result, err := r.Execute(context.Background(), Options{Text: ""})
	if err != nil {
		t.Fatalf("Execute on empty text: %v", err)
	}
	if result.Stats.NodeCount != 0 || result.Stats.EdgeCount != 0 {
		t.Errorf("empty text should yield an empty graph, got %+v", result.Stats)
	}
}

func TestOptionsDefaults(t *testing.T) {
	opts := Options{Text: "a -> b"}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("ValidateAndSetDefaults: %v", err)
	}
	if opts.Width != DefaultWidth || opts.Height != DefaultHeight {
		t.Errorf("dimensions = %gx%g, want defaults", opts.Width, opts.Height)
	}
	if opts.Layout.Iterations != 80 {
		t.Errorf("layout defaults not applied: %+v", opts.Layout)
	}
	if len(opts.Formats) != 1 || opts.Formats[0] != FormatSVG {
		t.Errorf("Formats = %v, want [svg]", opts.Formats)
	}
}

func TestValidateFormat(t *testing.T) {
	for _, f := range []string{FormatSVG, FormatPNG, FormatDOT, FormatJSON} {
		if err := ValidateFormat(f); err != nil {
			t.Errorf("ValidateFormat(%q) = %v", f, err)
		}
	}
	if err := ValidateFormat("gif"); !skerrors.Is(err, skerrors.ErrCodeInvalidFormat) {
		t.Errorf("ValidateFormat(gif) = %v, want INVALID_FORMAT", err)
	}
}
