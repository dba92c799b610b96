package cli

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/tillvoss/archsketch/pkg/sketch"
)

func newTestCLI(t *testing.T) *CLI {
	t.Helper()
	// Keep config and cache inside the test sandbox.
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("XDG_CACHE_HOME", t.TempDir())
	return New(io.Discard, LogInfo)
}

func TestRootCommandRegistersSubcommands(t *testing.T) {
	root := newTestCLI(t).RootCommand()

	want := []string{"extract", "layout", "render", "edit", "watch", "serve", "cache", "completion"}
	have := make(map[string]bool)
	for _, cmd := range root.Commands() {
		have[cmd.Name()] = true
	}
	for _, name := range want {
		if !have[name] {
			t.Errorf("missing subcommand %q", name)
		}
	}
}

func TestExtractCommand(t *testing.T) {
	c := newTestCLI(t)
	dir := t.TempDir()

	input := filepath.Join(dir, "arch.txt")
	if err := os.WriteFile(input, []byte("web app -> api gateway\napi gateway -> database"), 0o644); err != nil {
		t.Fatal(err)
	}
	output := filepath.Join(dir, "graph.json")

	root := c.RootCommand()
	root.SetArgs([]string{"extract", input, "-o", output})
	root.SetOut(io.Discard)
	root.SetErr(io.Discard)
	if err := root.Execute(); err != nil {
		t.Fatalf("extract command: %v", err)
	}

	g, err := sketch.ReadGraphFile(output)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	if g.NodeCount() != 3 || g.EdgeCount() != 2 {
		t.Errorf("graph = %d nodes %d edges, want 3/2", g.NodeCount(), g.EdgeCount())
	}
}

func TestLayoutCommandPositionsNodes(t *testing.T) {
	c := newTestCLI(t)
	dir := t.TempDir()

	g := sketch.NewGraph()
	g.Ensure("api")
	g.Ensure("db")
	g.AddEdge("api", "db")

	input := filepath.Join(dir, "graph.json")
	if err := sketch.WriteGraphFile(g, input); err != nil {
		t.Fatal(err)
	}
	output := filepath.Join(dir, "laid.json")

	root := c.RootCommand()
	root.SetArgs([]string{"layout", input, "-o", output, "--no-cache"})
	root.SetOut(io.Discard)
	root.SetErr(io.Discard)
	if err := root.Execute(); err != nil {
		t.Fatalf("layout command: %v", err)
	}

	laid, err := sketch.ReadGraphFile(output)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	for _, n := range laid.Nodes() {
		if n.X == 0 && n.Y == 0 {
			t.Errorf("node %q not positioned", n.ID)
		}
	}
}

func TestRenderCommandWritesSVG(t *testing.T) {
	c := newTestCLI(t)
	dir := t.TempDir()

	input := filepath.Join(dir, "arch.txt")
	if err := os.WriteFile(input, []byte("frontend ui connects to api gateway"), 0o644); err != nil {
		t.Fatal(err)
	}
	output := filepath.Join(dir, "diagram.svg")

	root := c.RootCommand()
	root.SetArgs([]string{"render", input, "-o", output, "--no-cache"})
	root.SetOut(io.Discard)
	root.SetErr(io.Discard)
	if err := root.Execute(); err != nil {
		t.Fatalf("render command: %v", err)
	}

	data, err := os.ReadFile(output)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	if !bytes.Contains(data, []byte("<svg")) {
		t.Error("output is not SVG")
	}
	if !bytes.Contains(data, []byte("Frontend Ui")) || !bytes.Contains(data, []byte("Api Gateway")) {
		t.Error("output missing node labels")
	}
}

func TestReadInputStdinDash(t *testing.T) {
	// Only the file path branch is exercised here; the stdin branch
	// needs process-level plumbing that belongs to integration tests.
	dir := t.TempDir()
	path := filepath.Join(dir, "in.txt")
	if err := os.WriteFile(path, []byte("hello"), 0o644); err != nil {
		t.Fatal(err)
	}
	got, err := readInput([]string{path})
	if err != nil || got != "hello" {
		t.Errorf("readInput = %q, %v", got, err)
	}
	if _, err := readInput([]string{filepath.Join(dir, "absent.txt")}); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestArtifactPath(t *testing.T) {
	tests := []struct {
		name   string
		output string
		format string
		multi  bool
		want   string
	}{
		{"explicit extension kept", "diagram.svg", "svg", false, "diagram.svg"},
		{"extension added", "diagram", "svg", false, "diagram.svg"},
		{"multi adds per-format", "diagram", "png", true, "diagram.png"},
		{"multi strips duplicate", "diagram.png", "png", true, "diagram.png"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := artifactPath(tt.output, tt.format, tt.multi); got != tt.want {
				t.Errorf("artifactPath(%q,%q,%v) = %q, want %q", tt.output, tt.format, tt.multi, got, tt.want)
			}
		})
	}
}

func TestFormatBytes(t *testing.T) {
	tests := []struct {
		in   int64
		want string
	}{
		{512, "512 B"},
		{2048, "2.0 KiB"},
		{5 * 1024 * 1024, "5.0 MiB"},
	}
	for _, tt := range tests {
		if got := formatBytes(tt.in); got != tt.want {
			t.Errorf("formatBytes(%d) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestRootHelpMentionsPurpose(t *testing.T) {
	root := newTestCLI(t).RootCommand()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetArgs([]string{"--help"})
	if err := root.Execute(); err != nil {
		t.Fatalf("help: %v", err)
	}
	if !strings.Contains(out.String(), "extract") {
		t.Error("help output should list subcommands")
	}
}
