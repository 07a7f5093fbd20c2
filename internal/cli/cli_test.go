package cli

import (
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sketchflow/sketchflow/pkg/manifest"
)

func TestParseFormats(t *testing.T) {
	tests := []struct {
		input string
		want  []string
	}{
		{"", []string{"excalidraw"}},
		{"json", []string{"json"}},
		{"excalidraw,dot,png", []string{"excalidraw", "dot", "png"}},
	}

	for _, tt := range tests {
		got := parseFormats(tt.input)
		if len(got) != len(tt.want) {
			t.Errorf("parseFormats(%q) = %v, want %v", tt.input, got, tt.want)
			continue
		}
		for i := range got {
			if got[i] != tt.want[i] {
				t.Errorf("parseFormats(%q)[%d] = %q, want %q", tt.input, i, got[i], tt.want[i])
			}
		}
	}
}

func TestBasePath(t *testing.T) {
	tests := []struct {
		output string
		input  string
		want   string
	}{
		{"", "flow.toml", "flow"},
		{"", "dir/flow.toml", "dir/flow"},
		{"out.svg", "flow.toml", "out"},
		{"out.excalidraw", "flow.toml", "out"},
		{"custom", "flow.toml", "custom"},
		{"archive.tar", "flow.toml", "archive.tar"}, // unknown extension kept
	}

	for _, tt := range tests {
		if got := basePath(tt.output, tt.input); got != tt.want {
			t.Errorf("basePath(%q, %q) = %q, want %q", tt.output, tt.input, got, tt.want)
		}
	}
}

func TestCacheDir(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", "")

	dir, err := cacheDir()
	if err != nil {
		t.Fatalf("cacheDir() error: %v", err)
	}

	home, _ := os.UserHomeDir()
	expected := filepath.Join(home, ".cache", "sketchflow")
	if dir != expected {
		t.Errorf("cacheDir() = %q, want %q", dir, expected)
	}
}

func TestCacheDirXDG(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", "/tmp/xdg")

	dir, err := cacheDir()
	if err != nil {
		t.Fatalf("cacheDir() error: %v", err)
	}
	if dir != filepath.Join("/tmp/xdg", "sketchflow") {
		t.Errorf("cacheDir() = %q", dir)
	}
}

func TestRootCommandHasSubcommands(t *testing.T) {
	c := New(io.Discard, LogInfo)
	root := c.RootCommand()

	want := []string{"generate", "new", "serve", "cache", "completion"}
	for _, name := range want {
		found := false
		for _, cmd := range root.Commands() {
			if cmd.Name() == name {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("root command missing %q", name)
		}
	}
}

func TestTemplateByName(t *testing.T) {
	if _, ok := templateByName("sequential"); !ok {
		t.Error("sequential template should exist")
	}
	if _, ok := templateByName("nonexistent"); ok {
		t.Error("nonexistent template should not resolve")
	}
}

func TestTemplatesAreValidManifests(t *testing.T) {
	for _, tpl := range templates {
		if _, err := manifest.Parse([]byte(tpl.Body)); err != nil {
			t.Errorf("template %q does not parse: %v", tpl.Name, err)
		}
	}
}

func TestTemplateNames(t *testing.T) {
	names := templateNames()
	for _, want := range []string{"sequential", "hub", "parallel", "full"} {
		if !strings.Contains(names, want) {
			t.Errorf("templateNames() = %q, missing %q", names, want)
		}
	}
}
