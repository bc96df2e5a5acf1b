package testutil

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// Manifest renders a minimal build.zig.zon declaring one dependency per URL.
func Manifest(urls ...string) string {
	var b strings.Builder
	b.WriteString(".{\n")
	b.WriteString("    .name = .fixture,\n")
	b.WriteString("    .version = \"0.0.1\",\n")
	b.WriteString("    .dependencies = .{\n")
	for i, url := range urls {
		fmt.Fprintf(&b, "        .dep%d = .{\n", i)
		fmt.Fprintf(&b, "            .url = \"%s\",\n", url)
		fmt.Fprintf(&b, "            .hash = \"1220%04d\",\n", i)
		b.WriteString("        },\n")
	}
	b.WriteString("    },\n")
	b.WriteString("    .paths = .{\"\"},\n")
	b.WriteString("}\n")
	return b.String()
}

// WriteManifest writes a build.zig.zon with the given URLs into dir, creating
// dir when needed, and returns the manifest path.
func WriteManifest(t *testing.T, dir string, urls ...string) string {
	t.Helper()
	return WriteFile(t, filepath.Join(dir, "build.zig.zon"), Manifest(urls...))
}

// WriteFile writes content to path, creating parent directories, and returns path.
func WriteFile(t *testing.T, path, content string) string {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("creating %s: %v", filepath.Dir(path), err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing %s: %v", path, err)
	}
	return path
}
