package main

import (
	"bufio"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"
	"testing"
)

// goModTools returns the last path element of every tool declared in go.mod.
func goModTools(t *testing.T) []string {
	t.Helper()

	f, err := os.Open("go.mod")
	if err != nil {
		t.Fatalf("open go.mod: %v", err)
	}
	defer f.Close()

	var (
		tools []string
		block bool
	)

	sc := bufio.NewScanner(f)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())

		switch {
		case line == "tool (":
			block = true
		case block && line == ")":
			block = false
		case block && line != "":
			tools = append(tools, path.Base(line))
		case strings.HasPrefix(line, "tool "):
			tools = append(tools, path.Base(strings.TrimPrefix(line, "tool ")))
		}
	}

	if err := sc.Err(); err != nil {
		t.Fatalf("read go.mod: %v", err)
	}

	return tools
}

// generateDirectives returns every "//go:generate" line in the module.
func generateDirectives(t *testing.T) []string {
	t.Helper()

	var lines []string

	err := filepath.WalkDir(".", func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if d.IsDir() && p != "." && strings.HasPrefix(d.Name(), "_") {
			return filepath.SkipDir
		}

		if d.IsDir() || !strings.HasSuffix(p, ".go") {
			return nil
		}

		data, err := os.ReadFile(p)
		if err != nil {
			return err
		}

		for line := range strings.Lines(string(data)) {
			if strings.HasPrefix(line, "//go:generate ") {
				lines = append(lines, strings.TrimSpace(line))
			}
		}

		return nil
	})
	if err != nil {
		t.Fatalf("walk module: %v", err)
	}

	return lines
}

func TestTools_HaveGenerateDirective(t *testing.T) {
	tools := goModTools(t)
	if len(tools) == 0 {
		t.Fatal("go.mod declares no tools")
	}

	directives := generateDirectives(t)

	for _, tool := range tools {
		t.Run(tool, func(t *testing.T) {
			for _, d := range directives {
				if strings.Contains(d, "go tool "+tool+" ") {
					return
				}
			}

			t.Errorf("no //go:generate directive runs tool %q", tool)
		})
	}
}
