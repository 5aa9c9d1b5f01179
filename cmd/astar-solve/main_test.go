package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestRun_OpenGrid(t *testing.T) {
	var stdout, stderr bytes.Buffer
	code := run([]string{"-start", "0,0", "-end", "5,5"}, &stdout, &stderr)
	if code != exitFound {
		t.Fatalf("Expected exit %d, got %d: %s", exitFound, code, stderr.String())
	}

	lines := strings.Split(stdout.String(), "\n")
	if !strings.HasPrefix(lines[0], "S") {
		t.Errorf("Expected start in the top-left corner, got %q", lines[0])
	}
	// Default 40x30 grid: the diagonal path passes (1,1)..(4,4)
	for i := 1; i <= 4; i++ {
		if []rune(lines[i])[i] != '•' {
			t.Errorf("Expected path glyph at (%d,%d), got %q", i, i, lines[i])
		}
	}
	if []rune(lines[5])[5] != 'E' {
		t.Errorf("Expected end glyph at (5,5)")
	}
	if !strings.Contains(stdout.String(), "steps 5") {
		t.Errorf("Expected summary line, got %q", lines[30])
	}
}

func TestRun_Unreachable(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "walled.toml")
	body := `
[grid]
width = 8
height = 5

[points]
start = [0, 2]
end = [7, 2]

[[walls]]
x = 4
y = 0
w = 1
h = 5
`
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	var stdout, stderr bytes.Buffer
	pngPath := filepath.Join(dir, "out.png")
	code := run([]string{"-config", path, "-png", pngPath}, &stdout, &stderr)
	if code != exitUnreachable {
		t.Fatalf("Expected exit %d, got %d: %s", exitUnreachable, code, stderr.String())
	}
	if !strings.Contains(stdout.String(), "unreachable") {
		t.Errorf("Expected unreachable summary, got %q", stdout.String())
	}
	if !strings.Contains(stderr.String(), "frontier exhausted") {
		t.Errorf("Expected exhaustion log on stderr, got %q", stderr.String())
	}
	if _, err := os.Stat(pngPath); err != nil {
		t.Errorf("Expected PNG written, got %v", err)
	}
}

func TestRun_Errors(t *testing.T) {
	tests := [][]string{
		{"-start", "nope"},
		{"-end", "99,99"},
		{"-config", "/does/not/exist.toml"},
		{"-heuristic", "euclid"},
		{"-unknown-flag"},
	}
	for _, args := range tests {
		var stdout, stderr bytes.Buffer
		if code := run(args, &stdout, &stderr); code != exitError {
			t.Errorf("Args %v: expected exit %d, got %d", args, exitError, code)
		}
	}
}

func TestRun_Maze(t *testing.T) {
	var stdout, stderr bytes.Buffer
	code := run([]string{"-maze", "-seed", "7", "-visited"}, &stdout, &stderr)
	if code != exitFound {
		t.Fatalf("Expected maze to be solvable, got exit %d: %s", code, stderr.String())
	}
	if !strings.Contains(stdout.String(), "█") {
		t.Error("Expected maze walls in output")
	}
	if !strings.Contains(stdout.String(), "maze orthogonal route") {
		t.Errorf("Expected maze route length, got %q", stdout.String())
	}
}
