// ABOUTME: Tests for root command flag handling and output helpers
// ABOUTME: Verifies JSON flag, table rendering, padding and truncation

package cmd

import (
	"strings"
	"testing"
)

func TestJSONOutput(t *testing.T) {
	jsonOutput = true
	defer func() { jsonOutput = false }()

	if !IsJSONOutput() {
		t.Error("expected IsJSONOutput to return true")
	}
}

func TestPrintJSON(t *testing.T) {
	var b strings.Builder
	printJSON(&b, map[string]string{"username": "jane"})

	if !strings.Contains(b.String(), `"username": "jane"`) {
		t.Errorf("output = %q", b.String())
	}
}

func TestRenderRows(t *testing.T) {
	var b strings.Builder
	renderRows(&b, []string{"TITLE", "STATUS"}, [][]string{
		{"Go Basics", "PUBLISHED"},
		{"Concurrency Patterns", "DRAFT"},
	})

	lines := strings.Split(strings.TrimRight(b.String(), "\n"), "\n")
	if len(lines) != 3 {
		t.Fatalf("got %d lines, want 3 (header + 2 rows)", len(lines))
	}
	// Columns align on the widest cell.
	if strings.Index(lines[1], "PUBLISHED") != strings.Index(lines[2], "DRAFT") {
		t.Errorf("status column not aligned:\n%q\n%q", lines[1], lines[2])
	}
}

func TestRenderRows_MultibyteAlignment(t *testing.T) {
	var b strings.Builder
	renderRows(&b, []string{"TITLE", "STATUS"}, [][]string{
		{"Lập trình Go căn bản", "PUBLISHED"},
		{"Concurrency Patterns", "DRAFT"},
	})

	lines := strings.Split(strings.TrimRight(b.String(), "\n"), "\n")
	if len(lines) != 3 {
		t.Fatalf("got %d lines, want 3", len(lines))
	}
	// Both titles are 20 runes; their status columns must start at the
	// same visual offset, counted in runes rather than bytes.
	if got, want := runeIndex(lines[1], "PUBLISHED"), runeIndex(lines[2], "DRAFT"); got != want {
		t.Errorf("status column offsets differ: %d vs %d\n%q\n%q", got, want, lines[1], lines[2])
	}
}

func runeIndex(s, sub string) int {
	i := strings.Index(s, sub)
	if i < 0 {
		return -1
	}
	return len([]rune(s[:i]))
}

func TestPad(t *testing.T) {
	if got := pad("ab", 5); got != "ab   " {
		t.Errorf("pad = %q", got)
	}
	if got := pad("abcdef", 3); got != "abcdef" {
		t.Errorf("pad must not cut: %q", got)
	}
	// 6 runes, more bytes; two trailing spaces to reach width 8.
	if got := pad("héllo…", 8); got != "héllo…  " {
		t.Errorf("pad = %q, want two trailing spaces", got)
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		in   string
		n    int
		want string
	}{
		{"short", 10, "short"},
		{"a longer course title", 10, "a longe..."},
		{"abc", 2, "ab"},
		{"Lập trình hướng đối tượng", 10, "Lập trì..."},
		{"数理最適化入門", 5, "数理..."},
	}

	for _, tt := range tests {
		if got := truncate(tt.in, tt.n); got != tt.want {
			t.Errorf("truncate(%q, %d) = %q, want %q", tt.in, tt.n, got, tt.want)
		}
	}
}

func TestRootCommand_Flags(t *testing.T) {
	if rootCmd.PersistentFlags().Lookup("api-url") == nil {
		t.Error("missing --api-url flag")
	}
	if rootCmd.PersistentFlags().Lookup("json") == nil {
		t.Error("missing --json flag")
	}
}
