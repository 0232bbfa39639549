package tracklist

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestParse(t *testing.T) {
	content := `# Computer architecture
ISCA
MICRO   # IEEE/ACM
  HPCA

# duplicates collapse
isca
ASPLOS
MICRO
DATE#inline without space
`

	got, err := Parse(strings.NewReader(content))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	want := []string{"ISCA", "MICRO", "HPCA", "ASPLOS", "DATE"}
	if len(got) != len(want) {
		t.Fatalf("expected %d acronyms, got %d: %v", len(want), len(got), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("acronym %d = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestParse_UpperCases(t *testing.T) {
	got, err := Parse(strings.NewReader("isca\nHotChips\nISCA\n"))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if len(got) != 2 || got[0] != "ISCA" || got[1] != "HOTCHIPS" {
		t.Errorf("unexpected acronyms: %v", got)
	}
}

func TestParse_Empty(t *testing.T) {
	got, err := Parse(strings.NewReader("\n# nothing here\n   \n"))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("expected no acronyms, got %v", got)
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "conferences.txt")
	if err := os.WriteFile(path, []byte("DAC\nICCAD\n"), 0644); err != nil {
		t.Fatal(err)
	}

	got, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(got) != 2 || got[0] != "DAC" || got[1] != "ICCAD" {
		t.Errorf("unexpected acronyms: %v", got)
	}
}

func TestLoad_NonExistent(t *testing.T) {
	if _, err := Load("no_such_list.txt"); err == nil {
		t.Error("expected error for non-existent file, got nil")
	}
}
