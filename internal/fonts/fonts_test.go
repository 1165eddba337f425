package fonts

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
)

func TestParseGoRegular(t *testing.T) {
	f, err := Parse(goregular.TTF, 48)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	face, err := f.NewFace()
	if err != nil {
		t.Fatalf("NewFace failed: %v", err)
	}
	defer face.Close()

	b, _ := font.BoundString(face, "0123456789:")
	if h := (b.Max.Y - b.Min.Y).Ceil(); h < 20 || h > 60 {
		t.Errorf("Unexpected digit height %d for 48px face", h)
	}
	if f.Name() == "" {
		t.Error("Expected a font name")
	}
}

func TestParseGarbage(t *testing.T) {
	if _, err := Parse([]byte("definitely not a font"), 12); err == nil {
		t.Error("Expected error, got nil")
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "GoRegular.ttf")
	if err := os.WriteFile(path, goregular.TTF, 0644); err != nil {
		t.Fatal(err)
	}

	f, err := Load(path, 32)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if f.Path != path || f.Size != 32 {
		t.Errorf("Unexpected font handle: path=%s size=%d", f.Path, f.Size)
	}
}

func TestLoadErrors(t *testing.T) {
	dir := t.TempDir()
	bad := filepath.Join(dir, "bad.ttf")
	os.WriteFile(bad, []byte{0, 1, 2, 3}, 0644)

	tests := []struct {
		name string
		path string
		size int
	}{
		{"missing file", filepath.Join(dir, "nope", "missing.ttf"), 12},
		{"corrupt file", bad, 12},
		{"zero size", bad, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Load(tt.path, tt.size); !errors.Is(err, ErrFontLoad) {
				t.Errorf("Expected ErrFontLoad, got %v", err)
			}
		})
	}
}

func TestFindInDir(t *testing.T) {
	dir := t.TempDir()
	sub := filepath.Join(dir, "truetype", "go")
	os.MkdirAll(sub, 0755)
	want := filepath.Join(sub, "Arial.TTF")
	os.WriteFile(want, goregular.TTF, 0644)

	if got := findInDir(dir, "arial.ttf"); got != want {
		t.Errorf("Expected %s, got %s", want, got)
	}
	if got := findInDir(dir, "gothic.ttf"); got != "" {
		t.Errorf("Expected no match, got %s", got)
	}
	if got := findInDir(filepath.Join(dir, "absent"), "arial.ttf"); got != "" {
		t.Errorf("Expected no match in missing dir, got %s", got)
	}
}

func TestFindUsesXDGDirs(t *testing.T) {
	dir := t.TempDir()
	fontDir := filepath.Join(dir, "fonts")
	os.MkdirAll(fontDir, 0755)
	want := filepath.Join(fontDir, "countdown-test-font.ttf")
	os.WriteFile(want, goregular.TTF, 0644)

	t.Setenv("XDG_DATA_DIRS", dir)
	got, err := Find("countdown-test-font.ttf")
	if err != nil {
		t.Fatalf("Find failed: %v", err)
	}
	if got != want {
		t.Errorf("Expected %s, got %s", want, got)
	}

	if _, err := Find(filepath.Join(dir, "sub", "countdown-test-font.ttf")); err == nil {
		t.Error("Paths with directories must not fall back to the font search")
	}
}
