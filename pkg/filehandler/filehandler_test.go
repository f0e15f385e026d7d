package filehandler

import (
	"os"
	"path/filepath"
	"testing"
)

func TestIsImageFile(t *testing.T) {
	cases := map[string]bool{
		"photo.jpg":      true,
		"photo.JPEG":     true,
		"scan.png":       true,
		"scan.tiff":      true,
		"modern.webp":    true,
		"legacy.bmp":     true,
		"document.pdf":   false,
		"archive.tar.gz": false,
		"noextension":    false,
	}
	for name, want := range cases {
		if got := IsImageFile(name); got != want {
			t.Errorf("IsImageFile(%q) = %v, want %v", name, got, want)
		}
	}
}

func TestFindImages(t *testing.T) {
	dir := t.TempDir()
	sub := filepath.Join(dir, "nested")
	if err := os.Mkdir(sub, 0755); err != nil {
		t.Fatal(err)
	}

	for _, name := range []string{"a.jpg", "b.txt", filepath.Join("nested", "c.png")} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("x"), 0644); err != nil {
			t.Fatal(err)
		}
	}

	files, err := FindImages(dir)
	if err != nil {
		t.Fatalf("FindImages failed: %v", err)
	}
	if len(files) != 2 {
		t.Errorf("expected 2 images, got %d: %v", len(files), files)
	}
}

func TestFindImagesRejectsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "single.jpg")
	if err := os.WriteFile(path, []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := FindImages(path); err == nil {
		t.Error("expected error when path is not a directory")
	}
}
