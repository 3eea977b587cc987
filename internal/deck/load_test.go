package deck

import (
	"errors"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"golang.org/x/image/bmp"
)

func writePNG(t *testing.T, path string, w, h int) {
	t.Helper()
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	defer f.Close()
	if err := png.Encode(f, image.NewRGBA(image.Rect(0, 0, w, h))); err != nil {
		t.Fatalf("encode: %v", err)
	}
}

func TestParse(t *testing.T) {
	data := []byte(`
name: intro
slides:
  - title: Welcome
    body: Hello there
  - id: fixed
    title: Agenda
`)
	d, err := Parse(data)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if d.Name != "intro" {
		t.Errorf("name = %q", d.Name)
	}
	if d.Len() != 2 {
		t.Fatalf("slides = %d, want 2", d.Len())
	}
	if d.Slides[0].ID == "" {
		t.Error("slide 0 should get a generated id")
	}
	if d.Slides[1].ID != "fixed" {
		t.Errorf("slide 1 id = %q, want fixed", d.Slides[1].ID)
	}
	if d.Slides[0].Body != "Hello there" {
		t.Errorf("body = %q", d.Slides[0].Body)
	}
}

func TestParseInvalid(t *testing.T) {
	if _, err := Parse([]byte("slides: [")); err == nil {
		t.Error("expected error for malformed yaml")
	}
}

func TestLoadFileResolvesImages(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "talk.yaml")
	doc := "slides:\n  - title: One\n    image: img/one.png\n"
	if err := os.WriteFile(path, []byte(doc), 0644); err != nil {
		t.Fatalf("write: %v", err)
	}

	d, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if d.Name != "talk" {
		t.Errorf("name = %q, want talk", d.Name)
	}
	want := filepath.Join(dir, "img", "one.png")
	if d.Slides[0].Image != want {
		t.Errorf("image = %q, want %q", d.Slides[0].Image, want)
	}
}

func TestLoadImages(t *testing.T) {
	dir := t.TempDir()
	writePNG(t, filepath.Join(dir, "02-second.png"), 4, 3)
	writePNG(t, filepath.Join(dir, "01-first.png"), 8, 6)
	os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("skip"), 0644)

	d, err := Load(dir)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if d.Len() != 2 {
		t.Fatalf("slides = %d, want 2", d.Len())
	}
	if d.Slides[0].Title != "01-first" {
		t.Errorf("slides[0].Title = %q", d.Slides[0].Title)
	}
	if d.Slides[0].Width != 8 || d.Slides[0].Height != 6 {
		t.Errorf("slides[0] size = %dx%d", d.Slides[0].Width, d.Slides[0].Height)
	}
	if d.Slides[1].Width != 4 {
		t.Errorf("slides[1].Width = %d", d.Slides[1].Width)
	}
	if d.Name != filepath.Base(dir) {
		t.Errorf("name = %q", d.Name)
	}
}

func TestLoadImagesBMP(t *testing.T) {
	dir := t.TempDir()
	f, err := os.Create(filepath.Join(dir, "slide.bmp"))
	if err != nil {
		t.Fatal(err)
	}
	if err := bmp.Encode(f, image.NewRGBA(image.Rect(0, 0, 5, 7))); err != nil {
		t.Fatal(err)
	}
	f.Close()

	d, err := LoadImages(dir)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if d.Len() != 1 {
		t.Fatalf("slides = %d, want 1", d.Len())
	}
	if d.Slides[0].Width != 5 || d.Slides[0].Height != 7 {
		t.Errorf("size = %dx%d, want 5x7", d.Slides[0].Width, d.Slides[0].Height)
	}
}

func TestLoadImagesBadFile(t *testing.T) {
	dir := t.TempDir()
	os.WriteFile(filepath.Join(dir, "broken.png"), []byte("not a png"), 0644)

	if _, err := LoadImages(dir); err == nil {
		t.Error("expected decode error")
	}
}

func TestLoadEmptyDir(t *testing.T) {
	d, err := Load(t.TempDir())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if d.Len() != 0 {
		t.Errorf("slides = %d, want 0", d.Len())
	}
	if err := d.Validate(); !errors.Is(err, ErrEmptyDeck) {
		t.Errorf("validate = %v, want ErrEmptyDeck", err)
	}
}

func TestLoadUnsupported(t *testing.T) {
	path := filepath.Join(t.TempDir(), "deck.pdf")
	os.WriteFile(path, []byte("%PDF"), 0644)
	if _, err := Load(path); err == nil {
		t.Error("expected unsupported format error")
	}
}

func TestSlideLabel(t *testing.T) {
	if got := (Slide{ID: "x", Title: "T"}).Label(); got != "T" {
		t.Errorf("label = %q", got)
	}
	if got := (Slide{ID: "x", Image: "a.png"}).Label(); got != "a.png" {
		t.Errorf("label = %q", got)
	}
	if got := (Slide{ID: "x"}).Label(); got != "x" {
		t.Errorf("label = %q", got)
	}
}
