package deck

import (
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"path/filepath"
	"sort"
	"strings"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"
	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"
)

// Load reads a deck from a directory of images or a YAML file.
func Load(path string) (Deck, error) {
	fi, err := os.Stat(path)
	if err != nil {
		return Deck{}, fmt.Errorf("stat deck: %w", err)
	}
	if fi.IsDir() {
		return LoadImages(path)
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return LoadFile(path)
	default:
		return Deck{}, fmt.Errorf("unsupported deck format: %s", path)
	}
}

// LoadFile parses a YAML deck document. Relative image paths are resolved
// against the file's directory.
func LoadFile(path string) (Deck, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Deck{}, fmt.Errorf("read deck: %w", err)
	}
	d, err := Parse(data)
	if err != nil {
		return Deck{}, fmt.Errorf("parse %s: %w", path, err)
	}
	if d.Name == "" {
		d.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	dir := filepath.Dir(path)
	for i := range d.Slides {
		if img := d.Slides[i].Image; img != "" && !filepath.IsAbs(img) {
			d.Slides[i].Image = filepath.Join(dir, img)
		}
	}
	return d, nil
}

// Parse decodes a YAML deck document.
func Parse(data []byte) (Deck, error) {
	var d Deck
	if err := yaml.Unmarshal(data, &d); err != nil {
		return Deck{}, fmt.Errorf("unmarshal deck: %w", err)
	}
	d.assignIDs()
	return d, nil
}

// LoadImages builds a deck with one slide per image file in dir, ordered by
// file name. PNG, JPEG, BMP and WebP are recognised.
func LoadImages(dir string) (Deck, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return Deck{}, fmt.Errorf("read deck dir: %w", err)
	}

	var paths []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		switch strings.ToLower(filepath.Ext(entry.Name())) {
		case ".png", ".jpg", ".jpeg", ".bmp", ".webp":
			paths = append(paths, filepath.Join(dir, entry.Name()))
		}
	}
	sort.Strings(paths)

	slides := make([]Slide, len(paths))
	var g errgroup.Group
	g.SetLimit(8)
	for i, p := range paths {
		g.Go(func() error {
			w, h, err := imageSize(p)
			if err != nil {
				return fmt.Errorf("decode %s: %w", filepath.Base(p), err)
			}
			name := filepath.Base(p)
			slides[i] = Slide{
				Title:  strings.TrimSuffix(name, filepath.Ext(name)),
				Image:  p,
				Width:  w,
				Height: h,
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return Deck{}, err
	}

	d := Deck{Name: filepath.Base(filepath.Clean(dir)), Slides: slides}
	d.assignIDs()
	return d, nil
}

func imageSize(path string) (int, int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, 0, err
	}
	defer f.Close()

	cfg, _, err := image.DecodeConfig(f)
	if err != nil {
		return 0, 0, err
	}
	return cfg.Width, cfg.Height, nil
}
