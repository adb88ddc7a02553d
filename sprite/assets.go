package sprite

import (
	"bytes"
	"embed"
	"fmt"
	"image"
	_ "image/png" // register PNG decoder
	"os"

	"github.com/hajimehoshi/ebiten/v2"
)

//go:embed images/*.png
var embedded embed.FS

// PlayerSheet is the embedded sheet used when no override path is given.
const PlayerSheet = "player.png"

// Decode reads an image from the embedded assets, or from disk when path is
// non-empty.
func Decode(name, path string) (image.Image, error) {
	var (
		data []byte
		err  error
	)
	if path != "" {
		data, err = os.ReadFile(path)
	} else {
		data, err = embedded.ReadFile("images/" + name)
	}
	if err != nil {
		return nil, fmt.Errorf("read sprite sheet %q: %w", source(name, path), err)
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode sprite sheet %q: %w", source(name, path), err)
	}
	return img, nil
}

// Load decodes the sheet and uploads it as an ebiten image.
func Load(name, path string, layout Layout) (*Sheet, error) {
	img, err := Decode(name, path)
	if err != nil {
		return nil, err
	}
	if err := layout.Check(img.Bounds()); err != nil {
		return nil, fmt.Errorf("sprite sheet %q: %w", source(name, path), err)
	}
	return NewSheet(ebiten.NewImageFromImage(img), layout)
}

func source(name, path string) string {
	if path != "" {
		return path
	}
	return "embedded:" + name
}
