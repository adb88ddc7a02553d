// Package sprite slices sprite sheets into animation frames.
//
// A sheet is a single row of equally sized frames. Frames are grouped by
// direction: the frames of direction d occupy columns
// d*FramesPerDirection through d*FramesPerDirection+FramesPerDirection-1.
package sprite

import (
	"errors"
	"fmt"
	"image"

	"github.com/hajimehoshi/ebiten/v2"
)

// ErrBadSheet is returned when an image cannot hold the frames its layout
// describes.
var ErrBadSheet = errors.New("sprite: bad sheet")

// Layout describes how frames are arranged on a sheet.
type Layout struct {
	FrameWidth         int
	FrameHeight        int
	Directions         int
	FramesPerDirection int
}

// Frames is the total number of frames the layout addresses.
func (l Layout) Frames() int {
	return l.Directions * l.FramesPerDirection
}

// FrameRect returns the source rectangle of the given direction and step.
// Out of range values wrap, so callers never index past the sheet.
func (l Layout) FrameRect(direction, step int) image.Rectangle {
	direction = wrap(direction, l.Directions)
	step = wrap(step, l.FramesPerDirection)

	x := (direction*l.FramesPerDirection + step) * l.FrameWidth
	return image.Rect(x, 0, x+l.FrameWidth, l.FrameHeight)
}

// Check reports whether an image with the given bounds holds every frame.
func (l Layout) Check(bounds image.Rectangle) error {
	if l.FrameWidth <= 0 || l.FrameHeight <= 0 || l.Directions <= 0 || l.FramesPerDirection <= 0 {
		return fmt.Errorf("%w: layout %+v has non-positive dimensions", ErrBadSheet, l)
	}
	needW := l.Frames() * l.FrameWidth
	if bounds.Dx() < needW || bounds.Dy() < l.FrameHeight {
		return fmt.Errorf("%w: image is %dx%d, layout needs %dx%d",
			ErrBadSheet, bounds.Dx(), bounds.Dy(), needW, l.FrameHeight)
	}
	return nil
}

func wrap(v, n int) int {
	if n <= 0 {
		return 0
	}
	v %= n
	if v < 0 {
		v += n
	}
	return v
}

// Sheet is a decoded sprite sheet ready for drawing.
type Sheet struct {
	Layout
	image  *ebiten.Image
	frames []*ebiten.Image
}

// NewSheet slices img according to layout.
func NewSheet(img *ebiten.Image, layout Layout) (*Sheet, error) {
	if err := layout.Check(img.Bounds()); err != nil {
		return nil, err
	}

	s := &Sheet{
		Layout: layout,
		image:  img,
		frames: make([]*ebiten.Image, layout.Frames()),
	}
	origin := img.Bounds().Min
	for d := range layout.Directions {
		for step := range layout.FramesPerDirection {
			r := layout.FrameRect(d, step).Add(origin)
			s.frames[d*layout.FramesPerDirection+step] = img.SubImage(r).(*ebiten.Image)
		}
	}
	return s, nil
}

// Frame returns the sub-image for direction and step.
func (s *Sheet) Frame(direction, step int) *ebiten.Image {
	direction = wrap(direction, s.Directions)
	step = wrap(step, s.FramesPerDirection)
	return s.frames[direction*s.FramesPerDirection+step]
}

// Image returns the whole sheet.
func (s *Sheet) Image() *ebiten.Image {
	return s.image
}
