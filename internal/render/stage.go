package render

import (
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/basicfont"

	"github.com/san-kum/heroviz/internal/cloud"
)

// badgeRunes is how much of a skill name fits on its badge.
const badgeRunes = 6

var (
	badgeFill   = color.NRGBA{R: 255, G: 255, B: 255, A: 16}
	badgeBorder = color.NRGBA{R: 142, G: 193, B: 255, A: 90}
	badgeText   = color.NRGBA{R: 0xe6, G: 0xed, B: 0xf3, A: 0xff}
	badgeFace   = text.NewGoXFace(basicfont.Face7x13)
)

// placement is one body as the cloud last placed it.
type placement struct {
	name           string
	x, y, r        float64
	scaleX, scaleY float64
}

type spriteKey struct {
	name string
	size int
}

// spriteStage records placements during the update and paints them as
// cached badge sprites during the draw.
type spriteStage struct {
	placed  []placement
	sprites map[spriteKey]*ebiten.Image
}

func newSpriteStage() *spriteStage {
	return &spriteStage{sprites: make(map[spriteKey]*ebiten.Image)}
}

func (s *spriteStage) Place(i int, b *cloud.Body) {
	for len(s.placed) <= i {
		s.placed = append(s.placed, placement{})
	}
	s.placed[i] = placement{name: b.Name, x: b.X, y: b.Y, r: b.R, scaleX: b.ScaleX, scaleY: b.ScaleY}
}

// truncate keeps placements in step with a cloud that shrank.
func (s *spriteStage) truncate(n int) {
	if len(s.placed) > n {
		s.placed = s.placed[:n]
	}
}

// Draw paints every placement with the container's top-left at (ox, oy),
// scaled from CSS to screen pixels by scale.
func (s *spriteStage) Draw(dst *ebiten.Image, ox, oy, scale float64) {
	for _, p := range s.placed {
		size := int(math.Ceil(2 * p.r * scale))
		if size <= 0 {
			continue
		}
		sprite := s.sprite(p.name, size)
		half := float64(size) / 2

		op := &ebiten.DrawImageOptions{}
		op.GeoM.Translate(-half, -half)
		op.GeoM.Scale(p.scaleX, p.scaleY)
		op.GeoM.Translate((ox+p.x)*scale, (oy+p.y)*scale)
		op.Filter = ebiten.FilterLinear
		dst.DrawImage(sprite, op)
	}
}

func (s *spriteStage) sprite(name string, size int) *ebiten.Image {
	key := spriteKey{name: name, size: size}
	if img, ok := s.sprites[key]; ok {
		return img
	}

	img := ebiten.NewImage(size, size)
	c := float32(size) / 2
	vector.DrawFilledCircle(img, c, c, c, badgeFill, true)
	vector.StrokeCircle(img, c, c, c-1, 1.5, badgeBorder, true)

	op := &text.DrawOptions{}
	op.GeoM.Translate(float64(c), float64(c))
	op.ColorScale.ScaleWithColor(badgeText)
	op.PrimaryAlign = text.AlignCenter
	op.SecondaryAlign = text.AlignCenter
	text.Draw(img, badge(name), badgeFace, op)

	s.sprites[key] = img
	return img
}

// badge is the label drawn on a body: the first few runes of its name.
func badge(name string) string {
	r := []rune(name)
	if len(r) > badgeRunes {
		r = r[:badgeRunes]
	}
	return string(r)
}
