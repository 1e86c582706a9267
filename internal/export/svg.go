// Package export writes a frame of the field and the cloud as a standalone
// SVG document.
package export

import (
	"fmt"
	"html"
	"image/color"
	"io"
	"os"
	"strings"

	"github.com/san-kum/heroviz/internal/cloud"
	"github.com/san-kum/heroviz/internal/field"
)

const background = "#0a0d12"

// SVG collects drawing calls from a field (as a field.Surface) and a cloud
// (as a cloud.Stage). The field section is drawn at the top and the cloud
// section directly below it.
type SVG struct {
	w, h  float64 // section size in device pixels
	scale float64 // device pixels per CSS pixel for body placement

	defs      strings.Builder
	hero      strings.Builder
	skills    strings.Builder
	gradients int
}

// NewSVG returns a document with two w x h sections in device pixels.
func NewSVG(w, h, dpr float64) *SVG {
	if dpr <= 0 {
		dpr = 1
	}
	return &SVG{w: w, h: h, scale: dpr}
}

// Clear discards everything drawn into the field section.
func (s *SVG) Clear() {
	s.hero.Reset()
	s.defs.Reset()
	s.gradients = 0
}

func (s *SVG) FillGlow(cx, cy, radius float64, c color.Color) {
	hex, op, ok := paint(c)
	if !ok {
		return
	}
	s.gradients++
	id := fmt.Sprintf("glow%d", s.gradients)
	fmt.Fprintf(&s.defs, `<radialGradient id="%s" cx="%.1f" cy="%.1f" r="%.1f" gradientUnits="userSpaceOnUse">`+
		`<stop offset="0" stop-color="%s" stop-opacity="%.3f"/><stop offset="1" stop-color="%s" stop-opacity="0"/></radialGradient>`+"\n",
		id, cx, cy, radius, hex, op, hex)
	fmt.Fprintf(&s.hero, `<rect width="%.0f" height="%.0f" fill="url(#%s)"/>`+"\n", s.w, s.h, id)
}

func (s *SVG) FillCircle(x, y, r float64, c color.Color) {
	hex, op, ok := paint(c)
	if !ok {
		return
	}
	fmt.Fprintf(&s.hero, `<circle cx="%.1f" cy="%.1f" r="%.2f" fill="%s" fill-opacity="%.3f"/>`+"\n", x, y, r, hex, op)
}

func (s *SVG) StrokeLine(x1, y1, x2, y2, width float64, c color.Color) {
	hex, op, ok := paint(c)
	if !ok {
		return
	}
	fmt.Fprintf(&s.hero, `<line x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f" stroke="%s" stroke-opacity="%.3f" stroke-width="%.2f"/>`+"\n",
		x1, y1, x2, y2, hex, op, width)
}

// Place draws a body as a badge with its squash applied about its centre.
func (s *SVG) Place(i int, b *cloud.Body) {
	if i == 0 {
		s.skills.Reset()
	}
	k := s.scale
	fmt.Fprintf(&s.skills, `<g transform="translate(%.1f %.1f) scale(%.3f %.3f)">`, b.X*k, b.Y*k, b.ScaleX, b.ScaleY)
	fmt.Fprintf(&s.skills, `<circle r="%.1f" fill="#ffffff" fill-opacity="0.06" stroke="#8ec1ff" stroke-opacity="0.35" stroke-width="%.1f"/>`,
		b.R*k, 1.5*k)
	fmt.Fprintf(&s.skills, `<text text-anchor="middle" dominant-baseline="central" font-family="sans-serif" font-size="%.1f" fill="#e6edf3">%s</text></g>`+"\n",
		b.R*k*0.36, html.EscapeString(b.Name))
}

// WriteTo writes the complete document.
func (s *SVG) WriteTo(w io.Writer) (int64, error) {
	var sb strings.Builder
	fmt.Fprintf(&sb, `<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%.0f" height="%.0f" viewBox="0 0 %.0f %.0f">
<rect width="100%%" height="100%%" fill="%s"/>
`, s.w, 2*s.h, s.w, 2*s.h, background)
	if s.defs.Len() > 0 {
		sb.WriteString("<defs>\n")
		sb.WriteString(s.defs.String())
		sb.WriteString("</defs>\n")
	}
	sb.WriteString("<g id=\"hero\">\n")
	sb.WriteString(s.hero.String())
	sb.WriteString("</g>\n")
	fmt.Fprintf(&sb, "<g id=\"skills\" transform=\"translate(0 %.0f)\">\n", s.h)
	sb.WriteString(s.skills.String())
	sb.WriteString("</g>\n</svg>\n")

	n, err := io.WriteString(w, sb.String())
	return int64(n), err
}

// Frame renders the current state of f and c into a new document.
func Frame(f *field.Field, c *cloud.Cloud) *SVG {
	w, h := f.Size()
	doc := NewSVG(w, h, f.DPR())
	f.Draw(doc)
	c.Draw(doc)
	return doc
}

// WriteFile renders f and c to path.
func WriteFile(path string, f *field.Field, c *cloud.Cloud) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	if _, err := Frame(f, c).WriteTo(file); err != nil {
		file.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	return file.Close()
}

// paint splits c into an SVG colour and opacity. Fully transparent colours
// are not drawn.
func paint(c color.Color) (hex string, opacity float64, ok bool) {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	if n.A == 0 {
		return "", 0, false
	}
	return fmt.Sprintf("#%02x%02x%02x", n.R, n.G, n.B), float64(n.A) / 255, true
}
