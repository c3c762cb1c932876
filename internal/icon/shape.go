package icon

import (
	"image"
	"image/color"
	"math"

	"golang.org/x/image/vector"
)

// kappa places cubic control points for a quarter-circle arc
const kappa = 0.5522847498

type point struct{ x, y float32 }

type segment struct {
	op  byte // 'L', 'Q' or 'C'
	pts [3]point
}

func (s segment) end() point {
	switch s.op {
	case 'Q':
		return s.pts[1]
	case 'C':
		return s.pts[2]
	}
	return s.pts[0]
}

// path is a closed outline that can be fed to a rasterizer forwards or
// backwards; a reversed inner path punches a hole in a forward outer path.
type path struct {
	start point
	segs  []segment
}

func newPath(x, y float64) *path {
	return &path{start: point{float32(x), float32(y)}}
}

func (p *path) lineTo(x, y float64) {
	p.segs = append(p.segs, segment{op: 'L', pts: [3]point{{float32(x), float32(y)}}})
}

func (p *path) quadTo(bx, by, x, y float64) {
	p.segs = append(p.segs, segment{op: 'Q', pts: [3]point{{float32(bx), float32(by)}, {float32(x), float32(y)}}})
}

func (p *path) cubeTo(bx, by, cx, cy, x, y float64) {
	p.segs = append(p.segs, segment{op: 'C', pts: [3]point{
		{float32(bx), float32(by)}, {float32(cx), float32(cy)}, {float32(x), float32(y)},
	}})
}

// close makes the last segment end exactly at the start point
func (p *path) close() {
	if len(p.segs) > 0 && p.segs[len(p.segs)-1].end() == p.start {
		return
	}
	p.lineTo(float64(p.start.x), float64(p.start.y))
}

func (p *path) reversed() *path {
	if len(p.segs) == 0 {
		return &path{start: p.start}
	}
	ends := make([]point, len(p.segs)+1)
	ends[0] = p.start
	for i, s := range p.segs {
		ends[i+1] = s.end()
	}

	r := &path{start: ends[len(ends)-1]}
	for i := len(p.segs) - 1; i >= 0; i-- {
		s := p.segs[i]
		to := ends[i]
		switch s.op {
		case 'Q':
			r.segs = append(r.segs, segment{op: 'Q', pts: [3]point{s.pts[0], to}})
		case 'C':
			r.segs = append(r.segs, segment{op: 'C', pts: [3]point{s.pts[1], s.pts[0], to}})
		default:
			r.segs = append(r.segs, segment{op: 'L', pts: [3]point{to}})
		}
	}
	return r
}

func (p *path) addTo(z *vector.Rasterizer) {
	z.MoveTo(p.start.x, p.start.y)
	for _, s := range p.segs {
		switch s.op {
		case 'Q':
			z.QuadTo(s.pts[0].x, s.pts[0].y, s.pts[1].x, s.pts[1].y)
		case 'C':
			z.CubeTo(s.pts[0].x, s.pts[0].y, s.pts[1].x, s.pts[1].y, s.pts[2].x, s.pts[2].y)
		default:
			z.LineTo(s.pts[0].x, s.pts[0].y)
		}
	}
	z.ClosePath()
}

type rect struct{ x0, y0, x1, y1 float64 }

func (r rect) w() float64 { return r.x1 - r.x0 }
func (r rect) h() float64 { return r.y1 - r.y0 }

func (r rect) inset(d float64) rect {
	return rect{r.x0 + d, r.y0 + d, r.x1 - d, r.y1 - d}
}

// shapeRect is the area inside the margin
func shapeRect(spec Spec) rect {
	m := float64(spec.Margin)
	s := float64(spec.Size)
	return rect{m, m, s - m, s - m}
}

// outline builds the silhouette of a shape inside r
func outline(shape Shape, r rect, radius float64) *path {
	switch shape {
	case Circle:
		return ellipsePath(r)
	case Square:
		return roundedRectPath(r, 0)
	case Hexagon:
		return hexagonPath(r)
	case Badge:
		return badgePath(r, radius)
	default:
		return roundedRectPath(r, radius)
	}
}

func roundedRectPath(r rect, radius float64) *path {
	radius = math.Max(0, math.Min(radius, math.Min(r.w(), r.h())/2))
	k := radius * kappa

	p := newPath(r.x0+radius, r.y0)
	p.lineTo(r.x1-radius, r.y0)
	if radius > 0 {
		p.cubeTo(r.x1-radius+k, r.y0, r.x1, r.y0+radius-k, r.x1, r.y0+radius)
	}
	p.lineTo(r.x1, r.y1-radius)
	if radius > 0 {
		p.cubeTo(r.x1, r.y1-radius+k, r.x1-radius+k, r.y1, r.x1-radius, r.y1)
	}
	p.lineTo(r.x0+radius, r.y1)
	if radius > 0 {
		p.cubeTo(r.x0+radius-k, r.y1, r.x0, r.y1-radius+k, r.x0, r.y1-radius)
	}
	p.lineTo(r.x0, r.y0+radius)
	if radius > 0 {
		p.cubeTo(r.x0, r.y0+radius-k, r.x0+radius-k, r.y0, r.x0+radius, r.y0)
	}
	p.close()
	return p
}

func ellipsePath(r rect) *path {
	cx, cy := (r.x0+r.x1)/2, (r.y0+r.y1)/2
	rx, ry := r.w()/2, r.h()/2
	kx, ky := rx*kappa, ry*kappa

	p := newPath(cx+rx, cy)
	p.cubeTo(cx+rx, cy+ky, cx+kx, cy+ry, cx, cy+ry)
	p.cubeTo(cx-kx, cy+ry, cx-rx, cy+ky, cx-rx, cy)
	p.cubeTo(cx-rx, cy-ky, cx-kx, cy-ry, cx, cy-ry)
	p.cubeTo(cx+kx, cy-ry, cx+rx, cy-ky, cx+rx, cy)
	p.close()
	return p
}

// hexagonPath places six vertices 60 degrees apart around the centre
func hexagonPath(r rect) *path {
	cx, cy := (r.x0+r.x1)/2, (r.y0+r.y1)/2
	radius := math.Min(r.w(), r.h()) / 2

	p := newPath(cx+radius, cy)
	for i := 1; i < 6; i++ {
		a := float64(i) * math.Pi / 3
		p.lineTo(cx+radius*math.Cos(a), cy+radius*math.Sin(a))
	}
	p.close()
	return p
}

// badgePath is a shield: rounded top corners, straight sides, pointed base
func badgePath(r rect, radius float64) *path {
	radius = math.Max(0, math.Min(radius, r.w()/4))
	cx := (r.x0 + r.x1) / 2
	shoulder := r.y0 + r.h()*0.6
	curve := r.y0 + r.h()*0.85

	p := newPath(r.x0+radius, r.y0)
	p.lineTo(r.x1-radius, r.y0)
	p.quadTo(r.x1, r.y0, r.x1, r.y0+radius)
	p.lineTo(r.x1, shoulder)
	p.quadTo(r.x1, curve, cx, r.y1)
	p.quadTo(r.x0, curve, r.x0, shoulder)
	p.lineTo(r.x0, r.y0+radius)
	p.quadTo(r.x0, r.y0, r.x0+radius, r.y0)
	p.close()
	return p
}

// verticalGradient is an image whose color runs from top to bottom
type verticalGradient struct {
	from, to    color.NRGBA
	top, bottom float64
	bounds      image.Rectangle
}

func (g *verticalGradient) ColorModel() color.Model { return color.NRGBAModel }
func (g *verticalGradient) Bounds() image.Rectangle { return g.bounds }

func (g *verticalGradient) At(x, y int) color.Color {
	span := g.bottom - g.top
	if span <= 0 {
		return g.from
	}
	t := (float64(y) + 0.5 - g.top) / span
	t = math.Max(0, math.Min(1, t))
	return Mix(g.from, g.to, t)
}

func fillSource(f Fill, r rect, bounds image.Rectangle) image.Image {
	if !f.Gradient {
		return image.NewUniform(f.From)
	}
	return &verticalGradient{from: f.From, to: f.To, top: r.y0, bottom: r.y1, bounds: bounds}
}

// fillPaths rasterizes the paths and composites src through them onto dst
func fillPaths(dst *image.NRGBA, src image.Image, paths ...*path) {
	b := dst.Bounds()
	z := vector.NewRasterizer(b.Dx(), b.Dy())
	for _, p := range paths {
		p.addTo(z)
	}
	z.Draw(dst, b, src, image.Point{})
}

// drawBackground fills the canvas with the spec's shape
func drawBackground(dst *image.NRGBA, spec Spec) {
	r := shapeRect(spec)
	fillPaths(dst, fillSource(spec.Fill, r, dst.Bounds()), outline(spec.Shape, r, spec.CornerRadius))
}
