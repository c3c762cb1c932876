package style

import (
	"errors"
	"fmt"
	"image/color"
	"os"
	"path/filepath"

	"profilepop/internal/browser"
	"profilepop/internal/icon"
)

// FallbackColor fills icons whose color cannot be parsed
var FallbackColor = color.NRGBA{0x58, 0x65, 0xf2, 0xff}

// gradientShade darkens the base color for the lower gradient stop
const gradientShade = 0.75

// Logos finds the overlay glyph for a browser. Files in Dir win over the
// built-in glyphs.
type Logos struct {
	Dir     string
	Builtin func(browser.Kind) []byte
}

// logoNames are tried in order inside Logos.Dir
func logoNames(k browser.Kind) []string {
	return []string{
		string(k) + ".svg",
		string(k) + ".png",
		string(k) + "-logo.png",
	}
}

// Overlay returns the glyph source for k, or an empty overlay with
// icon.ErrAssetMissing when nothing is available
func (l Logos) Overlay(k browser.Kind) (icon.Overlay, error) {
	if l.Dir != "" {
		for _, name := range logoNames(k) {
			p := filepath.Join(l.Dir, name)
			if _, err := os.Stat(p); err == nil {
				return icon.Overlay{Path: p}, nil
			}
		}
	}
	if l.Builtin != nil {
		if data := l.Builtin(k); len(data) > 0 {
			return icon.Overlay{Data: data}, nil
		}
	}
	return icon.Overlay{}, fmt.Errorf("%w: no logo for %s", icon.ErrAssetMissing, k)
}

// Request is everything needed to resolve one profile's icon
type Request struct {
	Profile  browser.Profile
	Color    string // user override, empty when unset
	Template string // template id, empty when unset
	Label    string // label override, empty uses the display name
}

// Resolver merges catalog templates, the batch style and per-profile
// overrides into render specs
type Resolver struct {
	Catalog *Catalog
	Style   Style
	Logos   Logos
}

// EffectiveColor returns the color an icon will be drawn with: the user
// override, else the template color, else the suggested color
func (r *Resolver) EffectiveColor(req Request) string {
	if req.Color != "" {
		return req.Color
	}
	if t, ok := r.template(req.Template); ok && t.Color != "" {
		return t.Color
	}
	return req.Profile.SuggestedColor
}

func (r *Resolver) template(id string) (Template, bool) {
	if id == "" || r.Catalog == nil {
		return Template{}, false
	}
	return r.Catalog.Lookup(id)
}

// Resolve builds the render spec for req. Non-fatal problems (bad colors,
// a missing logo) are returned alongside a usable spec.
func (r *Resolver) Resolve(req Request) (icon.Spec, []error) {
	var problems []error
	st := r.Style.Normalize()

	spec := icon.DefaultSpec()
	spec.Shape = st.Shape
	spec.Margin = st.Margin
	spec.CornerRadius = st.CornerRadius
	spec.Shadow = st.Effects.Shadow
	spec.Glow = st.Effects.Glow
	spec.Border = st.Effects.Border
	spec.Opacity = st.Opacity

	base, err := icon.ParseHex(r.EffectiveColor(req))
	if err != nil {
		problems = append(problems, err)
		base = FallbackColor
	}
	spec.Fill = icon.Solid(base)

	if st.Gradient {
		spec.Fill = r.gradient(req, base, &problems)
	}

	if st.ShowText {
		spec.Label = req.Label
		if spec.Label == "" {
			spec.Label = req.Profile.Name
		}
		spec.FontPath = st.Font
		spec.FontSize = st.FontSize
		spec.LabelPos = st.TextPosition
		spec.Outline = st.Outline
	}

	if st.Logo {
		o, err := r.Logos.Overlay(req.Profile.Kind)
		if err != nil {
			problems = append(problems, err)
		}
		spec.Overlay = o
	}

	return spec, problems
}

// gradient uses the template's stops when a template is chosen and the
// user has not overridden the color; otherwise it shades the base color
func (r *Resolver) gradient(req Request, base color.NRGBA, problems *[]error) icon.Fill {
	shaded := icon.Fill{From: base, To: icon.Brighten(base, gradientShade), Gradient: true}

	t, ok := r.template(req.Template)
	if !ok || req.Color != "" {
		return shaded
	}
	a, b := t.GradientStops()
	from, err1 := icon.ParseHex(a)
	to, err2 := icon.ParseHex(b)
	if err := errors.Join(err1, err2); err != nil {
		*problems = append(*problems, err)
		return shaded
	}
	return icon.Fill{From: from, To: to, Gradient: true}
}
