package style

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed templates.yaml
var builtinYAML []byte

// Template is a named color preset
type Template struct {
	ID       string   `yaml:"id"`
	Name     string   `yaml:"name"`
	Icon     string   `yaml:"icon"`
	Color    string   `yaml:"color"`
	Gradient []string `yaml:"gradient,omitempty"`
	Category string   `yaml:"category"`
}

// GradientStops returns the two gradient colors, defaulting to the solid color
func (t Template) GradientStops() (string, string) {
	switch len(t.Gradient) {
	case 0:
		return t.Color, t.Color
	case 1:
		return t.Gradient[0], t.Gradient[0]
	default:
		return t.Gradient[0], t.Gradient[1]
	}
}

// Catalog is an ordered set of templates plus category titles
type Catalog struct {
	Categories map[string]string `yaml:"categories"`
	Templates  []Template        `yaml:"templates"`
}

// ParseCatalog decodes a YAML catalog document
func ParseCatalog(data []byte) (*Catalog, error) {
	var c Catalog
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}
	seen := make(map[string]bool)
	for i, t := range c.Templates {
		if t.ID == "" {
			return nil, fmt.Errorf("template %d has no id", i)
		}
		if seen[t.ID] {
			return nil, fmt.Errorf("duplicate template %q", t.ID)
		}
		seen[t.ID] = true
	}
	if c.Categories == nil {
		c.Categories = make(map[string]string)
	}
	return &c, nil
}

// Builtin returns the embedded catalog
func Builtin() *Catalog {
	c, err := ParseCatalog(builtinYAML)
	if err != nil {
		panic(err)
	}
	return c
}

// LoadCatalog returns the built-in catalog extended with the templates in
// path. User templates replace built-ins with the same id. A missing file
// is not an error.
func LoadCatalog(path string) (*Catalog, error) {
	c := Builtin()
	if path == "" {
		return c, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return c, nil
		}
		return c, err
	}
	user, err := ParseCatalog(data)
	if err != nil {
		return c, err
	}
	c.Merge(user)
	return c, nil
}

// Merge adds other's templates and categories, overriding by id
func (c *Catalog) Merge(other *Catalog) {
	for k, v := range other.Categories {
		c.Categories[k] = v
	}
	for _, t := range other.Templates {
		if i := c.index(t.ID); i >= 0 {
			c.Templates[i] = t
		} else {
			c.Templates = append(c.Templates, t)
		}
	}
}

func (c *Catalog) index(id string) int {
	for i, t := range c.Templates {
		if t.ID == id {
			return i
		}
	}
	return -1
}

// Lookup returns the template with the given id
func (c *Catalog) Lookup(id string) (Template, bool) {
	if i := c.index(id); i >= 0 {
		return c.Templates[i], true
	}
	return Template{}, false
}

// ByCategory returns the templates in category, in catalog order
func (c *Catalog) ByCategory(category string) []Template {
	var out []Template
	for _, t := range c.Templates {
		if t.Category == category {
			out = append(out, t)
		}
	}
	return out
}

// Search matches query case-insensitively against name and category
func (c *Catalog) Search(query string) []Template {
	q := strings.ToLower(query)
	var out []Template
	for _, t := range c.Templates {
		if strings.Contains(strings.ToLower(t.Name), q) || strings.Contains(strings.ToLower(t.Category), q) {
			out = append(out, t)
		}
	}
	return out
}

// CategoryIDs returns the category keys sorted alphabetically
func (c *Catalog) CategoryIDs() []string {
	ids := make([]string, 0, len(c.Categories))
	for id := range c.Categories {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
