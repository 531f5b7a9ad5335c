package catalog

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// AllCategories is the filter value that matches every template.
const AllCategories = "all"

type Template struct {
	Name        string `yaml:"name" json:"name"`
	Category    string `yaml:"category" json:"category"`
	Description string `yaml:"description,omitempty" json:"description,omitempty"`
}

type Catalog struct {
	templates []Template
}

type catalogFile struct {
	Templates []Template `yaml:"templates"`
}

func New(templates []Template) *Catalog {
	return &Catalog{templates: append([]Template(nil), templates...)}
}

func LoadFile(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(data)
}

func Parse(data []byte) (*Catalog, error) {
	var f catalogFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidCatalog, err)
	}

	for i, t := range f.Templates {
		if strings.TrimSpace(t.Name) == "" || strings.TrimSpace(t.Category) == "" {
			return nil, fmt.Errorf("%w: template #%d needs a name and a category", ErrInvalidCatalog, i+1)
		}
	}

	return New(f.Templates), nil
}

func (c *Catalog) Templates() []Template {
	return append([]Template(nil), c.templates...)
}

// Filter returns templates in the given category, keeping catalog order.
// Empty or "all" returns everything.
func (c *Catalog) Filter(category string) []Template {
	if category == "" || category == AllCategories {
		return c.Templates()
	}

	out := make([]Template, 0, len(c.templates))
	for _, t := range c.templates {
		if t.Category == category {
			out = append(out, t)
		}
	}
	return out
}

// Categories lists distinct categories in first-seen order.
func (c *Catalog) Categories() []string {
	seen := make(map[string]struct{}, len(c.templates))
	out := make([]string, 0, len(c.templates))
	for _, t := range c.templates {
		if _, ok := seen[t.Category]; ok {
			continue
		}
		seen[t.Category] = struct{}{}
		out = append(out, t.Category)
	}
	return out
}

func (c *Catalog) Find(name string) (Template, error) {
	for _, t := range c.templates {
		if t.Name == name {
			return t, nil
		}
	}
	return Template{}, fmt.Errorf("%w: %s", ErrTemplateMissing, name)
}
