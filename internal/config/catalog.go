package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"errkit/pkg/errx"
)

// Catalog is a YAML file of error codes sharing a category:
//
//	category: Orders
//	codes:
//	  - name: NotFound
//	    value: ORD_404
//	    description: Order not found
//	    severity: warning
//	    docs: https://docs.example.com/errors/ORD_404
//
// A Catalog is an errx.Category and is registered with errx.RegisterCategory.
type Catalog struct {
	Category string        `yaml:"category" validate:"required"`
	Entries  []CatalogCode `yaml:"codes" validate:"required,min=1,dive"`

	source string
	named  []errx.NamedCode
}

// CatalogCode is one entry of a Catalog.
type CatalogCode struct {
	Name        string `yaml:"name"`
	Value       string `yaml:"value" validate:"required"`
	Description string `yaml:"description" validate:"required"`
	Severity    string `yaml:"severity"`
	Category    string `yaml:"category"`
	Docs        string `yaml:"docs"`
}

// LoadCatalog reads and validates a catalog file.
func LoadCatalog(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog: %w", err)
	}
	return ParseCatalog(data, path)
}

// ParseCatalog decodes a catalog. source names the catalog in errors.
func ParseCatalog(data []byte, source string) (*Catalog, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var c Catalog
	if err := dec.Decode(&c); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("catalog %s: empty document", source)
		}
		return nil, fmt.Errorf("catalog %s: %w", source, err)
	}
	if err := validate.Struct(c); err != nil {
		return nil, fmt.Errorf("catalog %s: %w", source, err)
	}

	c.source = source
	c.named = make([]errx.NamedCode, 0, len(c.Entries))
	for i, entry := range c.Entries {
		code, err := entry.build(c.Category)
		if err != nil {
			return nil, fmt.Errorf("catalog %s: codes[%d]: %w", source, i, err)
		}
		name := entry.Name
		if name == "" {
			name = entry.Value
		}
		c.named = append(c.named, errx.NamedCode{Name: name, Code: code})
	}
	return &c, nil
}

func (c CatalogCode) build(defaultCategory string) (*errx.Code, error) {
	opts := []errx.CodeOption{}
	if c.Severity != "" {
		s, err := errx.ParseSeverity(c.Severity)
		if err != nil {
			return nil, err
		}
		opts = append(opts, errx.WithSeverity(s))
	}
	category := c.Category
	if category == "" {
		category = defaultCategory
	}
	opts = append(opts, errx.WithCategory(category))
	if c.Docs != "" {
		opts = append(opts, errx.WithDocumentation(c.Docs))
	}
	return errx.NewCode(c.Value, c.Description, opts...)
}

// Name implements errx.Category.
func (c *Catalog) Name() string { return c.Category }

// Codes implements errx.Category.
func (c *Catalog) Codes() []errx.NamedCode {
	out := make([]errx.NamedCode, len(c.named))
	copy(out, c.named)
	return out
}

// Source returns the file the catalog was read from.
func (c *Catalog) Source() string { return c.source }
