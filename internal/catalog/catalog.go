// Package catalog loads framework skill catalogs: the level scale of each framework and
// the framework skills each role requires.
package catalog

import (
	_ "embed"
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/jonathan/career-pathway/internal/charts"
	"github.com/jonathan/career-pathway/internal/types"
)

//go:embed default_catalog.yaml
var defaultCatalogYAML []byte

// Catalog is a parsed framework catalog.
type Catalog struct {
	Frameworks []Framework `yaml:"frameworks" validate:"dive"`
	Roles      []Role      `yaml:"roles" validate:"dive"`
}

// Framework declares a framework and the top of its level scale.
type Framework struct {
	Name  string `yaml:"name" validate:"required"`
	Scale int    `yaml:"scale" validate:"gte=1"`
}

// Role lists the framework skills a target role requires.
type Role struct {
	Title   string                       `yaml:"title" validate:"required"`
	Aliases []string                     `yaml:"aliases"`
	Skills  []types.FrameworkSkillRecord `yaml:"skills" validate:"dive"`
}

var validate = validator.New()

// Parse decodes and validates catalog YAML. Every role skill must name a declared framework.
func Parse(data []byte) (*Catalog, error) {
	var c Catalog
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("catalog: parse yaml: %w", err)
	}
	if err := validate.Struct(&c); err != nil {
		return nil, fmt.Errorf("catalog: %w", err)
	}

	declared := make(map[string]bool, len(c.Frameworks))
	for _, fw := range c.Frameworks {
		declared[strings.ToLower(strings.TrimSpace(fw.Name))] = true
	}
	for _, role := range c.Roles {
		for _, s := range role.Skills {
			if !declared[strings.ToLower(strings.TrimSpace(s.Framework))] {
				return nil, fmt.Errorf("catalog: role %q skill %q uses undeclared framework %q", role.Title, s.Name, s.Framework)
			}
		}
	}
	return &c, nil
}

// Load reads and parses the catalog at path.
func Load(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("catalog: read %s: %w", path, err)
	}
	return Parse(data)
}

var (
	defaultOnce    sync.Once
	defaultCatalog *Catalog
	defaultErr     error
)

// Default returns the built-in catalog.
func Default() (*Catalog, error) {
	defaultOnce.Do(func() {
		defaultCatalog, defaultErr = Parse(defaultCatalogYAML)
	})
	return defaultCatalog, defaultErr
}

// LoadOrDefault loads path when set and the built-in catalog otherwise.
func LoadOrDefault(path string) (*Catalog, error) {
	if path == "" {
		return Default()
	}
	return Load(path)
}

// Scales returns the built-in chart scales overlaid with the catalog's frameworks.
func (c *Catalog) Scales() charts.Scales {
	own := make(charts.Scales, len(c.Frameworks))
	for _, fw := range c.Frameworks {
		own[fw.Name] = fw.Scale
	}
	return charts.DefaultScales().Merge(own)
}

// RoleTitles lists the catalog's role titles in file order.
func (c *Catalog) RoleTitles() []string {
	titles := make([]string, len(c.Roles))
	for i, r := range c.Roles {
		titles[i] = r.Title
	}
	return titles
}

// SkillsForRole returns a copy of the framework skills for role. A role matches on its title
// or an alias, case-insensitively; failing that, the first role whose title appears inside
// the requested role (e.g. "Senior Data Analyst") is used.
func (c *Catalog) SkillsForRole(role string) ([]types.FrameworkSkillRecord, bool) {
	want := normalizeRole(role)
	if want == "" {
		return []types.FrameworkSkillRecord{}, false
	}

	for _, r := range c.Roles {
		if normalizeRole(r.Title) == want {
			return cloneSkills(r.Skills), true
		}
		for _, alias := range r.Aliases {
			if normalizeRole(alias) == want {
				return cloneSkills(r.Skills), true
			}
		}
	}
	for _, r := range c.Roles {
		if strings.Contains(want, normalizeRole(r.Title)) {
			return cloneSkills(r.Skills), true
		}
	}
	return []types.FrameworkSkillRecord{}, false
}

func normalizeRole(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), " ")
}

func cloneSkills(in []types.FrameworkSkillRecord) []types.FrameworkSkillRecord {
	out := make([]types.FrameworkSkillRecord, len(in))
	copy(out, in)
	return out
}
