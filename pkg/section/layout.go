package section

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	naverrors "github.com/odvcencio/spatialnav/pkg/errors"
)

// Layout is a set of sections declared in a YAML file.
type Layout struct {
	Global         Config       `yaml:"global"`
	DefaultSection string       `yaml:"default_section"`
	Sections       []LayoutItem `yaml:"sections"`
}

// LayoutItem is one section entry of a Layout.
type LayoutItem struct {
	ID     string `yaml:"id"`
	Config `yaml:",inline"`
}

// LoadLayout reads a layout file.
func LoadLayout(path string) (*Layout, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, naverrors.Wrap(err, naverrors.ErrCodeConfigLoad, "failed to read layout").
			WithContext("path", path)
	}
	layout, err := ParseLayout(data)
	if err != nil {
		if e, ok := err.(*naverrors.Error); ok {
			return nil, e.WithContext("path", path)
		}
		return nil, err
	}
	return layout, nil
}

// ParseLayout decodes and validates a layout document.
// Unknown keys are ignored.
func ParseLayout(data []byte) (*Layout, error) {
	var layout Layout
	if err := yaml.Unmarshal(data, &layout); err != nil {
		return nil, naverrors.Wrap(err, naverrors.ErrCodeConfigParse, "failed to parse layout")
	}
	if err := layout.Validate(); err != nil {
		return nil, err
	}
	return &layout, nil
}

// Validate checks the global block, every section block, and id uniqueness.
func (l *Layout) Validate() error {
	if err := l.Global.Validate(); err != nil {
		return err
	}
	seen := make(map[string]bool, len(l.Sections))
	for i, item := range l.Sections {
		if err := item.Config.Validate(); err != nil {
			if e, ok := err.(*naverrors.Error); ok {
				return e.WithContext("section", sectionLabel(item.ID, i))
			}
			return err
		}
		if item.ID == "" {
			continue
		}
		if seen[item.ID] {
			return naverrors.SectionExists(item.ID)
		}
		seen[item.ID] = true
	}
	if l.DefaultSection != "" && !seen[l.DefaultSection] {
		return naverrors.SectionNotFound(l.DefaultSection).WithContext("field", "default_section")
	}
	return nil
}

func sectionLabel(id string, index int) string {
	if id != "" {
		return id
	}
	return fmt.Sprintf("#%d", index)
}
