package content

import (
	_ "embed"
	"fmt"
	"os"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"kashbill/internal/domain/entities"
)

//go:embed site.toml
var embeddedSite []byte

// LoadEmbedded decodes the site content shipped with the binary.
func LoadEmbedded() (*entities.Site, error) {
	return Parse(embeddedSite)
}

// LoadFile decodes site content from path, or the embedded content when path
// is empty.
func LoadFile(path string) (*entities.Site, error) {
	if strings.TrimSpace(path) == "" {
		return LoadEmbedded()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("content: read %s: %w", path, err)
	}
	return Parse(data)
}

// Parse decodes and validates a site document.
func Parse(data []byte) (*entities.Site, error) {
	var site entities.Site
	if err := toml.Unmarshal(data, &site); err != nil {
		return nil, fmt.Errorf("content: decode: %w", err)
	}
	if err := validate(&site); err != nil {
		return nil, err
	}
	return &site, nil
}

func validate(site *entities.Site) error {
	if strings.TrimSpace(site.Name) == "" {
		return fmt.Errorf("content: name is required")
	}
	pads := map[string]bool{}
	keys := map[string]string{}
	for _, p := range site.Pads {
		if p.ID == "" {
			return fmt.Errorf("content: pad %q has no id", p.Label)
		}
		if pads[p.ID] {
			return fmt.Errorf("content: duplicate pad id %q", p.ID)
		}
		pads[p.ID] = true
		if p.Key == "" {
			continue
		}
		if other, ok := keys[p.Key]; ok {
			return fmt.Errorf("content: pads %q and %q share key %q", other, p.ID, p.Key)
		}
		keys[p.Key] = p.ID
	}
	projects := map[string]bool{}
	for _, p := range site.Projects {
		if p.ID == "" {
			return fmt.Errorf("content: project %q has no id", p.Title)
		}
		if projects[p.ID] {
			return fmt.Errorf("content: duplicate project id %q", p.ID)
		}
		projects[p.ID] = true
	}
	return nil
}
