package bodies

import (
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultCatalogYAML []byte

type catalogFile struct {
	Bodies []Body `yaml:"bodies"`
}

// defaultCatalog parses the embedded catalog. It is the registry content when
// no catalog file is configured.
func defaultCatalog() ([]Body, error) {
	var file catalogFile
	if err := yaml.Unmarshal(defaultCatalogYAML, &file); err != nil {
		return nil, fmt.Errorf("parsing embedded body catalog failed: %w", err)
	}
	return file.Bodies, nil
}
