package config

import (
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// LoadPreset reads a customization preset from a YAML file. The result is
// already normalized.
func LoadPreset(path string) (*VideoCustomization, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "read preset")
	}

	cust := Default()
	if err := yaml.Unmarshal(data, cust); err != nil {
		return nil, errors.Wrap(err, "parse preset")
	}

	cust.Normalize()
	return cust, nil
}

// SavePreset writes a customization preset to a YAML file.
func SavePreset(cust *VideoCustomization, path string) error {
	data, err := yaml.Marshal(cust)
	if err != nil {
		return errors.Wrap(err, "marshal preset")
	}

	return errors.Wrap(os.WriteFile(path, data, 0644), "write preset")
}
