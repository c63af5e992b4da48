package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

// GlossaryConfig is the structure of the optional glossary YAML file. It
// lets deployments extend the built-in dictionary without touching code.
type GlossaryConfig struct {
	Entries []GlossaryEntry `yaml:"entries"`
}

// GlossaryEntry defines one seeded synonym mapping.
type GlossaryEntry struct {
	Canonical string  `yaml:"canonical"`
	Synonym   string  `yaml:"synonym"`
	Weight    float64 `yaml:"weight,omitempty"`
	Language  string  `yaml:"language,omitempty"`
	Category  string  `yaml:"category,omitempty"`
}

// LoadGlossary loads the YAML glossary file named by GLOSSARY_FILE.
// Returns nil without error if no file is configured or it doesn't exist.
func (c *Config) LoadGlossary() (*GlossaryConfig, error) {
	if c.GlossaryFile == "" {
		return nil, nil
	}

	data, err := os.ReadFile(c.GlossaryFile)
	if err != nil {
		if os.IsNotExist(err) {
			// Glossary file is optional
			return nil, nil
		}
		return nil, err
	}

	var glossary GlossaryConfig
	if err := yaml.Unmarshal(data, &glossary); err != nil {
		return nil, err
	}

	return &glossary, nil
}
