package rulestore

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/lendcore/underwrite/internal/domain"
)

// programsFile is the on-disk shape of a program rules YAML document.
type programsFile struct {
	Programs []domain.ProgramRuleSet `yaml:"programs"`
}

// LoadFile reads program rule sets from a YAML file and returns a MemStore
// seeded with them. Rule sets missing a program id are rejected.
func LoadFile(path string) (*MemStore, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read program rules: %w", err)
	}

	var doc programsFile
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("parse program rules %s: %w", path, err)
	}
	if len(doc.Programs) == 0 {
		return nil, fmt.Errorf("program rules %s: no programs defined", path)
	}
	for i, p := range doc.Programs {
		if p.ProgramID == "" {
			return nil, fmt.Errorf("program rules %s: entry %d missing program_id", path, i)
		}
	}

	return NewMemStore(doc.Programs), nil
}
