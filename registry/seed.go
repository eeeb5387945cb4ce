package registry

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed seed.yaml
var defaultSeed []byte

// DefaultSeed returns the built-in activity seed data.
func DefaultSeed() (map[string]Activity, error) {
	return parseSeed(defaultSeed)
}

// LoadSeed reads activity seed data from a YAML file. The file maps
// activity names to their description, schedule, max_participants, and
// initial participant list.
func LoadSeed(path string) (map[string]Activity, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read seed file %s: %w", path, err)
	}
	seed, err := parseSeed(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse seed file %s: %w", path, err)
	}
	return seed, nil
}

func parseSeed(data []byte) (map[string]Activity, error) {
	var seed map[string]Activity
	if err := yaml.Unmarshal(data, &seed); err != nil {
		return nil, fmt.Errorf("failed to decode YAML seed data: %w", err)
	}
	if len(seed) == 0 {
		return nil, fmt.Errorf("seed data contains no activities")
	}
	return seed, nil
}
