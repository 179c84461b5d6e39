package shared

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// Seed is a bootstrap fixture for a fresh session: categories first, then
// tasks referencing categories by name. It feeds the normal create operations
// of the application service, so every seed entry is subject to the same
// validation as interactive input.
type Seed struct {
	Categories []SeedCategory `toml:"categories"`
	Tasks      []SeedTask     `toml:"tasks"`
}

// SeedCategory declares one category to create at startup.
type SeedCategory struct {
	Name string `toml:"name"`
}

// SeedTask declares one task to create at startup. Category names the
// category the task files under and must match a seeded category.
type SeedTask struct {
	Title       string `toml:"title"`
	Description string `toml:"description"`
	Category    string `toml:"category"`
	Done        bool   `toml:"done"`
}

// LoadSeed reads and parses a TOML seed fixture from the specified path.
func LoadSeed(path string) (*Seed, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read seed file: %w", err)
	}

	var seed Seed
	if err := toml.Unmarshal(data, &seed); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSeed, err)
	}

	return &seed, nil
}
