package genetic_route

import (
	"fmt"
	"io"

	"github.com/BurntSushi/toml"
)

// ToolConfig is the TOML file read by the route command.
type ToolConfig struct {
	Evolution   *EvolutionConfig   `toml:"evolution"`
	Persistence *PersistenceConfig `toml:"persistence"`
}

func DefaultToolConfig() *ToolConfig {
	return &ToolConfig{
		Evolution: &EvolutionConfig{
			GenerationCount: 1000,
			LogEvery:        1,
			Graph:           &GraphConfig{NodeCount: 20},
			Population: &PopulationConfig{
				PathsCount: 20,
				PathLength: 20,
				Start:      1,
				End:        20,
			},
		},
		Persistence: &PersistenceConfig{
			Name:          "runs.db",
			SQLitePragmas: []string{"journal_mode=WAL"},
			BatchSize:     DefaultBatchSize,
		},
	}
}

// LoadToolConfig decodes path over the defaults. Keys the config does not
// know are rejected.
func LoadToolConfig(path string) (*ToolConfig, error) {
	config := DefaultToolConfig()
	md, err := toml.DecodeFile(path, config)
	if err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return nil, fmt.Errorf("unknown keys %v in %s: %w", undecoded, path, ErrConfiguration)
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

func (c *ToolConfig) Validate() error {
	if c.Persistence == nil {
		return fmt.Errorf("persistence config cannot be nil: %w", ErrConfiguration)
	}
	return c.Evolution.Validate()
}

func (c *ToolConfig) Write(w io.Writer) error {
	return toml.NewEncoder(w).Encode(c)
}
