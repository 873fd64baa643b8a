package mask

import (
	"fmt"

	"github.com/dd0wney/regionmask/pkg/validation"
)

// MaxRelaxationLayers bounds Config.NumLayers.
const MaxRelaxationLayers = 64

// Config selects how a mask is generated.
type Config struct {
	NumLayers  int    `yaml:"num_layers" validate:"gte=0,lte=64"`
	Strategy   string `yaml:"strategy" validate:"oneof=search full-sweep"`
	PathFinder string `yaml:"pathfinder" validate:"oneof=greedy shortest-path"`
}

// DefaultConfig returns 8 relaxation layers, the search strategy and the
// greedy path finder.
func DefaultConfig() Config {
	return Config{
		NumLayers:  8,
		Strategy:   StrategySearch,
		PathFinder: PathFinderGreedy,
	}
}

// Validate checks the configuration. Failures match ErrConfiguration.
func (c Config) Validate() error {
	cv := validation.NewConfigValidator("mask")
	cv.Struct(&c)
	if err := cv.Validate(); err != nil {
		return NewError("config").Cause(fmt.Errorf("%w: %w", ErrConfiguration, err)).Err()
	}
	return nil
}
