package conv

import (
	"fmt"
	"strings"
)

// Strategy selects the iteration pattern used to compute a linear convolution.
// All strategies produce bit-identical results.
type Strategy int

const (
	// StrategyDirect accumulates one product at a time in a nested loop.
	StrategyDirect Strategy = iota

	// StrategyWindowed adds a scaled copy of the kernel into a sliding window.
	StrategyWindowed
)

// Strategies returns all strategies in declaration order.
func Strategies() []Strategy {
	return []Strategy{StrategyDirect, StrategyWindowed}
}

// String returns the strategy name.
func (s Strategy) String() string {
	switch s {
	case StrategyDirect:
		return "direct"
	case StrategyWindowed:
		return "windowed"
	default:
		return fmt.Sprintf("Strategy(%d)", int(s))
	}
}

// ParseStrategy returns the strategy with the given name (case-insensitive).
func ParseStrategy(name string) (Strategy, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "direct":
		return StrategyDirect, nil
	case "windowed":
		return StrategyWindowed, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownStrategy, name)
	}
}
