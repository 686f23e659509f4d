// Package codec implements the Pot encoder and decoder: the engines that
// walk a Go value (via reflection, or the bridge escape hatch) into atoms
// on a potio.Sink, and parse atoms back into a Go value off a potio.Reader.
package codec

import (
	"github.com/khonsulabs/pot/bridge"
	"github.com/khonsulabs/pot/internal/options"
)

// DefaultAllocationBudget is the ambient default applied when a Config
// doesn't set one explicitly — spec.md describes the contractual default
// as "unlimited", but an unbounded decoder defeats the budget's purpose
// against hostile input, so the library default is a large, explicit
// constant instead of true unboundedness.
const DefaultAllocationBudget = 64 * 1024 * 1024 // 64MiB

// Config holds Encoder/Decoder construction options.
type Config struct {
	AllocationBudget uint64
	BridgeRegistry   *bridge.Registry
}

// NewConfig builds a Config with the ambient defaults, applying opts in
// order.
func NewConfig(opts ...Option) (*Config, error) {
	cfg := &Config{
		AllocationBudget: DefaultAllocationBudget,
		BridgeRegistry:   bridge.NewRegistry(),
	}

	if err := options.Apply(cfg, opts...); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Option configures a Config, mirroring the teacher's generic functional
// option pattern.
type Option = options.Option[*Config]

// WithAllocationBudget sets the maximum bytes the decoder may allocate per
// top-level document.
func WithAllocationBudget(n uint64) Option {
	return options.NoError[*Config](func(c *Config) { c.AllocationBudget = n })
}

// WithBridgeRegistry installs a bridge.Registry carrying caller-supplied
// Marshaler/Unmarshaler bindings.
func WithBridgeRegistry(r *bridge.Registry) Option {
	return options.NoError[*Config](func(c *Config) { c.BridgeRegistry = r })
}
