// Package config supplies functional-options configuration for the facade,
// generalizing the teacher's boolean debug parameter threaded through
// ParseMsgFile/ParseMsgFileWithDebug into a small explicit options struct.
package config

import "github.com/pffcore/pffcore/pff/log"

// RecoveredItemPolicy controls how the core treats descriptors marked
// "recovered" (orphaned by the allocator, salvaged by scanning).
type RecoveredItemPolicy int

const (
	// RecoveredItemUnsupported surfaces KindState/Unsupported rather than
	// attempting to decode a recovered item's embedded table. This is the
	// §9 open-question resolution: do not guess at silently-succeeding
	// recovery semantics the source only TODOs.
	RecoveredItemUnsupported RecoveredItemPolicy = iota
)

// Config holds the resolved option values consumed by facade.Open.
type Config struct {
	DefaultASCIICodepage uint32
	Notifier             *log.Notifier
	AutoReadTables       bool
	RecoveredItems       RecoveredItemPolicy
}

// Option mutates a Config under construction.
type Option func(*Config)

// WithDefaultCodepage sets Config.DefaultASCIICodepage (Windows-1252 when
// not given). No layer of this module reads that field: record sets take
// their codepage from whichever TableReader builds them, and a record set
// with codepage 0 is decoded by sniffing, not by this default.
func WithDefaultCodepage(codepage uint32) Option {
	return func(c *Config) { c.DefaultASCIICodepage = codepage }
}

// WithNotifier installs an explicit debug-notify collaborator.
func WithNotifier(n *log.Notifier) Option {
	return func(c *Config) { c.Notifier = n }
}

// WithAutoReadTables toggles whether item-values auto-trigger Read on
// first access (the default) or require an explicit Read call; with it off,
// the item-values accessors fail with KindState until Read has run.
func WithAutoReadTables(enabled bool) Option {
	return func(c *Config) { c.AutoReadTables = enabled }
}

// New resolves opts against the package defaults.
func New(opts ...Option) *Config {
	c := &Config{
		DefaultASCIICodepage: 1252,
		Notifier:             log.Default(),
		AutoReadTables:       true,
		RecoveredItems:       RecoveredItemUnsupported,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}
