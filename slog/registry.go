package slog

import (
	"log/slog"

	"github.com/ethanol1310/hotnews"
)

// Ensure LoggingRegistry implements hotnews.SourceRegistry.
var _ hotnews.SourceRegistry = (*LoggingRegistry)(nil)

// LoggingRegistry wraps a SourceRegistry with logging of source lookups.
type LoggingRegistry struct {
	next   hotnews.SourceRegistry
	logger *slog.Logger
}

// NewLoggingRegistry creates a new LoggingRegistry.
func NewLoggingRegistry(next hotnews.SourceRegistry, logger *slog.Logger) *LoggingRegistry {
	return &LoggingRegistry{next: next, logger: logger}
}

// Register delegates to the wrapped registry.
func (r *LoggingRegistry) Register(source hotnews.SourceAdapter) {
	r.next.Register(source)
}

// Lookup delegates to the wrapped registry and logs the resolved source
// with its default limits.
func (r *LoggingRegistry) Lookup(name hotnews.SourceName) (hotnews.SourceAdapter, error) {
	src, err := r.next.Lookup(name)
	if err != nil {
		r.logger.Warn("source lookup", "source", string(name), "err", err)
		return nil, err
	}
	limits := src.Limits()
	r.logger.Debug("source lookup",
		"source", string(name),
		"partitions", limits.Partitions,
		"pages", limits.Pages,
		"articles", limits.Articles,
		"sequential", limits.Sequential,
	)
	return src, nil
}

// Names delegates to the wrapped registry.
func (r *LoggingRegistry) Names() []hotnews.SourceName {
	return r.next.Names()
}
