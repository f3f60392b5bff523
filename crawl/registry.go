package crawl

import (
	"slices"

	"github.com/ethanol1310/hotnews"
)

var _ hotnews.SourceRegistry = (*Registry)(nil)

// Registry maps source names to their adapters.
type Registry struct {
	sources map[hotnews.SourceName]hotnews.SourceAdapter
}

// NewRegistry creates a registry holding the given adapters.
func NewRegistry(sources ...hotnews.SourceAdapter) *Registry {
	r := &Registry{sources: make(map[hotnews.SourceName]hotnews.SourceAdapter)}
	for _, s := range sources {
		r.Register(s)
	}
	return r
}

// Register adds an adapter, replacing any adapter with the same name.
func (r *Registry) Register(source hotnews.SourceAdapter) {
	r.sources[source.Name()] = source
}

// Lookup returns the adapter registered under name.
func (r *Registry) Lookup(name hotnews.SourceName) (hotnews.SourceAdapter, error) {
	s, ok := r.sources[name]
	if !ok {
		return nil, hotnews.Errorf(hotnews.EINVALID, "unknown source %q", name)
	}
	return s, nil
}

// Names returns the registered source names in sorted order.
func (r *Registry) Names() []hotnews.SourceName {
	names := make([]hotnews.SourceName, 0, len(r.sources))
	for name := range r.sources {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}
