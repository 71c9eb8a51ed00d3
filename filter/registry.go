package filter

import (
	"log/slog"
	"slices"
	"strings"
	"sync"
)

// Registry is an insertion-ordered collection of filters. Registration
// order encodes priority: when several filters could claim the same
// extension, the first registered one wins, so callers register "from the
// most useful to the less one".
//
// The registry holds non-exclusive references; callers may keep their own
// filter references alive after UnregisterAll.
type Registry struct {
	mu      sync.RWMutex
	filters []Filter
	logger  *slog.Logger
}

// NewRegistry creates an empty registry. A nil logger falls back to
// slog.Default.
func NewRegistry(logger *slog.Logger) *Registry {
	if logger == nil {
		logger = slog.Default()
	}
	return &Registry{logger: logger}
}

// Register appends a filter to the registry. Rejections (nil filter,
// duplicate identity, import identifier collision) are logged and leave
// the registry unchanged.
func (r *Registry) Register(f Filter) {
	if f == nil {
		r.logger.Warn("refusing to register nil filter")
		return
	}

	fileFilters := f.FileFilters(true)
	name := strings.ToUpper(f.DefaultExtension())

	r.mu.Lock()
	defer r.mu.Unlock()

	for _, other := range r.filters {
		if other == f {
			r.logger.Warn("I/O filter is already registered", "filter", name)
			return
		}
		// File-filter identifiers must remain unique across the registry.
		otherFilters := other.FileFilters(true)
		for _, ff := range fileFilters {
			if slices.Contains(otherFilters, ff) {
				r.logger.Warn("file filter is already handled by another filter",
					"file_filter", ff,
					"filter", name,
					"other", strings.ToUpper(other.DefaultExtension()))
				return
			}
		}
	}

	r.filters = append(r.filters, f)
}

// UnregisterAll invokes every filter's release hook in insertion order and
// clears the registry. Calling it on an empty registry is a no-op.
func (r *Registry) UnregisterAll() {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, f := range r.filters {
		f.Unregister()
	}
	r.filters = nil
}

// ByFileFilter returns the first filter whose import (onImport true) or
// export identifier set contains the given identifier, or nil. An empty
// identifier never matches.
func (r *Registry) ByFileFilter(identifier string, onImport bool) Filter {
	if identifier == "" {
		return nil
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, f := range r.filters {
		if slices.Contains(f.FileFilters(onImport), identifier) {
			return f
		}
	}
	return nil
}

// ForExtension returns the first registered filter that can load the given
// extension (matched case-insensitively), or nil. First-match-wins:
// registration order resolves ambiguous claims.
func (r *Registry) ForExtension(ext string) Filter {
	upperExt := strings.ToUpper(ext)

	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, f := range r.filters {
		if f.CanLoadExtension(upperExt) {
			return f
		}
	}
	return nil
}

// All returns a snapshot copy of the registered filters in registration
// order.
func (r *Registry) All() []Filter {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Filter, len(r.filters))
	copy(out, r.filters)
	return out
}

// Len returns the number of registered filters.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.filters)
}

// ImportFileFilters returns every import identifier in registration order,
// the list a file-open dialog or CLI would present.
func (r *Registry) ImportFileFilters() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []string
	for _, f := range r.filters {
		out = append(out, f.FileFilters(true)...)
	}
	return out
}
