package tools

import "log/slog"

// Registry holds every registered tool keyed by id, preserving registration
// order for listings.
//
// Registration happens once, at startup, before the HTTP server starts
// serving; after that the registry is read-only, so no locking is needed.
// If some future code path registers concurrently, the caller must
// serialize those writes itself.
type Registry struct {
	tools map[string]*ToolConfig
	order []string
	log   *slog.Logger
}

// NewRegistry creates an empty registry. A nil logger falls back to
// slog.Default.
func NewRegistry(log *slog.Logger) *Registry {
	if log == nil {
		log = slog.Default()
	}
	return &Registry{
		tools: make(map[string]*ToolConfig),
		log:   log,
	}
}

// Register inserts tool, overwriting any previous entry with the same id.
// A duplicate id is worth a warning but is not an error: last registration
// wins. Register performs no shape validation; that is the caller's job.
func (r *Registry) Register(tool *ToolConfig) {
	if _, dup := r.tools[tool.ID]; dup {
		r.log.Warn("tool already registered, overwriting", "tool", tool.ID)
	} else {
		r.order = append(r.order, tool.ID)
	}
	r.tools[tool.ID] = tool
}

// GetByID returns the tool with the given id, or false when absent.
func (r *Registry) GetByID(id string) (*ToolConfig, bool) {
	t, ok := r.tools[id]
	return t, ok
}

// GetAll returns every registered tool in registration order.
func (r *Registry) GetAll() []*ToolConfig {
	out := make([]*ToolConfig, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.tools[id])
	}
	return out
}

// GetByCategory filters GetAll by category.
func (r *Registry) GetByCategory(category Category) []*ToolConfig {
	var out []*ToolConfig
	for _, t := range r.GetAll() {
		if t.Category == category {
			out = append(out, t)
		}
	}
	return out
}

// Exists reports whether a tool with the given id is registered.
func (r *Registry) Exists(id string) bool {
	_, ok := r.tools[id]
	return ok
}

// Count returns the number of registered tools.
func (r *Registry) Count() int {
	return len(r.tools)
}
