package mdx

import (
	"fmt"
	"regexp"
	"sort"
	"sync"
)

// ComponentRegistration describes one renderable component available for
// use inside MDX bodies. Renderer is opaque to the pipeline; it is handed
// through to whatever does the final dispatch.
type ComponentRegistration struct {
	Name         string
	Renderer     any
	AllowedProps []string
	Category     string
}

var componentNameRe = regexp.MustCompile(`^[A-Z][A-Za-z0-9]*$`)

// Registry holds the components a site exposes to authors. Reads vastly
// outnumber writes; registration normally happens once at startup but is
// safe at any time.
type Registry struct {
	mu         sync.RWMutex
	components map[string]ComponentRegistration
}

// NewRegistry returns an empty component registry.
func NewRegistry() *Registry {
	return &Registry{components: make(map[string]ComponentRegistration)}
}

// Register adds or replaces a component. Names must be capitalized
// identifiers; a duplicate name silently replaces the earlier entry.
func (r *Registry) Register(reg ComponentRegistration) error {
	if !componentNameRe.MatchString(reg.Name) {
		return fmt.Errorf("invalid component name %q: must be a capitalized identifier", reg.Name)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.components[reg.Name] = reg
	return nil
}

// Lookup returns the registration for name, if any.
func (r *Registry) Lookup(name string) (ComponentRegistration, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	reg, ok := r.components[name]
	return reg, ok
}

// Names returns the registered component names, sorted.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.components))
	for name := range r.components {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Len reports the number of registered components.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.components)
}

var (
	defaultRegistry     *Registry
	defaultRegistryOnce sync.Once
)

// DefaultRegistry returns the application-wide registry, pre-loaded with
// the components the site theme ships. Callers that need isolation (tests,
// multi-site setups) should construct their own with NewRegistry.
func DefaultRegistry() *Registry {
	defaultRegistryOnce.Do(func() {
		defaultRegistry = NewRegistry()
		for _, reg := range []ComponentRegistration{
			{Name: "ProjectCard", AllowedProps: []string{"title", "description", "url", "image", "tech"}, Category: "showcase"},
			{Name: "Callout", AllowedProps: []string{"type", "title"}, Category: "content"},
			{Name: "ImageGallery", AllowedProps: []string{"images", "columns"}, Category: "media"},
			{Name: "YouTube", AllowedProps: []string{"id", "title"}, Category: "media"},
			{Name: "CodeSandbox", AllowedProps: []string{"id", "height"}, Category: "embed"},
		} {
			// Names are static and valid; Register cannot fail here.
			_ = defaultRegistry.Register(reg)
		}
	})
	return defaultRegistry
}
