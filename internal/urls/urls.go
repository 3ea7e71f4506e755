// Package urls names routes so handlers can build links without hardcoding
// paths, e.g. Reverse("location-update", 3) -> "/locations/3/edit".
package urls

import (
	"fmt"
	"strings"
	"sync"
)

type Registry struct {
	mu    sync.RWMutex
	paths map[string]string
}

func NewRegistry() *Registry {
	return &Registry{paths: make(map[string]string)}
}

// Add records name for a gin-style path. Re-adding a name keeps the first
// path, so a GET and POST sharing a name resolve to the same URL.
func (r *Registry) Add(name, path string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.paths[name]; !ok {
		r.paths[name] = path
	}
}

// Reverse fills the path's ":param" segments in order with params.
func (r *Registry) Reverse(name string, params ...any) (string, error) {
	r.mu.RLock()
	path, ok := r.paths[name]
	r.mu.RUnlock()
	if !ok {
		return "", fmt.Errorf("no route named %q", name)
	}

	segments := strings.Split(path, "/")
	i := 0
	for j, seg := range segments {
		if !strings.HasPrefix(seg, ":") {
			continue
		}
		if i >= len(params) {
			return "", fmt.Errorf("route %q: missing value for %s", name, seg)
		}
		segments[j] = fmt.Sprint(params[i])
		i++
	}
	if i != len(params) {
		return "", fmt.Errorf("route %q: %d unused params", name, len(params)-i)
	}
	return strings.Join(segments, "/"), nil
}

// MustReverse is Reverse for names known at startup.
func (r *Registry) MustReverse(name string, params ...any) string {
	p, err := r.Reverse(name, params...)
	if err != nil {
		panic(err)
	}
	return p
}

// All returns a copy of every registered name.
func (r *Registry) All() map[string]string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make(map[string]string, len(r.paths))
	for k, v := range r.paths {
		out[k] = v
	}
	return out
}
