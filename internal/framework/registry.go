package framework

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

//go:embed descriptors/*.yaml
var builtinFS embed.FS

// ErrUnknown is returned by Lookup when no descriptor matches.
var ErrUnknown = errors.New("unknown framework")

// Registry maps framework names to descriptors.
type Registry struct {
	byName map[string]*Descriptor
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{byName: make(map[string]*Descriptor)}
}

// Builtin loads the embedded descriptors.
func Builtin() (*Registry, error) {
	r := NewRegistry()
	if err := r.loadFS(builtinFS, "descriptors", "embedded:"); err != nil {
		return nil, err
	}
	return r, nil
}

// Load returns the built-in registry, overlaid with the descriptors in dir
// when dir is non-empty. A missing dir is not an error.
func Load(dir string) (*Registry, error) {
	r, err := Builtin()
	if err != nil {
		return nil, err
	}
	if dir == "" {
		return r, nil
	}
	if err := r.LoadDir(dir); err != nil {
		return nil, err
	}
	return r, nil
}

// LoadDir adds every *.yaml / *.yml descriptor in dir, replacing any
// existing descriptor with the same name.
func (r *Registry) LoadDir(dir string) error {
	if _, err := os.Stat(dir); errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return r.loadFS(os.DirFS(dir), ".", dir+string(filepath.Separator))
}

func (r *Registry) loadFS(fsys fs.FS, root, prefix string) error {
	entries, err := fs.ReadDir(fsys, root)
	if err != nil {
		return fmt.Errorf("reading descriptors: %w", err)
	}
	for _, e := range entries {
		ext := filepath.Ext(e.Name())
		if e.IsDir() || (ext != ".yaml" && ext != ".yml") {
			continue
		}
		data, err := fs.ReadFile(fsys, pathJoin(root, e.Name()))
		if err != nil {
			return fmt.Errorf("reading %s: %w", e.Name(), err)
		}
		d, err := Parse(data, prefix+e.Name())
		if err != nil {
			return err
		}
		r.Add(d)
	}
	return nil
}

func pathJoin(root, name string) string {
	if root == "." {
		return name
	}
	return root + "/" + name
}

// Add registers d, replacing a descriptor with the same name. A replacement
// without an order keeps the replaced descriptor's position; other
// descriptors without an order sort after the built-ins.
func (r *Registry) Add(d *Descriptor) {
	if d.Order == 0 {
		d.Order = 1000
		if prev, ok := r.byName[d.Name]; ok {
			d.Order = prev.Order
		}
	}
	r.byName[d.Name] = d
}

// Lookup resolves a framework by name or display name, ignoring case and
// treating spaces as dashes ("React Native" finds react-native).
func (r *Registry) Lookup(name string) (*Descriptor, error) {
	key := normalize(name)
	if d, ok := r.byName[key]; ok {
		return d, nil
	}
	for _, d := range r.byName {
		if normalize(d.DisplayName) == key {
			return d, nil
		}
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknown, name)
}

// All returns the descriptors in menu order.
func (r *Registry) All() []*Descriptor {
	out := make([]*Descriptor, 0, len(r.byName))
	for _, d := range r.byName {
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Order != out[j].Order {
			return out[i].Order < out[j].Order
		}
		return out[i].Name < out[j].Name
	})
	return out
}

// Names returns the registered names in menu order.
func (r *Registry) Names() []string {
	all := r.All()
	names := make([]string, len(all))
	for i, d := range all {
		names[i] = d.Name
	}
	return names
}

func normalize(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	return strings.Join(strings.Fields(s), "-")
}
