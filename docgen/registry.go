package docgen

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/hazyhaar/scribe/docgen/internal/store"
)

// Registry holds the document types known to the service: the built-ins
// compiled in, plus custom types loaded from the store and from YAML template
// packs. A custom type with a built-in's id shadows the built-in.
type Registry struct {
	mu       sync.RWMutex
	builtins map[string]DocumentType
	customs  map[string]DocumentType
	store    *store.Store
}

// NewRegistry builds a registry over the built-in types and loads persisted
// custom types from st.
func NewRegistry(ctx context.Context, st *store.Store) (*Registry, error) {
	r := &Registry{
		builtins: make(map[string]DocumentType),
		customs:  make(map[string]DocumentType),
		store:    st,
	}
	for _, t := range builtinTypes() {
		r.builtins[t.ID] = t
	}

	persisted, err := st.ListCustomTypes(ctx)
	if err != nil {
		return nil, err
	}
	for _, ct := range persisted {
		r.customs[ct.ID] = DocumentType{
			ID:          ct.ID,
			Description: ct.Description,
			Template:    ct.Template,
		}
	}
	return r, nil
}

// Get resolves a document type by id. Custom types take precedence over
// built-ins of the same id.
func (r *Registry) Get(id string) (DocumentType, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if t, ok := r.customs[id]; ok {
		return t, nil
	}
	if t, ok := r.builtins[id]; ok {
		return t, nil
	}
	return DocumentType{}, fmt.Errorf("%w: %s", ErrTypeNotFound, id)
}

// List returns every known type: built-ins first, then customs, each sorted
// by id. A built-in shadowed by a custom appears once, as the custom.
func (r *Registry) List() []DocumentType {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var builtins, customs []DocumentType
	for id, t := range r.builtins {
		if _, shadowed := r.customs[id]; shadowed {
			continue
		}
		builtins = append(builtins, t)
	}
	for _, t := range r.customs {
		customs = append(customs, t)
	}
	sort.Slice(builtins, func(i, j int) bool { return builtins[i].ID < builtins[j].ID })
	sort.Slice(customs, func(i, j int) bool { return customs[i].ID < customs[j].ID })
	return append(builtins, customs...)
}

// Add registers a custom document type and persists it. Re-registering an id
// overwrites the previous definition, including built-in ids.
func (r *Registry) Add(ctx context.Context, t DocumentType) error {
	if err := validateType(t); err != nil {
		return err
	}
	t.Builtin = false

	if err := r.store.UpsertCustomType(ctx, &store.CustomType{
		ID:          t.ID,
		Description: t.Description,
		Template:    t.Template,
	}); err != nil {
		return err
	}

	r.mu.Lock()
	r.customs[t.ID] = t
	r.mu.Unlock()
	return nil
}

// templateFile is the YAML shape of one template-pack entry.
type templateFile struct {
	ID          string `yaml:"id"`
	Description string `yaml:"description"`
	Template    string `yaml:"template"`
}

// LoadDir registers every .yaml/.yml file under dir as a custom type, without
// persisting them. Files loaded this way are reapplied on each start, so the
// pack directory stays the source of truth for its types. A missing dir is
// not an error.
func (r *Registry) LoadDir(dir string) error {
	entries, err := os.ReadDir(dir)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("docgen: read templates dir: %w", err)
	}

	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		ext := strings.ToLower(filepath.Ext(e.Name()))
		if ext != ".yaml" && ext != ".yml" {
			continue
		}
		path := filepath.Join(dir, e.Name())
		raw, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("docgen: read template %s: %w", path, err)
		}
		var tf templateFile
		if err := yaml.Unmarshal(raw, &tf); err != nil {
			return fmt.Errorf("docgen: parse template %s: %w", path, err)
		}
		if tf.ID == "" {
			tf.ID = strings.TrimSuffix(e.Name(), filepath.Ext(e.Name()))
		}
		t := DocumentType{ID: tf.ID, Description: tf.Description, Template: tf.Template}
		if err := validateType(t); err != nil {
			return fmt.Errorf("docgen: template %s: %w", path, err)
		}
		r.mu.Lock()
		r.customs[t.ID] = t
		r.mu.Unlock()
	}
	return nil
}

func validateType(t DocumentType) error {
	if strings.TrimSpace(t.ID) == "" {
		return fmt.Errorf("%w: type id is required", ErrInvalidInput)
	}
	if strings.ContainsAny(t.ID, " \t\n/\\") {
		return fmt.Errorf("%w: type id %q contains separators", ErrInvalidInput, t.ID)
	}
	if strings.TrimSpace(t.Description) == "" {
		return fmt.Errorf("%w: description is required", ErrInvalidInput)
	}
	if strings.TrimSpace(t.Template) == "" {
		return fmt.Errorf("%w: template is required", ErrInvalidInput)
	}
	return nil
}
