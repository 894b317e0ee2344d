package vars

import (
	"regexp"
	"sync"
)

// Data holds the per-render variable bindings substituted into layer
// text and source paths (e.g. product_image, price_text, file_name).
// Key names are caller conventions; nothing here interprets them.
type Data map[string]string

var placeholderPattern = regexp.MustCompile(`\$\{([^}]+)\}`)

// Resolve replaces every ${name} occurrence with the bound value.
// Unbound names are left verbatim so missing data stays visible in the
// output instead of silently disappearing. A single left-to-right scan;
// substituted values are never re-scanned.
func (d Data) Resolve(text string) string {
	if len(d) == 0 || text == "" {
		return text
	}
	return placeholderPattern.ReplaceAllStringFunc(text, func(match string) string {
		name := match[2 : len(match)-1]
		if value, ok := d[name]; ok {
			return value
		}
		return match
	})
}

// Store owns the source data shared between the caller and the composite
// engine. The caller updates it between renders; during a single render
// pass it must only be read. Snapshot hands renderers a copy so a
// misbehaving caller cannot mutate bindings mid-pass.
type Store struct {
	mu   sync.RWMutex
	data Data
}

func NewStore(initial map[string]string) *Store {
	store := &Store{data: Data{}}
	for k, v := range initial {
		store.data[k] = v
	}
	return store
}

func (store *Store) Snapshot() Data {
	store.mu.RLock()
	defer store.mu.RUnlock()
	copied := make(Data, len(store.data))
	for k, v := range store.data {
		copied[k] = v
	}
	return copied
}

func (store *Store) Set(name, value string) {
	store.mu.Lock()
	store.data[name] = value
	store.mu.Unlock()
}

// Update merges new bindings into the store, overwriting existing names.
func (store *Store) Update(values map[string]string) {
	store.mu.Lock()
	for k, v := range values {
		store.data[k] = v
	}
	store.mu.Unlock()
}
