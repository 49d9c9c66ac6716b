package ecosystem

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"
)

// Registry holds the live descriptor set. The set is built once by Discover
// and read-only afterward; Refresh builds a fresh set and swaps it in, so
// readers never observe a half-built registry.
type Registry struct {
	mu sync.RWMutex

	// descriptors maps type key to descriptor. Never mutated after a
	// discover pass completes; Refresh replaces the whole map.
	descriptors map[string]*Descriptor

	// seq records registration order per type key, for deterministic
	// tie-breaking between distinct types with equal priority. A
	// re-registration under an existing key keeps the key's original slot.
	seq map[string]int

	opts Options
}

// Options controls where Discover looks for descriptor layers beyond the
// built-in set. Empty paths disable the corresponding layer.
type Options struct {
	// UserDir is the user-level descriptor directory,
	// typically ~/.scope/ecosystems.
	UserDir string

	// ProjectDir is the project-level descriptor directory,
	// typically <project>/.scope/ecosystems. Highest precedence.
	ProjectDir string
}

// DefaultUserDir returns the conventional user-level descriptor directory,
// or "" if the home directory cannot be determined.
func DefaultUserDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".scope", "ecosystems")
}

// NewRegistry creates an empty registry. Call Discover before using it.
func NewRegistry(opts Options) *Registry {
	return &Registry{
		descriptors: make(map[string]*Descriptor),
		seq:         make(map[string]int),
		opts:        opts,
	}
}

// Discover builds the descriptor set from the built-in layer, then the user
// layer, then the project layer. A later layer re-declaring an existing type
// key replaces that descriptor entirely. Malformed or non-conforming
// descriptor files are skipped; discovery itself never fails on them.
func (r *Registry) Discover() {
	descriptors := make(map[string]*Descriptor)
	seq := make(map[string]int)
	next := 0

	register := func(d *Descriptor) {
		if _, exists := seq[d.Type]; !exists {
			seq[d.Type] = next
			next++
		}
		descriptors[d.Type] = d
	}

	for _, d := range builtinDescriptors() {
		register(d)
	}
	for _, dir := range []string{r.opts.UserDir, r.opts.ProjectDir} {
		if dir == "" {
			continue
		}
		for _, d := range loadDescriptorDir(dir) {
			register(d)
		}
	}

	r.mu.Lock()
	r.descriptors = descriptors
	r.seq = seq
	r.mu.Unlock()
}

// Refresh re-runs discovery, picking up descriptor files added or changed
// since the last pass.
func (r *Registry) Refresh() {
	r.Discover()
}

// Get returns the descriptor registered under the given type key.
func (r *Registry) Get(typeKey string) (*Descriptor, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	d, ok := r.descriptors[typeKey]
	return d, ok
}

// List returns all registered descriptors in detection order: ascending
// priority, ties broken by registration order.
func (r *Registry) List() []*Descriptor {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.ordered()
}

// ordered returns descriptors in detection order. Callers must hold r.mu.
func (r *Registry) ordered() []*Descriptor {
	out := make([]*Descriptor, 0, len(r.descriptors))
	for _, d := range r.descriptors {
		out = append(out, d)
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Priority != out[j].Priority {
			return out[i].Priority < out[j].Priority
		}
		return r.seq[out[i].Type] < r.seq[out[j].Type]
	})
	return out
}

// Detect returns the single best-matching ecosystem type for a directory:
// the first descriptor, in detection order, with at least one indicator file
// present directly in dir. Returns Unknown when nothing matches. Detect is a
// total function; filesystem errors read as "indicator not present".
func (r *Registry) Detect(dir string) string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, d := range r.ordered() {
		if hasAnyIndicator(dir, d.Indicators) {
			return d.Type
		}
	}
	return Unknown
}

// DetectAll returns every matching ecosystem type in detection order, for
// polyglot directories. Returns [Unknown] when nothing matches; a type never
// appears twice.
func (r *Registry) DetectAll(dir string) []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var matches []string
	for _, d := range r.ordered() {
		if hasAnyIndicator(dir, d.Indicators) {
			matches = append(matches, d.Type)
		}
	}
	if len(matches) == 0 {
		return []string{Unknown}
	}
	return matches
}

// hasAnyIndicator reports whether any of the named files exists as a regular
// file directly under dir. Stat errors (absent, permission, not a directory)
// all read as "not present".
func hasAnyIndicator(dir string, indicators []string) bool {
	for _, name := range indicators {
		info, err := os.Stat(filepath.Join(dir, name))
		if err == nil && !info.IsDir() {
			return true
		}
	}
	return false
}

// loadDescriptorDir loads every parseable descriptor file in dir. Entries
// are processed in sorted name order so discovery is deterministic. Files
// that fail to parse or validate are skipped.
func loadDescriptorDir(dir string) []*Descriptor {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil
	}

	var out []*Descriptor
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		ext := strings.ToLower(filepath.Ext(entry.Name()))
		if ext != ".yaml" && ext != ".yml" {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		d, err := loadDescriptorFile(path)
		if err != nil {
			debugf("ecosystem: skipping descriptor %s: %v", path, err)
			continue
		}
		out = append(out, d)
	}
	return out
}

// loadDescriptorFile parses a single YAML descriptor document.
func loadDescriptorFile(path string) (*Descriptor, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading descriptor: %w", err)
	}

	var d Descriptor
	if err := yaml.Unmarshal(data, &d); err != nil {
		return nil, fmt.Errorf("parsing descriptor YAML: %w", err)
	}
	if err := d.Validate(); err != nil {
		return nil, err
	}
	return &d, nil
}

// debugf prints a diagnostic line to stderr when SCOPE_DEBUG is set.
func debugf(format string, args ...any) {
	if os.Getenv("SCOPE_DEBUG") == "" {
		return
	}
	fmt.Fprintf(os.Stderr, format+"\n", args...)
}
