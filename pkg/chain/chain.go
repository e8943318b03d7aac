// Package chain models a recorded resource-operation history (a reify
// chain) and loads it from YAML or HCL definition files.
package chain

// Operation names recognized in a resource configuration.
const (
	OpCreate       = "create"
	OpGet          = "get"
	OpUpdate       = "update"
	OpUpdateParser = "update-parser"
)

// Section is an ordered attribute map for one operation of a resource
// configuration. Attribute enumeration order matches declaration order in
// the source file. All accessors are nil-safe: a missing section behaves
// as an empty one.
type Section struct {
	keys   []string
	values map[string]interface{}
}

// NewSection creates an empty section.
func NewSection() *Section {
	return &Section{values: make(map[string]interface{})}
}

// Set appends an attribute, or overwrites its value if the key exists.
func (s *Section) Set(key string, value interface{}) {
	if _, exists := s.values[key]; !exists {
		s.keys = append(s.keys, key)
	}
	s.values[key] = value
}

// Get returns the value for key and whether it is present.
func (s *Section) Get(key string) (interface{}, bool) {
	if s == nil {
		return nil, false
	}
	v, ok := s.values[key]
	return v, ok
}

// GetDefault returns the value for key, or def when absent.
func (s *Section) GetDefault(key string, def interface{}) interface{} {
	if v, ok := s.Get(key); ok {
		return v
	}
	return def
}

// StringOr returns the string value for key, or def when absent or not a
// string.
func (s *Section) StringOr(key, def string) string {
	if v, ok := s.Get(key); ok {
		if str, isStr := v.(string); isStr {
			return str
		}
	}
	return def
}

// Strings returns the value for key as a string list, empty when absent.
func (s *Section) Strings(key string) []string {
	v, ok := s.Get(key)
	if !ok {
		return nil
	}
	switch list := v.(type) {
	case []string:
		return list
	case []interface{}:
		var out []string
		for _, entry := range list {
			if str, isStr := entry.(string); isStr {
				out = append(out, str)
			}
		}
		return out
	case string:
		return []string{list}
	}
	return nil
}

// Keys returns the attribute keys in declaration order.
func (s *Section) Keys() []string {
	if s == nil {
		return nil
	}
	return s.keys
}

// Len returns the number of attributes.
func (s *Section) Len() int {
	if s == nil {
		return 0
	}
	return len(s.keys)
}

// Config maps operation names to their attribute sections for one
// resource.
type Config map[string]*Section

// Section returns the section for the named operation, or nil when the
// configuration does not include it. The returned value is safe to use
// directly since Section accessors tolerate nil.
func (c Config) Section(op string) *Section {
	if c == nil {
		return nil
	}
	return c[op]
}

// Has reports whether the configuration includes the named operation.
func (c Config) Has(op string) bool {
	if c == nil {
		return false
	}
	_, ok := c[op]
	return ok
}

// Chain is an ordered resource-operation history plus its externally
// supplied seed inputs.
type Chain struct {
	// Name is an optional label from the definition file.
	Name string

	// Sequence is the ordered list of resource ids. Parents precede
	// children; an id may recur.
	Sequence []string

	// Configs holds one configuration per distinct resource id.
	Configs map[string]Config

	// Inputs lists the seed ids (raw URLs or pre-existing resources)
	// that the generated script receives as parameters instead of
	// creating.
	Inputs []string
}

// ConfigFor returns the configuration for a resource id, nil-safe.
func (c *Chain) ConfigFor(id string) Config {
	if c == nil || c.Configs == nil {
		return nil
	}
	return c.Configs[id]
}

// IsInput reports whether the id is one of the seed inputs.
func (c *Chain) IsInput(id string) bool {
	for _, in := range c.Inputs {
		if in == id {
			return true
		}
	}
	return false
}

// mergeConfig folds the operations of src into the stored configuration
// for id. A repeated sequence entry may carry additional operations.
func (c *Chain) mergeConfig(id string, src Config) {
	if c.Configs == nil {
		c.Configs = make(map[string]Config)
	}
	dst, ok := c.Configs[id]
	if !ok {
		c.Configs[id] = src
		return
	}
	for op, section := range src {
		if _, exists := dst[op]; !exists {
			dst[op] = section
		}
	}
}
