package scriptify

import (
	"github.com/reifyd/scriptify/pkg/chain"
	"github.com/reifyd/scriptify/pkg/resource"
	"github.com/reifyd/scriptify/pkg/whizzml"
)

// BuildCreateArgs extracts the literal arguments of a resource's create
// section. Reference-only attributes are excluded; the origin resolver
// supplies those structurally. Attribute order follows the
// configuration's enumeration order.
func BuildCreateArgs(kind resource.Kind, cfg chain.Config) []whizzml.Pair {
	section := cfg.Section(chain.OpCreate)

	var args []whizzml.Pair
	for _, key := range section.Keys() {
		if resource.IsReferenceOnly(kind, key) {
			continue
		}
		value, _ := section.Get(key)
		args = append(args, whizzml.Pair{Key: key, Value: value})
	}
	return args
}

// BuildUpdateArgs extracts all attributes of an operation section
// verbatim, in enumeration order. Used for update and update-parser
// statements, which carry no structural references.
func BuildUpdateArgs(section *chain.Section) []whizzml.Pair {
	var args []whizzml.Pair
	for _, key := range section.Keys() {
		value, _ := section.Get(key)
		args = append(args, whizzml.Pair{Key: key, Value: value})
	}
	return args
}
