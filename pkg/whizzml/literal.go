// Package whizzml renders WhizzML source text: literal values, the
// statement shapes used by the script generator, and a pretty printer.
package whizzml

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// Ref is a variable reference. It renders bare, without quoting.
type Ref string

// Raw is pre-rendered WhizzML source spliced verbatim into a literal
// position.
type Raw string

// Pair is one key/value argument of a WhizzML map literal. Values may be
// Go literals, Ref variable references, or Raw source fragments.
type Pair struct {
	Key   string
	Value interface{}
}

// Render converts a value to WhizzML source text. Go maps that arrive
// unordered render with sorted keys so output is deterministic.
func Render(v interface{}) string {
	switch val := v.(type) {
	case nil:
		return "false"
	case Ref:
		return string(val)
	case Raw:
		return string(val)
	case string:
		return strconv.Quote(val)
	case bool:
		if val {
			return "true"
		}
		return "false"
	case int:
		return strconv.Itoa(val)
	case int32:
		return strconv.FormatInt(int64(val), 10)
	case int64:
		return strconv.FormatInt(val, 10)
	case uint:
		return strconv.FormatUint(uint64(val), 10)
	case uint64:
		return strconv.FormatUint(val, 10)
	case float32:
		return strconv.FormatFloat(float64(val), 'g', -1, 32)
	case float64:
		return strconv.FormatFloat(val, 'g', -1, 64)
	case []Ref:
		parts := make([]string, len(val))
		for i, ref := range val {
			parts[i] = string(ref)
		}
		return "[" + strings.Join(parts, " ") + "]"
	case []string:
		parts := make([]string, len(val))
		for i, s := range val {
			parts[i] = strconv.Quote(s)
		}
		return "[" + strings.Join(parts, " ") + "]"
	case []interface{}:
		parts := make([]string, len(val))
		for i, elem := range val {
			parts[i] = Render(elem)
		}
		return "[" + strings.Join(parts, " ") + "]"
	case map[string]interface{}:
		keys := make([]string, 0, len(val))
		for k := range val {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		pairs := make([]Pair, len(keys))
		for i, k := range keys {
			pairs[i] = Pair{Key: k, Value: val[k]}
		}
		return Map(pairs)
	default:
		return strconv.Quote(fmt.Sprintf("%v", val))
	}
}

// Map renders an ordered argument list as a WhizzML map literal.
func Map(pairs []Pair) string {
	if len(pairs) == 0 {
		return "{}"
	}
	parts := make([]string, len(pairs))
	for i, p := range pairs {
		parts[i] = strconv.Quote(p.Key) + " " + Render(p.Value)
	}
	return "{" + strings.Join(parts, " ") + "}"
}
