// Package scriptify compiles a recorded resource-operation history into
// an executable WhizzML script and its creation payload.
package scriptify

import (
	"strconv"

	"github.com/reifyd/scriptify/pkg/resource"
)

// Aliases tracks, per resource id, the ordered history of variable names
// allocated to it. The first alias is the creation (or seed) name; each
// update or re-fetch appends a new one. Histories only grow.
type Aliases struct {
	byID map[string][]string
}

// NewAliases creates an empty alias table.
func NewAliases() *Aliases {
	return &Aliases{byID: make(map[string][]string)}
}

// Has reports whether the resource id has any alias yet.
func (a *Aliases) Has(id string) bool {
	return len(a.byID[id]) > 0
}

// First returns the first alias of a resource id, or "" when unknown.
func (a *Aliases) First(id string) string {
	history := a.byID[id]
	if len(history) == 0 {
		return ""
	}
	return history[0]
}

// Current returns the most recent alias of a resource id, or "" when
// unknown.
func (a *Aliases) Current(id string) string {
	history := a.byID[id]
	if len(history) == 0 {
		return ""
	}
	return history[len(history)-1]
}

// Append records a newly allocated alias for a resource id.
func (a *Aliases) Append(id, name string) {
	a.byID[id] = append(a.byID[id], name)
}

// History returns the full alias history of a resource id. The result
// is a copy; histories themselves only grow.
func (a *Aliases) History(id string) []string {
	return append([]string(nil), a.byID[id]...)
}

// TypeCounters allocates type-scoped variable names: the Nth name of a
// kind is "<kind><N>". Counts only increase.
type TypeCounters map[resource.Kind]int

// Next allocates the next name for a kind.
func (t TypeCounters) Next(kind resource.Kind) string {
	t[kind]++
	return string(kind) + strconv.Itoa(t[kind])
}
