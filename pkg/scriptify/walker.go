package scriptify

import (
	"fmt"
	"strings"

	"github.com/reifyd/scriptify/pkg/chain"
	"github.com/reifyd/scriptify/pkg/resource"
)

// Options control a single script generation.
type Options struct {
	// Retrain replaces the terminal model-family create with the
	// periodic-retrain preamble driven by the datasets-limit input.
	Retrain bool

	// LastStep marks this script as a later step of a multi-script
	// sequence, which changes the descriptor naming.
	LastStep bool
}

// ScriptInfo is the result of walking a chain: the generated source plus
// the bookkeeping the descriptor builder needs.
type ScriptInfo struct {
	// Source is the full generated script body.
	Source string

	// Aliases holds every variable name allocated per resource id.
	Aliases *Aliases

	// Counters holds the per-kind name counters after the walk.
	Counters TypeCounters

	// TerminalID and TerminalKind describe the last resource in the
	// chain, whose value the script outputs.
	TerminalID   string
	TerminalKind resource.Kind

	// OutputName is the variable bound to the script's output port.
	OutputName string

	// Name, Description and Tags are inherited from the terminal
	// resource's configuration.
	Name        string
	Description string
	Tags        []string

	// Inputs is the original seed input list, in declaration order.
	Inputs []string
}

// walk carries the fold state across one generation pass.
type walk struct {
	c          *chain.Chain
	opts       Options
	info       *ScriptInfo
	terminalID string
	statements []string
}

// Walk compiles a chain into a script body. It performs a single
// left-to-right pass: each distinct resource id is processed exactly
// once, in first-occurrence order, and each statement it emits binds a
// freshly allocated type-scoped variable name.
func Walk(c *chain.Chain, opts Options) (*ScriptInfo, error) {
	if len(c.Sequence) == 0 {
		return nil, fmt.Errorf("cannot scriptify an empty chain")
	}

	w := &walk{
		c:    c,
		opts: opts,
		info: &ScriptInfo{
			Aliases:  NewAliases(),
			Counters: make(TypeCounters),
			Inputs:   append([]string(nil), c.Inputs...),
		},
		terminalID: c.Sequence[len(c.Sequence)-1],
	}

	for _, id := range c.Sequence {
		if w.info.Aliases.Has(id) {
			continue // memoized: recurrences are no-ops
		}
		if err := w.step(id); err != nil {
			return nil, err
		}
	}

	if err := w.finish(); err != nil {
		return nil, err
	}
	return w.info, nil
}

// step processes the first occurrence of a resource id: allocate its
// creation name, then emit whichever statements its configuration calls
// for.
func (w *walk) step(id string) error {
	kind, err := resource.Classify(id)
	if err != nil {
		return err
	}

	name := w.info.Counters.Next(kind)
	w.info.Aliases.Append(id, name)
	bound := false

	cfg := w.c.ConfigFor(id)

	// Seeds already exist when the script runs; their first alias names
	// an input port instead of a create binding.
	if cfg.Has(chain.OpCreate) && !w.c.IsInput(id) {
		stmt, err := w.createStatement(id, kind, cfg, name)
		if err != nil {
			return err
		}
		w.statements = append(w.statements, stmt)
		bound = true
	}

	if cfg.Has(chain.OpGet) {
		next := name
		// A seed's first alias names an input port, so the get may not
		// rebind it.
		if bound || w.c.IsInput(id) {
			next = w.info.Counters.Next(kind)
		}
		// Build the statement before recording the new alias so a fetch
		// against this same resource resolves to the previous binding.
		stmt := w.getStatement(id, kind, cfg, next)
		if next != name {
			w.info.Aliases.Append(id, next)
		}
		w.statements = append(w.statements, stmt)
	}

	// Parser updates only apply to sources and precede regular updates.
	// Both allocate a fresh alias so later statements can reference the
	// post-update value.
	if kind == resource.KindSource && cfg.Has(chain.OpUpdateParser) {
		target := w.info.Aliases.Current(id)
		next := w.info.Counters.Next(kind)
		w.info.Aliases.Append(id, next)
		w.statements = append(w.statements,
			w.updateStatement(id, kind, cfg.Section(chain.OpUpdateParser), target, next, "Update parser of"))
	}

	if cfg.Has(chain.OpUpdate) {
		target := w.info.Aliases.Current(id)
		next := w.info.Counters.Next(kind)
		w.info.Aliases.Append(id, next)
		w.statements = append(w.statements,
			w.updateStatement(id, kind, cfg.Section(chain.OpUpdate), target, next, "Update"))
	}

	return nil
}

// finish emits the output binding for the terminal resource and inherits
// the script's name, description and tags from its configuration.
func (w *walk) finish() error {
	kind, err := resource.Classify(w.terminalID)
	if err != nil {
		return err
	}

	output := w.info.Aliases.Current(w.terminalID)
	w.statements = append(w.statements,
		fmt.Sprintf("(define output-%s %s)", kind, output))

	w.info.TerminalID = w.terminalID
	w.info.TerminalKind = kind
	w.info.OutputName = output
	w.inheritMetadata(kind)

	w.info.Source = strings.Join(w.statements, "\n\n") + "\n"
	return nil
}

// inheritMetadata pulls name/description/tags from the terminal
// resource's create, get or update-parser sections, in that override
// order, synthesizing defaults when absent.
func (w *walk) inheritMetadata(kind resource.Kind) {
	cfg := w.c.ConfigFor(w.terminalID)
	sections := []*chain.Section{
		cfg.Section(chain.OpCreate),
		cfg.Section(chain.OpGet),
		cfg.Section(chain.OpUpdateParser),
	}

	for _, s := range sections {
		if w.info.Name == "" {
			w.info.Name = s.StringOr("name", "")
		}
		if w.info.Description == "" {
			w.info.Description = s.StringOr("description", "")
		}
		if len(w.info.Tags) == 0 {
			w.info.Tags = s.Strings("tags")
		}
	}

	if w.info.Name == "" {
		w.info.Name = w.terminalID
	}
	if w.info.Description == "" {
		w.info.Description = fmt.Sprintf("Scriptified %s", kind)
	}
	if len(w.info.Tags) == 0 {
		w.info.Tags = []string{ProviderTag}
	}
}
