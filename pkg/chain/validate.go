package chain

import (
	"fmt"

	"github.com/reifyd/scriptify/pkg/errors"
	"github.com/reifyd/scriptify/pkg/resource"
)

// Validate checks the preconditions the script generator relies on:
// every id classifies to a known kind, every seed input appears in the
// sequence, and every parent reference points at a resource that appears
// earlier in the sequence. The generator itself does not re-check these.
func Validate(c *Chain) error {
	firstIndex := make(map[string]int, len(c.Sequence))
	for i, id := range c.Sequence {
		if _, seen := firstIndex[id]; !seen {
			firstIndex[id] = i
		}
	}

	for _, id := range c.Sequence {
		if _, err := resource.Classify(id); err != nil {
			return err
		}
	}

	for _, input := range c.Inputs {
		if _, ok := firstIndex[input]; !ok {
			return errors.ValidationError(
				fmt.Sprintf("seed input %q does not appear in the chain", input),
				map[string]interface{}{"input": input},
			)
		}
	}

	for i, id := range c.Sequence {
		if firstIndex[id] != i {
			continue // recurrence of an already-checked resource
		}
		cfg := c.ConfigFor(id)
		for _, op := range []string{OpCreate, OpGet, OpUpdate, OpUpdateParser} {
			section := cfg.Section(op)
			parents := resource.ParentIDs(section.GetDefault("parents", nil))
			for _, parent := range parents {
				// A non-create section may name its own resource: the
				// reference resolves to the binding made by an earlier
				// operation (a create, or the seed itself).
				if parent == id && op != OpCreate {
					if cfg.Has(OpCreate) || c.IsInput(id) {
						continue
					}
					return errors.ValidationError(
						fmt.Sprintf("resource %q references itself without an earlier binding", id),
						map[string]interface{}{"resource": id, "parent": parent},
					)
				}
				at, ok := firstIndex[parent]
				if !ok {
					return errors.ValidationError(
						fmt.Sprintf("resource %q references unknown parent %q", id, parent),
						map[string]interface{}{"resource": id, "parent": parent},
					)
				}
				if at >= i {
					return errors.ValidationError(
						fmt.Sprintf("resource %q references parent %q before it appears in the chain", id, parent),
						map[string]interface{}{"resource": id, "parent": parent},
					)
				}
			}
		}
	}

	return nil
}
