package scriptify

import (
	"fmt"
	"strings"

	"github.com/reifyd/scriptify/pkg/chain"
	"github.com/reifyd/scriptify/pkg/resource"
	"github.com/reifyd/scriptify/pkg/whizzml"
)

// defaultRetrainLimit caps the dataset selection when the script runs
// without an explicit datasets-limit.
const defaultRetrainLimit = 2

// createStatement emits the create binding for a resource. The terminal
// resource of a retrain script gets a dataset-selection preamble in place
// of its normal origin arguments.
func (w *walk) createStatement(id string, kind resource.Kind, cfg chain.Config, name string) (string, error) {
	var lines []string
	var origin []whizzml.Pair

	if w.opts.Retrain && id == w.terminalID && resource.IsModelFamily(kind) {
		preamble, trainingRef := retrainPreamble(id)
		lines = append(lines, preamble...)
		origin = []whizzml.Pair{{Key: "datasets", Value: trainingRef}}
	} else {
		parents, err := w.resolveParents(cfg.Section(chain.OpCreate))
		if err != nil {
			return "", err
		}
		origin, err = ResolveOrigin(kind, parents)
		if err != nil {
			return "", err
		}
	}

	args := append(origin, BuildCreateArgs(kind, cfg)...)

	lines = append(lines,
		whizzml.Comment(fmt.Sprintf("Create %s %s", kind, id)),
		whizzml.Define(name, whizzml.CreateCall(string(kind), args)),
	)
	return whizzml.PrettyPrint(strings.Join(lines, "\n")), nil
}

// retrainPreamble emits the dynamic dataset selection for a periodic
// retrain: pick the datasets tagged for this resource, capped by the
// datasets-limit input when positive, and consolidate them into a single
// merged dataset otherwise.
func retrainPreamble(terminalID string) ([]string, whizzml.Ref) {
	marker := "retrain:" + terminalID

	selection := whizzml.Define("selection-limit",
		fmt.Sprintf("(if (> datasets-limit 0) datasets-limit %d)", defaultRetrainLimit))

	query := whizzml.ListDatasets([]whizzml.Pair{
		{Key: "tags__in", Value: marker},
		{Key: "limit", Value: whizzml.Ref("selection-limit")},
	})
	datasets := whizzml.Define("retrain-datasets",
		fmt.Sprintf(`(map (lambda (ds) (ds "resource")) %s)`, query))

	merged := whizzml.CreateCall("dataset", []whizzml.Pair{
		{Key: "origin_datasets", Value: whizzml.Ref("retrain-datasets")},
	})
	training := whizzml.Define("training-datasets",
		fmt.Sprintf("(if (> datasets-limit 0) retrain-datasets [%s])", merged))

	lines := []string{
		whizzml.Comment(fmt.Sprintf("Select the datasets tagged %q for retraining", marker)),
		selection,
		datasets,
		training,
	}
	return lines, whizzml.Ref("training-datasets")
}

// getStatement emits a sub-resource fetch: read the parent's current
// binding and navigate to the field named by the get section.
func (w *walk) getStatement(id string, kind resource.Kind, cfg chain.Config, name string) string {
	section := cfg.Section(chain.OpGet)

	target := "false"
	if parents := resource.ParentIDs(section.GetDefault("parents", nil)); len(parents) > 0 {
		target = w.info.Aliases.Current(parents[0])
	}
	field := section.StringOr("field", "resource")

	lines := []string{
		whizzml.Comment(fmt.Sprintf("Fetch %s %s", kind, id)),
		whizzml.Define(name, whizzml.FetchField(target, field)),
	}
	return whizzml.PrettyPrint(strings.Join(lines, "\n"))
}

// updateStatement emits an update binding against the resource's current
// alias. The header distinguishes parser updates on sources from regular
// updates.
func (w *walk) updateStatement(id string, kind resource.Kind, section *chain.Section, target, name, label string) string {
	lines := []string{
		whizzml.Comment(fmt.Sprintf("%s %s %s", label, kind, id)),
		whizzml.Define(name, whizzml.UpdateCall(target, BuildUpdateArgs(section))),
	}
	return whizzml.PrettyPrint(strings.Join(lines, "\n"))
}

// resolveParents looks up the parents declared by an operation section
// and pairs each with its kind and current variable name.
func (w *walk) resolveParents(section *chain.Section) ([]Parent, error) {
	ids := resource.ParentIDs(section.GetDefault("parents", nil))
	parents := make([]Parent, 0, len(ids))
	for _, id := range ids {
		kind, err := resource.Classify(id)
		if err != nil {
			return nil, err
		}
		parents = append(parents, Parent{
			ID:   id,
			Kind: kind,
			Name: whizzml.Ref(w.info.Aliases.Current(id)),
		})
	}
	return parents, nil
}
