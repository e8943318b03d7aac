package whizzml

import (
	"strconv"
)

// Define renders a top-level binding.
func Define(name, expr string) string {
	return "(define " + name + " " + expr + ")"
}

// CreateCall renders a create-and-wait call for a resource kind.
func CreateCall(kind string, args []Pair) string {
	if len(args) == 0 {
		return "(create-and-wait-" + kind + " {})"
	}
	return "(create-and-wait-" + kind + " " + Map(args) + ")"
}

// UpdateCall renders an update-and-wait call against a bound resource.
func UpdateCall(target string, args []Pair) string {
	return "(update-and-wait " + target + " " + Map(args) + ")"
}

// FetchField renders a sub-resource fetch: retrieve the bound resource
// and navigate to the named field.
func FetchField(target, field string) string {
	return "((fetch " + target + ") " + strconv.Quote(field) + ")"
}

// ListDatasets renders a dataset query with a filter condition.
func ListDatasets(filter []Pair) string {
	return "(list-datasets " + Map(filter) + ")"
}

// Comment renders a single-line comment.
func Comment(text string) string {
	return ";; " + text
}
