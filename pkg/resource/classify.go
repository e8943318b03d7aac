package resource

import (
	"strings"

	"github.com/reifyd/scriptify/pkg/errors"
)

// urlSchemes are the prefixes that mark a seed input as a remote URL
// rather than a resource id.
var urlSchemes = []string{
	"http://", "https://", "s3://", "gs://", "azure://", "file://",
}

// IsRemote reports whether id is a raw URL seed.
func IsRemote(id string) bool {
	for _, scheme := range urlSchemes {
		if strings.HasPrefix(id, scheme) {
			return true
		}
	}
	return false
}

// Classify returns the kind of a resource id. Ids take the form
// "<kind>/<identifier>"; raw URLs classify as KindRemote. Anything else
// is a classification error.
func Classify(id string) (Kind, error) {
	if IsRemote(id) {
		return KindRemote, nil
	}
	prefix, _, found := strings.Cut(id, "/")
	if !found {
		return "", errors.ClassifyError(id)
	}
	kind := Kind(prefix)
	if !IsKnown(kind) {
		return "", errors.ClassifyError(id)
	}
	return kind, nil
}
