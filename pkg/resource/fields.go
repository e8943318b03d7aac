package resource

// ParentIDs extracts an ordered list of resource ids from the raw value of
// a "parents" attribute. Missing or malformed values yield an empty list.
func ParentIDs(v interface{}) []string {
	var ids []string
	switch list := v.(type) {
	case []interface{}:
		for _, entry := range list {
			if id, ok := entry.(string); ok {
				ids = append(ids, id)
			}
		}
	case []string:
		ids = append(ids, list...)
	case string:
		if list != "" {
			ids = append(ids, list)
		}
	}
	return ids
}

// commonReferenceAttrs are structural for every kind. "parents" is
// chain bookkeeping, never a literal API argument.
var commonReferenceAttrs = map[string]bool{
	"parents": true,
}

// referenceAttrs lists, per kind, the create attributes that wire a
// resource to its parents. These are supplied by the origin resolver and
// must not be repeated as literal arguments.
var referenceAttrs = map[Kind]map[string]bool{
	KindSource: {"remote": true, "data": true, "file": true},
	KindDataset: {
		"source": true, "origin_dataset": true, "origin_datasets": true,
		"cluster": true, "centroid": true, "origin_batch_resource": true,
	},
	KindEvaluation: {
		"model": true, "ensemble": true, "logisticregression": true,
		"deepnet": true, "timeseries": true, "dataset": true,
		"datasets": true, "evaluations": true,
	},
	KindCorrelation:     {"dataset": true},
	KindStatisticalTest: {"dataset": true},
}

// modelReferenceAttrs apply to every model-family kind.
var modelReferenceAttrs = map[string]bool{
	"dataset": true, "datasets": true, "cluster": true,
}

// scoringReferenceAttrs apply to batch operations and point results: the
// model-family parent is referenced by its own kind name, plus "dataset"
// for the batch case.
var scoringReferenceAttrs = map[string]bool{
	"model": true, "ensemble": true, "logisticregression": true,
	"deepnet": true, "cluster": true, "anomaly": true,
	"topicmodel": true, "timeseries": true, "association": true,
	"dataset": true,
}

// IsReferenceOnly reports whether the given create attribute of a kind is
// supplied structurally (via parent references) rather than literally.
func IsReferenceOnly(kind Kind, attr string) bool {
	if commonReferenceAttrs[attr] {
		return true
	}
	if IsModelFamily(kind) {
		return modelReferenceAttrs[attr]
	}
	if IsBatchOperation(kind) || IsPointResult(kind) {
		return scoringReferenceAttrs[attr]
	}
	if attrs, ok := referenceAttrs[kind]; ok {
		return attrs[attr]
	}
	return false
}
