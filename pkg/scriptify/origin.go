package scriptify

import (
	"github.com/reifyd/scriptify/pkg/errors"
	"github.com/reifyd/scriptify/pkg/resource"
	"github.com/reifyd/scriptify/pkg/whizzml"
)

// Parent is a resolved parent reference: the parent's id, kind and its
// current variable name at the point of use.
type Parent struct {
	ID   string
	Kind resource.Kind
	Name whizzml.Ref
}

// ResolveOrigin maps a child kind and its ordered parents to the origin
// arguments that wire the child's create call to already-bound variables.
// Rules are tried top to bottom; the first match wins. A resource with no
// parents takes no origin arguments. A parent combination outside the
// table is an origin error rather than the silent empty list the
// recorded histories tolerate.
func ResolveOrigin(child resource.Kind, parents []Parent) ([]whizzml.Pair, error) {
	if len(parents) == 0 {
		return nil, nil
	}

	first := parents[0]

	switch {
	case child == resource.KindSource:
		return []whizzml.Pair{{Key: "remote", Value: first.Name}}, nil

	case child == resource.KindDataset && first.Kind == resource.KindSource:
		return []whizzml.Pair{{Key: "source", Value: first.Name}}, nil

	case child == resource.KindDataset && first.Kind == resource.KindCluster:
		return []whizzml.Pair{{Key: "cluster", Value: first.Name}}, nil

	case child == resource.KindDataset && first.Kind == resource.KindDataset:
		if len(parents) == 1 {
			return []whizzml.Pair{{Key: "origin_dataset", Value: first.Name}}, nil
		}
		return []whizzml.Pair{{Key: "origin_datasets", Value: parentRefs(parents)}}, nil

	case resource.IsModelFamily(child) && first.Kind == resource.KindCluster:
		return []whizzml.Pair{{Key: "cluster", Value: first.Name}}, nil

	case resource.IsModelFamily(child) && first.Kind == resource.KindDataset:
		if len(parents) == 1 {
			return []whizzml.Pair{{Key: "dataset", Value: first.Name}}, nil
		}
		return []whizzml.Pair{{Key: "datasets", Value: parentRefs(parents)}}, nil

	case resource.IsBatchOperation(child) && len(parents) == 2:
		return []whizzml.Pair{
			{Key: string(first.Kind), Value: first.Name},
			{Key: "dataset", Value: parents[1].Name},
		}, nil

	case child == resource.KindEvaluation && first.Kind == resource.KindEvaluation:
		return []whizzml.Pair{{Key: "evaluations", Value: parentRefs(parents)}}, nil

	case child == resource.KindEvaluation && len(parents) == 2:
		return []whizzml.Pair{
			{Key: string(first.Kind), Value: first.Name},
			{Key: "dataset", Value: parents[1].Name},
		}, nil

	case resource.IsPointResult(child):
		return []whizzml.Pair{{Key: string(first.Kind), Value: first.Name}}, nil

	case (child == resource.KindCorrelation || child == resource.KindStatisticalTest) &&
		first.Kind == resource.KindDataset && len(parents) == 1:
		return []whizzml.Pair{{Key: "dataset", Value: first.Name}}, nil
	}

	kinds := make([]string, len(parents))
	for i, p := range parents {
		kinds[i] = string(p.Kind)
	}
	return nil, errors.OriginError(string(child), kinds)
}

func parentRefs(parents []Parent) []whizzml.Ref {
	refs := make([]whizzml.Ref, len(parents))
	for i, p := range parents {
		refs[i] = p.Name
	}
	return refs
}
