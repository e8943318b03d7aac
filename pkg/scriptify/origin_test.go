package scriptify

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reifyd/scriptify/pkg/errors"
	"github.com/reifyd/scriptify/pkg/resource"
	"github.com/reifyd/scriptify/pkg/whizzml"
)

func parent(kind resource.Kind, name string) Parent {
	return Parent{ID: string(kind) + "/x", Kind: kind, Name: whizzml.Ref(name)}
}

func TestResolveOrigin(t *testing.T) {
	cases := []struct {
		name    string
		child   resource.Kind
		parents []Parent
		want    []whizzml.Pair
	}{
		{
			name:  "no parents",
			child: resource.KindSource,
		},
		{
			name:    "source from remote",
			child:   resource.KindSource,
			parents: []Parent{parent(resource.KindRemote, "remote1")},
			want:    []whizzml.Pair{{Key: "remote", Value: whizzml.Ref("remote1")}},
		},
		{
			name:    "dataset from source",
			child:   resource.KindDataset,
			parents: []Parent{parent(resource.KindSource, "source1")},
			want:    []whizzml.Pair{{Key: "source", Value: whizzml.Ref("source1")}},
		},
		{
			name:    "dataset from cluster",
			child:   resource.KindDataset,
			parents: []Parent{parent(resource.KindCluster, "cluster1")},
			want:    []whizzml.Pair{{Key: "cluster", Value: whizzml.Ref("cluster1")}},
		},
		{
			name:    "dataset from one dataset",
			child:   resource.KindDataset,
			parents: []Parent{parent(resource.KindDataset, "dataset1")},
			want:    []whizzml.Pair{{Key: "origin_dataset", Value: whizzml.Ref("dataset1")}},
		},
		{
			name:  "dataset from many datasets",
			child: resource.KindDataset,
			parents: []Parent{
				parent(resource.KindDataset, "dataset1"),
				parent(resource.KindDataset, "dataset2"),
			},
			want: []whizzml.Pair{{
				Key:   "origin_datasets",
				Value: []whizzml.Ref{"dataset1", "dataset2"},
			}},
		},
		{
			name:    "model from dataset",
			child:   resource.KindModel,
			parents: []Parent{parent(resource.KindDataset, "dataset1")},
			want:    []whizzml.Pair{{Key: "dataset", Value: whizzml.Ref("dataset1")}},
		},
		{
			name:  "ensemble from many datasets",
			child: resource.KindEnsemble,
			parents: []Parent{
				parent(resource.KindDataset, "dataset1"),
				parent(resource.KindDataset, "dataset2"),
			},
			want: []whizzml.Pair{{
				Key:   "datasets",
				Value: []whizzml.Ref{"dataset1", "dataset2"},
			}},
		},
		{
			name:    "cluster-seeded model",
			child:   resource.KindModel,
			parents: []Parent{parent(resource.KindCluster, "cluster1")},
			want:    []whizzml.Pair{{Key: "cluster", Value: whizzml.Ref("cluster1")}},
		},
		{
			name:  "batch prediction",
			child: resource.KindBatchPrediction,
			parents: []Parent{
				parent(resource.KindEnsemble, "ensemble1"),
				parent(resource.KindDataset, "dataset1"),
			},
			want: []whizzml.Pair{
				{Key: "ensemble", Value: whizzml.Ref("ensemble1")},
				{Key: "dataset", Value: whizzml.Ref("dataset1")},
			},
		},
		{
			name:  "batch centroid",
			child: resource.KindBatchCentroid,
			parents: []Parent{
				parent(resource.KindCluster, "cluster1"),
				parent(resource.KindDataset, "dataset1"),
			},
			want: []whizzml.Pair{
				{Key: "cluster", Value: whizzml.Ref("cluster1")},
				{Key: "dataset", Value: whizzml.Ref("dataset1")},
			},
		},
		{
			name:  "cross-validation evaluation",
			child: resource.KindEvaluation,
			parents: []Parent{
				parent(resource.KindEvaluation, "evaluation1"),
				parent(resource.KindEvaluation, "evaluation2"),
			},
			want: []whizzml.Pair{{
				Key:   "evaluations",
				Value: []whizzml.Ref{"evaluation1", "evaluation2"},
			}},
		},
		{
			name:  "model evaluation",
			child: resource.KindEvaluation,
			parents: []Parent{
				parent(resource.KindModel, "model1"),
				parent(resource.KindDataset, "dataset1"),
			},
			want: []whizzml.Pair{
				{Key: "model", Value: whizzml.Ref("model1")},
				{Key: "dataset", Value: whizzml.Ref("dataset1")},
			},
		},
		{
			name:    "single prediction",
			child:   resource.KindPrediction,
			parents: []Parent{parent(resource.KindLogisticReg, "logisticregression1")},
			want: []whizzml.Pair{{
				Key:   "logisticregression",
				Value: whizzml.Ref("logisticregression1"),
			}},
		},
		{
			name:    "forecast",
			child:   resource.KindForecast,
			parents: []Parent{parent(resource.KindTimeSeries, "timeseries1")},
			want:    []whizzml.Pair{{Key: "timeseries", Value: whizzml.Ref("timeseries1")}},
		},
		{
			name:    "correlation",
			child:   resource.KindCorrelation,
			parents: []Parent{parent(resource.KindDataset, "dataset1")},
			want:    []whizzml.Pair{{Key: "dataset", Value: whizzml.Ref("dataset1")}},
		},
		{
			name:    "statistical test",
			child:   resource.KindStatisticalTest,
			parents: []Parent{parent(resource.KindDataset, "dataset1")},
			want:    []whizzml.Pair{{Key: "dataset", Value: whizzml.Ref("dataset1")}},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ResolveOrigin(tc.child, tc.parents)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestResolveOrigin_NoRule(t *testing.T) {
	cases := []struct {
		name    string
		child   resource.Kind
		parents []Parent
	}{
		{
			name:    "model from source",
			child:   resource.KindModel,
			parents: []Parent{parent(resource.KindSource, "source1")},
		},
		{
			name:    "batch prediction with one parent",
			child:   resource.KindBatchPrediction,
			parents: []Parent{parent(resource.KindEnsemble, "ensemble1")},
		},
		{
			name:  "correlation from two datasets",
			child: resource.KindCorrelation,
			parents: []Parent{
				parent(resource.KindDataset, "dataset1"),
				parent(resource.KindDataset, "dataset2"),
			},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ResolveOrigin(tc.child, tc.parents)
			require.Error(t, err)
			assert.True(t, errors.Is(err, errors.ErrCodeOrigin))
		})
	}
}
