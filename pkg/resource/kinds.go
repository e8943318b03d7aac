// Package resource classifies ML pipeline resource ids and describes how
// each resource kind relates to its parents.
package resource

// Kind identifies the category of a resource id (the prefix of the id).
type Kind string

const (
	KindSource            Kind = "source"
	KindDataset           Kind = "dataset"
	KindModel             Kind = "model"
	KindLogisticReg       Kind = "logisticregression"
	KindDeepnet           Kind = "deepnet"
	KindAssociation       Kind = "association"
	KindEnsemble          Kind = "ensemble"
	KindCluster           Kind = "cluster"
	KindAnomaly           Kind = "anomaly"
	KindTopicModel        Kind = "topicmodel"
	KindTimeSeries        Kind = "timeseries"
	KindEvaluation        Kind = "evaluation"
	KindPrediction        Kind = "prediction"
	KindCentroid          Kind = "centroid"
	KindAnomalyScore      Kind = "anomalyscore"
	KindAssociationSet    Kind = "associationset"
	KindTopicDistribution Kind = "topicdistribution"
	KindForecast          Kind = "forecast"
	KindBatchPrediction   Kind = "batchprediction"
	KindBatchCentroid     Kind = "batchcentroid"
	KindBatchAnomalyScore Kind = "batchanomalyscore"
	KindBatchTopicDist    Kind = "batchtopicdistribution"
	KindCorrelation       Kind = "correlation"
	KindStatisticalTest   Kind = "statisticaltest"
	KindScript            Kind = "script"
	KindExecution         Kind = "execution"
	KindLibrary           Kind = "library"
	KindSample            Kind = "sample"

	// KindRemote is the pseudo-kind for seed inputs that are raw URLs
	// rather than resource ids. It never appears in a resource id prefix.
	KindRemote Kind = "remote"
)

// allKinds is the set of classifiable id prefixes.
var allKinds = map[Kind]bool{
	KindSource: true, KindDataset: true, KindModel: true,
	KindLogisticReg: true, KindDeepnet: true, KindAssociation: true,
	KindEnsemble: true, KindCluster: true, KindAnomaly: true,
	KindTopicModel: true, KindTimeSeries: true, KindEvaluation: true,
	KindPrediction: true, KindCentroid: true, KindAnomalyScore: true,
	KindAssociationSet: true, KindTopicDistribution: true,
	KindForecast: true, KindBatchPrediction: true, KindBatchCentroid: true,
	KindBatchAnomalyScore: true, KindBatchTopicDist: true,
	KindCorrelation: true, KindStatisticalTest: true, KindScript: true,
	KindExecution: true, KindLibrary: true, KindSample: true,
}

// modelFamily holds the kinds that are trained from datasets and can be
// the target of a periodic retrain.
var modelFamily = map[Kind]bool{
	KindModel: true, KindLogisticReg: true, KindDeepnet: true,
	KindAssociation: true, KindEnsemble: true, KindCluster: true,
	KindAnomaly: true, KindTopicModel: true, KindTimeSeries: true,
}

// batchOperations holds the kinds that score a dataset against a model
// resource and take exactly two parents.
var batchOperations = map[Kind]bool{
	KindBatchPrediction: true, KindBatchCentroid: true,
	KindBatchAnomalyScore: true, KindBatchTopicDist: true,
}

// pointResults holds the kinds produced by scoring a single input row.
var pointResults = map[Kind]bool{
	KindPrediction: true, KindCentroid: true, KindAnomalyScore: true,
	KindAssociationSet: true, KindTopicDistribution: true,
	KindForecast: true,
}

// IsModelFamily reports whether k belongs to the model family.
func IsModelFamily(k Kind) bool { return modelFamily[k] }

// IsBatchOperation reports whether k is a batch scoring operation.
func IsBatchOperation(k Kind) bool { return batchOperations[k] }

// IsPointResult reports whether k is a single-row scoring result.
func IsPointResult(k Kind) bool { return pointResults[k] }

// IsKnown reports whether k is a classifiable resource kind.
func IsKnown(k Kind) bool { return allKinds[k] }
