package scriptify

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reifyd/scriptify/pkg/chain"
	"github.com/reifyd/scriptify/pkg/resource"
)

func section(pairs ...interface{}) *chain.Section {
	s := chain.NewSection()
	for i := 0; i+1 < len(pairs); i += 2 {
		s.Set(pairs[i].(string), pairs[i+1])
	}
	return s
}

func TestWalk_SeedDatasetToModel(t *testing.T) {
	c := &chain.Chain{
		Sequence: []string{"dataset/seed1", "model/abc"},
		Inputs:   []string{"dataset/seed1"},
		Configs: map[string]chain.Config{
			// The seed's recorded create must not be replayed.
			"dataset/seed1": {chain.OpCreate: section("name", "churn data")},
			"model/abc": {chain.OpCreate: section(
				"parents", []interface{}{"dataset/seed1"},
				"name", "churn",
			)},
		},
	}

	info, err := Walk(c, Options{})
	require.NoError(t, err)

	want := strings.Join([]string{
		";; Create model model/abc",
		`(define model1 (create-and-wait-model {"dataset" dataset1 "name" "churn"}))`,
		"",
		"(define output-model model1)",
	}, "\n") + "\n"
	assert.Equal(t, want, info.Source)

	assert.Equal(t, "dataset1", info.Aliases.First("dataset/seed1"))
	assert.Equal(t, "model/abc", info.TerminalID)
	assert.Equal(t, resource.KindModel, info.TerminalKind)
	assert.Equal(t, "model1", info.OutputName)
	assert.Equal(t, "churn", info.Name)
	assert.Equal(t, "Scriptified model", info.Description)
	assert.Equal(t, []string{ProviderTag}, info.Tags)
	assert.NotContains(t, info.Source, "create-and-wait-dataset")
}

func TestWalk_SourceCreateUpdateParserUpdate(t *testing.T) {
	c := &chain.Chain{
		Sequence: []string{"source/s1", "source/s1", "source/s1"},
		Configs: map[string]chain.Config{
			"source/s1": {
				chain.OpCreate: section("name", "iris"),
				chain.OpUpdateParser: section(
					"source_parser", map[string]interface{}{"separator": ","},
				),
				chain.OpUpdate: section("name", "iris v2"),
			},
		},
	}

	info, err := Walk(c, Options{})
	require.NoError(t, err)

	assert.Equal(t,
		[]string{"source1", "source2", "source3"},
		info.Aliases.History("source/s1"))

	assert.Contains(t, info.Source,
		`(define source1 (create-and-wait-source {"name" "iris"}))`)
	assert.Contains(t, info.Source, ";; Update parser of source source/s1")
	assert.Contains(t, info.Source,
		`(define source2 (update-and-wait source1 {"source_parser" {"separator" ","}}))`)
	assert.Contains(t, info.Source, ";; Update source source/s1")
	assert.Contains(t, info.Source,
		`(define source3 (update-and-wait source2 {"name" "iris v2"}))`)
	assert.Contains(t, info.Source, "(define output-source source3)")

	// One statement per operation, despite three sequence entries.
	assert.Equal(t, 1, strings.Count(info.Source, "create-and-wait-source"))
	assert.Equal(t, 2, strings.Count(info.Source, "update-and-wait"))
}

func TestWalk_PerKindNumbering(t *testing.T) {
	c := &chain.Chain{
		Sequence: []string{"source/a", "source/b", "dataset/c"},
		Configs: map[string]chain.Config{
			"source/a": {chain.OpCreate: section("name", "a")},
			"source/b": {chain.OpCreate: section("name", "b")},
			"dataset/c": {chain.OpCreate: section(
				"parents", []interface{}{"source/b"},
			)},
		},
	}

	info, err := Walk(c, Options{})
	require.NoError(t, err)

	assert.Equal(t, "source1", info.Aliases.First("source/a"))
	assert.Equal(t, "source2", info.Aliases.First("source/b"))
	assert.Equal(t, "dataset1", info.Aliases.First("dataset/c"))
	assert.Contains(t, info.Source,
		`(define dataset1 (create-and-wait-dataset {"source" source2}))`)
}

func TestWalk_GetFetchesSubResource(t *testing.T) {
	c := &chain.Chain{
		Sequence: []string{"dataset/d1", "cluster/c1", "dataset/d2"},
		Inputs:   []string{"dataset/d1"},
		Configs: map[string]chain.Config{
			"cluster/c1": {chain.OpCreate: section(
				"parents", []interface{}{"dataset/d1"},
			)},
			"dataset/d2": {chain.OpGet: section(
				"parents", []interface{}{"cluster/c1"},
				"field", "dataset",
			)},
		},
	}

	info, err := Walk(c, Options{})
	require.NoError(t, err)

	assert.Contains(t, info.Source, ";; Fetch dataset dataset/d2")
	assert.Contains(t, info.Source,
		`(define dataset2 ((fetch cluster1) "dataset"))`)
	assert.Contains(t, info.Source, "(define output-dataset dataset2)")
}

func TestWalk_CreateThenGetAppendsAlias(t *testing.T) {
	c := &chain.Chain{
		Sequence: []string{"dataset/d1", "cluster/c1"},
		Inputs:   []string{"dataset/d1"},
		Configs: map[string]chain.Config{
			"cluster/c1": {
				chain.OpCreate: section(
					"parents", []interface{}{"dataset/d1"},
				),
				chain.OpGet: section(
					"parents", []interface{}{"cluster/c1"},
					"field", "resource",
				),
			},
		},
	}

	info, err := Walk(c, Options{})
	require.NoError(t, err)

	assert.Equal(t,
		[]string{"cluster1", "cluster2"},
		info.Aliases.History("cluster/c1"))
	assert.Contains(t, info.Source,
		`(define cluster2 ((fetch cluster1) "resource"))`)
}

func TestWalk_SeedGetKeepsInputAlias(t *testing.T) {
	// The seed's first alias names an input port; a get on the seed must
	// bind a fresh name instead of shadowing it.
	c := &chain.Chain{
		Sequence: []string{"cluster/c1"},
		Inputs:   []string{"cluster/c1"},
		Configs: map[string]chain.Config{
			"cluster/c1": {chain.OpGet: section(
				"parents", []interface{}{"cluster/c1"},
				"field", "resource",
			)},
		},
	}

	info, err := Walk(c, Options{})
	require.NoError(t, err)

	assert.Equal(t,
		[]string{"cluster1", "cluster2"},
		info.Aliases.History("cluster/c1"))
	assert.Contains(t, info.Source,
		`(define cluster2 ((fetch cluster1) "resource"))`)

	desc, err := BuildDescriptor(info, Options{})
	require.NoError(t, err)
	require.Len(t, desc.Inputs, 2)
	assert.Equal(t, "cluster1", desc.Inputs[0].Name)
	assert.NotContains(t, info.Source, "(define cluster1 ")
}

func TestWalk_RetrainPreamble(t *testing.T) {
	c := &chain.Chain{
		Sequence: []string{"dataset/seed1", "model/abc"},
		Inputs:   []string{"dataset/seed1"},
		Configs: map[string]chain.Config{
			"model/abc": {chain.OpCreate: section(
				"parents", []interface{}{"dataset/seed1"},
				"name", "churn",
			)},
		},
	}

	info, err := Walk(c, Options{Retrain: true})
	require.NoError(t, err)

	assert.Contains(t, info.Source,
		`;; Select the datasets tagged "retrain:model/abc" for retraining`)
	assert.Contains(t, info.Source,
		"(define selection-limit (if (> datasets-limit 0) datasets-limit 2))")
	assert.Contains(t, info.Source, `"tags__in" "retrain:model/abc"`)
	assert.Contains(t, info.Source, `"limit" selection-limit`)
	assert.Contains(t, info.Source,
		`(create-and-wait-dataset {"origin_datasets" retrain-datasets})`)
	assert.Contains(t, info.Source, `"datasets" training-datasets`)
	assert.NotContains(t, info.Source, `"dataset" dataset1`)
	assert.Contains(t, info.Source, "(define output-model model1)")
}

func TestWalk_RetrainIgnoredForNonModelTerminal(t *testing.T) {
	c := &chain.Chain{
		Sequence: []string{"source/s1", "dataset/d1"},
		Inputs:   []string{"source/s1"},
		Configs: map[string]chain.Config{
			"dataset/d1": {chain.OpCreate: section(
				"parents", []interface{}{"source/s1"},
			)},
		},
	}

	info, err := Walk(c, Options{Retrain: true})
	require.NoError(t, err)

	assert.Contains(t, info.Source,
		`(define dataset1 (create-and-wait-dataset {"source" source1}))`)
	assert.NotContains(t, info.Source, "retrain-datasets")
}

func TestWalk_EmptyChain(t *testing.T) {
	_, err := Walk(&chain.Chain{}, Options{})
	require.Error(t, err)
}

func TestWalk_UnmatchedOriginFails(t *testing.T) {
	c := &chain.Chain{
		Sequence: []string{"source/s1", "model/m1"},
		Inputs:   []string{"source/s1"},
		Configs: map[string]chain.Config{
			"model/m1": {chain.OpCreate: section(
				"parents", []interface{}{"source/s1"},
			)},
		},
	}

	_, err := Walk(c, Options{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no origin rule")
}
