package scriptify

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/reifyd/scriptify/pkg/chain"
	"github.com/reifyd/scriptify/pkg/resource"
	"github.com/reifyd/scriptify/pkg/whizzml"
)

func TestBuildCreateArgs_FiltersReferences(t *testing.T) {
	create := chain.NewSection()
	create.Set("parents", []interface{}{"dataset/a"})
	create.Set("dataset", "dataset/a")
	create.Set("name", "churn model")
	create.Set("objective_field", "churned")
	create.Set("balance_objective", true)

	args := BuildCreateArgs(resource.KindModel, chain.Config{chain.OpCreate: create})

	assert.Equal(t, []whizzml.Pair{
		{Key: "name", Value: "churn model"},
		{Key: "objective_field", Value: "churned"},
		{Key: "balance_objective", Value: true},
	}, args)
}

func TestBuildCreateArgs_MissingSection(t *testing.T) {
	assert.Nil(t, BuildCreateArgs(resource.KindModel, nil))
	assert.Nil(t, BuildCreateArgs(resource.KindModel, chain.Config{}))
}

func TestBuildUpdateArgs_Verbatim(t *testing.T) {
	update := chain.NewSection()
	update.Set("name", "renamed")
	update.Set("tags", []interface{}{"weekly"})

	args := BuildUpdateArgs(update)

	assert.Equal(t, []whizzml.Pair{
		{Key: "name", Value: "renamed"},
		{Key: "tags", Value: []interface{}{"weekly"}},
	}, args)
}
