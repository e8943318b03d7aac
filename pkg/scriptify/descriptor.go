package scriptify

import (
	"fmt"

	"github.com/reifyd/scriptify/pkg/resource"
)

const (
	// ProviderTag marks every generated script.
	ProviderTag = "scriptify"

	// DefaultCategory is the resource category of generated scripts.
	DefaultCategory = 0

	// DatasetsLimitInput is the synthetic numeric input controlling the
	// periodic-retrain dataset selection.
	DatasetsLimitInput = "datasets-limit"
)

// Port declares a typed input or output slot of a generated script.
type Port struct {
	Name        string      `json:"name"`
	Type        string      `json:"type"`
	Description string      `json:"description,omitempty"`
	Default     interface{} `json:"default,omitempty"`
}

// Descriptor is the payload for creating the script resource: the source
// plus everything the execution environment needs to declare it.
type Descriptor struct {
	SourceCode  string   `json:"source_code"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Tags        []string `json:"tags"`
	Category    int      `json:"category"`
	Outputs     []Port   `json:"outputs"`
	Inputs      []Port   `json:"inputs"`
}

// BuildDescriptor wraps a walked chain into the script-creation payload:
// one output port for the terminal resource, one input port per seed,
// and the synthetic datasets-limit input.
func BuildDescriptor(info *ScriptInfo, opts Options) (*Descriptor, error) {
	name := fmt.Sprintf("Script for %s", info.Name)
	if opts.LastStep {
		name = fmt.Sprintf("Last-step script for %s", info.Name)
	}

	tags := append([]string(nil), info.Tags...)
	if !containsString(tags, ProviderTag) {
		tags = append(tags, ProviderTag)
	}

	kind := string(info.TerminalKind)
	outputs := []Port{{
		Name: "output-" + kind,
		Type: kind + "-id",
	}}

	inputs := make([]Port, 0, len(info.Inputs)+1)
	for _, seed := range info.Inputs {
		seedKind, err := resource.Classify(seed)
		if err != nil {
			return nil, err
		}
		port := Port{Name: info.Aliases.First(seed)}
		if seedKind == resource.KindRemote {
			port.Type = "string"
			port.Description = "Remote URL"
		} else {
			port.Type = string(seedKind) + "-id"
			port.Description = fmt.Sprintf("Existing %s to start from", seedKind)
		}
		inputs = append(inputs, port)
	}
	inputs = append(inputs, Port{
		Name:        DatasetsLimitInput,
		Type:        "number",
		Description: "Maximum number of tagged datasets used for retraining",
		Default:     -1,
	})

	return &Descriptor{
		SourceCode:  info.Source,
		Name:        name,
		Description: info.Description,
		Tags:        tags,
		Category:    DefaultCategory,
		Outputs:     outputs,
		Inputs:      inputs,
	}, nil
}

func containsString(list []string, want string) bool {
	for _, s := range list {
		if s == want {
			return true
		}
	}
	return false
}
