package chain

import (
	"fmt"
	"sort"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/zclconf/go-cty/cty"

	"github.com/reifyd/scriptify/pkg/errors"
)

// ParseHCL parses a chain definition from HCL.
//
// Expected layout:
//
//	name = "optional label"
//
//	input "https://static.example.com/iris.csv" {}
//
//	resource "source/abc123" {
//	  create {
//	    name = "my source"
//	  }
//	}
//
// Resource blocks appear in chain order. Attribute order inside each
// operation block follows source order.
func ParseHCL(data []byte, filename string) (*Chain, error) {
	file, diags := hclparse.NewParser().ParseHCL(data, filename)
	if diags.HasErrors() {
		return nil, errors.ParseError(filename, fmt.Errorf("%s", diags.Error()))
	}

	rootSchema := &hcl.BodySchema{
		Attributes: []hcl.AttributeSchema{
			{Name: "name"},
		},
		Blocks: []hcl.BlockHeaderSchema{
			{Type: "resource", LabelNames: []string{"id"}},
			{Type: "input", LabelNames: []string{"id"}},
		},
	}

	content, moreDiags := file.Body.Content(rootSchema)
	diags = append(diags, moreDiags...)
	if diags.HasErrors() {
		return nil, errors.ParseError(filename, fmt.Errorf("%s", diags.Error()))
	}

	c := &Chain{Configs: make(map[string]Config)}

	if attr, ok := content.Attributes["name"]; ok {
		val, valDiags := attr.Expr.Value(nil)
		if valDiags.HasErrors() {
			return nil, errors.ParseError(filename, fmt.Errorf("%s", valDiags.Error()))
		}
		if val.Type() == cty.String {
			c.Name = val.AsString()
		}
	}

	for _, block := range content.Blocks {
		switch block.Type {
		case "input":
			c.Inputs = append(c.Inputs, block.Labels[0])
		case "resource":
			id := block.Labels[0]
			cfg, err := parseHCLResource(block.Body)
			if err != nil {
				return nil, errors.ParseError(filename, err)
			}
			c.Sequence = append(c.Sequence, id)
			c.mergeConfig(id, cfg)
		}
	}

	if len(c.Sequence) == 0 {
		return nil, errors.ParseError(filename, fmt.Errorf("chain contains no resources"))
	}

	return c, nil
}

func parseHCLResource(body hcl.Body) (Config, error) {
	schema := &hcl.BodySchema{
		Blocks: []hcl.BlockHeaderSchema{
			{Type: OpCreate},
			{Type: OpGet},
			{Type: OpUpdate},
			{Type: OpUpdateParser},
		},
	}

	content, diags := body.Content(schema)
	if diags.HasErrors() {
		return nil, fmt.Errorf("%s", diags.Error())
	}

	cfg := make(Config)
	for _, block := range content.Blocks {
		section, err := parseHCLSection(block.Body)
		if err != nil {
			return nil, fmt.Errorf("operation %s: %w", block.Type, err)
		}
		cfg[block.Type] = section
	}

	return cfg, nil
}

func parseHCLSection(body hcl.Body) (*Section, error) {
	attrs, diags := body.JustAttributes()
	if diags.HasErrors() {
		return nil, fmt.Errorf("%s", diags.Error())
	}

	// JustAttributes returns a map; restore source order.
	ordered := make([]*hcl.Attribute, 0, len(attrs))
	for _, attr := range attrs {
		ordered = append(ordered, attr)
	}
	sort.Slice(ordered, func(i, j int) bool {
		return ordered[i].Range.Start.Byte < ordered[j].Range.Start.Byte
	})

	section := NewSection()
	for _, attr := range ordered {
		val, valDiags := attr.Expr.Value(nil)
		if valDiags.HasErrors() {
			return nil, fmt.Errorf("attribute %s: %s", attr.Name, valDiags.Error())
		}
		section.Set(attr.Name, ctyToGo(val))
	}

	return section, nil
}

// ctyToGo lowers a cty value to a plain Go value for the chain model.
func ctyToGo(val cty.Value) interface{} {
	if val.IsNull() {
		return nil
	}

	ty := val.Type()
	switch {
	case ty == cty.String:
		return val.AsString()
	case ty == cty.Bool:
		return val.True()
	case ty == cty.Number:
		bf := val.AsBigFloat()
		if i, acc := bf.Int64(); acc == 0 {
			return i
		}
		f, _ := bf.Float64()
		return f
	case ty.IsTupleType() || ty.IsListType() || ty.IsSetType():
		var out []interface{}
		for it := val.ElementIterator(); it.Next(); {
			_, elem := it.Element()
			out = append(out, ctyToGo(elem))
		}
		return out
	case ty.IsObjectType() || ty.IsMapType():
		out := make(map[string]interface{})
		for it := val.ElementIterator(); it.Next(); {
			key, elem := it.Element()
			out[key.AsString()] = ctyToGo(elem)
		}
		return out
	default:
		return nil
	}
}
