package chain

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/reifyd/scriptify/pkg/errors"
)

// ParseYAML parses a chain definition from YAML. The filename is used for
// error reporting only.
//
// Expected layout:
//
//	name: optional label
//	chain:
//	  - id: source/abc123
//	    operations:
//	      create:
//	        name: my source
//	inputs:
//	  - https://static.example.com/iris.csv
//
// Attribute order inside each operation is preserved, which is why this
// parser walks yaml.Node values instead of decoding into maps.
func ParseYAML(data []byte, filename string) (*Chain, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, errors.ParseError(filename, err)
	}
	if doc.Kind != yaml.DocumentNode || len(doc.Content) == 0 {
		return nil, errors.ParseError(filename, fmt.Errorf("empty document"))
	}

	root := doc.Content[0]
	if root.Kind != yaml.MappingNode {
		return nil, errors.ParseError(filename, fmt.Errorf("top level must be a mapping"))
	}

	c := &Chain{Configs: make(map[string]Config)}

	for i := 0; i+1 < len(root.Content); i += 2 {
		key := root.Content[i].Value
		value := root.Content[i+1]

		switch key {
		case "name":
			c.Name = value.Value
		case "chain":
			if value.Kind != yaml.SequenceNode {
				return nil, errors.ParseError(filename, fmt.Errorf("chain must be a sequence"))
			}
			for _, entry := range value.Content {
				if err := parseYAMLStep(c, entry); err != nil {
					return nil, errors.ParseError(filename, err)
				}
			}
		case "inputs":
			if err := value.Decode(&c.Inputs); err != nil {
				return nil, errors.ParseError(filename, err)
			}
		}
	}

	if len(c.Sequence) == 0 {
		return nil, errors.ParseError(filename, fmt.Errorf("chain contains no resources"))
	}

	return c, nil
}

func parseYAMLStep(c *Chain, node *yaml.Node) error {
	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("chain entry must be a mapping")
	}

	var id string
	cfg := make(Config)

	for i := 0; i+1 < len(node.Content); i += 2 {
		key := node.Content[i].Value
		value := node.Content[i+1]

		switch key {
		case "id":
			id = value.Value
		case "operations":
			if value.Kind != yaml.MappingNode {
				return fmt.Errorf("operations must be a mapping")
			}
			for j := 0; j+1 < len(value.Content); j += 2 {
				op := value.Content[j].Value
				section, err := parseYAMLSection(value.Content[j+1])
				if err != nil {
					return fmt.Errorf("operation %s: %w", op, err)
				}
				cfg[op] = section
			}
		}
	}

	if id == "" {
		return fmt.Errorf("chain entry is missing an id")
	}

	c.Sequence = append(c.Sequence, id)
	c.mergeConfig(id, cfg)
	return nil
}

func parseYAMLSection(node *yaml.Node) (*Section, error) {
	section := NewSection()
	if node.Kind == yaml.ScalarNode && node.Tag == "!!null" {
		return section, nil
	}
	if node.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("expected a mapping of attributes")
	}
	for i := 0; i+1 < len(node.Content); i += 2 {
		key := node.Content[i].Value
		var value interface{}
		if err := node.Content[i+1].Decode(&value); err != nil {
			return nil, fmt.Errorf("attribute %s: %w", key, err)
		}
		section.Set(key, value)
	}
	return section, nil
}
