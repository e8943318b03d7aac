package scriptify

import (
	"github.com/reifyd/scriptify/pkg/chain"
)

// Generate compiles a chain into its script descriptor. It is the
// package entry point: walk the chain, then wrap the result into the
// creation payload.
func Generate(c *chain.Chain, opts Options) (*Descriptor, *ScriptInfo, error) {
	info, err := Walk(c, opts)
	if err != nil {
		return nil, nil, err
	}
	desc, err := BuildDescriptor(info, opts)
	if err != nil {
		return nil, nil, err
	}
	return desc, info, nil
}
