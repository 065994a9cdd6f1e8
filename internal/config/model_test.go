package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/zclconf/go-cty/cty"
)

func TestArgs(t *testing.T) {
	args := Args{
		{Name: "lora_1", Value: cty.StringVal("a")},
		{Name: "prev_lora", Value: cty.NullVal(cty.DynamicPseudoType)},
		{Name: "lora_1", Value: cty.StringVal("shadowed")},
	}

	v, ok := args.Get("lora_1")
	assert.True(t, ok)
	assert.Equal(t, "a", v.AsString())

	_, ok = args.Get("missing")
	assert.False(t, ok)

	assert.Equal(t, []string{"lora_1", "prev_lora", "lora_1"}, args.Names())
}

func TestNode_ID(t *testing.T) {
	n := &Node{Class: "WanVideoPowerLoraLoader", Name: "bank_a"}
	assert.Equal(t, "node.WanVideoPowerLoraLoader.bank_a", n.ID())
}
