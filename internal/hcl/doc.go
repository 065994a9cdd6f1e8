// Package hcl provides the HCL implementation of config.Loader.
//
// A grid file declares node instances as labelled blocks whose attributes
// are the node's inputs:
//
//	node "WanVideoPowerLoraLoader" "base" {
//	  lora_1 = { on = true, lora = "anime", strength = 0.8 }
//	}
//
//	node "WanVideoPowerLoraLoader" "detail" {
//	  prev_lora = node.WanVideoPowerLoraLoader.base.lora
//	  lora_1    = { on = true, lora = "detail-tweaker", strength = 0.5 }
//	}
//
// Attributes are kept unevaluated and in source order, since input order is
// significant to the nodes that consume them.
package hcl
