/*
Package nodeid provides a structured, type-safe representation for node
addresses, based on the canonical format `node.<class>.<name>`.

The same form is used to reference another node's outputs from a grid
expression, e.g. `node.WanVideoPowerLoraLoader.base.lora`. This package
centralizes all formatting and parsing of addresses.
*/
package nodeid
