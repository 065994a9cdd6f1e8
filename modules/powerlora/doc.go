// Package powerlora implements the WanVideo Power Lora Loader node.
//
// The node accepts any number of dynamically named "lora_<n>" inputs, each a
// record with an on/off toggle, a loosely written LoRA identifier and a
// strength. Enabled entries with a nonzero strength are resolved against the
// "loras" catalog and appended, in input order, to the list received on
// prev_lora, so instances can be daisy-chained into arbitrarily large banks.
//
// Bad individual entries are dropped, never fatal: only a failing catalog
// aborts an evaluation.
package powerlora
