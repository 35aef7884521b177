// Package partition decodes, validates and renders the ESP-IDF partition
// table binary format.
//
// # Binary layout
//
// A table is a sequence of 32-byte little-endian records:
//
//	[magic u16][type u8][subtype u8][offset u32][size u32][name 16s][flags u32]
//
// Live entries carry magic 0x50AA; a record starting with 0xEBEB terminates
// the table. The terminator may be followed by a 16-byte MD5 digest; a run
// of 0xFF there means the digest was never written (erased flash).
//
// Parsing and validation are separate steps. Parse accepts any structurally
// well-formed table, including ones that violate alignment or overlap rules,
// so that tables dumped from devices can still be inspected. Validate
// applies the domain invariants on top.
package partition
