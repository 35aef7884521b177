// Package flashaddr resolves the flash write address for a firmware
// artifact from three sources consulted in strict priority order:
// publisher metadata, the device's partition table, and fixed per-type
// defaults. A wrong answer here writes the artifact to the wrong region of
// flash and bricks the device, so every stage either fully answers or
// fully defers; partial results are never combined.
//
// All functions are pure and safe for concurrent use; nothing in this
// package touches the network, the filesystem or a device.
package flashaddr
