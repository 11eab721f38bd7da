// Package signal defines the values that travel on the wires of a block
// diagram and the rules for passing and combining them.
//
// A wire carries exactly one shape for its whole lifetime:
//   - Scalar: one of bool, uint8, int8, uint16, int16, uint32, int32, float32, float64
//   - Matrix: a fixed ROWS x COLS grid of one element type, stored column-major
//   - Bytes: a byte buffer
//   - Tuple: 2 to 8 values of any of the above
//
// # Pass-by convention
//
// Scalars cross a block boundary by value. Matrices and byte buffers cross by
// read-only reference: the producing block owns the storage and rewrites it on
// its next tick, consumers must never write through the reference they were
// handed. Tuples carry each element with that element's own convention.
//
// # Promotion
//
// Binary arithmetic between two differently typed scalars resolves a common
// output type through a fixed promotion table (see Resolve). Pairs missing
// from the table are rejected when the diagram is built, never while it runs.
package signal
