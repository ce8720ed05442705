// Package scale maps data values to pixel positions and colors.
//
// Three scales are provided:
//
//   - [Band] divides a pixel range into equally sized, rounded bands, one per
//     category, separated by a padding fraction.
//   - [Linear] maps a continuous domain onto a pixel range and generates
//     round tick values with matching labels.
//   - [Ordinal] maps categories onto a cyclic list of output values and is
//     used for color assignment.
//
// Scales are configured at construction and are read-only afterwards, so a
// single scale can be shared by concurrent readers.
package scale
