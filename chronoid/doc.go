// Package chronoid implements the Chrono-ID codec: compact, K-sortable
// identifiers that pack a time component and an entropy component into a
// single 32- or 64-bit integer.
//
// A Variant fixes the layout (width, signedness, epoch, precision, node and
// sequence bit widths); the catalog covers the 2020-epoch persona-mixed
// family and the classic 2000/1970-epoch family. Encoding and decoding are
// bit-exact: the same numeric inputs always produce the same raw integer,
// ISO 8601 string, and hexadecimal form, regardless of implementation.
//
// Entropy bits exist for collision avoidance, not security. Persona-based
// generation trades global coordination for deterministic mixing: distinct
// Personas place independent nodes on distinct entropy lanes.
package chronoid
