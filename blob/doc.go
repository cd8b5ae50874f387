// Package blob serializes packed arrays to a self-describing binary format
// and restores them.
//
// A blob starts with a fixed 40-byte header (see the section package)
// followed by the word payload and, when the array uses overflow packing,
// the overflow payload. Each payload is compressed independently with the
// codec recorded in the header, and an xxHash64 checksum of the stored
// payload bytes guards against corruption.
//
// The word payload serializes each buffer word as WordWidth/8 bytes in the
// endianness declared by the header. Overflow values serialize as 8-byte
// two's-complement integers. The header's option field is always stored
// little-endian so a decoder can learn the payload endianness before reading
// anything else.
package blob
