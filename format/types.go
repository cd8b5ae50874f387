// Package format defines the closed enums shared by the packing and blob
// packages: the packing variant tags and the payload compression types.
package format

import (
	"fmt"
	"strings"
)

type (
	VariantType     uint8
	CompressionType uint8
)

const (
	// VariantConsecutive packs fields back to back; a field may straddle two
	// adjacent words. Maximum density, cross-word reads.
	VariantConsecutive VariantType = 0x1
	// VariantNonConsecutive never lets a field cross a word boundary;
	// trailing bits of a word that cannot hold another full field are left
	// as padding. Simpler single-word reads at the cost of up to k-1 wasted
	// bits per word.
	VariantNonConsecutive VariantType = 0x2

	CompressionNone CompressionType = 0x1 // CompressionNone represents no payload compression.
	CompressionZstd CompressionType = 0x2 // CompressionZstd represents Zstandard compression.
	CompressionS2   CompressionType = 0x3 // CompressionS2 represents S2 compression.
	CompressionLZ4  CompressionType = 0x4 // CompressionLZ4 represents LZ4 compression.
)

func (v VariantType) String() string {
	switch v {
	case VariantConsecutive:
		return "Consecutive"
	case VariantNonConsecutive:
		return "NonConsecutive"
	default:
		return "Unknown"
	}
}

// ParseVariant maps a variant name to its VariantType tag.
//
// Recognized names (case-insensitive, surrounding whitespace ignored):
// "consecutive" and "non_consecutive". This is the factory surface for
// callers that select a packing strategy from configuration strings.
func ParseVariant(name string) (VariantType, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "consecutive":
		return VariantConsecutive, nil
	case "non_consecutive":
		return VariantNonConsecutive, nil
	default:
		return 0, fmt.Errorf("unknown packing variant: %q", name)
	}
}

func (c CompressionType) String() string {
	switch c {
	case CompressionNone:
		return "None"
	case CompressionZstd:
		return "Zstd"
	case CompressionS2:
		return "S2"
	case CompressionLZ4:
		return "LZ4"
	default:
		return "Unknown"
	}
}
