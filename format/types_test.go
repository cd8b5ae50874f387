package format

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseVariant(t *testing.T) {
	tests := []struct {
		input string
		want  VariantType
	}{
		{"consecutive", VariantConsecutive},
		{"Consecutive", VariantConsecutive},
		{"  CONSECUTIVE  ", VariantConsecutive},
		{"non_consecutive", VariantNonConsecutive},
		{"Non_Consecutive", VariantNonConsecutive},
	}

	for _, tt := range tests {
		v, err := ParseVariant(tt.input)
		require.NoError(t, err)
		require.Equal(t, tt.want, v)
	}

	for _, bad := range []string{"", "nonconsecutive", "non-consecutive", "overflow"} {
		_, err := ParseVariant(bad)
		require.Error(t, err, "input %q", bad)
	}
}

func TestTypeStrings(t *testing.T) {
	require.Equal(t, "Consecutive", VariantConsecutive.String())
	require.Equal(t, "NonConsecutive", VariantNonConsecutive.String())
	require.Equal(t, "Unknown", VariantType(0x7F).String())

	require.Equal(t, "None", CompressionNone.String())
	require.Equal(t, "Zstd", CompressionZstd.String())
	require.Equal(t, "S2", CompressionS2.String())
	require.Equal(t, "LZ4", CompressionLZ4.String())
	require.Equal(t, "Unknown", CompressionType(0x7F).String())
}
