package common

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMakeRandHexString(t *testing.T) {
	tests := []struct {
		name string
		size int
		want int
	}{
		{"16 bytes", 16, 32},
		{"32 bytes", 32, 64},
		{"1 byte", 1, 2},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			s, err := MakeRandHexString(tc.size)
			require.NoError(t, err)
			require.Len(t, s, tc.want)
		})
	}
}

func TestMakeRandHexString_Unique(t *testing.T) {
	a, err := MakeRandHexString(32)
	require.NoError(t, err)
	b, err := MakeRandHexString(32)
	require.NoError(t, err)
	require.NotEqual(t, a, b)
}
