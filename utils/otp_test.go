package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateNumericCode(t *testing.T) {
	for i := 0; i < 50; i++ {
		code, err := GenerateNumericCode(6)
		require.NoError(t, err)
		assert.Len(t, code, 6)
		assert.NotEqual(t, byte('0'), code[0])
		for _, c := range code {
			assert.True(t, c >= '0' && c <= '9')
		}
	}

	_, err := GenerateNumericCode(0)
	assert.Error(t, err)
}
