package service

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOrderIDGenerator_Generate(t *testing.T) {
	gen := NewOrderIDGenerator()
	pattern := regexp.MustCompile(`^[A-Za-z0-9]{8}$`)

	seen := make(map[string]struct{})
	for range 200 {
		id, err := gen.Generate(8)
		require.NoError(t, err)
		assert.Regexp(t, pattern, id)
		seen[id] = struct{}{}
	}
	assert.Greater(t, len(seen), 190)

	_, err := gen.Generate(0)
	assert.Error(t, err)

	_, err = gen.Generate(256)
	assert.Error(t, err)
}
