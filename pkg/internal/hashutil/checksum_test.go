package hashutil

import (
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// sha256("hello\n")
const helloSum = "sha256:5891b5b522d5df086d0ff0b110fbd9d21bb4fc7163af34d08286a2e846f6be03"

func TestReader(t *testing.T) {
	r := NewReader(strings.NewReader("hello\n"))

	data, err := io.ReadAll(r)
	require.NoError(t, err)
	assert.Equal(t, "hello\n", string(data))
	assert.Equal(t, helloSum, r.Sum())
	assert.Len(t, r.Sum(), 71)
}
