package serial

import (
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerate(t *testing.T) {
	now := time.Date(2026, 3, 15, 10, 30, 0, 0, time.UTC)

	for i := 0; i < 100; i++ {
		s := Generate(now)
		assert.True(t, IsValid(s), "generated serial %q should be valid", s)
		assert.True(t, strings.HasPrefix(s, "SR-20260315-"))

		suffix, err := strconv.Atoi(s[len("SR-20260315-"):])
		require.NoError(t, err)
		assert.GreaterOrEqual(t, suffix, 1000)
		assert.LessOrEqual(t, suffix, 9999)
	}
}

func TestIsValid(t *testing.T) {
	valid := []string{"SR-20260315-1000", "SR-19991231-9999"}
	for _, s := range valid {
		assert.True(t, IsValid(s), s)
	}

	invalid := []string{
		"",
		"SR-2026315-1000",
		"SR-20260315-999",
		"SR-20260315-10000",
		"sr-20260315-1000",
		"SR-20260315-1000 ",
		"XX-20260315-1000",
	}
	for _, s := range invalid {
		assert.False(t, IsValid(s), s)
	}
}
