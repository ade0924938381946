package sequence

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSequence(t *testing.T) {
	t.Run(`номер начинается с префикса`, func(t *testing.T) {
		number := Next("RISK")
		require.True(t, strings.HasPrefix(number, "RISK-"))
		require.Greater(t, len(number), len("RISK-"))
	})

	t.Run(`NextUnique добавляет суффикс`, func(t *testing.T) {
		number := NextUnique("ISSUE")
		parts := strings.Split(number, "-")
		require.Len(t, parts, 3)
		require.Equal(t, "ISSUE", parts[0])
		require.NotEmpty(t, parts[2])
	})

	t.Run(`NextUnique не повторяется`, func(t *testing.T) {
		seen := map[string]bool{}
		for i := 0; i < 100; i++ {
			number := NextUnique("CHG")
			require.False(t, seen[number])
			seen[number] = true
		}
	})
}
