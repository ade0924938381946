package sequence

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Номера записей генерируются на сервере: префикс типа + unix-миллисекунды.
// При коллизии вызывающий повторяет генерацию, после исчерпания попыток
// используется суффикс от uuid.

func Next(prefix string) string {
	return fmt.Sprintf("%s-%d", prefix, time.Now().UnixMilli())
}

func NextUnique(prefix string) string {
	suffix := strings.Split(uuid.NewString(), "-")[0]
	return fmt.Sprintf("%s-%d-%s", prefix, time.Now().UnixMilli(), suffix)
}
