package txcode

import (
	"strconv"
	"strings"
	"testing"
	"time"
)

func TestNewFormat(t *testing.T) {
	at := time.Date(2025, 3, 9, 14, 30, 0, 0, time.UTC)

	for i := 0; i < 50; i++ {
		code := New(at)
		if !strings.HasPrefix(code, "LF20250309") {
			t.Fatalf("unexpected prefix: %s", code)
		}
		if len(code) != len("LF20250309")+4 {
			t.Fatalf("unexpected length: %s", code)
		}
		n, err := strconv.Atoi(code[len("LF20250309"):])
		if err != nil {
			t.Fatalf("suffix not numeric: %s", code)
		}
		if n < 1000 || n > 9999 {
			t.Fatalf("suffix out of range: %s", code)
		}
	}
}
