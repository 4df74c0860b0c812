// Package txcode generates the human-readable receipt codes printed on
// order confirmations: "LF" + order date + 4 random digits. Uniqueness is
// enforced by the orders.transaction_code constraint, not here.
package txcode

import (
	"fmt"
	"math/rand"
	"time"
)

const prefix = "LF"

func New(at time.Time) string {
	return fmt.Sprintf("%s%s%04d", prefix, at.Format("20060102"), 1000+rand.Intn(9000))
}
