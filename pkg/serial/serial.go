// Package serial generates human-readable receipt serial numbers.
package serial

import (
	"fmt"
	"math/rand"
	"regexp"
	"time"
)

// Pattern matches a well-formed serial number: SR-<YYYYMMDD>-<4 digits>.
var Pattern = regexp.MustCompile(`^SR-\d{8}-\d{4}$`)

// Generate returns a serial number of the form SR-YYYYMMDD-XXXX, where the
// suffix is a random number in [1000, 9999]. Uniqueness is enforced by the
// database, not here.
func Generate(now time.Time) string {
	return fmt.Sprintf("SR-%s-%d", now.Format("20060102"), 1000+rand.Intn(9000))
}

// IsValid reports whether s is a well-formed serial number.
func IsValid(s string) bool {
	return Pattern.MatchString(s)
}
