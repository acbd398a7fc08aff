package order

import (
	"fmt"
	"math/rand/v2"
	"regexp"
	"time"

	"fooddelivery/internal/pkg/errs"
)

var numberPattern = regexp.MustCompile(`^ORD\d{6}$`)

// Number is the human-facing order reference, e.g. ORD482913.
// Uniqueness is best effort, see NumberGenerator.
type Number string

// GenerateNumber builds ORD + the last four digits of the unix-millis timestamp + two random digits.
func GenerateNumber(now time.Time) Number {
	return Number(fmt.Sprintf("ORD%04d%02d", now.UnixMilli()%10000, rand.IntN(100)))
}

func ParseNumber(s string) (Number, error) {
	if !numberPattern.MatchString(s) {
		return "", errs.NewValueIsInvalidErrorWithCause("number", fmt.Errorf("%q does not match ORD######", s))
	}
	return Number(s), nil
}

func (n Number) String() string {
	return string(n)
}

func (n Number) Validate() error {
	_, err := ParseNumber(string(n))
	return err
}
