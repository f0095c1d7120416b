package portfolio

import (
	"errors"
	"math"
	"strconv"
	"strings"
)

// ErrInvalidQuantity is returned for input that is not a finite, non-negative number.
var ErrInvalidQuantity = errors.New("quantity must be a non-negative number")

// ParseQuantity parses user input into a quantity.
func ParseQuantity(raw string) (float64, error) {
	q, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return 0, ErrInvalidQuantity
	}
	if math.IsNaN(q) || math.IsInf(q, 0) || q < 0 {
		return 0, ErrInvalidQuantity
	}
	if q == 0 {
		// "-0" parses as negative zero
		q = 0
	}
	return q, nil
}
