// Package cuit validates Argentine CUIT/CUIL tax identifiers.
package cuit

import "strings"

var coefficients = [10]int{5, 4, 3, 2, 7, 6, 5, 4, 3, 2}

// IsValid reports whether the given CUIT/CUIL is well formed and its
// check digit matches. Dashes and spaces are ignored.
func IsValid(raw string) bool {
	cleaned := strings.NewReplacer("-", "", " ", "").Replace(raw)
	if len(cleaned) != 11 {
		return false
	}

	digits := make([]int, 11)
	for i, r := range cleaned {
		if r < '0' || r > '9' {
			return false
		}
		digits[i] = int(r - '0')
	}

	sum := 0
	for i, coefficient := range coefficients {
		sum += digits[i] * coefficient
	}

	checkDigit := 0
	switch remainder := sum % 11; remainder {
	case 0:
		checkDigit = 0
	case 1:
		checkDigit = 9
	default:
		checkDigit = 11 - remainder
	}

	return checkDigit == digits[10]
}
