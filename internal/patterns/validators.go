package patterns

import "strings"

// builtinValidators maps validator tokens named in a pattern pack to the Go
// function that implements them. Unknown validator names fail pack loading.
var builtinValidators = map[string]Validator{
	"luhn": luhnValid,
}

// luhnValid implements the Luhn checksum used to validate card numbers,
// grounded on the original maskingengine's _validate_credit_card.
func luhnValid(text string) bool {
	digits := make([]byte, 0, len(text))
	for i := 0; i < len(text); i++ {
		c := text[i]
		if c >= '0' && c <= '9' {
			digits = append(digits, c)
		}
	}
	if len(digits) < 13 {
		return false
	}

	sum := 0
	alt := false
	for i := len(digits) - 1; i >= 0; i-- {
		n := int(digits[i] - '0')
		if alt {
			n *= 2
			if n > 9 {
				n -= 9
			}
		}
		sum += n
		alt = !alt
	}

	return sum%10 == 0
}

// lookupValidator resolves a validator token to its function, or reports
// that the token is unknown.
func lookupValidator(token string) (Validator, bool) {
	if token == "" {
		return nil, true
	}
	v, ok := builtinValidators[strings.ToLower(token)]
	return v, ok
}
