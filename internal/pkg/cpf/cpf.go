// Package cpf validates Brazilian CPF numbers: 11 digits where the last two
// are check digits computed from weighted sums of the preceding digits.
package cpf

// Normalize strips every non-digit character.
func Normalize(s string) string {
	out := make([]byte, 0, len(s))
	for i := 0; i < len(s); i++ {
		if s[i] >= '0' && s[i] <= '9' {
			out = append(out, s[i])
		}
	}
	return string(out)
}

// Valid reports whether s is a checksum-valid CPF. Non-digit characters are
// stripped first. Sequences of one repeated digit are rejected even when
// their checksum would pass.
func Valid(s string) bool {
	digits := Normalize(s)
	if len(digits) != 11 {
		return false
	}
	allSame := true
	for i := 1; i < 11; i++ {
		if digits[i] != digits[0] {
			allSame = false
			break
		}
	}
	if allSame {
		return false
	}
	if checkDigit(digits, 9) != int(digits[9]-'0') {
		return false
	}
	return checkDigit(digits, 10) == int(digits[10]-'0')
}

// checkDigit computes the check digit over digits[0:n] with weights n+1..2.
// A remainder of 10 or 11 counts as 0.
func checkDigit(digits string, n int) int {
	sum := 0
	for i := 0; i < n; i++ {
		sum += int(digits[i]-'0') * (n + 1 - i)
	}
	r := (sum * 10) % 11
	if r == 10 || r == 11 {
		r = 0
	}
	return r
}
