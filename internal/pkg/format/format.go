// Package format projects canonical digit/date values into the masked form
// shown to end users, and recovers the canonical form before any outbound
// call. Masks tolerate partial input so they can run on every keystroke.
package format

import "strings"

// Digits strips every non-digit character.
func Digits(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		if s[i] >= '0' && s[i] <= '9' {
			b.WriteByte(s[i])
		}
	}
	return b.String()
}

// CPF masks digits as 000.000.000-00.
func CPF(s string) string {
	d := Digits(s)
	if len(d) > 11 {
		d = d[:11]
	}
	switch {
	case len(d) <= 3:
		return d
	case len(d) <= 6:
		return d[:3] + "." + d[3:]
	case len(d) <= 9:
		return d[:3] + "." + d[3:6] + "." + d[6:]
	default:
		return d[:3] + "." + d[3:6] + "." + d[6:9] + "-" + d[9:]
	}
}

// Phone masks digits as (00) 0000-0000 or (00) 00000-0000.
func Phone(s string) string {
	d := Digits(s)
	if len(d) > 11 {
		d = d[:11]
	}
	switch {
	case len(d) <= 2:
		return d
	case len(d) <= 6:
		return "(" + d[:2] + ") " + d[2:]
	case len(d) <= 10:
		return "(" + d[:2] + ") " + d[2:6] + "-" + d[6:]
	default:
		return "(" + d[:2] + ") " + d[2:7] + "-" + d[7:]
	}
}

// CEP masks digits as 00000-000.
func CEP(s string) string {
	d := Digits(s)
	if len(d) > 8 {
		d = d[:8]
	}
	if len(d) <= 5 {
		return d
	}
	return d[:5] + "-" + d[5:]
}

// Date masks digits as DD/MM/YYYY.
func Date(s string) string {
	d := Digits(s)
	if len(d) > 8 {
		d = d[:8]
	}
	switch {
	case len(d) <= 2:
		return d
	case len(d) <= 4:
		return d[:2] + "/" + d[2:]
	default:
		return d[:2] + "/" + d[2:4] + "/" + d[4:]
	}
}

// DateToISO converts a DD/MM/YYYY display date to YYYY-MM-DD. Returns ""
// when the input does not hold exactly eight digits.
func DateToISO(display string) string {
	d := Digits(display)
	if len(d) != 8 {
		return ""
	}
	return d[4:8] + "-" + d[2:4] + "-" + d[0:2]
}

// DateFromISO converts YYYY-MM-DD back to DD/MM/YYYY. Returns "" for
// malformed input.
func DateFromISO(iso string) string {
	parts := strings.Split(iso, "-")
	if len(parts) != 3 {
		return ""
	}
	return parts[2] + "/" + parts[1] + "/" + parts[0]
}
