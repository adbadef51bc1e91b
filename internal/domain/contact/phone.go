package contact

import "strings"

const (
	minDigits = 10
	maxDigits = 15
)

// NormalizeNumber strips everything but a leading '+' and digits. The
// result must be '+' followed by 10 to 15 digits.
func NormalizeNumber(raw string) (string, error) {
	raw = strings.TrimSpace(raw)

	var b strings.Builder
	b.Grow(len(raw))
	if strings.HasPrefix(raw, "+") {
		b.WriteByte('+')
	}
	digits := 0
	for _, r := range raw {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
			digits++
		}
	}

	n := b.String()
	if !strings.HasPrefix(n, "+") || digits < minDigits || digits > maxDigits {
		return "", ErrInvalidContactNumber
	}
	return n, nil
}
