package problemgen

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Tolerance is the maximum distance between the user's answer and the
// correct one that still counts as correct. Generated answers are all
// integers; the tolerance guards float input paths.
const Tolerance = 0.01

// CheckAnswer reports whether userAnswer is within Tolerance of the
// problem's answer. A difference of exactly Tolerance is wrong.
func CheckAnswer(p *Problem, userAnswer float64) bool {
	if math.IsNaN(userAnswer) {
		return false
	}
	return math.Abs(p.Answer-userAnswer) < Tolerance
}

// CheckInput parses raw text input and checks it against the problem.
// Unparseable input is simply wrong.
func CheckInput(p *Problem, input string) bool {
	v, err := ParseAnswer(input)
	if err != nil {
		return false
	}
	return CheckAnswer(p, v)
}

// ParseAnswer converts user input to a number.
//
// Normalization rules:
// - Whitespace is trimmed
// - Integers may carry leading zeros or a sign ("007", "-4")
// - Decimals may carry trailing zeros ("3.50")
// - Fractions "a/b" evaluate to a/b; a zero denominator is an error
// - An "x =" prefix is accepted for equation answers ("x = 12")
func ParseAnswer(input string) (float64, error) {
	s := strings.TrimSpace(input)
	if rest, ok := cutPrefixFold(s, "x"); ok {
		if after, ok := strings.CutPrefix(strings.TrimSpace(rest), "="); ok {
			s = strings.TrimSpace(after)
		}
	}
	if s == "" {
		return 0, fmt.Errorf("empty answer")
	}

	if strings.Contains(s, "/") {
		num, den, err := parseFraction(s)
		if err != nil {
			return 0, err
		}
		if den == 0 {
			return 0, fmt.Errorf("zero denominator")
		}
		return float64(num) / float64(den), nil
	}

	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid number %q: %w", s, err)
	}
	if math.IsInf(f, 0) || math.IsNaN(f) {
		return 0, fmt.Errorf("invalid number %q", s)
	}
	return f, nil
}

// parseFraction parses "a/b" into numerator and denominator.
func parseFraction(s string) (int64, int64, error) {
	parts := strings.SplitN(s, "/", 2)
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("invalid fraction format: %q", s)
	}
	num, err := strconv.ParseInt(strings.TrimSpace(parts[0]), 10, 64)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid numerator: %w", err)
	}
	den, err := strconv.ParseInt(strings.TrimSpace(parts[1]), 10, 64)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid denominator: %w", err)
	}
	return num, den, nil
}

func cutPrefixFold(s, prefix string) (string, bool) {
	if len(s) >= len(prefix) && strings.EqualFold(s[:len(prefix)], prefix) {
		return s[len(prefix):], true
	}
	return s, false
}
