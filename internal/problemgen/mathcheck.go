package problemgen

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
)

// MathCheckValidator independently recomputes the answer from the
// question text and rejects problems whose stored answer disagrees.
type MathCheckValidator struct{}

func (v *MathCheckValidator) Name() string { return "math-check" }

func (v *MathCheckValidator) Validate(p *Problem) *ValidationError {
	computed, err := computeAnswer(p.Question)
	if err != nil {
		return &ValidationError{Validator: v.Name(), Message: err.Error()}
	}
	if !CheckAnswer(p, computed) {
		return &ValidationError{
			Validator: v.Name(),
			Message:   fmt.Sprintf("computed %v but problem claims %v", computed, p.Answer),
		}
	}
	return nil
}

var (
	// Binary arithmetic: "a + b", "a - b", "a × b", "a ÷ b" (also * and /).
	binaryArithRe = regexp.MustCompile(`^\s*(-?\d+)\s*([+\-*×/÷])\s*(-?\d+)\s*$`)

	// Linear equation: "ax + b = c".
	linearEqRe = regexp.MustCompile(`^\s*(-?\d+)\s*x\s*\+\s*(-?\d+)\s*=\s*(-?\d+)\s*$`)
)

// computeAnswer evaluates the question text. Returns an error when the
// text matches no known form.
func computeAnswer(text string) (float64, error) {
	if m := linearEqRe.FindStringSubmatch(text); m != nil {
		a, _ := strconv.Atoi(m[1])
		b, _ := strconv.Atoi(m[2])
		c, _ := strconv.Atoi(m[3])
		if a == 0 {
			return 0, fmt.Errorf("zero coefficient in %q", text)
		}
		x := float64(c-b) / float64(a)
		if !isWhole(x) {
			return 0, fmt.Errorf("non-integer solution in %q", text)
		}
		return x, nil
	}

	m := binaryArithRe.FindStringSubmatch(text)
	if m == nil {
		return 0, fmt.Errorf("not computable: %q", text)
	}
	a, _ := strconv.Atoi(m[1])
	b, _ := strconv.Atoi(m[3])

	switch normalizeOp(m[2]) {
	case "+":
		return float64(a + b), nil
	case "-":
		return float64(a - b), nil
	case "*":
		return float64(a * b), nil
	case "/":
		if b == 0 {
			return 0, fmt.Errorf("division by zero")
		}
		if a%b != 0 {
			return 0, fmt.Errorf("inexact division %d / %d", a, b)
		}
		return float64(a / b), nil
	}
	return 0, fmt.Errorf("unsupported operator: %s", m[2])
}

// normalizeOp normalizes multiplication and division symbols.
func normalizeOp(op string) string {
	switch op {
	case MulSign:
		return "*"
	case DivSign:
		return "/"
	default:
		return op
	}
}

// isWhole reports whether f has no fractional part.
func isWhole(f float64) bool {
	return f == math.Trunc(f)
}
