package problemgen

import "fmt"

// Validator checks a generated problem for correctness.
// Implementations should be stateless and safe for concurrent use.
type Validator interface {
	// Name returns a short identifier for this validator, e.g. "range"
	// or "math-check".
	Name() string

	// Validate returns nil if the problem passes.
	Validate(p *Problem) *ValidationError
}

// ValidationError describes why a problem failed validation.
type ValidationError struct {
	Validator string // Name of the validator that failed
	Message   string // Human-readable description of the failure
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validator %q: %s", e.Validator, e.Message)
}

// span is an inclusive integer range.
type span struct{ lo, hi int }

func (s span) contains(n int) bool { return n >= s.lo && n <= s.hi }

var (
	oneDigit   = span{2, 9}
	twoDigit   = span{10, 99}
	threeDigit = span{100, 999}
)

// RangeValidator checks that a problem's operands fall inside the ranges
// its form and level promise.
type RangeValidator struct{}

func (v *RangeValidator) Name() string { return "range" }

func (v *RangeValidator) Validate(p *Problem) *ValidationError {
	ranges, err := operandRanges(p)
	if err != nil {
		return &ValidationError{Validator: v.Name(), Message: err.Error()}
	}
	if len(ranges) != len(p.Operands) {
		return &ValidationError{
			Validator: v.Name(),
			Message:   fmt.Sprintf("%s has %d operands, want %d", p.Form, len(p.Operands), len(ranges)),
		}
	}
	for i, r := range ranges {
		if !r.contains(p.Operands[i]) {
			return &ValidationError{
				Validator: v.Name(),
				Message:   fmt.Sprintf("operand %d = %d outside [%d, %d]", i, p.Operands[i], r.lo, r.hi),
			}
		}
	}
	if r, ok := answerRange(p); ok && !r.contains(int(p.Answer)) {
		return &ValidationError{
			Validator: v.Name(),
			Message:   fmt.Sprintf("answer %v outside [%d, %d]", p.Answer, r.lo, r.hi),
		}
	}
	return nil
}

// answerRange returns the range promised for forms whose answer is drawn
// directly (x for equations, the quotient for division).
func answerRange(p *Problem) (span, bool) {
	switch {
	case p.Form == FormEquation && p.Difficulty == 4:
		return span{1, 30}, true
	case p.Form == FormEquation && p.Difficulty == 5:
		return span{1, 25}, true
	case p.Form == FormDivision:
		return span{10, 99}, true
	}
	return span{}, false
}

// operandRanges returns the expected range for each operand. Equation
// operands are [a, b] plus the derived c; division is checked through
// its divisor and quotient since the dividend is derived.
func operandRanges(p *Problem) ([]span, error) {
	switch {
	case p.Form == FormAddition && p.Difficulty == 1:
		return []span{twoDigit, twoDigit}, nil
	case p.Form == FormAddition && p.Difficulty == 2:
		return []span{threeDigit, twoDigit}, nil
	case p.Form == FormMultiplication && p.Difficulty == 2:
		return []span{twoDigit, oneDigit}, nil
	case p.Form == FormMultiplication && p.Difficulty == 3:
		return []span{twoDigit, twoDigit}, nil
	case p.Form == FormSubtraction && p.Difficulty == 3:
		return []span{threeDigit, twoDigit}, nil
	case p.Form == FormMultiplication && (p.Difficulty == 4 || p.Difficulty == 5):
		return []span{threeDigit, twoDigit}, nil
	case p.Form == FormEquation && p.Difficulty == 4:
		return []span{{2, 5}, {1, 50}, {2*1 + 1, 5*30 + 50}}, nil
	case p.Form == FormEquation && p.Difficulty == 5:
		return []span{{6, 15}, {1, 99}, {6*1 + 1, 15*25 + 99}}, nil
	case p.Form == FormDivision && p.Difficulty == 5:
		return []span{{12 * 10, 99 * 99}, {12, 99}}, nil
	}
	return nil, fmt.Errorf("no %s form at level %d", p.Form, p.Difficulty)
}
