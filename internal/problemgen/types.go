package problemgen

// Problem is a generated arithmetic or algebra problem ready for display.
// Problems are ephemeral: one is generated when a challenge starts and a
// fresh one after every wrong answer.
type Problem struct {
	// Question is the canonical expression text, e.g. "47 + 38",
	// "312 × 45" or "4x + 17 = 61".
	Question string

	// Answer is the exact numeric answer. Every generated form has an
	// integer answer; float64 matches the numeric input path.
	Answer float64

	// Display is the prompt shown to the user: Question followed by
	// " = ?" for arithmetic forms or ", x = ?" for equations.
	Display string

	// Difficulty is the clamped level (1-5) the problem was generated for.
	Difficulty int

	// Form identifies which template produced the problem.
	Form Form

	// Operands holds the integers the problem was built from.
	//   addition, subtraction, multiplication: [left, right]
	//   equation a·x + b = c:                   [a, b, c]
	//   division:                               [dividend, divisor]
	Operands []int
}

// Form identifies a problem template.
type Form string

const (
	FormAddition       Form = "addition"
	FormSubtraction    Form = "subtraction"
	FormMultiplication Form = "multiplication"
	FormEquation       Form = "equation"
	FormDivision       Form = "division"
)

// Display glyphs. Purely cosmetic.
const (
	MulSign = "×"
	DivSign = "÷"
)

// IsEquation reports whether the problem asks for an unknown x.
func (p *Problem) IsEquation() bool {
	return p.Form == FormEquation
}
