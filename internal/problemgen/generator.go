package problemgen

import (
	"fmt"

	"github.com/abhisek/riseup/internal/challenge"
	"github.com/abhisek/riseup/internal/rng"
)

// Generator synthesizes math problems from a difficulty level.
type Generator struct {
	src rng.Source
	cfg Config
}

// New creates a Generator drawing from src.
func New(src rng.Source, cfg Config) *Generator {
	if cfg.MaxAttempts <= 0 {
		cfg.MaxAttempts = 1
	}
	return &Generator{src: src, cfg: cfg}
}

// formFunc builds one problem form at the given level.
type formFunc func(src rng.Source, level int) *Problem

// levelForms maps each difficulty level to the forms it may draw from.
// When a level offers several forms, one is chosen uniformly per call.
var levelForms = map[int][]formFunc{
	1: {twoDigitAddition},
	2: {threeByTwoDigitAddition, twoByOneDigitMultiplication},
	3: {twoByTwoDigitMultiplication, threeByTwoDigitSubtraction},
	4: {threeByTwoDigitMultiplication, easyEquation},
	5: {threeByTwoDigitMultiplication, hardEquation, exactDivision},
}

// Generate returns a problem for difficulty d. Out-of-range or fractional
// difficulties are rounded and clamped to 1-5; no error is returned.
func (g *Generator) Generate(d float64) *Problem {
	level := challenge.ClampDifficulty(d)
	forms := levelForms[level]

	var p *Problem
	for attempt := 0; attempt < g.cfg.MaxAttempts; attempt++ {
		p = forms[rng.Pick(g.src, len(forms))](g.src, level)
		if Validate(p, g.cfg.Validators...) == nil {
			return p
		}
	}
	return p
}

// Validate runs the validators in order and returns the first failure.
func Validate(p *Problem, validators ...Validator) *ValidationError {
	for _, v := range validators {
		if err := v.Validate(p); err != nil {
			return err
		}
	}
	return nil
}

func twoDigitAddition(src rng.Source, level int) *Problem {
	a, b := rng.Between(src, 10, 99), rng.Between(src, 10, 99)
	return arithmetic(FormAddition, level, a, "+", b, a+b)
}

func threeByTwoDigitAddition(src rng.Source, level int) *Problem {
	a, b := rng.Between(src, 100, 999), rng.Between(src, 10, 99)
	return arithmetic(FormAddition, level, a, "+", b, a+b)
}

func twoByOneDigitMultiplication(src rng.Source, level int) *Problem {
	a, b := rng.Between(src, 10, 99), rng.Between(src, 2, 9)
	return arithmetic(FormMultiplication, level, a, MulSign, b, a*b)
}

func twoByTwoDigitMultiplication(src rng.Source, level int) *Problem {
	a, b := rng.Between(src, 10, 99), rng.Between(src, 10, 99)
	return arithmetic(FormMultiplication, level, a, MulSign, b, a*b)
}

func threeByTwoDigitSubtraction(src rng.Source, level int) *Problem {
	a, b := rng.Between(src, 100, 999), rng.Between(src, 10, 99)
	return arithmetic(FormSubtraction, level, a, "-", b, a-b)
}

// threeByTwoDigitMultiplication serves both level 4 and level 5 with the
// same ranges; only the difficulty tag differs.
func threeByTwoDigitMultiplication(src rng.Source, level int) *Problem {
	a, b := rng.Between(src, 100, 999), rng.Between(src, 10, 99)
	return arithmetic(FormMultiplication, level, a, MulSign, b, a*b)
}

func easyEquation(src rng.Source, level int) *Problem {
	return equation(level, rng.Between(src, 2, 5), rng.Between(src, 1, 30), rng.Between(src, 1, 50))
}

func hardEquation(src rng.Source, level int) *Problem {
	return equation(level, rng.Between(src, 6, 15), rng.Between(src, 1, 25), rng.Between(src, 1, 99))
}

// exactDivision builds the dividend from divisor and quotient so the
// result is always a whole number.
func exactDivision(src rng.Source, level int) *Problem {
	divisor := rng.Between(src, 12, 99)
	quotient := rng.Between(src, 10, 99)
	dividend := divisor * quotient
	return arithmetic(FormDivision, level, dividend, DivSign, divisor, quotient)
}

func arithmetic(form Form, level, a int, op string, b, answer int) *Problem {
	q := fmt.Sprintf("%d %s %d", a, op, b)
	return &Problem{
		Question:   q,
		Answer:     float64(answer),
		Display:    q + " = ?",
		Difficulty: level,
		Form:       form,
		Operands:   []int{a, b},
	}
}

// equation builds a·x + b = c for the unknown x.
func equation(level, a, x, b int) *Problem {
	c := a*x + b
	q := fmt.Sprintf("%dx + %d = %d", a, b, c)
	return &Problem{
		Question:   q,
		Answer:     float64(x),
		Display:    q + ", x = ?",
		Difficulty: level,
		Form:       FormEquation,
		Operands:   []int{a, b, c},
	}
}
