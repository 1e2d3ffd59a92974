package problemgen

import "testing"

func TestMathCheck_Forms(t *testing.T) {
	v := &MathCheckValidator{}

	tests := []struct {
		question string
		answer   float64
	}{
		{"47 + 38", 85},
		{"512 - 47", 465},
		{"23 × 45", 1035},
		{"23 * 45", 1035},
		{"1080 ÷ 45", 24},
		{"144 / 12", 12},
		{"4x + 17 = 61", 11},
		{"12x + 99 = 399", 25},
	}

	for _, tc := range tests {
		p := &Problem{Question: tc.question, Answer: tc.answer}
		if err := v.Validate(p); err != nil {
			t.Errorf("Validate(%q = %v): unexpected failure: %v", tc.question, tc.answer, err)
		}

		p.Answer = tc.answer + 1
		if err := v.Validate(p); err == nil {
			t.Errorf("Validate(%q = %v): expected failure", tc.question, p.Answer)
		}
	}
}

func TestMathCheck_NotComputable(t *testing.T) {
	v := &MathCheckValidator{}

	for _, q := range []string{"", "what time is it", "7 ÷ 0", "7 ÷ 2", "3x + 1 = 5"} {
		if err := v.Validate(&Problem{Question: q}); err == nil {
			t.Errorf("Validate(%q): expected failure", q)
		}
	}
}

func TestRangeValidator(t *testing.T) {
	v := &RangeValidator{}

	ok := &Problem{Form: FormMultiplication, Difficulty: 2, Operands: []int{45, 7}, Answer: 315}
	if err := v.Validate(ok); err != nil {
		t.Errorf("expected 45 × 7 at level 2 to pass: %v", err)
	}

	bad := &Problem{Form: FormMultiplication, Difficulty: 2, Operands: []int{45, 12}, Answer: 540}
	if err := v.Validate(bad); err == nil {
		t.Error("expected 45 × 12 at level 2 to fail")
	}

	unknown := &Problem{Form: FormDivision, Difficulty: 1, Operands: []int{144, 12}, Answer: 12}
	if err := v.Validate(unknown); err == nil {
		t.Error("expected division at level 1 to fail")
	}

	badX := &Problem{Form: FormEquation, Difficulty: 5, Operands: []int{6, 10, 6*26 + 10}, Answer: 26}
	if err := v.Validate(badX); err == nil {
		t.Error("expected x = 26 at level 5 to fail")
	}
}
