package problemgen

import (
	"math"
	"testing"
)

func TestCheckAnswer_Tolerance(t *testing.T) {
	zero := &Problem{Answer: 0}

	tests := []struct {
		user float64
		want bool
	}{
		{0, true},
		{0.0099, true},
		{-0.0099, true},
		{0.01, false}, // exactly at the tolerance is wrong
		{-0.01, false},
		{0.0101, false},
		{1, false},
		{math.NaN(), false},
	}

	for _, tc := range tests {
		got := CheckAnswer(zero, tc.user)
		if got != tc.want {
			t.Errorf("CheckAnswer(0, %v) = %v, want %v", tc.user, got, tc.want)
		}
	}
}

func TestCheckAnswer_Integer(t *testing.T) {
	p := &Problem{Answer: 85}

	tests := []struct {
		user float64
		want bool
	}{
		{85, true},
		{85.005, true},
		{84.995, true},
		{85.02, false},
		{86, false},
	}

	for _, tc := range tests {
		got := CheckAnswer(p, tc.user)
		if got != tc.want {
			t.Errorf("CheckAnswer(85, %v) = %v, want %v", tc.user, got, tc.want)
		}
	}
}

func TestCheckInput(t *testing.T) {
	p := &Problem{Answer: 42, Form: FormEquation}

	tests := []struct {
		input string
		want  bool
	}{
		{"42", true},
		{" 42 ", true},
		{"042", true},
		{"42.0", true},
		{"42.00", true},
		{"84/2", true},
		{"x = 42", true},
		{"X=42", true},
		{"43", false},
		{"", false},
		{"abc", false},
		{"42/0", false},
		{"x =", false},
	}

	for _, tc := range tests {
		got := CheckInput(p, tc.input)
		if got != tc.want {
			t.Errorf("CheckInput(%q, 42) = %v, want %v", tc.input, got, tc.want)
		}
	}
}

func TestParseAnswer_Negative(t *testing.T) {
	got, err := ParseAnswer("-17")
	if err != nil {
		t.Fatalf("ParseAnswer(-17): %v", err)
	}
	if got != -17 {
		t.Errorf("ParseAnswer(-17) = %v, want -17", got)
	}
}
