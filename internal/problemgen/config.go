package problemgen

// Config controls the behavior of the Generator.
type Config struct {
	// Validators run on every generated problem in order; the first
	// failure causes the problem to be regenerated.
	Validators []Validator

	// MaxAttempts bounds regeneration when a validator rejects a problem.
	MaxAttempts int
}

// DefaultConfig returns a Config with the standard validator chain.
func DefaultConfig() Config {
	return Config{
		Validators: []Validator{
			&RangeValidator{},
			&MathCheckValidator{},
		},
		MaxAttempts: 3,
	}
}
