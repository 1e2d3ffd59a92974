package codebank

import (
	"errors"
	"fmt"
)

// ErrInvalidCatalog is the sentinel wrapped by every catalog validation failure.
var ErrInvalidCatalog = errors.New("invalid code problem catalog")

// CatalogError describes a single catalog entry that breaks an invariant.
type CatalogError struct {
	ProblemID string
	Index     int
	Reason    string
}

func (e *CatalogError) Error() string {
	if e.ProblemID == "" {
		return fmt.Sprintf("catalog entry %d: %s", e.Index, e.Reason)
	}
	return fmt.Sprintf("catalog entry %d (%s): %s", e.Index, e.ProblemID, e.Reason)
}

func (e *CatalogError) Unwrap() error { return ErrInvalidCatalog }
