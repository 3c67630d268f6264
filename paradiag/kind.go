package paradiag

import (
	"fmt"
	"strings"
)

// Kind selects the preconditioner used by Solve.
type Kind int

const (
	// KindNone solves the unpreconditioned system.
	KindNone Kind = iota
	// KindCirculant uses the periodic (α = 1) approximation.
	KindCirculant
	// KindAlphaCirculant uses the α-circulant approximation.
	KindAlphaCirculant
)

func (k Kind) String() string {
	switch k {
	case KindNone:
		return "none"
	case KindCirculant:
		return "circulant"
	case KindAlphaCirculant:
		return "alpha-circulant"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// ParseKind converts a name as printed by Kind.String back into a Kind.
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "none":
		return KindNone, nil
	case "circulant":
		return KindCirculant, nil
	case "alpha-circulant", "alpha":
		return KindAlphaCirculant, nil
	default:
		return KindNone, fmt.Errorf("paradiag: unknown preconditioner %q", s)
	}
}
