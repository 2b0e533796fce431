package config

import "strings"

// ValidationError carries every violation found in a config, in check order.
type ValidationError struct {
	Problems []string
}

func (e *ValidationError) Error() string {
	return strings.Join(e.Problems, "; ")
}
