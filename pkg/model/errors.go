package model

import "errors"

var (
	// ErrNotFinite rejects NaN and infinite numeric candidates.
	ErrNotFinite = errors.New("model: value is not a finite number")

	// ErrNoLabels rejects an empty default-values list.
	ErrNoLabels = errors.New("model: default values must contain at least one label")

	// ErrUnknownOption is returned for option names outside the closed set.
	ErrUnknownOption = errors.New("model: unknown option")
)
