package domain

import "errors"

// ErrActivityNotFound is returned when a named activity is not in a collection.
var ErrActivityNotFound = errors.New("activity not found")
