package api

import "errors"

// Sentinel kinds for API errors.
var (
	ErrBadRequest = errors.New("bad request")
	ErrHijack     = errors.New("response writer does not support hijacking")
)
