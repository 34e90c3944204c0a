package site

import "errors"

// Error constants.
var (
	ErrTemplateNotFound = errors.New("template not found")
	ErrParse            = errors.New("template parse failed")
	ErrRender           = errors.New("template render failed")
)
