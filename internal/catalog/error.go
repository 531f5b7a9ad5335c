package catalog

import "errors"

var (
	ErrUnknownTier     = errors.New("unknown package tier")
	ErrTemplateMissing = errors.New("template not found")
	ErrInvalidCatalog  = errors.New("invalid catalog")
)
