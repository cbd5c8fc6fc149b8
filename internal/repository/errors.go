package repository

import "errors"

// Sentinel errors returned by the repositories. Handlers map these to
// user-facing not-found responses.
var (
	ErrProductNotFound  = errors.New("product not found")
	ErrCategoryNotFound = errors.New("category not found")
	ErrBlogNotFound     = errors.New("blog entry not found")
)
