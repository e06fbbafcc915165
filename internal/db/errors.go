package db

import "errors"

// Domain-level database error sentinels.
var (
	// User errors
	ErrUserNotFound = errors.New("user not found")

	// Site errors
	ErrSiteNotFound = errors.New("site not found")

	// Keyword errors
	ErrKeywordNotFound  = errors.New("keyword not found")
	ErrDuplicateKeyword = errors.New("keyword already tracked for this site")
)
