package listings

import "errors"

var (
	ErrListingNotFound  = errors.New("Listing not found")
	ErrCategoryNotFound = errors.New("Category not found")
	ErrNotListingOwner  = errors.New("Only the creator can close a listing")
	ErrInvalidListing   = errors.New("Invalid listing")
)
