package auth

import "errors"

var (
	ErrCredentialsRequired = errors.New("Username and password are required")
	ErrInvalidCredentials  = errors.New("Invalid username and/or password")
	ErrNotAuthenticated    = errors.New("Not authenticated")
)
