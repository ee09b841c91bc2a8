package services

import "errors"

var (
	// Registration / credentials
	ErrWeakPassword         = errors.New("password is too short")
	ErrInvalidUsername      = errors.New("username must be alphanumeric without spaces")
	ErrInvalidEmail         = errors.New("email is not valid")
	ErrUsernameTaken        = errors.New("user already exists")
	ErrEmailTaken           = errors.New("email is already taken")
	ErrAuthenticationFailed = errors.New("authentication failed")

	// Tokens
	ErrInvalidToken   = errors.New("invalid token")
	ErrExpiredToken   = errors.New("token has expired")
	ErrWrongTokenType = errors.New("wrong token type")

	// Bookmarks
	ErrNotFound           = errors.New("bookmark not found")
	ErrInvalidURL         = errors.New("no valid URL specified")
	ErrDuplicateURL       = errors.New("URL already exists")
	ErrCodeSpaceExhausted = errors.New("short code space exhausted")
)
