package service

import "errors"

var (
	ErrStorage            = errors.New("storage error")
	ErrUnknownUser        = errors.New("unknown user")
	ErrUserAlreadyExists  = errors.New("user already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrEmptyUserName      = errors.New("user name must be specified")
	ErrEmptyPassword      = errors.New("password must be specified")
	ErrUserNameTooLong    = errors.New("user name is too long")
)
