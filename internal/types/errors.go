package types

import "errors"

var ErrUnauthorized = errors.New("unauthorized")
var ErrInvalidArgument = errors.New("invalid argument")
var ErrNotFound = errors.New("requested item not found")
var ErrParse = errors.New("malformed input")
var ErrInternal = errors.New("internal error")
var ErrTaskNotFound = errors.New("area result not found or expired")
