package phoenix

import "errors"

var (
	ErrCorrupted       = errors.New("market account data is corrupted")
	ErrBufferTooSmall  = errors.New("market account buffer is too small")
	ErrDiscriminant    = errors.New("market account discriminant mismatch")
	ErrDataUnavailable = errors.New("fewer accounts returned than requested")
	ErrNotFound        = errors.New("not found")
	ErrInvalidParam    = errors.New("the param is invalid")
)
