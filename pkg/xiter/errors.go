package xiter

import "errors"

var (
	// ErrInvalidArgument is returned when a required argument is nil.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrUnsupportedOperation is returned by Reset. Cursors cannot be rewound in place;
	// request a new cursor instead.
	ErrUnsupportedOperation = errors.New("unsupported operation")
)
