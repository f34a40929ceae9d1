package qrcode

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptyContent is returned for empty content.
	ErrEmptyContent = errors.New("empty content")

	// ErrInvalidContent is returned for content that is not valid UTF-8.
	ErrInvalidContent = errors.New("content is not valid UTF-8")

	// ErrInvalidDimensions is returned for a zero or negative width or height.
	ErrInvalidDimensions = errors.New("width and height must be positive")

	// ErrInvalidOption is returned for an out-of-range level, margin, version or mask.
	ErrInvalidOption = errors.New("invalid option")

	// ErrDataTooLong is returned when content exceeds the capacity of the
	// largest allowed version.
	ErrDataTooLong = errors.New("data too long")

	// ErrDoesNotFit is returned when the symbol and its quiet zone are larger
	// than the requested dimensions.
	ErrDoesNotFit = errors.New("symbol does not fit requested dimensions")
)

// EncodingError is returned when content cannot be turned into a symbol.
// It wraps one of the Err* sentinels, usually with detail attached.
type EncodingError struct {
	Op  string
	Err error
}

func (e *EncodingError) Error() string {
	return fmt.Sprintf("qr %s: %v", e.Op, e.Err)
}

func (e *EncodingError) Unwrap() error { return e.Err }

func encodingErr(op string, err error) error {
	return &EncodingError{Op: op, Err: err}
}
