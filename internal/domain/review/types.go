package review

import "errors"

var (
	ErrRatingOutOfRange = errors.New("rating out of range")
	ErrMissingBookingID = errors.New("missing booking id")
)
