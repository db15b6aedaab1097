package guide

import "errors"

// Caller-facing messages for the empty-result stages of each tool
const (
	MsgNoPlacesMatched      = "Couldn't find any places matching that."
	MsgNoPlaceDetails       = "Found places, but couldn't fetch their details."
	MsgNoReviews            = "No reviews found for this place."
	MsgNoPhotos             = "No photos found for this place."
	MsgPhotoDownloadsFailed = "Found photo references, but failed to download the images."
)

// NotFoundError reports that upstream answered successfully but nothing usable remained
// at some stage of a tool. Message is stable and safe to show to the caller.
type NotFoundError struct {
	Message string
}

func (e *NotFoundError) Error() string {
	return e.Message
}

func notFound(message string) error {
	return &NotFoundError{Message: message}
}

// IsNotFound reports whether err is (or wraps) a NotFoundError
func IsNotFound(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}
