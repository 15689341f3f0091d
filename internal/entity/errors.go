package entity

import "errors"

var (
	// CSV handshake errors
	ErrMalformedCSV  = errors.New("malformed CSV: no header row found")
	ErrUnknownToken  = errors.New("unknown or expired token")
	ErrUnknownColumn = errors.New("column not found in CSV")
	ErrNoImageURLs   = errors.New("no valid image URLs found in the CSV")

	// Request errors
	ErrNoFile  = errors.New("no file part in the request")
	ErrNoFiles = errors.New("no image files provided")
)
