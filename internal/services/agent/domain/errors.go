package domain

import perr "trendscout/internal/platform/errors"

var (
	// ErrMalformedQuery means the utterance had no text to search for
	ErrMalformedQuery = perr.New(perr.ErrorCodeValidation, "utterance has no extractable text")

	// ErrOutOfScope means the text is not a technology question
	ErrOutOfScope = perr.New(perr.ErrorCodeInvalidArgument, "query is outside the technology domain")
)
