package source

import "errors"

var (
	ErrSourceUnavailable = errors.New("vtree: source unavailable")
	ErrMalformedAddress  = errors.New("vtree: malformed source address")
	ErrUnknownProtocol   = errors.New("vtree: unknown source protocol")
	ErrMalformedTree     = errors.New("vtree: malformed tree text")
	ErrNameConflict      = errors.New("vtree: name used by both a file and a folder")
)
