package infomaniak

import "errors"

var (
	ErrAuthFailed = errors.New("authentication failed")
	ErrNoSource   = errors.New("no source in stats document")
)
