package commands

import "errors"

// Static errors returned by commands.
var (
	ErrNotCached   = errors.New("no cached document")
	ErrKeyNotFound = errors.New("key not found in cached document")
	ErrNoTerminal  = errors.New("secret key is not configured and stdin is not a terminal")
)
