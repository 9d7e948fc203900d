package constants

import "errors"

// CLI configuration errors.
var (
	ErrUnknownConfigKey   = errors.New("unknown configuration key")
	ErrInvalidKeyValue    = errors.New("invalid key=value pair")
	ErrNoResourceProvided = errors.New("resource name is required")
	ErrObjectIDRequired   = errors.New("object id is required (use --objid)")
)

// Session backend errors.
var (
	ErrUnsupportedSessionBackend = errors.New("unsupported session backend")
	ErrBoltPathRequired          = errors.New("bolt session backend requires a path")
	ErrNATSURLRequired           = errors.New("NATS session backend requires a URL")
	ErrBucketNotFound            = errors.New("session bucket not found")
)
