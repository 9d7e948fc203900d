package constants

import "time"

// File and directory permissions.
const (
	// ConfigDirPerm is the permission for configuration and storage directories.
	ConfigDirPerm = 0750

	// ConfigFilePerm is the permission for configuration and cache files.
	ConfigFilePerm = 0600
)

// HTTP and network timeouts.
const (
	// DefaultHTTPTimeout is the default timeout for HTTP requests.
	DefaultHTTPTimeout = 30 * time.Second

	// ShortHTTPTimeout is used for quick operations such as the NATS dial.
	ShortHTTPTimeout = 10 * time.Second
)

// Retry limits.
const (
	// DefaultRetryMax is the transport retry count. Substantive requests are
	// not retried unless the caller opts in.
	DefaultRetryMax = 0

	// DefaultRetryWaitMin is the minimum wait time between opted-in retries.
	DefaultRetryWaitMin = 1 * time.Second

	// DefaultRetryWaitMax is the maximum wait time between opted-in retries.
	DefaultRetryWaitMax = 10 * time.Second

	// DefaultMaxAuthCount bounds consecutive authentication handshakes.
	DefaultMaxAuthCount = 3
)

// Remote service defaults.
const (
	// DefaultProtocol is used when the configuration omits a scheme.
	DefaultProtocol = "https"

	// DefaultUserAgent is sent with every request unless overridden.
	DefaultUserAgent = "formsynergy-go-client"

	// PayloadField is the single form/query field carrying the JSON request.
	PayloadField = "payload"

	// AuthenticateResource is the resource the handshake is sent to.
	AuthenticateResource = "authenticate"

	// ExportResource is the resource used by export requests.
	ExportResource = "export"
)

// Session keys.
const (
	// SessionKeyAccessPoint holds the rotating access point segment.
	SessionKeyAccessPoint = "AccessPoint"

	// SessionKeyAuthenticate marks that the next request must re-authenticate.
	SessionKeyAuthenticate = "Authenticate"

	// DefaultSessionID is used when no session ID is configured.
	DefaultSessionID = "default"

	// DefaultTimezone is the reference timezone established by Session.Enable.
	DefaultTimezone = "America/Los_Angeles"

	// DefaultSessionBucket is the bbolt bucket / NATS KV bucket for sessions.
	DefaultSessionBucket = "formsynergy_sessions"
)

// Session backend types.
const (
	SessionBackendMemory = "memory"
	SessionBackendBolt   = "bolt"
	SessionBackendNATS   = "nats"
)

// Resource cache layout.
const (
	// ResourceFileExt is the extension of cached resource documents.
	ResourceFileExt = ".json"

	// ResourceNameSeparator joins a package name and its variant name.
	ResourceNameSeparator = "-"

	// StorageProbeFile is written and removed to check directory writability.
	StorageProbeFile = ".fs-write-probe"

	// ErrorKindStore is the error log kind for storage failures.
	ErrorKindStore = "Store"
)

// Format constants.
const (
	// FormatJSON for JSON output format.
	FormatJSON = "json"

	// FormatYAML for YAML output format.
	FormatYAML = "yaml"

	// FormatTable for table output format.
	FormatTable = "table"
)

// CLI argument counts.
const (
	// MinimumArgumentCount is the argument count for KEY VALUE commands.
	MinimumArgumentCount = 2

	// KeyValueSplitParts is the number of parts when splitting key=value strings.
	KeyValueSplitParts = 2
)
