package version

const APP = "feedbackdash"

// Set at build time with -ldflags "-X feedbackdash/internal/version.VERSION=...".
var (
	VERSION = "dev"
	COMMIT  = "unknown"
)
