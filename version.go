package miniml

// Set at build time via -ldflags when cutting a release.
var (
	Version   = "0.1.0"
	BuildDate = "unknown"
)
