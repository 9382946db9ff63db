package version

// Version is set via -ldflags "-X chopper/internal/version.Version=..." at build time.
var Version = "dev"
