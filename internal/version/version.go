package version

// Version is overridden at build time with
// -ldflags "-X github.com/jiranismart/jirani-cli/internal/version.Version=..."
var Version = "dev"
