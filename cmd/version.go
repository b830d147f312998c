// -- cmd/version.go --
package cmd

// Version is the application version, set at build time with ldflags.
// Example: go build -ldflags "-X github.com/strobelight/pagemotor/cmd.Version=1.2.0"
var Version = "0.1.0"
