// Package version reports the build version of the timer binary.
//
// Values are set with -ldflags, for example:
//
//	go build -ldflags "-X github.com/RichTeaMan/timer/version.Version=1.2.0" ./cmd/timer
//
// Anything left unset is filled from the module build info where possible.
package version
