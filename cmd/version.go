// File: cmd/version.go
package cmd

// Version is the application version.
// This value is intended to be set at build time using ldflags.
// Example: go build -ldflags "-X github.com/xkilldash9x/randtype/cmd.Version=1.13"
var Version = "1.13"

// Copyright is printed under the version line.
const Copyright = "Copyright (C) 1999-2001 bjk <bjk@arbornet.org>"

func versionText() string {
	return "randtype " + Version + "\n" + Copyright + "\n"
}
