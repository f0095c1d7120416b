package main

import "github.com/jonandersen/folio/cmd"

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	cmd.Version = version
	cmd.Execute()
}
