package main

import (
	"os"
)

const appVersion = "dev"

func main() {
	if os.Getenv("LIIGA_SKIP_RUN") == "1" {
		return
	}
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}
