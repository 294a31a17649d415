// Package main is the entry point for the microsf CLI.
// It provides an authenticated query client for a SalesForce-style
// record-query API.
package main

import (
	"github.com/augustuswm/micro-sf-client/cmd"
)

func main() {
	cmd.Execute()
}
