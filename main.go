// Package main is the entry point for the licenseforge CLI application.
//
// licenseforge gathers the third party licenses reported by pnpm and writes
// them as a Markdown and/or JSON document.
package main

import "github.com/ajxudir/licenseforge/cmd"

func main() {
	cmd.Execute()
}
