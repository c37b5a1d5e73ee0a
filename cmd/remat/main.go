// remat translates Poser material shader trees into Lux material records.
//
// Usage:
//
//	remat [--config FILE] convert [--format yaml|json] [--out-dir DIR] [--check] [--watch] <file>...
//	remat nodes [--markdown] [keyword]
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
