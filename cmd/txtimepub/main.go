// File: cmd/txtimepub/main.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// txtimepub publishes cyclic frames with kernel-scheduled release.

package main

import (
	"fmt"
	"os"

	"github.com/momentics/hioload-txtime/internal/cli"
)

func main() {
	if err := cli.NewRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
