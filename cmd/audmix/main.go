// SPDX-License-Identifier: EPL-2.0

// Command audmix plays or renders up to four sound files through the mixer.
package main

import (
	"os"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}
