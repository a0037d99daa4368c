// Command wwdc is the offline search CLI for the WWDC session transcript
// archive.
package main

import (
	"github.com/wwdckit/wwdc-cli/internal/adapters/driving/cli"
)

func main() {
	cli.Execute()
}
