// Command pipecache is a thin entrypoint over internal/cli's command tree.
package main

import (
	"fmt"
	"os"

	"github.com/gpucache/pipecache/internal/cli"
)

func main() {
	root := cli.NewRootCommand()
	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(cli.GetExitCode(err))
	}
}
