package main

import (
	"fmt"
	"os"

	"github.com/crmarques/apirecord/cli/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(cmd.ExitCodeForError(err))
	}
}
