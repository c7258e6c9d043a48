package main

import (
	"fmt"
	"os"
	"runtime/debug"

	"github.com/vvka-141/jcagen/internal/cli"
	"github.com/vvka-141/jcagen/pkg/jcagen"
)

func main() {
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "panic: %v\n%s\n", r, debug.Stack())
			os.Exit(jcagen.ExitPanic)
		}
	}()

	if os.Getenv("JCAGEN_TEST_PANIC") == "1" {
		panic("intentional test panic")
	}

	if err := cli.Execute(); err != nil {
		os.Exit(jcagen.ExitCodeForError(err))
	}
}
