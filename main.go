package main

import (
	"fmt"
	"os"

	"github.com/jetsetilly/riva128/debugger"
)

func main() {
	if err := debugger.Launch(os.Args[1:]); err != nil {
		fmt.Printf("*** %s\n", err)
		os.Exit(1)
	}
}
