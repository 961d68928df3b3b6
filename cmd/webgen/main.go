package main

import (
	"fmt"
	"os"

	"github.com/webgenlabs/webgen/cmd/webgen/commands"
	"github.com/webgenlabs/webgen/pkg/errors"
	"github.com/webgenlabs/webgen/pkg/style"

	// Import packages to ensure their init() functions are called for registration
	_ "github.com/webgenlabs/webgen/pkg/processors"
)

func main() {
	rootCmd := commands.NewRootCmd()
	if err := rootCmd.Execute(); err != nil {
		renderer := style.NewRenderer(style.DetectFormat(os.Stderr))
		fmt.Fprintln(os.Stderr, renderer.RenderError(err))

		// Usage errors exit 2, runtime errors exit 1
		if errors.IsErrorCode(err, errors.ErrUsage) {
			os.Exit(2)
		}
		os.Exit(1)
	}
}
