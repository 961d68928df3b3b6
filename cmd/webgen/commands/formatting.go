package commands

import (
	"os"
	"strings"
	"text/template"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/webgenlabs/webgen/pkg/style"
)

// initTemplateFormatting registers the helpers the usage template
// uses for its headings. Styling tracks the detected output format,
// so piped help stays plain.
func initTemplateFormatting() {
	cobra.AddTemplateFuncs(template.FuncMap{
		"bold":  emphasize,
		"upper": strings.ToUpper,
		"boldUpper": func(s string) string {
			return emphasize(strings.ToUpper(s))
		},
	})
}

// emphasize bolds s when stdout is a styled terminal.
func emphasize(s string) string {
	if style.DetectFormat(os.Stdout) != style.FormatTerminal {
		return s
	}
	return pterm.Bold.Sprint(s)
}
