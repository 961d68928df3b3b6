package style

import (
	"fmt"
	"strings"
	"time"

	"github.com/pterm/pterm"

	"github.com/webgenlabs/webgen/pkg/types"
)

// timeRounding trims generation durations to a readable precision.
const timeRounding = time.Millisecond

// Renderer turns command results into user-facing text. The terminal
// renderer decorates with colors and indicators; the plain renderer
// emits the same lines bare, fit for pipes and scripts.
type Renderer interface {
	RenderBootstrap(result *types.BootstrapResult) string
	RenderInit(result *types.InitResult) string
	RenderGenerate(result *types.GenerateResult) string
	RenderVersionList(result *types.VersionListResult) string
	RenderDeploy(result *types.DeployResult) string
	RenderUndeploy(result *types.UndeployResult) string
	RenderGC(result *types.GCResult) string
	RenderError(err error) string
}

// NewRenderer returns the renderer for a resolved format. JSON output
// is marshaled by the caller and falls back to plain text here.
func NewRenderer(format Format) Renderer {
	if format == FormatTerminal {
		return &TerminalRenderer{}
	}
	return &PlainRenderer{}
}

// bootstrapVerb is the leading word of a dependency line.
func bootstrapVerb(dep types.DependencyResult, dryRun bool) string {
	if dryRun && dep.State == types.DependencyStateLinked {
		return "would link"
	}
	return string(dep.State)
}

// PlainRenderer emits undecorated text.
type PlainRenderer struct{}

// NewPlainRenderer creates a plain text renderer.
func NewPlainRenderer() *PlainRenderer {
	return &PlainRenderer{}
}

func (r *PlainRenderer) RenderBootstrap(result *types.BootstrapResult) string {
	if len(result.Dependencies) == 0 {
		return "No dependencies configured."
	}

	var b strings.Builder
	for _, dep := range result.Dependencies {
		verb := bootstrapVerb(dep, result.DryRun)
		switch dep.State {
		case types.DependencyStateLinked:
			line := fmt.Sprintf("%-10s %s -> %s", verb, dep.Dependency.LinkName, dep.Target)
			if dep.DanglingTarget {
				line += " (link target missing in clone)"
			}
			b.WriteString(line + "\n")
		default:
			b.WriteString(fmt.Sprintf("%-10s %s: %s\n", verb, dep.Dependency.LinkName, dep.Message))
		}
	}
	return strings.TrimRight(b.String(), "\n")
}

func (r *PlainRenderer) RenderInit(result *types.InitResult) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("Created site container in %s\n", result.Path))
	for _, f := range result.FilesCreated {
		b.WriteString(fmt.Sprintf("  %s\n", f))
	}
	if result.Bootstrap != nil {
		b.WriteString(r.RenderBootstrap(result.Bootstrap) + "\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

func (r *PlainRenderer) RenderGenerate(result *types.GenerateResult) string {
	return fmt.Sprintf("Generated %d files in %s (%d ignored).",
		len(result.Files), result.OutputDir, result.Ignored)
}

func (r *PlainRenderer) RenderVersionList(result *types.VersionListResult) string {
	if len(result.Versions) == 0 {
		return "No website versions."
	}

	var b strings.Builder
	b.WriteString("Versions:\n")
	for i, v := range result.Versions {
		suffix := ""
		if v.IsCurrent {
			suffix = " (current)"
		}
		b.WriteString(fmt.Sprintf("  %2d. %s%s\n", i, v.Name, suffix))
	}
	return strings.TrimRight(b.String(), "\n")
}

func (r *PlainRenderer) RenderDeploy(result *types.DeployResult) string {
	verb := "Deployed"
	if result.DryRun {
		verb = "Would deploy"
	}
	return fmt.Sprintf("%s %d files to %s (%d unchanged).",
		verb, len(result.Copied), result.DeployDir, len(result.Skipped))
}

func (r *PlainRenderer) RenderUndeploy(result *types.UndeployResult) string {
	verb := "Removed"
	if result.DryRun {
		verb = "Would remove"
	}
	line := fmt.Sprintf("%s %d files from %s", verb, len(result.Removed), result.DeployDir)
	if len(result.Missing) > 0 {
		line += fmt.Sprintf(", %d already missing", len(result.Missing))
	}
	if len(result.PrunedDirs) > 0 {
		line += fmt.Sprintf(", pruned %d directories", len(result.PrunedDirs))
	}
	return line + "."
}

func (r *PlainRenderer) RenderGC(result *types.GCResult) string {
	if len(result.Removed) == 0 {
		return "Nothing to garbage collect or no current version to base from."
	}

	var b strings.Builder
	if result.DryRun {
		b.WriteString(fmt.Sprintf("Would garbage collect %d versions:\n", len(result.Removed)))
	} else {
		b.WriteString(fmt.Sprintf("Garbage collected %d versions:\n", len(result.Removed)))
	}
	for _, name := range result.Removed {
		b.WriteString(fmt.Sprintf("  %s\n", name))
	}
	return strings.TrimRight(b.String(), "\n")
}

func (r *PlainRenderer) RenderError(err error) string {
	if err == nil {
		return ""
	}
	return fmt.Sprintf("Error: %s", err.Error())
}

// TerminalRenderer decorates the plain structure with colors and
// indicators.
type TerminalRenderer struct {
	plain PlainRenderer
}

// NewTerminalRenderer creates a rich terminal renderer.
func NewTerminalRenderer() *TerminalRenderer {
	return &TerminalRenderer{}
}

func (r *TerminalRenderer) RenderBootstrap(result *types.BootstrapResult) string {
	if len(result.Dependencies) == 0 {
		return MutedStyle.Render("No dependencies configured.")
	}

	var b strings.Builder
	for _, dep := range result.Dependencies {
		var indicator string
		switch dep.State {
		case types.DependencyStateLinked:
			indicator = SuccessIndicator
			if dep.DanglingTarget {
				indicator = WarningIndicator
			}
		case types.DependencyStateCloned, types.DependencyStateFailed:
			indicator = ErrorIndicator
		case types.DependencyStateSkipped:
			indicator = PendingIndicator
		default:
			indicator = InfoIndicator
		}

		verb := fmt.Sprintf("%-10s", bootstrapVerb(dep, result.DryRun))
		switch dep.State {
		case types.DependencyStateLinked:
			line := fmt.Sprintf("%s %s %s -> %s", indicator, verb,
				LinkStyle.Render(dep.Dependency.LinkName), PathStyle.Render(dep.Target))
			if dep.DanglingTarget {
				line += WarningStyle.Render(" (link target missing in clone)")
			}
			b.WriteString(line + "\n")
		default:
			b.WriteString(fmt.Sprintf("%s %s %s: %s\n", indicator, verb,
				LinkStyle.Render(dep.Dependency.LinkName), MutedStyle.Render(dep.Message)))
		}
	}
	return strings.TrimRight(b.String(), "\n")
}

func (r *TerminalRenderer) RenderInit(result *types.InitResult) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("%s Created site container in %s\n",
		SuccessIndicator, PathStyle.Render(result.Path)))
	for _, f := range result.FilesCreated {
		b.WriteString(Indent(MutedStyle.Render(f), 1) + "\n")
	}
	if result.Bootstrap != nil {
		b.WriteString(r.RenderBootstrap(result.Bootstrap) + "\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

func (r *TerminalRenderer) RenderGenerate(result *types.GenerateResult) string {
	return fmt.Sprintf("%s Generated %s files in %s (%d ignored, %s)",
		SuccessIndicator,
		Bold(fmt.Sprintf("%d", len(result.Files))),
		PathStyle.Render(result.OutputDir),
		result.Ignored,
		result.Duration.Round(timeRounding).String())
}

func (r *TerminalRenderer) RenderVersionList(result *types.VersionListResult) string {
	if len(result.Versions) == 0 {
		return MutedStyle.Render("No website versions.")
	}

	var b strings.Builder
	b.WriteString(TitleStyle.Render("Versions:") + "\n")
	for i, v := range result.Versions {
		name := VersionStyle.Render(v.Name)
		suffix := ""
		if v.IsCurrent {
			name = CurrentStyle.Render(v.Name)
			suffix = CurrentStyle.Render(" (current)")
		}
		b.WriteString(fmt.Sprintf("  %2d. %s%s\n", i, name, suffix))
	}
	return strings.TrimRight(b.String(), "\n")
}

func (r *TerminalRenderer) RenderDeploy(result *types.DeployResult) string {
	indicator := SuccessIndicator
	if result.DryRun {
		indicator = InfoIndicator
	}
	return fmt.Sprintf("%s %s", indicator, r.plain.RenderDeploy(result))
}

func (r *TerminalRenderer) RenderUndeploy(result *types.UndeployResult) string {
	indicator := SuccessIndicator
	if result.DryRun {
		indicator = InfoIndicator
	}
	return fmt.Sprintf("%s %s", indicator, r.plain.RenderUndeploy(result))
}

func (r *TerminalRenderer) RenderGC(result *types.GCResult) string {
	if len(result.Removed) == 0 {
		return MutedStyle.Render("Nothing to garbage collect or no current version to base from.")
	}

	var b strings.Builder
	if result.DryRun {
		b.WriteString(fmt.Sprintf("%s Would garbage collect %d versions:\n",
			InfoIndicator, len(result.Removed)))
	} else {
		b.WriteString(fmt.Sprintf("%s Garbage collected %d versions:\n",
			SuccessIndicator, len(result.Removed)))
	}
	for _, name := range result.Removed {
		b.WriteString(Indent(VersionStyle.Render(name), 1) + "\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

func (r *TerminalRenderer) RenderError(err error) string {
	if err == nil {
		return ""
	}
	// Coded errors already carry their [CODE] prefix in Error().
	return fmt.Sprintf("%s %s", pterm.Error.Prefix.Text,
		pterm.Error.MessageStyle.Sprint(err.Error()))
}
