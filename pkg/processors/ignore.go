package processors

import (
	"path/filepath"

	"github.com/webgenlabs/webgen/pkg/logging"
)

const IgnoreProcessorName = "ignore"

// builtinIgnorePatterns cover editor droppings and underscore-prefixed
// working files. They apply even when the configuration supplies none.
var builtinIgnorePatterns = []string{"_*", ".#*", "*~"}

// IgnoreProcessor claims temporary and protected files so nothing else
// processes them. Claimed files produce no output.
type IgnoreProcessor struct {
	patterns []string
}

// NewIgnore creates an IgnoreProcessor with the builtin patterns plus
// any configured extras.
func NewIgnore(extra []string) *IgnoreProcessor {
	patterns := make([]string, 0, len(builtinIgnorePatterns)+len(extra))
	patterns = append(patterns, builtinIgnorePatterns...)
	patterns = append(patterns, extra...)
	return &IgnoreProcessor{patterns: patterns}
}

// Name returns the unique name of this processor.
func (p *IgnoreProcessor) Name() string {
	return IgnoreProcessorName
}

// CanProcess claims files whose basename matches an ignore pattern.
func (p *IgnoreProcessor) CanProcess(filename string) bool {
	base := filepath.Base(filename)
	for _, pattern := range p.patterns {
		matched, err := filepath.Match(pattern, base)
		if err != nil {
			logger := logging.GetLogger("processors.ignore")
			logger.Error().
				Err(err).
				Str("pattern", pattern).
				Msg("bad ignore pattern")
			continue
		}
		if matched {
			return true
		}
	}
	return false
}

// OutputName returns the path unchanged; ignored files never reach the
// output tree anyway.
func (p *IgnoreProcessor) OutputName(relPath string) string {
	return relPath
}

// Start implements Processor.
func (p *IgnoreProcessor) Start(ctx *Context) error {
	return nil
}

// Process does nothing, effectively skipping the file.
func (p *IgnoreProcessor) Process(inPath, outPath string) (bool, error) {
	return false, nil
}

// End implements Processor.
func (p *IgnoreProcessor) End() error {
	return nil
}
