package mcpsrv

import (
	"github.com/usestring/harscope/internal/cache"
	"github.com/usestring/harscope/internal/config"
	"github.com/usestring/harscope/pkg/extract"
	"github.com/usestring/harscope/pkg/har"
	"github.com/usestring/harscope/pkg/textquery"
)

// Deps contains all dependencies available to custom tools.
// This gives custom tools access to the same infrastructure as builtin tools.
type Deps struct {
	Archive   *har.Archive
	Config    *config.Config
	Patterns  *cache.PatternCache
	Extractor extract.SelectExtractor
	Pairs     *extract.RegexExtractor
	TextQuery *textquery.Engine
}
