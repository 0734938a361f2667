// Package levels reads Sokoban level packs.
//
// A pack can be the embedded classic set, a local file or an http(s) URL.
// Three formats are understood:
//
//   - JSON: {"name": "...", "levels": [["row", ...], ...]}
//   - YAML: name plus a list of levels, each with rows or a multi-line map
//   - Text: the common .xsb/.sok layout, levels separated by blank lines,
//     ';' comment lines and optional "Title:" lines
package levels

import (
	_ "embed"
	"fmt"
	"path"
	"strings"
	"sync"

	"github.com/vovakirdan/tui-sokoban/internal/games/sokoban"
)

// Format identifies a pack encoding.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
	FormatText Format = "text"
)

// ClassicName is the location that selects the embedded pack.
const ClassicName = "classic"

// Pack is a named list of levels.
type Pack struct {
	Name   string
	Levels []sokoban.Level
}

//go:embed data/classic.json
var classicJSON []byte

var (
	classicOnce sync.Once
	classicPack Pack
	classicErr  error
)

// Classic returns the embedded pack.
func Classic() (Pack, error) {
	classicOnce.Do(func() {
		classicPack, classicErr = ParseJSON(classicJSON)
		if classicErr == nil && classicPack.Name == "" {
			classicPack.Name = "Classic"
		}
	})
	return classicPack, classicErr
}

// DetectFormat picks a format from the file name, falling back to the
// content when the extension is not recognised.
func DetectFormat(name string, data []byte) Format {
	switch strings.ToLower(path.Ext(name)) {
	case ".json":
		return FormatJSON
	case ".yaml", ".yml":
		return FormatYAML
	case ".xsb", ".sok", ".txt":
		return FormatText
	}

	trimmed := strings.TrimSpace(string(data))
	switch {
	case strings.HasPrefix(trimmed, "{"):
		return FormatJSON
	case strings.HasPrefix(trimmed, "levels:"), strings.HasPrefix(trimmed, "name:"):
		return FormatYAML
	default:
		return FormatText
	}
}

// Parse decodes data in the given format.
func Parse(data []byte, format Format) (Pack, error) {
	switch format {
	case FormatJSON:
		return ParseJSON(data)
	case FormatYAML:
		return ParseYAML(data)
	case FormatText:
		return ParseText(data)
	default:
		return Pack{}, fmt.Errorf("levels: unknown format %q", format)
	}
}
