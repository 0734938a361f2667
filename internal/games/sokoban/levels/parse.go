package levels

import (
	"bufio"
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/tui-sokoban/internal/games/sokoban"
)

// ErrEmptyPack is returned when a document holds no levels.
var ErrEmptyPack = errors.New("levels: no levels found")

type jsonPack struct {
	Name   string     `json:"name"`
	Levels [][]string `json:"levels"`
}

// ParseJSON decodes {"levels": [[row, ...], ...]}.
func ParseJSON(data []byte) (Pack, error) {
	var doc jsonPack
	if err := json.Unmarshal(data, &doc); err != nil {
		return Pack{}, fmt.Errorf("levels: cannot parse json: %w", err)
	}
	if len(doc.Levels) == 0 {
		return Pack{}, ErrEmptyPack
	}

	pack := Pack{Name: doc.Name, Levels: make([]sokoban.Level, 0, len(doc.Levels))}
	for _, rows := range doc.Levels {
		pack.Levels = append(pack.Levels, sokoban.Level{Rows: rows})
	}
	return pack, nil
}

type yamlLevel struct {
	Name string   `yaml:"name"`
	Rows []string `yaml:"rows"`
	Map  string   `yaml:"map"`
}

type yamlPack struct {
	Name   string      `yaml:"name"`
	Levels []yamlLevel `yaml:"levels"`
}

// ParseYAML decodes a pack such as:
//
//	name: Tutorial
//	levels:
//	  - name: First steps
//	    rows: ["#####", "#@$.#", "#####"]
//	  - map: |
//	      #####
//	      #@$.#
//	      #####
func ParseYAML(data []byte) (Pack, error) {
	var doc yamlPack
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return Pack{}, fmt.Errorf("levels: cannot parse yaml: %w", err)
	}
	if len(doc.Levels) == 0 {
		return Pack{}, ErrEmptyPack
	}

	pack := Pack{Name: doc.Name, Levels: make([]sokoban.Level, 0, len(doc.Levels))}
	for i, l := range doc.Levels {
		rows := l.Rows
		if len(rows) == 0 && l.Map != "" {
			rows = strings.Split(strings.TrimRight(l.Map, "\n"), "\n")
		}
		if len(rows) == 0 {
			return Pack{}, fmt.Errorf("levels: yaml level %d has no rows", i+1)
		}
		pack.Levels = append(pack.Levels, sokoban.Level{Name: l.Name, Rows: rows})
	}
	return pack, nil
}

// ParseText decodes the plain .xsb/.sok layout. '-' and '_' are read as
// floor. A "Title:" line names the level it follows; a ';' comment right
// before a level names it when no title is given.
func ParseText(data []byte) (Pack, error) {
	var (
		pack    Pack
		rows    []string
		name    string
		pending string
	)

	flush := func() {
		if len(rows) == 0 {
			return
		}
		pack.Levels = append(pack.Levels, sokoban.Level{Name: name, Rows: rows})
		rows, name = nil, ""
	}

	sc := bufio.NewScanner(bytes.NewReader(data))
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for sc.Scan() {
		line := strings.TrimRight(sc.Text(), "\r")
		trimmed := strings.TrimSpace(line)

		switch {
		case isBoardRow(line):
			if len(rows) == 0 {
				name, pending = pending, ""
			}
			rows = append(rows, normalizeRow(line))
		case trimmed == "":
			flush()
		case strings.HasPrefix(trimmed, ";"):
			flush()
			pending = strings.TrimSpace(trimmed[1:])
		default:
			key, value, ok := strings.Cut(trimmed, ":")
			if !ok || !strings.EqualFold(strings.TrimSpace(key), "title") {
				continue
			}
			title := strings.TrimSpace(value)
			switch {
			case len(rows) > 0:
				name = title
			case len(pack.Levels) > 0:
				pack.Levels[len(pack.Levels)-1].Name = title
			}
		}
	}
	if err := sc.Err(); err != nil {
		return Pack{}, fmt.Errorf("levels: cannot read text pack: %w", err)
	}
	flush()

	if len(pack.Levels) == 0 {
		return Pack{}, ErrEmptyPack
	}
	return pack, nil
}

// isBoardRow reports whether line is a map row: at least one wall and
// nothing outside the legend.
func isBoardRow(line string) bool {
	if !strings.ContainsRune(line, sokoban.RuneWall) {
		return false
	}
	for _, r := range line {
		switch r {
		case ' ', '#', '.', '$', '@', '*', '+', '-', '_':
		default:
			return false
		}
	}
	return true
}

func normalizeRow(line string) string {
	return strings.NewReplacer("-", " ", "_", " ").Replace(line)
}
