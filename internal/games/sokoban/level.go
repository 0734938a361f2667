package sokoban

import "unicode/utf8"

// Level is one puzzle as text rows drawn from the legend.
// Rows may have different lengths; missing trailing cells are Outside.
type Level struct {
	Name string
	Rows []string
}

// Width returns the length of the longest row in runes.
func (l Level) Width() int {
	w := 0
	for _, row := range l.Rows {
		w = max(w, utf8.RuneCountInString(row))
	}
	return w
}

// Height returns the number of rows.
func (l Level) Height() int {
	return len(l.Rows)
}

// IsEmpty reports whether the level has no rows.
func (l Level) IsEmpty() bool {
	return len(l.Rows) == 0
}

func (l Level) clone() Level {
	return Level{Name: l.Name, Rows: append([]string(nil), l.Rows...)}
}
