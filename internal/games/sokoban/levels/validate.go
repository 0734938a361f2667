package levels

import (
	"fmt"
	"slices"

	"github.com/zyedidia/generic/mapset"

	"github.com/vovakirdan/tui-sokoban/internal/games/sokoban"
)

// Severity grades a validation finding.
type Severity int

const (
	SeverityWarning Severity = iota
	SeverityError
)

func (s Severity) String() string {
	if s == SeverityError {
		return "error"
	}
	return "warning"
}

// Issue is one finding about a level.
type Issue struct {
	Severity Severity
	Message  string
}

func (i Issue) String() string {
	return i.Severity.String() + ": " + i.Message
}

// Stats summarises a level.
type Stats struct {
	Width  int
	Height int
	Crates int
	Goals  int
}

// Describe counts the level's size, crates and goals.
func Describe(l sokoban.Level) Stats {
	st := Stats{Width: l.Width(), Height: l.Height()}
	for _, row := range l.Rows {
		for _, r := range row {
			switch sokoban.ParseCell(r) {
			case sokoban.Crate:
				st.Crates++
			case sokoban.CrateOnGoal:
				st.Crates++
				st.Goals++
			case sokoban.Goal, sokoban.CharacterOnGoal:
				st.Goals++
			}
		}
	}
	return st
}

// Validate reports problems that make a level unplayable or odd. The
// engine accepts any level; this is advisory.
func Validate(l sokoban.Level) []Issue {
	var issues []Issue
	add := func(sev Severity, format string, args ...any) {
		issues = append(issues, Issue{Severity: sev, Message: fmt.Sprintf(format, args...)})
	}

	if l.IsEmpty() {
		add(SeverityError, "level has no rows")
		return issues
	}

	unknown := mapset.New[rune]()
	starts := 0
	for _, row := range l.Rows {
		for _, r := range row {
			c := sokoban.ParseCell(r)
			if c == sokoban.Outside {
				unknown.Put(r)
			}
			if c.HasCharacter() {
				starts++
			}
		}
	}
	var odd []rune
	unknown.Each(func(r rune) { odd = append(odd, r) })
	slices.Sort(odd)
	for _, r := range odd {
		add(SeverityWarning, "unknown map character %q read as outside", r)
	}

	switch {
	case starts == 0:
		add(SeverityError, "no character start")
	case starts > 1:
		add(SeverityError, "%d character starts, the last one is used", starts)
	}

	st := Describe(l)
	if st.Goals == 0 {
		add(SeverityError, "no goals")
	}
	if st.Crates != st.Goals {
		add(SeverityError, "%d crates for %d goals", st.Crates, st.Goals)
	}

	if starts > 0 {
		b := sokoban.BuildBoard(l.Rows)
		start, _ := b.Start()
		reach := reachable(b, start)
		crates, goals := 0, 0
		for y := range b.Height() {
			for x := range b.Width() {
				p := sokoban.Position{X: x, Y: y}
				c := b.At(p)
				if reach.Has(p) {
					continue
				}
				if c.IsCrate() {
					crates++
				}
				if c.IsGoal() {
					goals++
				}
			}
		}
		if crates > 0 {
			add(SeverityError, "%d crates cannot be reached", crates)
		}
		if goals > 0 {
			add(SeverityError, "%d goals cannot be reached", goals)
		}
	}

	return issues
}

// HasErrors reports whether any issue is an error.
func HasErrors(issues []Issue) bool {
	for _, i := range issues {
		if i.Severity == SeverityError {
			return true
		}
	}
	return false
}

// reachable flood-fills from start through every cell that is neither wall
// nor outside, ignoring crates.
func reachable(b *sokoban.Board, start sokoban.Position) mapset.Set[sokoban.Position] {
	seen := mapset.New[sokoban.Position]()
	queue := []sokoban.Position{start}
	seen.Put(start)

	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]

		neighbors := []sokoban.Position{cur.Add(0, -1), cur.Add(1, 0), cur.Add(0, 1), cur.Add(-1, 0)}
		for _, n := range neighbors {
			c := b.At(n)
			if !b.InBounds(n) || c == sokoban.Wall || c == sokoban.Outside || seen.Has(n) {
				continue
			}
			seen.Put(n)
			queue = append(queue, n)
		}
	}
	return seen
}
