package listview

import (
	"fmt"
	"strings"
)

type Direction string

const (
	Asc  Direction = "asc"
	Desc Direction = "desc"
)

func (d Direction) Opposite() Direction {
	if d == Desc {
		return Asc
	}
	return Desc
}

type Sort struct {
	Column    string
	Direction Direction
}

// String is the "<column>:<direction>" form list endpoints accept
func (s Sort) String() string {
	if s.Column == "" {
		return ""
	}
	return s.Column + ":" + string(s.direction())
}

func (s Sort) direction() Direction {
	if s.Direction == "" {
		return Asc
	}
	return s.Direction
}

// ParseSort reads the "<column>:<direction>" form; a missing direction means ascending
func ParseSort(raw string) (Sort, error) {
	col, dir, found := strings.Cut(raw, ":")
	if col == "" {
		return Sort{}, fmt.Errorf("sort %q: missing column", raw)
	}
	if !found || dir == "" {
		return Sort{Column: col, Direction: Asc}, nil
	}
	switch Direction(dir) {
	case Asc, Desc:
		return Sort{Column: col, Direction: Direction(dir)}, nil
	}
	return Sort{}, fmt.Errorf("sort %q: direction must be asc or desc", raw)
}
