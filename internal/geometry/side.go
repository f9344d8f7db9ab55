package geometry

import (
	"fmt"
	"strings"
)

// Side names an edge or corner of a rectangle. Values are distinct bits so
// several sides can be combined into a Sides mask.
type Side uint

const (
	SideNone        Side = 0
	SideLeft        Side = 1 << 0
	SideRight       Side = 1 << 1
	SideTop         Side = 1 << 2
	SideBottom      Side = 1 << 3
	SideBottomLeft  Side = 1 << 4
	SideBottomRight Side = 1 << 5
	SideTopLeft     Side = 1 << 6
	SideTopRight    Side = 1 << 7
)

var sideNames = []struct {
	side Side
	name string
}{
	{SideLeft, "left"},
	{SideRight, "right"},
	{SideTop, "top"},
	{SideBottom, "bottom"},
	{SideBottomLeft, "bottom_left"},
	{SideBottomRight, "bottom_right"},
	{SideTopLeft, "top_left"},
	{SideTopRight, "top_right"},
}

func (s Side) String() string {
	if s == SideNone {
		return "none"
	}
	for _, n := range sideNames {
		if n.side == s {
			return n.name
		}
	}
	return fmt.Sprintf("Side(%d)", uint(s))
}

// ParseSide converts a name such as "top_left" into a Side. Dashes are
// accepted in place of underscores.
func ParseSide(name string) (Side, error) {
	key := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(name)), "-", "_")
	if key == "none" || key == "" {
		return SideNone, nil
	}
	for _, n := range sideNames {
		if n.name == key {
			return n.side, nil
		}
	}
	return SideNone, fmt.Errorf("unknown side %q", name)
}

// IsCorner reports whether s is one of the four corners.
func (s Side) IsCorner() bool {
	switch s {
	case SideTopLeft, SideTopRight, SideBottomLeft, SideBottomRight:
		return true
	}
	return false
}

// IsEdge reports whether s is one of the four straight edges.
func (s Side) IsEdge() bool {
	switch s {
	case SideLeft, SideRight, SideTop, SideBottom:
		return true
	}
	return false
}

func (s Side) touchesLeft() bool {
	return s == SideLeft || s == SideTopLeft || s == SideBottomLeft
}

func (s Side) touchesRight() bool {
	return s == SideRight || s == SideTopRight || s == SideBottomRight
}

func (s Side) touchesTop() bool {
	return s == SideTop || s == SideTopLeft || s == SideTopRight
}

func (s Side) touchesBottom() bool {
	return s == SideBottom || s == SideBottomLeft || s == SideBottomRight
}

// Sides is a set of Side values.
type Sides uint

// AllSides contains every edge and corner.
const AllSides = Sides(SideLeft | SideRight | SideTop | SideBottom |
	SideBottomLeft | SideBottomRight | SideTopLeft | SideTopRight)

// SidesOf builds a set from individual sides.
func SidesOf(sides ...Side) Sides {
	var out Sides
	for _, s := range sides {
		out |= Sides(s)
	}
	return out
}

// Has reports whether s is in the set. SideNone is never a member.
func (ss Sides) Has(s Side) bool {
	return s != SideNone && ss&Sides(s) != 0
}

// Without returns the set minus every side in o.
func (ss Sides) Without(o Sides) Sides { return ss &^ o }

// List returns members in declaration order.
func (ss Sides) List() []Side {
	var out []Side
	for _, n := range sideNames {
		if ss.Has(n.side) {
			out = append(out, n.side)
		}
	}
	return out
}

// Names returns member names in declaration order.
func (ss Sides) Names() []string {
	list := ss.List()
	out := make([]string, 0, len(list))
	for _, s := range list {
		out = append(out, s.String())
	}
	return out
}

func (ss Sides) String() string {
	if ss == 0 {
		return "none"
	}
	return strings.Join(ss.Names(), "|")
}

// ParseSides converts a list of names into a set.
func ParseSides(names []string) (Sides, error) {
	var out Sides
	for _, name := range names {
		if strings.EqualFold(strings.TrimSpace(name), "all") {
			out |= AllSides
			continue
		}
		s, err := ParseSide(name)
		if err != nil {
			return 0, err
		}
		out |= Sides(s)
	}
	return out, nil
}
