// Package rule defines declarative life-like transition rules: birth/survival
// neighbor-count sets over a Moore or hexagonal neighborhood.
package rule

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrBadRulestring indicates a rulestring that does not follow B<digits>/S<digits>.
	ErrBadRulestring = errors.New("rule: malformed B/S rulestring")
	// ErrCountRange indicates a birth or survival count exceeding the neighborhood size.
	ErrCountRange = errors.New("rule: neighbor count outside neighborhood range")
)

// Neighborhood selects the neighbor shape used for counting.
type Neighborhood int

const (
	// Moore is the 8-connected orthogonal+diagonal neighborhood.
	Moore Neighborhood = iota
	// Hex is the 6-connected hexagonal neighborhood in odd-r offset coordinates.
	Hex
)

// Max returns the number of neighbors in the neighborhood.
func (n Neighborhood) Max() int {
	if n == Hex {
		return 6
	}
	return 8
}

// String returns the neighborhood name.
func (n Neighborhood) String() string {
	if n == Hex {
		return "hex"
	}
	return "moore"
}

var mooreOffsets = [][2]int{
	{-1, -1}, {0, -1}, {1, -1},
	{-1, 0}, {1, 0},
	{-1, 1}, {0, 1}, {1, 1},
}

// Odd-r offset layout: even rows connect NW/N, odd rows N/NE.
var hexEvenOffsets = [][2]int{
	{-1, 0}, {1, 0},
	{-1, -1}, {0, -1},
	{-1, 1}, {0, 1},
}

var hexOddOffsets = [][2]int{
	{-1, 0}, {1, 0},
	{0, -1}, {1, -1},
	{0, 1}, {1, 1},
}

// Offsets returns the (dx, dy) neighbor offsets for a cell on row y.
func (n Neighborhood) Offsets(y int) [][2]int {
	if n == Hex {
		if y%2 == 0 {
			return hexEvenOffsets
		}
		return hexOddOffsets
	}
	return mooreOffsets
}

// Rule is an immutable birth/survival rule definition. Birth and Survival
// are bitmasks over neighbor counts: bit k set means count k triggers the
// transition.
type Rule struct {
	birth    uint16
	survival uint16
	neigh    Neighborhood
	states   int
}

// New builds a rule from explicit birth and survival count sets, validating
// every count against the neighborhood size at construction.
func New(birth, survival []int, neigh Neighborhood) (Rule, error) {
	b, err := mask(birth, neigh)
	if err != nil {
		return Rule{}, err
	}
	s, err := mask(survival, neigh)
	if err != nil {
		return Rule{}, err
	}
	return Rule{birth: b, survival: s, neigh: neigh, states: 2}, nil
}

func mask(counts []int, neigh Neighborhood) (uint16, error) {
	var m uint16
	for _, c := range counts {
		if c < 0 || c > neigh.Max() {
			return 0, fmt.Errorf("%w: %d not in [0,%d]", ErrCountRange, c, neigh.Max())
		}
		m |= 1 << uint(c)
	}
	return m, nil
}

// ParseBS parses rulestring notation like "B3/S23" into a Moore-neighborhood rule.
func ParseBS(s string) (Rule, error) {
	return ParseBSNeighborhood(s, Moore)
}

// ParseBSNeighborhood parses rulestring notation against an explicit neighborhood.
func ParseBSNeighborhood(s string, neigh Neighborhood) (Rule, error) {
	cleaned := strings.ToUpper(strings.ReplaceAll(s, " ", ""))
	parts := strings.Split(cleaned, "/")
	if len(parts) != 2 || !strings.HasPrefix(parts[0], "B") || !strings.HasPrefix(parts[1], "S") {
		return Rule{}, fmt.Errorf("%w: %q", ErrBadRulestring, s)
	}
	birth, err := digits(parts[0][1:], s)
	if err != nil {
		return Rule{}, err
	}
	survival, err := digits(parts[1][1:], s)
	if err != nil {
		return Rule{}, err
	}
	return New(birth, survival, neigh)
}

func digits(s, orig string) ([]int, error) {
	out := make([]int, 0, len(s))
	for _, ch := range s {
		if ch < '0' || ch > '9' {
			return nil, fmt.Errorf("%w: %q", ErrBadRulestring, orig)
		}
		out = append(out, int(ch-'0'))
	}
	return out, nil
}

// Neighborhood returns the neighbor shape the rule counts over.
func (r Rule) Neighborhood() Neighborhood { return r.neigh }

// States returns the number of cell states the rule uses.
func (r Rule) States() int { return r.states }

// Born reports whether a dead cell with the given neighbor count comes alive.
func (r Rule) Born(count int) bool { return r.birth&(1<<uint(count)) != 0 }

// Survives reports whether a live cell with the given neighbor count stays alive.
func (r Rule) Survives(count int) bool { return r.survival&(1<<uint(count)) != 0 }

// String renders the rule in B/S notation.
func (r Rule) String() string {
	var sb strings.Builder
	sb.WriteByte('B')
	for _, d := range maskDigits(r.birth) {
		fmt.Fprintf(&sb, "%d", d)
	}
	sb.WriteString("/S")
	for _, d := range maskDigits(r.survival) {
		fmt.Fprintf(&sb, "%d", d)
	}
	return sb.String()
}

func maskDigits(m uint16) []int {
	var out []int
	for i := 0; i <= 9; i++ {
		if m&(1<<uint(i)) != 0 {
			out = append(out, i)
		}
	}
	return out
}
