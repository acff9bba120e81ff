package grid

import "fmt"

// RuleSet selects the pair of lookup tables used by Step.
type RuleSet uint8

const (
	// Unknown is any unrecognised rule-set name. Stepping with it kills every
	// cell. That behaviour is kept for compatibility with existing schedules,
	// but it is almost certainly a typo on the caller's side.
	Unknown RuleSet = iota
	Conway
	Caves
	SmoothCaves
	Smooth
	Lines
)

type rule struct {
	survive uint16 // bit n set: an Alive cell with n neighbours stays Alive
	birth   uint16 // bit n set: a Dead cell with n neighbours becomes Alive
}

func counts(ns ...int) uint16 {
	var m uint16
	for _, n := range ns {
		m |= 1 << n
	}
	return m
}

var rules = map[RuleSet]rule{
	Conway:      {survive: counts(2, 3), birth: counts(3)},
	Caves:       {survive: counts(3, 4, 5, 6, 7, 8), birth: counts(6, 7, 8)},
	SmoothCaves: {survive: counts(4, 5, 6, 7, 8), birth: counts(5, 6, 7, 8)},
	Smooth:      {survive: counts(5, 6, 7, 8), birth: counts(5, 6, 7, 8)},
	Lines:       {survive: counts(5, 6, 7, 8), birth: counts(4, 5, 6, 7, 8)},
}

var names = map[RuleSet]string{
	Conway:      "conway",
	Caves:       "caves",
	SmoothCaves: "smooth caves",
	Smooth:      "smooth",
	Lines:       "lines",
}

// RuleSets lists the known rule sets in declaration order.
func RuleSets() []RuleSet {
	return []RuleSet{Conway, Caves, SmoothCaves, Smooth, Lines}
}

// ParseRuleSet maps a rule-set name to its value. Names are matched exactly;
// anything else is Unknown rather than an error.
func ParseRuleSet(name string) RuleSet {
	for rs, n := range names {
		if n == name {
			return rs
		}
	}
	return Unknown
}

func (rs RuleSet) String() string {
	if n, ok := names[rs]; ok {
		return n
	}
	return fmt.Sprintf("unknown(%d)", uint8(rs))
}

// Known reports whether rs has a transition table.
func (rs RuleSet) Known() bool {
	_, ok := rules[rs]
	return ok
}

// MarshalText encodes the rule set by name.
func (rs RuleSet) MarshalText() ([]byte, error) {
	if !rs.Known() {
		return []byte("unknown"), nil
	}
	return []byte(names[rs]), nil
}

// UnmarshalText decodes a rule-set name. Unrecognised names decode to Unknown.
func (rs *RuleSet) UnmarshalText(text []byte) error {
	*rs = ParseRuleSet(string(text))
	return nil
}
