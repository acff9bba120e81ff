package caves

import (
	"encoding/json"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"cavegen/pkg/grid"
)

// Stage applies its rule sets in order once per tick, optionally doubling
// the field afterwards. Repeat counts ticks; zero or less runs forever.
type Stage struct {
	Rules  []grid.RuleSet `json:"rules"`
	Grow   bool           `json:"grow,omitempty"`
	Repeat int            `json:"repeat,omitempty"`
}

// Schedule is the ordered list of stages a cave sim works through.
//
// The text form separates stages with ';'. A stage is rule names joined by
// '+', an optional "/grow", and an optional "*N" repeat count:
//
//	caves+smooth caves*3; smooth/grow*3
type Schedule []Stage

// ParseSchedule reads the text form of a schedule. Rule names that are not
// recognised parse as grid.Unknown.
func ParseSchedule(text string) (Schedule, error) {
	var out Schedule
	for i, raw := range strings.Split(text, ";") {
		raw = strings.TrimSpace(raw)
		if raw == "" {
			continue
		}
		st, err := parseStage(raw)
		if err != nil {
			return nil, errors.Wrapf(err, "[ParseSchedule] stage %d %q", i+1, raw)
		}
		out = append(out, st)
	}
	if len(out) == 0 {
		return nil, errors.Errorf("[ParseSchedule] no stages in %q", text)
	}
	return out, nil
}

func parseStage(raw string) (Stage, error) {
	var st Stage
	if body, count, ok := strings.Cut(raw, "*"); ok {
		n, err := strconv.Atoi(strings.TrimSpace(count))
		if err != nil {
			return st, errors.Wrap(err, "bad repeat count")
		}
		if n < 0 {
			return st, errors.Errorf("negative repeat count %d", n)
		}
		st.Repeat = n
		raw = body
	}
	if body, flag, ok := strings.Cut(raw, "/"); ok {
		if strings.TrimSpace(flag) != "grow" {
			return st, errors.Errorf("unknown stage flag %q", strings.TrimSpace(flag))
		}
		st.Grow = true
		raw = body
	}
	for _, name := range strings.Split(raw, "+") {
		name = strings.TrimSpace(name)
		if name == "" {
			return st, errors.New("empty rule name")
		}
		st.Rules = append(st.Rules, grid.ParseRuleSet(name))
	}
	return st, nil
}

// String renders the schedule in its text form.
func (s Schedule) String() string {
	parts := make([]string, 0, len(s))
	for _, st := range s {
		names := make([]string, len(st.Rules))
		for i, rs := range st.Rules {
			text, _ := rs.MarshalText()
			names[i] = string(text)
		}
		part := strings.Join(names, "+")
		if st.Grow {
			part += "/grow"
		}
		if st.Repeat > 0 {
			part += "*" + strconv.Itoa(st.Repeat)
		}
		parts = append(parts, part)
	}
	return strings.Join(parts, "; ")
}

// UnmarshalJSON accepts either the text form or a list of stage objects.
func (s *Schedule) UnmarshalJSON(data []byte) error {
	var text string
	if err := json.Unmarshal(data, &text); err == nil {
		parsed, err := ParseSchedule(text)
		if err != nil {
			return err
		}
		*s = parsed
		return nil
	}
	var stages []Stage
	if err := json.Unmarshal(data, &stages); err != nil {
		return errors.Wrap(err, "[Schedule] expected a string or a list of stages")
	}
	*s = stages
	return nil
}

// cursor tracks progress through a schedule.
type cursor struct {
	stage int
	ticks int
}

func (c *cursor) current(s Schedule) (Stage, bool) {
	if c.stage >= len(s) {
		return Stage{}, false
	}
	return s[c.stage], true
}

func (c *cursor) advance(s Schedule, loop bool) {
	st, ok := c.current(s)
	if !ok || st.Repeat <= 0 {
		return
	}
	c.ticks++
	if c.ticks < st.Repeat {
		return
	}
	c.ticks = 0
	c.stage++
	if c.stage >= len(s) && loop {
		c.stage = 0
	}
}
