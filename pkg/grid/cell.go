package grid

// Cell is the binary state of a single grid position.
type Cell uint8

const (
	// Dead is the zero value so freshly allocated fields start empty.
	Dead Cell = iota
	// Alive marks an occupied position.
	Alive
)

// Swap returns the opposite state.
func (c Cell) Swap() Cell {
	if c == Alive {
		return Dead
	}
	return Alive
}

// Next returns the state this cell takes in the following generation given
// the number of live Moore neighbours. Counts outside 0..8 and unknown rule
// sets yield Dead.
func (c Cell) Next(rs RuleSet, neighbors int) Cell {
	if neighbors < 0 || neighbors > 8 {
		return Dead
	}
	r, ok := rules[rs]
	if !ok {
		return Dead
	}
	mask := r.birth
	if c == Alive {
		mask = r.survive
	}
	if mask&(1<<neighbors) != 0 {
		return Alive
	}
	return Dead
}

func (c Cell) String() string {
	if c == Alive {
		return "Alive"
	}
	return "Dead"
}
