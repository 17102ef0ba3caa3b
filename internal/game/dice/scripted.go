package dice

// ScriptedSource replays a fixed sequence of values, letting tests force
// exact rolls. A value v produces a d100 roll of (v % 100) + 1.
type ScriptedSource struct {
	values []int
}

// NewScriptedSource returns a source that yields the given values in order.
//
// Precondition: the source must not be drawn from more times than it has
// values; exhaustion panics to fail the test loudly.
func NewScriptedSource(values ...int) *ScriptedSource {
	return &ScriptedSource{values: values}
}

// Intn pops the next scripted value reduced modulo n.
func (s *ScriptedSource) Intn(n int) int {
	if len(s.values) == 0 {
		panic("dice.ScriptedSource: exhausted")
	}
	v := s.values[0]
	s.values = s.values[1:]
	return v % n
}

// Remaining reports how many scripted values are left unconsumed.
func (s *ScriptedSource) Remaining() int { return len(s.values) }
