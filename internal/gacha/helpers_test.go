package gacha_test

// scriptRNG replays a fixed sequence of rolls and then repeats the last one.
type scriptRNG struct {
	rolls []float64
	i     int
}

func script(rolls ...float64) *scriptRNG { return &scriptRNG{rolls: rolls} }

func (s *scriptRNG) Float64() float64 {
	if s.i >= len(s.rolls) {
		return s.rolls[len(s.rolls)-1]
	}
	v := s.rolls[s.i]
	s.i++
	return v
}

type fixedRNG float64

func (f fixedRNG) Float64() float64 { return float64(f) }
