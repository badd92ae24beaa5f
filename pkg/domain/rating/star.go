package rating

// Star is one selectable control of a StarRating.
type Star struct {
	Value  int
	Filled bool
}

// StarRating is a controlled five-star input. It keeps no state of its own:
// Value comes from the caller and clicks are reported through OnChange.
type StarRating struct {
	Value    int
	OnChange func(value int)
}

// Stars returns the five controls, filled at or below Value.
func (s StarRating) Stars() []Star {
	stars := make([]Star, 0, MaxScore)
	for v := MinScore; v <= MaxScore; v++ {
		stars = append(stars, Star{Value: v, Filled: v <= s.Value})
	}
	return stars
}

// Click selects star k. Selection is absolute: the callback always receives
// k, whatever the current value. Values outside 1..5 are ignored.
func (s StarRating) Click(k int) {
	if k < MinScore || k > MaxScore || s.OnChange == nil {
		return
	}
	s.OnChange(k)
}
