package rating

import (
	"fmt"
	"strconv"
)

const (
	// MinScore is the lowest selectable star.
	MinScore = 1
	// MaxScore is the highest selectable star.
	MaxScore = 5
	// Unanswered marks a question without a score.
	Unanswered = 0
)

// RatingSet holds one score per question. The zero value is a fresh,
// fully unanswered set.
type RatingSet struct {
	scores [QuestionCount]int
}

// NewRatingSet returns a set with every question unanswered.
func NewRatingSet() RatingSet {
	return RatingSet{}
}

// RatingSetOf builds a set from scores given in question order.
func RatingSetOf(scores ...int) (RatingSet, error) {
	var rs RatingSet
	if len(scores) != QuestionCount {
		return rs, fmt.Errorf("expected %d scores, got %d: %w", QuestionCount, len(scores), ErrInvalidScore)
	}
	for i, s := range scores {
		if err := rs.Set(QuestionIDs[i], s); err != nil {
			return RatingSet{}, err
		}
	}
	return rs, nil
}

// Set stores score for id. Zero clears the answer.
func (rs *RatingSet) Set(id QuestionID, score int) error {
	i := id.index()
	if i < 0 {
		return fmt.Errorf("%w: %q", ErrUnknownQuestion, id)
	}
	if score < Unanswered || score > MaxScore {
		return fmt.Errorf("%w: %d for %s", ErrInvalidScore, score, id)
	}
	rs.scores[i] = score
	return nil
}

// Get returns the score for id, or 0 for unknown ids.
func (rs RatingSet) Get(id QuestionID) int {
	i := id.index()
	if i < 0 {
		return Unanswered
	}
	return rs.scores[i]
}

// Values returns the scores in question order.
func (rs RatingSet) Values() []int {
	out := make([]int, QuestionCount)
	copy(out, rs.scores[:])
	return out
}

// Answered counts questions with a non-zero score.
func (rs RatingSet) Answered() int {
	n := 0
	for _, s := range rs.scores {
		if s > Unanswered {
			n++
		}
	}
	return n
}

// IsComplete reports whether every question has been rated.
func (rs RatingSet) IsComplete() bool {
	return rs.Answered() == QuestionCount
}

// Sum adds every score.
func (rs RatingSet) Sum() int {
	total := 0
	for _, s := range rs.scores {
		total += s
	}
	return total
}

// Average is the arithmetic mean over all five questions.
func (rs RatingSet) Average() Average {
	return Average(float64(rs.Sum()) / QuestionCount)
}

// Average is the mean score of a RatingSet.
type Average float64

// String renders the average with one decimal, as submitted and displayed.
func (a Average) String() string {
	return strconv.FormatFloat(float64(a), 'f', 1, 64)
}
