package rating

import (
	"strconv"
	"time"
)

// Wire field names of a submission.
const (
	FieldAverage    = "average_rating"
	FieldStudioName = "studio_name"
	FieldDate       = "submission_date"
)

// DefaultStudioName identifies the studio in every submission.
const DefaultStudioName = "סטודיו דוראל אזולאי"

// Submission is the payload sent to the form endpoint for one completed
// dialog. ID is a client-side correlation id used in logs and headers only.
type Submission struct {
	ID          string
	Ratings     RatingSet
	Average     Average
	StudioName  string
	SubmittedAt time.Time
	Locale      string
}

// Field is one name/value pair of the encoded form.
type Field struct {
	Name  string
	Value string
}

// NewSubmission packages a complete RatingSet. It refuses incomplete sets.
func NewSubmission(id string, ratings RatingSet, studio string, at time.Time, locale string) (*Submission, error) {
	if !ratings.IsComplete() {
		return nil, &ValidationError{Answered: ratings.Answered()}
	}
	if studio == "" {
		studio = DefaultStudioName
	}
	if locale == "" {
		locale = DefaultLocale
	}
	return &Submission{
		ID:          id,
		Ratings:     ratings,
		Average:     ratings.Average(),
		StudioName:  studio,
		SubmittedAt: at,
		Locale:      locale,
	}, nil
}

// Fields returns the form fields in wire order: the five ratings, the
// average, the studio name and the localized timestamp.
func (s *Submission) Fields() []Field {
	fields := make([]Field, 0, QuestionCount+3)
	for _, id := range QuestionIDs {
		fields = append(fields, Field{Name: id.FieldName(), Value: strconv.Itoa(s.Ratings.Get(id))})
	}
	return append(fields,
		Field{Name: FieldAverage, Value: s.Average.String()},
		Field{Name: FieldStudioName, Value: s.StudioName},
		Field{Name: FieldDate, Value: FormatTimestamp(s.SubmittedAt, s.Locale)},
	)
}
