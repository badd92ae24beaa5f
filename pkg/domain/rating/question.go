// Package rating holds the domain model of the studio rating dialog: the
// five fixed questions, the scores collected for them, the star input, the
// submission payload and the dialog state machine.
package rating

// QuestionID identifies one of the five fixed rating questions.
type QuestionID string

const (
	Q1 QuestionID = "q1"
	Q2 QuestionID = "q2"
	Q3 QuestionID = "q3"
	Q4 QuestionID = "q4"
	Q5 QuestionID = "q5"
)

// QuestionCount is the number of questions in every RatingSet.
const QuestionCount = 5

// QuestionIDs lists the question identifiers in display order.
var QuestionIDs = [QuestionCount]QuestionID{Q1, Q2, Q3, Q4, Q5}

// Question pairs an identifier with the prompt shown above its stars.
type Question struct {
	ID     QuestionID
	Prompt string
}

// DefaultPrompts are the studio's Hebrew prompts, in order.
var DefaultPrompts = [QuestionCount]string{
	"איך היית מדרג/ת את החוויה הכללית שלך אצלנו?",
	"איך היית מדרג/ת את איכות ההדרכה של המדריכים?",
	"איך היית מדרג/ת את רמת השירות והיחס שקיבלת?",
	"איך היית מדרג/ת את האווירה והניקיון במתחם?",
	"באיזו מידה היית ממליץ/ה על הסטודיו לחבר או קולגה?",
}

// Questions builds the ordered question list from prompts. Missing or empty
// prompts fall back to DefaultPrompts.
func Questions(prompts []string) []Question {
	out := make([]Question, QuestionCount)
	for i, id := range QuestionIDs {
		prompt := DefaultPrompts[i]
		if i < len(prompts) && prompts[i] != "" {
			prompt = prompts[i]
		}
		out[i] = Question{ID: id, Prompt: prompt}
	}
	return out
}

// index returns the slot of id, or -1 when id is not a known question.
func (id QuestionID) index() int {
	for i, q := range QuestionIDs {
		if q == id {
			return i
		}
	}
	return -1
}

// Valid reports whether id is one of q1..q5.
func (id QuestionID) Valid() bool {
	return id.index() >= 0
}

// FieldName is the form field carrying this question's score.
func (id QuestionID) FieldName() string {
	return "rating_" + string(id)
}
