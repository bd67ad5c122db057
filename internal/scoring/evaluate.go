package scoring

import (
	"bytes"
	"encoding/json"
)

// Verdict is the tri-state outcome of evaluating one question.
type Verdict string

const (
	VerdictCorrect   Verdict = "correct"
	VerdictIncorrect Verdict = "incorrect"
	// VerdictExcluded marks questions whose correct answer is intentionally
	// undefined; they count toward neither numerator nor denominator.
	VerdictExcluded Verdict = "excluded"
)

// evaluator decides whether a submitted raw value matches the correct answer.
// Implementations must be total: any malformed submission is simply "not correct".
type evaluator func(correct *CorrectAnswer, submitted json.RawMessage) bool

// evaluators routes by mechanic, in the style of a grading strategy table.
var evaluators = map[Mechanic]evaluator{
	MechanicSingle:          evaluateSingle,
	MechanicMulti:           evaluateMulti,
	MechanicOrdering:        evaluateOrdering,
	MechanicMatching:        evaluateMatching,
	MechanicTrueFalseReason: evaluateTrueFalseReason,
	MechanicCloze:           evaluateCloze,
}

var jsonNull = []byte("null")

// Evaluate compares a submitted answer value against the correct answer.
// A nil correct answer means the question is unscored and yields VerdictExcluded.
// A missing or null submission, an unknown mechanic, or a submitted value whose
// shape does not fit the mechanic all yield VerdictIncorrect. Evaluate never
// fails: client-supplied garbage must not be able to abort scoring.
func Evaluate(correct *CorrectAnswer, submitted json.RawMessage) Verdict {
	if correct == nil {
		return VerdictExcluded
	}
	if len(submitted) == 0 || bytes.Equal(bytes.TrimSpace(submitted), jsonNull) {
		return VerdictIncorrect
	}
	eval, ok := evaluators[correct.Mechanic]
	if !ok {
		return VerdictIncorrect
	}
	if eval(correct, submitted) {
		return VerdictCorrect
	}
	return VerdictIncorrect
}

func evaluateSingle(correct *CorrectAnswer, submitted json.RawMessage) bool {
	var choice *int
	if err := json.Unmarshal(submitted, &choice); err != nil || choice == nil {
		return false
	}
	return *choice == correct.Single
}

// evaluateMulti requires exact set equality. Both sides are treated as sets so
// that order and duplicates in the submission cannot change the outcome.
func evaluateMulti(correct *CorrectAnswer, submitted json.RawMessage) bool {
	var selected []int
	if err := json.Unmarshal(submitted, &selected); err != nil {
		return false
	}
	want := make(map[int]struct{}, len(correct.Multi))
	for _, idx := range correct.Multi {
		want[idx] = struct{}{}
	}
	got := make(map[int]struct{}, len(selected))
	for _, idx := range selected {
		got[idx] = struct{}{}
	}
	if len(got) != len(want) {
		return false
	}
	for idx := range want {
		if _, ok := got[idx]; !ok {
			return false
		}
	}
	return true
}

func evaluateOrdering(correct *CorrectAnswer, submitted json.RawMessage) bool {
	var sequence []int
	if err := json.Unmarshal(submitted, &sequence); err != nil {
		return false
	}
	if len(sequence) != len(correct.Ordering) {
		return false
	}
	for i, idx := range correct.Ordering {
		if sequence[i] != idx {
			return false
		}
	}
	return true
}

func evaluateMatching(correct *CorrectAnswer, submitted json.RawMessage) bool {
	var pairs map[int]int
	if err := json.Unmarshal(submitted, &pairs); err != nil {
		return false
	}
	if len(pairs) != len(correct.Matching) {
		return false
	}
	for left, right := range correct.Matching {
		// Comma-ok: a missing pair must not read as a zero-value match.
		got, ok := pairs[left]
		if !ok || got != right {
			return false
		}
	}
	return true
}

func evaluateTrueFalseReason(correct *CorrectAnswer, submitted json.RawMessage) bool {
	var answer struct {
		Value  *bool `json:"value"`
		Reason *int  `json:"reason"`
	}
	if err := json.Unmarshal(submitted, &answer); err != nil || answer.Value == nil || answer.Reason == nil {
		return false
	}
	return *answer.Value == correct.TrueFalse.Value && *answer.Reason == correct.TrueFalse.Reason
}

func evaluateCloze(correct *CorrectAnswer, submitted json.RawMessage) bool {
	var answer struct {
		Initial *int        `json:"initial"`
		Blanks  map[int]int `json:"blanks"`
	}
	if err := json.Unmarshal(submitted, &answer); err != nil || answer.Initial == nil {
		return false
	}
	if *answer.Initial != correct.Cloze.Initial {
		return false
	}
	if len(answer.Blanks) != len(correct.Cloze.Blanks) {
		return false
	}
	for blank, option := range correct.Cloze.Blanks {
		got, ok := answer.Blanks[blank]
		if !ok || got != option {
			return false
		}
	}
	return true
}
