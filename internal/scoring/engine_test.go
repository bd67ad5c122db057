package scoring

import (
	"encoding/json"
	"reflect"
	"testing"
)

func submission(values map[string]string) map[string]json.RawMessage {
	out := make(map[string]json.RawMessage, len(values))
	for id, v := range values {
		out[id] = json.RawMessage(v)
	}
	return out
}

// The record from the scoring contract: q1 single-choice, q2 multi-select,
// q3 intentionally unscored.
func contractRecord() SecretTestRecord {
	return SecretTestRecord{
		ID:         "contract",
		BasePoints: 100,
		AnswerKey: map[string]*CorrectAnswer{
			"q1": singleAnswer(2),
			"q2": multiAnswer(0, 3),
			"q3": nil,
		},
	}
}

func TestScore_FullyCorrectSubmission(t *testing.T) {
	result := Score(contractRecord(), submission(map[string]string{
		"q1": `2`,
		"q2": `[3,0]`,
		"q3": `5`,
	}))

	if result.Score != 100 {
		t.Errorf("Score = %d, want 100", result.Score)
	}
	if result.CorrectCount != 2 || result.ScorableCount != 2 {
		t.Errorf("counts = %d/%d, want 2/2", result.CorrectCount, result.ScorableCount)
	}
	if result.Unscoreable {
		t.Error("Unscoreable = true, want false")
	}
	wantVerdicts := map[string]Verdict{"q1": VerdictCorrect, "q2": VerdictCorrect, "q3": VerdictExcluded}
	if !reflect.DeepEqual(result.Verdicts, wantVerdicts) {
		t.Errorf("Verdicts = %v, want %v", result.Verdicts, wantVerdicts)
	}
}

func TestScore_FullyWrongSubmission(t *testing.T) {
	result := Score(contractRecord(), submission(map[string]string{
		"q1": `0`,
		"q2": `[0]`,
		"q3": `5`,
	}))

	if result.Score != 0 {
		t.Errorf("Score = %d, want 0", result.Score)
	}
	if result.CorrectCount != 0 || result.ScorableCount != 2 {
		t.Errorf("counts = %d/%d, want 0/2", result.CorrectCount, result.ScorableCount)
	}
}

func TestScore_PartialCreditRounding(t *testing.T) {
	record := SecretTestRecord{
		ID:         "rounding",
		BasePoints: 100,
		AnswerKey: map[string]*CorrectAnswer{
			"q1": singleAnswer(0),
			"q2": singleAnswer(1),
			"q3": singleAnswer(2),
		},
	}
	// 2 of 3 correct: 100 * 2/3 = 66.67 rounds to 67.
	result := Score(record, submission(map[string]string{"q1": `0`, "q2": `1`, "q3": `0`}))
	if result.Score != 67 {
		t.Errorf("Score = %d, want 67", result.Score)
	}
}

func TestScore_MissingAnswersAreIncorrect(t *testing.T) {
	result := Score(contractRecord(), submission(map[string]string{"q1": `2`}))
	if result.Verdicts["q2"] != VerdictIncorrect {
		t.Errorf("q2 verdict = %q, want %q", result.Verdicts["q2"], VerdictIncorrect)
	}
	if result.Score != 50 {
		t.Errorf("Score = %d, want 50", result.Score)
	}
}

func TestScore_UnknownQuestionIDsIgnored(t *testing.T) {
	result := Score(contractRecord(), submission(map[string]string{
		"q1":  `2`,
		"q2":  `[0,3]`,
		"q99": `"not in the key"`,
	}))
	if _, present := result.Verdicts["q99"]; present {
		t.Error("unknown question id produced a verdict")
	}
	if result.Score != 100 {
		t.Errorf("Score = %d, want 100", result.Score)
	}
}

func TestScore_AllExcludedIsUnscoreable(t *testing.T) {
	record := SecretTestRecord{
		ID:         "drafts-only",
		BasePoints: 100,
		AnswerKey:  map[string]*CorrectAnswer{"q1": nil, "q2": nil},
	}
	result := Score(record, submission(map[string]string{"q1": `0`, "q2": `1`}))
	if !result.Unscoreable {
		t.Error("Unscoreable = false, want true")
	}
	if result.Score != 0 || result.ScorableCount != 0 {
		t.Errorf("Score/ScorableCount = %d/%d, want 0/0", result.Score, result.ScorableCount)
	}
}

func TestScore_EmptyAnswerKeyIsUnscoreable(t *testing.T) {
	record := SecretTestRecord{ID: "empty", BasePoints: 100, AnswerKey: map[string]*CorrectAnswer{}}
	result := Score(record, nil)
	if !result.Unscoreable || result.Score != 0 {
		t.Errorf("got score=%d unscoreable=%v, want 0/true", result.Score, result.Unscoreable)
	}
}

func TestScore_Deterministic(t *testing.T) {
	record := contractRecord()
	answers := submission(map[string]string{"q1": `2`, "q2": `[0]`, "q3": `null`})
	first := Score(record, answers)
	second := Score(record, answers)
	if !reflect.DeepEqual(first, second) {
		t.Errorf("repeated scoring diverged: %+v vs %+v", first, second)
	}
}

func TestScore_AllMechanicsTogether(t *testing.T) {
	record := SecretTestRecord{
		ID:         "mixed",
		BasePoints: 60,
		AnswerKey: map[string]*CorrectAnswer{
			"q1": singleAnswer(1),
			"q2": multiAnswer(0, 2),
			"q3": orderingAnswer(2, 1, 0),
			"q4": matchingAnswer(map[int]int{0: 1, 1: 0}),
			"q5": trueFalseAnswer(false, 3),
			"q6": clozeAnswer(0, map[int]int{0: 1}),
		},
	}
	result := Score(record, submission(map[string]string{
		"q1": `1`,
		"q2": `[2,0]`,
		"q3": `[2,1,0]`,
		"q4": `{"0":1,"1":0}`,
		"q5": `{"value":false,"reason":3}`,
		"q6": `{"initial":0,"blanks":{"0":1}}`,
	}))
	if result.CorrectCount != 6 || result.Score != 60 {
		t.Errorf("got correct=%d score=%d, want 6/60", result.CorrectCount, result.Score)
	}
}
