package scoring

import (
	"encoding/json"
	"math"
)

// ScoreResult is the full outcome of grading one submission against a secret
// test record.
type ScoreResult struct {
	// Score is basePoints scaled by the fraction of scorable questions answered
	// correctly, rounded to the nearest integer.
	Score         int
	CorrectCount  int
	ScorableCount int
	// Unscoreable is set when the test has no scorable questions at all; the
	// zero score is still a valid result, not an error, so an attempt can be
	// recorded for it.
	Unscoreable bool
	// Verdicts holds the per-question tri-state breakdown, keyed by question ID.
	Verdicts map[string]Verdict
}

// Score grades a submitted answer set against a secret test record. It is a pure
// function of its inputs: no I/O, no randomness, no shared state, so replaying a
// submission reproduces the identical result. Only question IDs present in the
// record's answer key are considered; unknown IDs in the submission are ignored.
func Score(record SecretTestRecord, submitted map[string]json.RawMessage) ScoreResult {
	result := ScoreResult{
		Verdicts: make(map[string]Verdict, len(record.AnswerKey)),
	}

	for questionID, correct := range record.AnswerKey {
		verdict := Evaluate(correct, submitted[questionID])
		result.Verdicts[questionID] = verdict
		switch verdict {
		case VerdictCorrect:
			result.CorrectCount++
			result.ScorableCount++
		case VerdictIncorrect:
			result.ScorableCount++
		}
	}

	if result.ScorableCount == 0 {
		result.Unscoreable = true
		return result
	}
	ratio := float64(result.CorrectCount) / float64(result.ScorableCount)
	result.Score = int(math.Round(float64(record.BasePoints) * ratio))
	return result
}
