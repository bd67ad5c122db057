package scoring

import (
	"encoding/json"
	"fmt"
)

// Mechanic identifies the question interaction type. It determines the shape of
// both the correct answer and any submitted answer value.
type Mechanic string

const (
	MechanicSingle          Mechanic = "single"
	MechanicMulti           Mechanic = "multi"
	MechanicOrdering        Mechanic = "ordering"
	MechanicMatching        Mechanic = "matching"
	MechanicTrueFalseReason Mechanic = "true_false_reason"
	MechanicCloze           Mechanic = "cloze"
)

// KnownMechanic reports whether m is one of the supported mechanics.
func KnownMechanic(m Mechanic) bool {
	switch m {
	case MechanicSingle, MechanicMulti, MechanicOrdering, MechanicMatching, MechanicTrueFalseReason, MechanicCloze:
		return true
	}
	return false
}

// TrueFalseAnswer is the payload for the true_false_reason mechanic: a boolean
// judgement plus the index of the option justifying it.
type TrueFalseAnswer struct {
	Value  bool `json:"value"`
	Reason int  `json:"reason"`
}

// ClozeAnswer is the payload for the cloze mechanic: an initial step selection
// and a mapping of blank index to chosen option index.
type ClozeAnswer struct {
	Initial int         `json:"initial"`
	Blanks  map[int]int `json:"blanks"`
}

// CorrectAnswer is a tagged union over the mechanic payloads. Exactly one payload
// field is meaningful, selected by Mechanic. Values are decoded strictly from the
// answer-key file; a shape mismatch there fails the load, since the key file is
// versioned server data, not client input.
type CorrectAnswer struct {
	Mechanic  Mechanic
	Single    int
	Multi     []int
	Ordering  []int
	Matching  map[int]int
	TrueFalse TrueFalseAnswer
	Cloze     ClozeAnswer
}

// correctAnswerEnvelope is the on-disk shape of one answer-key entry.
type correctAnswerEnvelope struct {
	Mechanic Mechanic        `json:"mechanic"`
	Answer   json.RawMessage `json:"answer"`
}

// UnmarshalJSON decodes an answer-key entry into the matching payload variant.
func (c *CorrectAnswer) UnmarshalJSON(data []byte) error {
	var env correctAnswerEnvelope
	if err := json.Unmarshal(data, &env); err != nil {
		return fmt.Errorf("invalid answer key entry: %w", err)
	}
	if !KnownMechanic(env.Mechanic) {
		return fmt.Errorf("unknown mechanic %q in answer key", env.Mechanic)
	}
	if len(env.Answer) == 0 {
		return fmt.Errorf("answer key entry for mechanic %q has no answer value", env.Mechanic)
	}

	c.Mechanic = env.Mechanic
	var err error
	switch env.Mechanic {
	case MechanicSingle:
		err = json.Unmarshal(env.Answer, &c.Single)
	case MechanicMulti:
		err = json.Unmarshal(env.Answer, &c.Multi)
	case MechanicOrdering:
		err = json.Unmarshal(env.Answer, &c.Ordering)
	case MechanicMatching:
		err = json.Unmarshal(env.Answer, &c.Matching)
	case MechanicTrueFalseReason:
		err = json.Unmarshal(env.Answer, &c.TrueFalse)
	case MechanicCloze:
		err = json.Unmarshal(env.Answer, &c.Cloze)
	}
	if err != nil {
		return fmt.Errorf("answer value does not match mechanic %q: %w", env.Mechanic, err)
	}
	return nil
}
