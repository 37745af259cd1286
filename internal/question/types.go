package question

import (
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"
)

// Category distinguishes true/false questions from multiple-choice ones.
type Category string

const (
	// CategoryTF marks a true/false question.
	CategoryTF Category = "TF"
	// CategoryQCM marks a multiple-choice question.
	CategoryQCM Category = "QCM"
)

// TFChoices are the fixed display choices for true/false questions.
// Index 0 means true, index 1 means false.
var TFChoices = []string{"True", "False"}

// Bank is the question bank schema loaded from JSON or YAML.
type Bank struct {
	Questions []Question `json:"questions" yaml:"questions"`
}

// Question is a single bank entry. Choices is nil for TF questions.
type Question struct {
	ID          int      `json:"id" yaml:"id"`
	Category    Category `json:"category" yaml:"category"`
	Thematic    string   `json:"thematic" yaml:"thematic"`
	Prompt      string   `json:"question" yaml:"question"`
	Choices     []string `json:"choices" yaml:"choices"`
	Answer      Answer   `json:"answer" yaml:"answer"`
	Explication string   `json:"explication,omitempty" yaml:"explication,omitempty"`
}

// Answer is the tagged correct answer: a boolean for TF questions and the
// text of the correct choice for QCM questions.
type Answer struct {
	Bool   bool
	Choice string
	isBool bool
}

// BoolAnswer builds a TF answer.
func BoolAnswer(value bool) Answer {
	return Answer{Bool: value, isBool: true}
}

// ChoiceAnswer builds a QCM answer.
func ChoiceAnswer(choice string) Answer {
	return Answer{Choice: choice}
}

// IsBool reports whether the answer carries a TF boolean.
func (a Answer) IsBool() bool {
	return a.isBool
}

// MarshalJSON writes the answer as a raw boolean or string.
func (a Answer) MarshalJSON() ([]byte, error) {
	if a.isBool {
		return json.Marshal(a.Bool)
	}
	return json.Marshal(a.Choice)
}

// UnmarshalJSON accepts a boolean or a string answer value.
func (a *Answer) UnmarshalJSON(data []byte) error {
	var asBool bool
	if err := json.Unmarshal(data, &asBool); err == nil {
		*a = BoolAnswer(asBool)
		return nil
	}
	var asString string
	if err := json.Unmarshal(data, &asString); err == nil {
		*a = ChoiceAnswer(asString)
		return nil
	}
	return fmt.Errorf("answer must be a boolean or a string, got %s", string(data))
}

// MarshalYAML mirrors the JSON representation.
func (a Answer) MarshalYAML() (interface{}, error) {
	if a.isBool {
		return a.Bool, nil
	}
	return a.Choice, nil
}

// UnmarshalYAML accepts a boolean or a string answer value.
func (a *Answer) UnmarshalYAML(node *yaml.Node) error {
	var asBool bool
	if err := node.Decode(&asBool); err == nil {
		*a = BoolAnswer(asBool)
		return nil
	}
	var asString string
	if err := node.Decode(&asString); err == nil {
		*a = ChoiceAnswer(asString)
		return nil
	}
	return fmt.Errorf("answer must be a boolean or a string")
}

// ChoiceTexts returns the choices to display for a question. TF questions
// always render the fixed True/False pair.
func (q Question) ChoiceTexts() []string {
	if q.Category == CategoryTF {
		return TFChoices
	}
	return q.Choices
}

// CorrectIndex returns the index of the correct choice within ChoiceTexts.
func (q Question) CorrectIndex() int {
	if q.Category == CategoryTF {
		if q.Answer.Bool {
			return 0
		}
		return 1
	}
	normalized := NormalizeAnswerText(q.Answer.Choice)
	for i, choice := range q.Choices {
		if NormalizeAnswerText(choice) == normalized {
			return i
		}
	}
	return -1
}

// CorrectText returns the display text of the correct choice.
func (q Question) CorrectText() string {
	idx := q.CorrectIndex()
	choices := q.ChoiceTexts()
	if idx < 0 || idx >= len(choices) {
		return ""
	}
	return choices[idx]
}

// Check scores a selected choice index against the stored answer.
func (q Question) Check(selected int) bool {
	return selected >= 0 && selected == q.CorrectIndex()
}
