// Package tutor turns learner utterances and verse requests into validated,
// structured results from the provider registry, rotating providers on
// failure within a bounded retry budget.
package tutor

import (
	"encoding/json"
)

// Turn roles.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Suggestion is one reply option offered to the learner.
type Suggestion struct {
	English string `json:"english"`
	Korean  string `json:"korean"`
}

// UnmarshalJSON accepts both the current {english, korean} object form and
// the legacy bare-string form found in historical data.
func (s *Suggestion) UnmarshalJSON(data []byte) error {
	var plain string
	if err := json.Unmarshal(data, &plain); err == nil {
		s.English = plain
		s.Korean = ""
		return nil
	}

	type suggestionAlias Suggestion
	var obj suggestionAlias
	if err := json.Unmarshal(data, &obj); err != nil {
		return err
	}
	*s = Suggestion(obj)
	return nil
}

// Turn is one exchange in a tutoring conversation. Assistant turns carry
// the full structured reply; user turns only use English.
type Turn struct {
	Role        string       `json:"role"`
	English     string       `json:"english"`
	Korean      string       `json:"korean,omitempty"`
	Correction  string       `json:"correction,omitempty"`
	Suggestions []Suggestion `json:"suggestions,omitempty"`
}

// Reply is the validated structured response to one user utterance.
type Reply struct {
	English     string       `json:"english"`
	Korean      string       `json:"korean"`
	Correction  string       `json:"correction,omitempty"`
	Suggestions []Suggestion `json:"suggestions,omitempty"`
	// Degraded marks a locally synthesized fallback (parse failure or
	// provider outage) rather than a validated provider reply.
	Degraded bool `json:"-"`
}

// DailyVerse is the validated result of a verse request. All four fields
// are non-empty after validation.
type DailyVerse struct {
	Verse      string `json:"verse"`
	Reference  string `json:"reference"`
	Korean     string `json:"korean"`
	Reflection string `json:"reflection"`
}
