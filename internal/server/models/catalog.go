package models

import "encoding/json"

// Collection names a read-only catalog collection.
type Collection string

const (
	CollectionQuizzes      Collection = "quizzes"
	CollectionMissions     Collection = "missions"
	CollectionDestinations Collection = "destinations"
	CollectionVehicles     Collection = "vehicles"
	CollectionLabs         Collection = "labs"
)

// Collections lists every catalog collection.
func Collections() []Collection {
	return []Collection{
		CollectionQuizzes,
		CollectionMissions,
		CollectionDestinations,
		CollectionVehicles,
		CollectionLabs,
	}
}

// ParseCollection validates s against the known collections.
func ParseCollection(s string) (Collection, bool) {
	for _, c := range Collections() {
		if string(c) == s {
			return c, true
		}
	}
	return "", false
}

// DocumentID returns the "id" field of a catalog document, falling back to
// "_id". Quizzes carry only the latter.
func DocumentID(doc json.RawMessage) string {
	var ids struct {
		ID    any `json:"id"`
		MgoID any `json:"_id"`
	}
	if err := json.Unmarshal(doc, &ids); err != nil {
		return ""
	}
	for _, v := range []any{ids.ID, ids.MgoID} {
		switch t := v.(type) {
		case string:
			if t != "" {
				return t
			}
		case map[string]any:
			// extended JSON {"$oid": "..."}
			if oid, ok := t["$oid"].(string); ok {
				return oid
			}
		}
	}
	return ""
}

type Question struct {
	Question      string   `json:"question"`
	Options       []string `json:"options"`
	CorrectAnswer int      `json:"correctAnswer"`
	Explanation   string   `json:"explanation,omitempty"`
}

type Quiz struct {
	ID         string     `json:"_id"`
	Title      string     `json:"title"`
	Category   string     `json:"category"`
	Difficulty string     `json:"difficulty"`
	Questions  []Question `json:"questions"`
	Points     int        `json:"points"`
}

// Mission option outcomes.
const (
	OutcomeSuccess  = "success"
	OutcomeFailure  = "failure"
	OutcomeContinue = "continue"
)

type MissionOption struct {
	Text         string `json:"text"`
	Outcome      string `json:"outcome"`
	Points       int    `json:"points"`
	NextScenario string `json:"nextScenario,omitempty"`
	Result       string `json:"result,omitempty"`
}

type Scenario struct {
	ID        string          `json:"id"`
	Situation string          `json:"situation"`
	Options   []MissionOption `json:"options"`
}

type Mission struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Difficulty  string     `json:"difficulty"`
	Duration    string     `json:"duration"`
	Objective   string     `json:"objective"`
	Scenarios   []Scenario `json:"scenarios"`
}

type Destination struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Type        string   `json:"type"`
	Distance    float64  `json:"distance"`
	ImageURL    string   `json:"imageUrl"`
	Description string   `json:"description"`
	FunFacts    []string `json:"funFacts"`
}

type Vehicle struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Speed       float64 `json:"speed"`
	Description string  `json:"description"`
	Icon        string  `json:"icon"`
	Multiplier  float64 `json:"multiplier"`
}
