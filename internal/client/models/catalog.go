package models

// The catalog types below decode only the fields cosmosctl displays.

type Question struct {
	Question string   `json:"question"`
	Options  []string `json:"options"`
}

type Quiz struct {
	ID         string     `json:"_id"`
	Title      string     `json:"title"`
	Category   string     `json:"category"`
	Difficulty string     `json:"difficulty"`
	Questions  []Question `json:"questions"`
	Points     int        `json:"points"`
}

type MissionOption struct {
	Text string `json:"text"`
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
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Type     string  `json:"type"`
	Distance float64 `json:"distance"`
}

type Vehicle struct {
	ID         string  `json:"id"`
	Name       string  `json:"name"`
	Speed      float64 `json:"speed"`
	Multiplier float64 `json:"multiplier"`
}

// Lab is a free-form catalog document; only its identity and label are read.
type Lab struct {
	ID    string `json:"id"`
	MgoID string `json:"_id"`
	Title string `json:"title"`
	Name  string `json:"name"`
}

func (l Lab) Key() string {
	if l.ID != "" {
		return l.ID
	}
	return l.MgoID
}

func (l Lab) Label() string {
	if l.Title != "" {
		return l.Title
	}
	return l.Name
}
