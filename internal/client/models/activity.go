package models

type QuizResult struct {
	User         User `json:"user"`
	Correct      int  `json:"correct"`
	Total        int  `json:"total"`
	Percentage   int  `json:"percentage"`
	EarnedPoints int  `json:"earnedPoints"`
}

type MissionStep struct {
	ScenarioID string `json:"scenarioId"`
	Option     int    `json:"option"`
	Text       string `json:"text"`
	Outcome    string `json:"outcome"`
	Points     int    `json:"points"`
	Result     string `json:"result,omitempty"`
}

type MissionResult struct {
	User            User          `json:"user"`
	Status          string        `json:"status"`
	TotalPoints     int           `json:"totalPoints"`
	CurrentScenario string        `json:"currentScenario,omitempty"`
	Steps           []MissionStep `json:"results"`
	Awarded         int           `json:"awarded"`
}

type TravelEstimate struct {
	From            string  `json:"from"`
	To              string  `json:"to"`
	Vehicle         string  `json:"vehicle"`
	Multiplier      float64 `json:"multiplier"`
	DistanceKm      float64 `json:"distanceKm"`
	SpeedKmS        float64 `json:"effectiveSpeedKmPerSecond"`
	Seconds         float64 `json:"seconds"`
	TravelTime      string  `json:"travelTime"`
	DistanceLabel   string  `json:"distanceLabel"`
	SpeedLabel      string  `json:"speedLabel"`
	MultiplierLabel string  `json:"multiplierLabel"`
}
