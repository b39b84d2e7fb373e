// Package models holds the client-side view of API payloads.
package models

type Achievement struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
	Unlocked    bool   `json:"unlocked"`
	Points      int    `json:"points"`
}

type User struct {
	ID               string        `json:"_id"`
	Name             string        `json:"name"`
	Points           int           `json:"points"`
	Level            int           `json:"level"`
	Achievements     []Achievement `json:"achievements"`
	CompletedQuizzes []string      `json:"completedQuizzes"`
	VisitedPlanets   []string      `json:"visitedPlanets"`
}

// UnlockedCount returns how many achievements are unlocked.
func (u *User) UnlockedCount() int {
	n := 0
	for _, a := range u.Achievements {
		if a.Unlocked {
			n++
		}
	}
	return n
}

type AuthResult struct {
	User  User   `json:"user"`
	Token string `json:"token"`
}

// Session is what the CLI remembers between invocations.
type Session struct {
	UserID string `json:"userId"`
	Name   string `json:"name"`
	Token  string `json:"token"`
	Server string `json:"server"`
}
