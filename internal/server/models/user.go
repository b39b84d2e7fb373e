// Package models defines the server-side documents persisted by the stores
// and returned by the API.
package models

import (
	"fmt"

	"github.com/dmitrijs2005/cosmospt/internal/common"
)

// PointsPerLevel is the number of points between two consecutive levels.
const PointsPerLevel = 200

// User is a player record. The password hash is stored but never emitted
// as JSON.
type User struct {
	ID               string        `json:"_id" bson:"_id"`
	Name             string        `json:"name" bson:"name"`
	PasswordHash     string        `json:"-" bson:"passwordHash"`
	Points           int           `json:"points" bson:"points"`
	Level            int           `json:"level" bson:"level"`
	Achievements     []Achievement `json:"achievements" bson:"achievements"`
	CompletedQuizzes []string      `json:"completedQuizzes" bson:"completedQuizzes"`
	VisitedPlanets   []string      `json:"visitedPlanets" bson:"visitedPlanets"`
	Version          int64         `json:"version" bson:"version"`
}

// NewUser returns a user with zeroed progression and the starter achievements.
func NewUser(id, name, passwordHash string) *User {
	return &User{
		ID:               id,
		Name:             name,
		PasswordHash:     passwordHash,
		Points:           0,
		Level:            LevelFor(0),
		Achievements:     StarterAchievements(),
		CompletedQuizzes: []string{},
		VisitedPlanets:   []string{},
	}
}

// LevelFor returns floor(points/200)+1, flooring toward negative infinity.
func LevelFor(points int) int {
	q := points / PointsPerLevel
	if points%PointsPerLevel != 0 && points < 0 {
		q--
	}
	return q + 1
}

// AddPoints adds delta and recomputes the level. A sum that does not fit
// in an int is rejected with common.ErrorValidation and leaves u untouched.
func (u *User) AddPoints(delta int) error {
	sum := u.Points + delta
	if (delta > 0 && sum < u.Points) || (delta < 0 && sum > u.Points) {
		return fmt.Errorf("%w: points total out of range", common.ErrorValidation)
	}
	u.Points = sum
	u.Level = LevelFor(sum)
	return nil
}

// SetPoints replaces the total and recomputes the level.
func (u *User) SetPoints(points int) {
	u.Points = points
	u.Level = LevelFor(points)
}

// AddCompletedQuiz appends quizID unless present and reports whether it did.
func (u *User) AddCompletedQuiz(quizID string) bool {
	if contains(u.CompletedQuizzes, quizID) {
		return false
	}
	u.CompletedQuizzes = append(u.CompletedQuizzes, quizID)
	return true
}

// AddVisitedPlanet appends planetID unless present and reports whether it did.
func (u *User) AddVisitedPlanet(planetID string) bool {
	if contains(u.VisitedPlanets, planetID) {
		return false
	}
	u.VisitedPlanets = append(u.VisitedPlanets, planetID)
	return true
}

// Achievement returns the user's record for id, or nil.
func (u *User) Achievement(id AchievementID) *Achievement {
	for i := range u.Achievements {
		if u.Achievements[i].ID == id {
			return &u.Achievements[i]
		}
	}
	return nil
}

// Unlock marks id unlocked. found is false when the user has no such
// achievement; changed is false when it was already unlocked.
func (u *User) Unlock(id AchievementID) (found, changed bool) {
	a := u.Achievement(id)
	if a == nil {
		return false, false
	}
	if a.Unlocked {
		return true, false
	}
	a.Unlocked = true
	return true, true
}

// IsUnlocked reports whether the user has id unlocked.
func (u *User) IsUnlocked(id AchievementID) bool {
	a := u.Achievement(id)
	return a != nil && a.Unlocked
}

// Clone returns a deep copy.
func (u *User) Clone() *User {
	if u == nil {
		return nil
	}
	c := *u
	c.Achievements = append([]Achievement(nil), u.Achievements...)
	c.CompletedQuizzes = append([]string{}, u.CompletedQuizzes...)
	c.VisitedPlanets = append([]string{}, u.VisitedPlanets...)
	return &c
}

func contains(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}
