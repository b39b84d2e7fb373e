package models

// AchievementID names one of the fixed achievements every user carries.
type AchievementID string

const (
	AchievementFirstQuiz        AchievementID = "first-quiz"
	AchievementPlanetExplorer   AchievementID = "planet-explorer"
	AchievementMissionCommander AchievementID = "mission-commander"
	AchievementQuizMaster       AchievementID = "quiz-master"
	AchievementSpaceScholar     AchievementID = "space-scholar"
)

// Thresholds that unlock achievements automatically.
const (
	QuizMasterThreshold     = 10
	PlanetExplorerThreshold = 8
	SpaceScholarThreshold   = 1000
	MissionSuccessBonus     = 50
)

// All lists every achievement id in starter order.
func All() []AchievementID {
	return []AchievementID{
		AchievementFirstQuiz,
		AchievementPlanetExplorer,
		AchievementMissionCommander,
		AchievementQuizMaster,
		AchievementSpaceScholar,
	}
}

// ParseAchievementID validates s against the known ids.
func ParseAchievementID(s string) (AchievementID, bool) {
	for _, id := range All() {
		if string(id) == s {
			return id, true
		}
	}
	return "", false
}

// Achievement is a badge record. Points is the nominal reward shown to the
// player; unlocking does not credit it.
type Achievement struct {
	ID          AchievementID `json:"id" bson:"id"`
	Title       string        `json:"title" bson:"title"`
	Description string        `json:"description" bson:"description"`
	Icon        string        `json:"icon" bson:"icon"`
	Unlocked    bool          `json:"unlocked" bson:"unlocked"`
	Points      int           `json:"points" bson:"points"`
}

// StarterAchievements returns a fresh, all-locked copy of the starter set.
func StarterAchievements() []Achievement {
	return []Achievement{
		{ID: AchievementFirstQuiz, Title: "First Steps", Description: "Complete your first quiz", Icon: "🎓", Points: 50},
		{ID: AchievementPlanetExplorer, Title: "Planet Explorer", Description: "Visit all planets in the solar system", Icon: "🌍", Points: 200},
		{ID: AchievementMissionCommander, Title: "Mission Commander", Description: "Complete your first space mission", Icon: "🚀", Points: 100},
		{ID: AchievementQuizMaster, Title: "Quiz Master", Description: "Complete 10 quizzes", Icon: "🏆", Points: 300},
		{ID: AchievementSpaceScholar, Title: "Space Scholar", Description: "Reach 1000 points", Icon: "⭐", Points: 500},
	}
}
