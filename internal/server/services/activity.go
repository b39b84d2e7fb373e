package services

import (
	"context"
	"fmt"
	"math"

	"github.com/dmitrijs2005/cosmospt/internal/common"
	"github.com/dmitrijs2005/cosmospt/internal/logging"
	"github.com/dmitrijs2005/cosmospt/internal/server/missions"
	"github.com/dmitrijs2005/cosmospt/internal/server/models"
	"github.com/dmitrijs2005/cosmospt/internal/server/progression"
	"github.com/dmitrijs2005/cosmospt/internal/server/travel"
)

// QuizResult is the outcome of a quiz submission.
type QuizResult struct {
	User         *models.User `json:"user"`
	Correct      int          `json:"correct"`
	Total        int          `json:"total"`
	Percentage   int          `json:"percentage"`
	EarnedPoints int          `json:"earnedPoints"`
}

// MissionResult is the outcome of a mission play.
type MissionResult struct {
	User *models.User `json:"user"`
	*missions.Run
	Awarded int `json:"awarded"`
}

// ActivityService scores quizzes and missions against the catalog and feeds
// the results to the progression engine.
type ActivityService struct {
	catalog *CatalogService
	users   *UserService
	engine  *progression.Engine
	logger  logging.Logger
}

func NewActivityService(catalog *CatalogService, users *UserService, engine *progression.Engine, logger logging.Logger) *ActivityService {
	return &ActivityService{
		catalog: catalog,
		users:   users,
		engine:  engine,
		logger:  logger.With("module", "activity_service"),
	}
}

// SubmitQuiz grades answers against quizID. When at least one answer is
// correct the earned points are awarded and the quiz is marked completed,
// as two separate engine calls. With no correct answer nothing is stored.
func (s *ActivityService) SubmitQuiz(ctx context.Context, userID, quizID string, answers []int) (*QuizResult, error) {
	user, err := s.users.GetUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("user %q: %w", userID, err)
	}

	quiz, err := s.catalog.Quiz(ctx, quizID)
	if err != nil {
		return nil, err
	}

	total := len(quiz.Questions)
	if total == 0 {
		return nil, fmt.Errorf("%w: quiz %q has no questions", common.ErrorValidation, quizID)
	}

	correct := 0
	for i, q := range quiz.Questions {
		if i < len(answers) && answers[i] == q.CorrectAnswer {
			correct++
		}
	}

	percentage := int(math.Round(float64(correct) / float64(total) * 100))
	earned := int(math.Round(float64(percentage) / 100 * float64(quiz.Points)))

	res := &QuizResult{User: user, Correct: correct, Total: total, Percentage: percentage}
	if correct == 0 {
		return res, nil
	}

	if _, err := s.engine.AwardPoints(ctx, userID, earned); err != nil {
		return nil, err
	}
	if res.User, err = s.engine.CompleteQuiz(ctx, userID, quizID); err != nil {
		return nil, err
	}
	res.EarnedPoints = earned

	s.logger.Info(ctx, "quiz submitted", "user_id", userID, "quiz_id", quizID, "correct", correct, "earned", earned)
	return res, nil
}

// PlayMission walks missionID with choices. A successful run awards its
// points plus the completion bonus and unlocks mission-commander; a failed
// run awards its points floored at zero; an unfinished run awards nothing.
func (s *ActivityService) PlayMission(ctx context.Context, userID, missionID string, choices []int) (*MissionResult, error) {
	user, err := s.users.GetUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("user %q: %w", userID, err)
	}

	mission, err := s.catalog.Mission(ctx, missionID)
	if err != nil {
		return nil, err
	}

	graph, err := missions.NewGraph(*mission)
	if err != nil {
		return nil, err
	}

	run, err := graph.Play(choices)
	if err != nil {
		return nil, err
	}

	res := &MissionResult{User: user, Run: run}
	if run.Status == missions.StatusActive {
		return res, nil
	}

	res.Awarded = run.Award()
	if res.User, err = s.engine.AwardPoints(ctx, userID, res.Awarded); err != nil {
		return nil, err
	}
	if run.Status == missions.StatusSuccess {
		if res.User, err = s.engine.UnlockAchievement(ctx, userID, string(models.AchievementMissionCommander)); err != nil {
			return nil, err
		}
	}

	s.logger.Info(ctx, "mission finished", "user_id", userID, "mission_id", missionID, "status", run.Status, "awarded", res.Awarded)
	return res, nil
}

// EstimateTravel resolves the destinations and the vehicle by id and
// computes the trip.
func (s *ActivityService) EstimateTravel(ctx context.Context, fromID, toID, vehicleID string, multiplier float64) (*travel.Estimate, error) {
	from, err := s.catalog.Destination(ctx, fromID)
	if err != nil {
		return nil, err
	}
	to, err := s.catalog.Destination(ctx, toID)
	if err != nil {
		return nil, err
	}
	vehicle, err := s.catalog.Vehicle(ctx, vehicleID)
	if err != nil {
		return nil, err
	}

	return travel.Calculate(*from, *to, *vehicle, multiplier)
}
