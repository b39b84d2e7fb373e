package client

import (
	"context"
	"encoding/json"

	"github.com/dmitrijs2005/cosmospt/internal/client/models"
)

type Client interface {
	Ping(ctx context.Context) error
	SetToken(token string)

	Register(ctx context.Context, name, password string) (*models.AuthResult, error)
	Login(ctx context.Context, name, password string) (*models.AuthResult, error)
	GetUser(ctx context.Context, id string) (*models.User, error)

	AddPoints(ctx context.Context, id string, delta int) (*models.User, error)
	CompleteQuiz(ctx context.Context, id, quizID string) (*models.User, error)
	VisitPlanet(ctx context.Context, id, planetID string) (*models.User, error)
	UnlockAchievement(ctx context.Context, id, achievementID string) (*models.User, error)

	Catalog(ctx context.Context, collection string) ([]json.RawMessage, error)

	SubmitQuiz(ctx context.Context, id, quizID string, answers []int) (*models.QuizResult, error)
	PlayMission(ctx context.Context, id, missionID string, choices []int) (*models.MissionResult, error)
	EstimateTravel(ctx context.Context, from, to, vehicle string, multiplier float64) (*models.TravelEstimate, error)
}
