// Package progression applies gameplay events to a user's record: points
// and levels, completed quizzes, visited planets and achievements.
//
// Every operation reads the whole user, mutates it in memory and writes the
// whole user back. In overwrite mode the write is unconditional, so two
// concurrent operations on one user can lose an update. In optimistic mode
// the write is conditional on the version that was read and the cycle is
// retried with exponential backoff on conflict.
package progression

import (
	"context"
	"errors"
	"time"

	"github.com/dmitrijs2005/cosmospt/internal/common"
	"github.com/dmitrijs2005/cosmospt/internal/logging"
	"github.com/dmitrijs2005/cosmospt/internal/server/models"
	"github.com/dmitrijs2005/cosmospt/internal/server/repositories/users"
	"github.com/sethvargo/go-retry"
)

type Mode int

const (
	ModeOverwrite Mode = iota
	ModeOptimistic
)

// ParseMode maps a config value to a Mode; anything but "optimistic" is
// overwrite.
func ParseMode(s string) Mode {
	if s == "optimistic" {
		return ModeOptimistic
	}
	return ModeOverwrite
}

type Engine struct {
	users      users.Repository
	logger     logging.Logger
	mode       Mode
	maxRetries uint64
	backoff    time.Duration
}

type Option func(*Engine)

// WithOptimisticWrites switches the engine to version-checked writes,
// retrying a conflicting cycle up to maxRetries times.
func WithOptimisticWrites(maxRetries int) Option {
	return func(e *Engine) {
		e.mode = ModeOptimistic
		if maxRetries >= 0 {
			e.maxRetries = uint64(maxRetries)
		}
	}
}

// WithBackoff sets the base delay of the exponential retry backoff.
func WithBackoff(base time.Duration) Option {
	return func(e *Engine) {
		e.backoff = base
	}
}

func NewEngine(repo users.Repository, logger logging.Logger, opts ...Option) *Engine {
	e := &Engine{
		users:      repo,
		logger:     logger.With("module", "progression"),
		mode:       ModeOverwrite,
		maxRetries: 5,
		backoff:    10 * time.Millisecond,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

func (e *Engine) Mode() Mode {
	return e.mode
}

// AwardPoints adds delta (which may be negative) to the user's points,
// recomputes the level and unlocks space-scholar once the total reaches
// 1000.
func (e *Engine) AwardPoints(ctx context.Context, userID string, delta int) (*models.User, error) {
	return e.update(ctx, userID, func(u *models.User) (bool, error) {
		if err := u.AddPoints(delta); err != nil {
			return false, err
		}
		if u.Points >= models.SpaceScholarThreshold {
			e.unlock(ctx, u, models.AchievementSpaceScholar)
		}
		return true, nil
	})
}

// CompleteQuiz records quizID as completed. A quiz already on the list
// leaves the user untouched.
func (e *Engine) CompleteQuiz(ctx context.Context, userID, quizID string) (*models.User, error) {
	return e.update(ctx, userID, func(u *models.User) (bool, error) {
		if !u.AddCompletedQuiz(quizID) {
			return false, nil
		}
		n := len(u.CompletedQuizzes)
		if n == 1 {
			e.unlock(ctx, u, models.AchievementFirstQuiz)
		}
		if n >= models.QuizMasterThreshold {
			e.unlock(ctx, u, models.AchievementQuizMaster)
		}
		return true, nil
	})
}

// VisitPlanet records planetID as visited. Revisits are no-ops.
func (e *Engine) VisitPlanet(ctx context.Context, userID, planetID string) (*models.User, error) {
	return e.update(ctx, userID, func(u *models.User) (bool, error) {
		if !u.AddVisitedPlanet(planetID) {
			return false, nil
		}
		if len(u.VisitedPlanets) >= models.PlanetExplorerThreshold {
			e.unlock(ctx, u, models.AchievementPlanetExplorer)
		}
		return true, nil
	})
}

// UnlockAchievement marks achievementID unlocked. An id outside the user's
// set yields common.ErrAchievementNotFound.
func (e *Engine) UnlockAchievement(ctx context.Context, userID, achievementID string) (*models.User, error) {
	return e.update(ctx, userID, func(u *models.User) (bool, error) {
		found, changed := u.Unlock(models.AchievementID(achievementID))
		if !found {
			return false, common.ErrAchievementNotFound
		}
		if changed {
			e.logger.Info(ctx, "achievement unlocked", "user_id", u.ID, "achievement", achievementID)
		}
		return changed, nil
	})
}

func (e *Engine) unlock(ctx context.Context, u *models.User, id models.AchievementID) {
	if _, changed := u.Unlock(id); changed {
		e.logger.Info(ctx, "achievement unlocked", "user_id", u.ID, "achievement", string(id))
	}
}

type mutation func(u *models.User) (changed bool, err error)

func (e *Engine) update(ctx context.Context, userID string, mutate mutation) (*models.User, error) {
	if e.mode == ModeOverwrite {
		return e.cycle(ctx, userID, mutate, func(ctx context.Context, u *models.User, _ int64) (*models.User, error) {
			return e.users.Save(ctx, u)
		})
	}

	var result *models.User
	attempt := 0
	b := retry.WithMaxRetries(e.maxRetries, retry.NewExponential(e.backoff))
	err := retry.Do(ctx, b, func(ctx context.Context) error {
		attempt++
		u, err := e.cycle(ctx, userID, mutate, e.users.SaveIfVersion)
		if errors.Is(err, common.ErrVersionConflict) {
			e.logger.Debug(ctx, "version conflict, retrying", "user_id", userID, "attempt", attempt)
			return retry.RetryableError(err)
		}
		if err != nil {
			return err
		}
		result = u
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

type writeFunc func(ctx context.Context, u *models.User, expected int64) (*models.User, error)

func (e *Engine) cycle(ctx context.Context, userID string, mutate mutation, write writeFunc) (*models.User, error) {
	u, err := e.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	read := u.Version
	changed, err := mutate(u)
	if err != nil {
		return nil, err
	}
	if !changed {
		return u, nil
	}

	return write(ctx, u, read)
}
