package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/dmitrijs2005/cosmospt/internal/client/models"
	"github.com/dmitrijs2005/cosmospt/internal/netx"
)

// catalogPaths maps collection names to their fetch routes.
var catalogPaths = map[string]string{
	"quizzes":      "/fetch/getQuiz",
	"missions":     "/fetch/getMission",
	"destinations": "/fetch/getDestination",
	"vehicles":     "/fetch/getVehicles",
	"labs":         "/fetch/getLabs",
}

// CatalogCollections lists the collection names Catalog accepts.
func CatalogCollections() []string {
	return []string{"quizzes", "missions", "destinations", "vehicles", "labs"}
}

var _ Client = (*HTTPClient)(nil)

// HTTPClient talks to the REST API under baseURL + "/api".
type HTTPClient struct {
	baseURL string
	http    *http.Client
	token   string
}

func NewHTTPClient(baseURL string, timeout time.Duration) *HTTPClient {
	return &HTTPClient{
		baseURL: strings.TrimRight(baseURL, "/") + "/api",
		http:    &http.Client{Timeout: timeout},
	}
}

func (c *HTTPClient) SetToken(token string) {
	c.token = token
}

func (c *HTTPClient) do(ctx context.Context, method, path string, in, out any) error {
	err := netx.DoJSON(ctx, c.http, method, c.baseURL+path, c.token, in, out)
	if err == nil {
		return nil
	}

	var se *netx.StatusError
	if !errors.As(err, &se) {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	switch {
	case se.StatusCode == http.StatusUnauthorized || se.StatusCode == http.StatusForbidden:
		return fmt.Errorf("%w: %w", ErrUnauthorized, se)
	case se.StatusCode == http.StatusNotFound:
		return fmt.Errorf("%w: %w", ErrNotFound, se)
	case se.StatusCode >= 500:
		return fmt.Errorf("%w: %w", ErrUnavailable, se)
	default:
		return fmt.Errorf("%w: %w", ErrRejected, se)
	}
}

func (c *HTTPClient) Ping(ctx context.Context) error {
	return c.do(ctx, http.MethodGet, "/health", nil, nil)
}

func (c *HTTPClient) Register(ctx context.Context, name, password string) (*models.AuthResult, error) {
	var res models.AuthResult
	err := c.do(ctx, http.MethodPost, "/auth/register", map[string]string{"name": name, "password": password}, &res)
	if err != nil {
		return nil, err
	}
	return &res, nil
}

func (c *HTTPClient) Login(ctx context.Context, name, password string) (*models.AuthResult, error) {
	var res models.AuthResult
	err := c.do(ctx, http.MethodPost, "/auth/login", map[string]string{"name": name, "password": password}, &res)
	if err != nil {
		return nil, err
	}
	return &res, nil
}

func (c *HTTPClient) GetUser(ctx context.Context, id string) (*models.User, error) {
	return c.user(ctx, http.MethodGet, "/users/"+url.PathEscape(id), nil)
}

func (c *HTTPClient) AddPoints(ctx context.Context, id string, delta int) (*models.User, error) {
	return c.user(ctx, http.MethodPut, "/users/"+url.PathEscape(id)+"/points", map[string]int{"pointsToAdd": delta})
}

func (c *HTTPClient) CompleteQuiz(ctx context.Context, id, quizID string) (*models.User, error) {
	return c.user(ctx, http.MethodPut, "/users/"+url.PathEscape(id)+"/quiz", map[string]string{"quizId": quizID})
}

func (c *HTTPClient) VisitPlanet(ctx context.Context, id, planetID string) (*models.User, error) {
	return c.user(ctx, http.MethodPut, "/users/"+url.PathEscape(id)+"/visit", map[string]string{"planetId": planetID})
}

func (c *HTTPClient) UnlockAchievement(ctx context.Context, id, achievementID string) (*models.User, error) {
	return c.user(ctx, http.MethodPut, "/users/"+url.PathEscape(id)+"/unlock", map[string]string{"achievementId": achievementID})
}

func (c *HTTPClient) user(ctx context.Context, method, path string, in any) (*models.User, error) {
	var u models.User
	if err := c.do(ctx, method, path, in, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

func (c *HTTPClient) Catalog(ctx context.Context, collection string) ([]json.RawMessage, error) {
	path, ok := catalogPaths[collection]
	if !ok {
		return nil, fmt.Errorf("unknown collection %q", collection)
	}

	var docs []json.RawMessage
	if err := c.do(ctx, http.MethodGet, path, nil, &docs); err != nil {
		return nil, err
	}
	return docs, nil
}

func (c *HTTPClient) SubmitQuiz(ctx context.Context, id, quizID string, answers []int) (*models.QuizResult, error) {
	var res models.QuizResult
	path := "/users/" + url.PathEscape(id) + "/quizzes/" + url.PathEscape(quizID) + "/submit"
	if err := c.do(ctx, http.MethodPost, path, map[string][]int{"answers": answers}, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

func (c *HTTPClient) PlayMission(ctx context.Context, id, missionID string, choices []int) (*models.MissionResult, error) {
	var res models.MissionResult
	path := "/users/" + url.PathEscape(id) + "/missions/" + url.PathEscape(missionID) + "/play"
	if err := c.do(ctx, http.MethodPost, path, map[string][]int{"choices": choices}, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

func (c *HTTPClient) EstimateTravel(ctx context.Context, from, to, vehicle string, multiplier float64) (*models.TravelEstimate, error) {
	q := url.Values{}
	q.Set("from", from)
	q.Set("to", to)
	q.Set("vehicle", vehicle)
	q.Set("multiplier", strconv.FormatFloat(multiplier, 'f', -1, 64))

	var res models.TravelEstimate
	if err := c.do(ctx, http.MethodGet, "/travel/estimate?"+q.Encode(), nil, &res); err != nil {
		return nil, err
	}
	return &res, nil
}
