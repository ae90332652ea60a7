// Copyright (C) 2024 the nextrip maintainers
// See root-dir/LICENSE for more information

package onboarding

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/trace"

	"github.com/nextrip/core/internal/db"
	"github.com/nextrip/core/internal/model"
)

// Action tells the caller what to present after an onboarding call.
type Action int

const (
	// ActionShowDynamicForm carries a follow-up form the user must answer.
	ActionShowDynamicForm Action = iota
	// ActionDone carries the minted profile and trip id.
	ActionDone
)

// Result is the outcome of a Start or Continue call.
type Result struct {
	Action  Action
	Form    *model.DynamicForm
	Profile *model.Profile
	TripID  uuid.UUID
}

func NewClient(baseURL string, trips db.TripStore, logger *slog.Logger) *Client {
	return &Client{
		baseURL: baseURL,
		client:  &http.Client{Timeout: 30 * time.Second},
		logger:  logger,
		trips:   trips,
	}
}

// Client talks to the onboarding and itinerary backend. It persists the
// finished trip record before reporting the done result.
type Client struct {
	baseURL string
	client  *http.Client
	logger  *slog.Logger
	trips   db.TripStore
}

type request struct {
	Questions         []model.Question `json:"questions"`
	Responses         model.Responses  `json:"responses"`
	AcceptDynamicForm bool             `json:"acceptDynamicForm"`
	DynamicResponses  model.Responses  `json:"dynamicResponses,omitempty"`
}

type stageResponse struct {
	Stage   string             `json:"stage"`
	Form    *model.DynamicForm `json:"form"`
	Profile *model.Profile     `json:"profile"`
}

// Start submits the static planning form.
func (c *Client) Start(ctx context.Context, questions []model.Question, responses model.Responses, acceptDynamicForm bool) (*Result, error) {
	var span trace.Span
	ctx, span = tracer.Start(ctx, "StartOnboarding")
	defer span.End()

	res, err := c.post(ctx, "/api/onboarding", request{
		Questions:         questions,
		Responses:         responses,
		AcceptDynamicForm: acceptDynamicForm,
	})
	if err != nil {
		span.RecordError(err)
		return nil, err
	}
	return c.dispatch(ctx, res, true)
}

// Continue resubmits the form together with the dynamic follow-up answers.
// Only one round of dynamic follow-up is supported, a second dynamic_form
// stage is a protocol error.
func (c *Client) Continue(ctx context.Context, questions []model.Question, responses model.Responses, dynamicResponses model.Responses) (*Result, error) {
	var span trace.Span
	ctx, span = tracer.Start(ctx, "ContinueOnboarding")
	defer span.End()

	res, err := c.post(ctx, "/api/onboarding", request{
		Questions:         questions,
		Responses:         responses,
		AcceptDynamicForm: true,
		DynamicResponses:  dynamicResponses,
	})
	if err != nil {
		span.RecordError(err)
		return nil, err
	}
	return c.dispatch(ctx, res, false)
}

func (c *Client) dispatch(ctx context.Context, res json.RawMessage, allowDynamicForm bool) (*Result, error) {
	var sr stageResponse
	if err := json.Unmarshal(res, &sr); err != nil {
		return nil, fmt.Errorf("decode onboarding response: %w", err)
	}

	switch sr.Stage {
	case "dynamic_form":
		if !allowDynamicForm {
			return nil, errors.New("backend requested a second dynamic form round")
		}
		if sr.Form == nil {
			return nil, errors.New("dynamic_form stage without form")
		}
		return &Result{Action: ActionShowDynamicForm, Form: sr.Form}, nil
	case "profile":
		if sr.Profile == nil {
			return nil, errors.New("profile stage without profile")
		}
		record := &model.TripRecord{
			TripID:    uuid.New(),
			Profile:   sr.Profile,
			CreatedAt: time.Now().UTC(),
		}
		if err := c.trips.PutTrip(ctx, record); err != nil {
			return nil, fmt.Errorf("persist trip: %w", err)
		}
		c.logger.InfoContext(ctx, "onboarding finished", "trip_id", record.TripID)
		return &Result{Action: ActionDone, Profile: sr.Profile, TripID: record.TripID}, nil
	default:
		return nil, fmt.Errorf("unrecognized onboarding stage: %q", sr.Stage)
	}
}

func (c *Client) post(ctx context.Context, path string, payload any) (json.RawMessage, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	res, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()

	data, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, err
	}
	if res.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("backend returned status %d", res.StatusCode)
	}
	return unwrapEnvelope(data)
}

// unwrapEnvelope accepts a direct payload or one wrapped as
// {success: true, data: <payload>} and returns the payload.
func unwrapEnvelope(body []byte) (json.RawMessage, error) {
	var env struct {
		Success *bool           `json:"success"`
		Data    json.RawMessage `json:"data"`
		Message string          `json:"message"`
	}
	if err := json.Unmarshal(body, &env); err != nil || env.Success == nil {
		return body, nil
	}
	if !*env.Success {
		if env.Message != "" {
			return nil, fmt.Errorf("backend reported failure: %s", env.Message)
		}
		return nil, errors.New("backend reported failure")
	}
	if len(env.Data) == 0 {
		return nil, errors.New("success envelope without data")
	}
	return env.Data, nil
}
