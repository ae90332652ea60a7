// Copyright (C) 2024 the nextrip maintainers
// See root-dir/LICENSE for more information

package onboarding

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"go.opentelemetry.io/otel/trace"

	"github.com/nextrip/core/internal/model"
)

// Generate asks the orchestrateur for an itinerary. The request body is the
// profile object with the derived profil_utilisateur summary merged in.
func (c *Client) Generate(ctx context.Context, profile *model.Profile) (*model.Voyage, error) {
	var span trace.Span
	ctx, span = tracer.Start(ctx, "GenerateItinerary")
	defer span.End()

	j, err := json.Marshal(profile)
	if err != nil {
		return nil, err
	}
	payload := map[string]any{}
	if err := json.Unmarshal(j, &payload); err != nil {
		return nil, err
	}
	payload["profil_utilisateur"] = DeriveProfilUtilisateur(profile)

	res, err := c.post(ctx, "/api/orchestrateur/generate", payload)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	voyage := &model.Voyage{}
	if err := json.Unmarshal(res, voyage); err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("decode itinerary: %w", err)
	}
	if voyage.ID == "" && len(voyage.Villes) == 0 {
		err := errors.New("unrecognized itinerary payload")
		span.RecordError(err)
		return nil, err
	}
	return voyage, nil
}
