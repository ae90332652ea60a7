// Copyright (C) 2024 the nextrip maintainers
// See root-dir/LICENSE for more information

package onboarding

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/jeremywohl/flatten/v2"

	"github.com/nextrip/core/internal/model"
)

const dateLayout = "2006-01-02"

// travellerPaths lists where a traveller count may hide in a profile, in
// precedence order. The first non-empty value wins.
var travellerPaths = []string{
	"preferences.additionalAnswers.nombre_personnes",
	"preferences.additionalAnswers.travelers",
	"preferences.formAnswers.dynamic.nombre_personnes",
	"preferences.formAnswers.dynamic.travelers",
	"preferences.formAnswers.initial.nombre_personnes",
	"preferences.formAnswers.initial.travelers",
}

// DeriveProfilUtilisateur builds the trip summary the orchestrateur expects
// alongside the raw profile.
func DeriveProfilUtilisateur(p *model.Profile) *model.ProfilUtilisateur {
	return &model.ProfilUtilisateur{
		DureeJours:               TripDays(p),
		Villes:                   p.Trip.Destinations,
		BudgetRange:              BudgetRangeEUR(p.Budget.RangeMad),
		Rythme:                   NormalizeRythme(p.Preferences.RythmeStyle),
		NombrePersonnes:          travellerCount(p),
		CentresInteret:           p.Preferences.Interests,
		RestrictionsAlimentaires: answerList(p, "restrictions_alimentaires"),
		PreferencesHebergement:   answerList(p, "preferences_hebergement"),
	}
}

// TripDays returns the inclusive day count between the trip dates, or an
// estimate of three days per destination when no dates are set.
func TripDays(p *model.Profile) int {
	if p.Trip.Dates != nil && p.Trip.Dates.Start != "" && p.Trip.Dates.End != "" {
		start, errStart := time.Parse(dateLayout, p.Trip.Dates.Start)
		end, errEnd := time.Parse(dateLayout, p.Trip.Dates.End)
		if errStart == nil && errEnd == nil {
			days := int(end.Sub(start).Hours()/24) + 1
			if days > 0 {
				return days
			}
		}
	}
	if days := 3 * len(p.Trip.Destinations); days > 0 {
		return days
	}
	return 3
}

// BudgetRangeEUR converts a "<min>-<max> MAD" range to an approximate EUR
// range by dividing each bound by 11 and rounding. Anything that does not
// match the pattern is passed through unchanged.
func BudgetRangeEUR(rangeMad string) string {
	raw, ok := strings.CutSuffix(strings.TrimSpace(rangeMad), " MAD")
	if !ok {
		return rangeMad
	}
	low, high, ok := strings.Cut(raw, "-")
	if !ok {
		return rangeMad
	}
	lowMad, errLow := strconv.ParseFloat(strings.TrimSpace(low), 64)
	highMad, errHigh := strconv.ParseFloat(strings.TrimSpace(high), 64)
	if errLow != nil || errHigh != nil {
		return rangeMad
	}
	return fmt.Sprintf("%d-%d EUR", int(math.Round(lowMad/11)), int(math.Round(highMad/11)))
}

// NormalizeRythme maps free-text pace descriptions onto the three canonical
// values the orchestrateur understands.
func NormalizeRythme(rythme string) string {
	lower := strings.ToLower(rythme)
	switch {
	case strings.Contains(lower, "relax"), strings.Contains(lower, "tranquille"), strings.Contains(lower, "lent"):
		return "relaxed"
	case strings.Contains(lower, "intens"), strings.Contains(lower, "soutenu"), strings.Contains(lower, "rapide"):
		return "intense"
	default:
		return "moderate"
	}
}

// travellerCount flattens the profile and probes the known answer paths for
// a usable number.
func travellerCount(p *model.Profile) int {
	flat, err := flattenProfile(p)
	if err != nil {
		return 0
	}
	for _, path := range travellerPaths {
		if n, ok := asCount(flat[path]); ok {
			return n
		}
	}
	return 0
}

func flattenProfile(p *model.Profile) (map[string]any, error) {
	j, err := json.Marshal(p)
	if err != nil {
		return nil, err
	}
	nested := map[string]any{}
	if err := json.Unmarshal(j, &nested); err != nil {
		return nil, err
	}
	return flatten.Flatten(nested, "", flatten.DotStyle)
}

func asCount(value any) (int, bool) {
	switch v := value.(type) {
	case float64:
		if v > 0 {
			return int(v), true
		}
	case string:
		if n, err := strconv.Atoi(strings.TrimSpace(v)); err == nil && n > 0 {
			return n, true
		}
	}
	return 0, false
}

// answerList looks up a string list answer by key in the additional and
// dynamic/initial form answers, in that order.
func answerList(p *model.Profile, key string) []string {
	sources := []map[string]any{p.Preferences.AdditionalAnswers}
	if p.Preferences.FormAnswers != nil {
		sources = append(sources, p.Preferences.FormAnswers.Dynamic, p.Preferences.FormAnswers.Initial)
	}
	for _, source := range sources {
		if source == nil {
			continue
		}
		if list, ok := asStringList(source[key]); ok {
			return list
		}
	}
	return nil
}

func asStringList(value any) ([]string, bool) {
	switch v := value.(type) {
	case []string:
		if len(v) > 0 {
			return v, true
		}
	case []any:
		list := make([]string, 0, len(v))
		for _, item := range v {
			s, ok := item.(string)
			if !ok {
				return nil, false
			}
			list = append(list, s)
		}
		if len(list) > 0 {
			return list, true
		}
	case string:
		if v != "" {
			return []string{v}, true
		}
	}
	return nil, false
}
