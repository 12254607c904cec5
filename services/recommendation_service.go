// File: /services/recommendation_service.go
package services

import (
	"sort"
	"strings"
	"time"

	"sees-api/models"
)

// RecommendationProfile is the slice of a user profile the scorer looks at.
type RecommendationProfile struct {
	Skills       []string `json:"skills"`
	Achievements []string `json:"achievements"`
	Expertise    []string `json:"expertise"`
}

// ScoredEvent pairs a candidate event with its normalized match score.
type ScoredEvent struct {
	Event models.Event `json:"event"`
	Score float64      `json:"score"`
}

// Scores at or above this are "good matches". Below it, only the single
// top-scored event is returned.
const goodMatchThreshold = 0.05

// scoreCeiling normalizes raw scores: 3+2+5+4 is the most a single term can
// contribute across all rules.
const scoreCeiling = 14

// RecommendEvents ranks future events against a profile. It is a pure
// function of its inputs: no persistence, no caching, and a deterministic
// order (score desc, then date, then id).
func RecommendEvents(profile RecommendationProfile, events []models.Event, now time.Time) []ScoredEvent {
	terms := lowerTerms(profile.Skills, profile.Achievements, profile.Expertise)
	skills := lowerTerms(profile.Skills)
	expertise := lowerTerms(profile.Expertise)

	scored := make([]ScoredEvent, 0, len(events))
	if len(terms) == 0 {
		return scored
	}

	for _, event := range events {
		if !event.DateTime.After(now) {
			continue
		}

		title := strings.ToLower(event.Title)
		description := strings.ToLower(event.Description)
		category := strings.ToLower(string(event.Category))

		raw := 0.0
		for _, term := range terms {
			if strings.Contains(title, term) {
				raw += 3
			}
			if strings.Contains(description, term) {
				raw += 2
			}
		}
		for _, term := range expertise {
			if strings.Contains(category, term) {
				raw += 5
			}
		}
		for _, term := range skills {
			if strings.Contains(category, term) {
				raw += 4
			}
		}

		scored = append(scored, ScoredEvent{
			Event: event,
			Score: raw / (scoreCeiling * float64(len(terms))),
		})
	}

	if len(scored) == 0 {
		return scored
	}

	sort.Slice(scored, func(i, j int) bool {
		if scored[i].Score != scored[j].Score {
			return scored[i].Score > scored[j].Score
		}
		if !scored[i].Event.DateTime.Equal(scored[j].Event.DateTime) {
			return scored[i].Event.DateTime.Before(scored[j].Event.DateTime)
		}
		return scored[i].Event.ID < scored[j].Event.ID
	})

	good := scored[:0:0]
	for _, se := range scored {
		if se.Score >= goodMatchThreshold {
			good = append(good, se)
		}
	}
	if len(good) == 0 {
		// Nothing clears the bar; fall back to the single best candidate
		return scored[:1]
	}
	return good
}

func lowerTerms(lists ...[]string) []string {
	var terms []string
	for _, list := range lists {
		for _, t := range list {
			t = strings.ToLower(strings.TrimSpace(t))
			if t != "" {
				terms = append(terms, t)
			}
		}
	}
	return terms
}
