package triage

import (
	"strings"

	"github.com/jorget15/UnityAid/types"
)

const (
	defaultScore        = 3
	maxKeyIndicators    = 5
	baseConfidence      = 0.6
	confidencePerMatch  = 0.1
	maxConfidence       = 0.9
	criticalMatchWeight = 2
	criticalTrigger     = 2
	urgencyTrigger      = 2
)

// indicatorGroup is one named keyword category. Groups are held in slices so
// the evaluation order is fixed and first-match tie-breaks are deterministic.
type indicatorGroup struct {
	name     string
	keywords []string
}

// Critical priority indicators (priority 5). Evaluated in order; the first
// group to reach the trigger wins.
var criticalIndicators = []indicatorGroup{
	{"life_threatening", []string{"unconscious", "not breathing", "cardiac arrest", "heart attack",
		"severe bleeding", "hemorrhaging", "choking", "overdose"}},
	{"missing_persons", []string{"child missing", "person missing", "lost child", "abducted"}},
	{"structural", []string{"building collapse", "trapped", "buried", "structure unstable"}},
	{"hazmat", []string{"chemical spill", "gas leak", "toxic", "radiation", "hazardous material"}},
	{"fire_explosion", []string{"fire", "explosion", "burning building", "smoke inhalation"}},
}

// High priority indicators (priority 4).
var highIndicators = []indicatorGroup{
	{"medical_urgent", []string{"injury", "broken bone", "diabetic emergency", "insulin", "asthma attack",
		"seizure", "chest pain", "difficulty breathing", "allergic reaction"}},
	{"vulnerable", []string{"pregnant", "baby", "infant", "elderly", "disabled", "wheelchair"}},
	{"essential_needs", []string{"no water", "dehydration", "no food", "starving", "hypothermia"}},
	{"immediate_danger", []string{"flood rising", "evacuate now", "shelter collapsing", "unsafe"}},
}

// Low priority indicators (priority 2).
var lowIndicators = []indicatorGroup{
	{"property", []string{"property damage", "roof damage", "window broken", "fence down"}},
	{"non_urgent", []string{"when possible", "not urgent", "later", "minor"}},
}

var urgencyWords = []string{"urgent", "immediately", "asap", "emergency", "help now", "critical"}

// Classify scores freeform report text into a 1-5 priority. It is a pure
// function and never fails; empty input yields a neutral medium result.
func Classify(text string) types.PriorityResult {
	t := strings.ToLower(text)
	score := defaultScore
	var keyIndicators []string
	reasoning := ""

	// Critical tier: any group accumulating enough weight fixes the score
	// at 5 and stops critical evaluation.
	criticalScore := 0
	for _, group := range criticalIndicators {
		for _, keyword := range group.keywords {
			if strings.Contains(t, keyword) {
				criticalScore += criticalMatchWeight
				keyIndicators = append(keyIndicators, keyword)
				if criticalScore >= criticalTrigger {
					score = 5
					reasoning = "CRITICAL: Life-threatening situation detected (" + group.name + ")"
					break
				}
			}
		}
		if score == 5 {
			break
		}
	}

	// High tier, only when not already critical.
	if score != 5 {
		highScore := 0
		for _, group := range highIndicators {
			for _, keyword := range group.keywords {
				if strings.Contains(t, keyword) {
					highScore++
					keyIndicators = append(keyIndicators, keyword)
				}
			}
		}
		if highScore >= 2 {
			score = 4
			reasoning = "HIGH: Multiple urgent indicators present"
		} else if highScore == 1 {
			score = 4
			reasoning = "HIGH: Urgent medical or safety concern"
		}
	}

	// Urgency language and punctuation intensity.
	urgencyBoost := 0
	for _, word := range urgencyWords {
		if strings.Contains(t, word) {
			urgencyBoost++
			keyIndicators = append(keyIndicators, word)
		}
	}
	if strings.Contains(text, "!!!") {
		urgencyBoost++
		keyIndicators = append(keyIndicators, "multiple exclamation marks")
	}
	if urgencyBoost >= urgencyTrigger && score < 4 {
		score++
		if score > 4 {
			score = 4
		}
		reasoning += " (boosted for urgency language)"
	}

	// Low tier: only downgrade from an unchanged medium.
	if score == defaultScore {
		lowCount := 0
		for _, group := range lowIndicators {
			for _, keyword := range group.keywords {
				if strings.Contains(t, keyword) {
					lowCount++
				}
			}
		}
		if lowCount >= 2 {
			score = 2
			reasoning = "LOW: Non-urgent property or administrative matter"
		}
	}

	if reasoning == "" {
		switch score {
		case 3:
			reasoning = "MEDIUM: Standard emergency response needed"
		case 2:
			reasoning = "LOW: Non-urgent request"
		case 1:
			reasoning = "MINIMAL: Information or administrative request"
		}
	}

	// Confidence grows with the number of indicators found, capped well
	// short of certainty for a heuristic.
	confidence := baseConfidence + float64(len(keyIndicators))*confidencePerMatch
	if confidence > maxConfidence {
		confidence = maxConfidence
	}

	if len(keyIndicators) > maxKeyIndicators {
		keyIndicators = keyIndicators[:maxKeyIndicators]
	}

	return types.PriorityResult{
		Priority:       score,
		Confidence:     confidence,
		Reasoning:      reasoning,
		KeyIndicators:  keyIndicators,
		Recommendation: Recommendation(score),
		Source:         "enhanced_heuristic",
	}
}

// Recommendation maps a final priority to its dispatch guidance.
func Recommendation(priority int) string {
	switch priority {
	case 5:
		return "IMMEDIATE DISPATCH: Life-threatening emergency requiring immediate response"
	case 4:
		return "URGENT RESPONSE: High priority requiring rapid deployment"
	case 3:
		return "STANDARD RESPONSE: Deploy within normal emergency timeframes"
	case 2:
		return "SCHEDULED RESPONSE: Address during next available window"
	default:
		return "NON-EMERGENCY: Handle through standard administrative channels"
	}
}
