// Package conversation refines low-confidence priority classifications
// through a clarifying question/answer round-trip.
package conversation

import (
	"strconv"
	"strings"

	"github.com/jorget15/UnityAid/triage"
	"github.com/jorget15/UnityAid/types"
)

const (
	// ConfidenceThreshold gates the clarifying-question flow.
	ConfidenceThreshold = 0.7

	maxBoost          = 2
	confidenceGain    = 0.2
	maxQAConfidence   = 0.95
	highTierQuestions = 3
	midTierQuestions  = 4
	lowTierQuestions  = 2
)

var medicalTriggerWords = []string{"medical", "injury", "hurt", "pain", "sick", "health"}
var vulnerableTriggerWords = []string{"child", "baby", "elderly", "pregnant", "disabled"}

var medicalQuestions = []string{
	"Is the person conscious and responsive?",
	"Are they having difficulty breathing?",
	"Is there any bleeding? If yes, how severe?",
	"Does the person have any critical medical conditions (diabetes, heart condition, etc.)?",
	"Can they walk or move on their own?",
}

var dangerQuestions = []string{
	"Are people in immediate physical danger?",
	"Is the location safe for responders to access?",
	"How many people are affected?",
	"Is this situation getting worse over time?",
}

var vulnerableQuestions = []string{
	"Are there children, elderly, or pregnant individuals involved?",
	"Do they have access to necessary medications or supplies?",
	"Are they in a safe shelter or exposed to elements?",
}

var timelineQuestions = []string{
	"How long can the situation wait without getting worse?",
	"Are there alternative resources available nearby?",
	"Is this preventing other emergency responses?",
}

var accessQuestions = []string{
	"Is the location easily accessible to emergency responders?",
	"Are there any hazards at the scene (fire, chemicals, unstable structures)?",
}

// Words that keep a question in the high-priority subset.
var highTierFilter = []string{"conscious", "breathing", "bleeding", "danger", "immediate"}

// Words that keep a question in the low-priority subset.
var lowTierFilter = []string{"wait", "alternative", "worse", "time"}

// NeedsClarification reports whether a classification is uncertain enough to
// warrant follow-up questions.
func NeedsClarification(result types.PriorityResult) bool {
	return result.Confidence < ConfidenceThreshold
}

// GenerateQuestions builds the ordered clarifying-question list for an
// uncertain classification. The selection narrows by priority tier so the
// caller never asks more than a handful.
func GenerateQuestions(result types.PriorityResult, description string) []string {
	desc := strings.ToLower(description)
	var questions []string

	if containsAny(desc, medicalTriggerWords) {
		questions = append(questions, medicalQuestions...)
	}
	if result.Priority >= 3 && result.Confidence < ConfidenceThreshold {
		questions = append(questions, dangerQuestions...)
	}
	if containsAny(desc, vulnerableTriggerWords) {
		questions = append(questions, vulnerableQuestions...)
	}
	if result.Priority == 3 && result.Confidence < ConfidenceThreshold {
		questions = append(questions, timelineQuestions...)
	}
	questions = append(questions, accessQuestions...)

	unique := dedupe(questions)

	switch {
	case result.Priority >= 4:
		return filterQuestions(unique, highTierFilter, highTierQuestions)
	case result.Priority == 3:
		if len(unique) > midTierQuestions {
			unique = unique[:midTierQuestions]
		}
		return unique
	default:
		return filterQuestions(unique, lowTierFilter, lowTierQuestions)
	}
}

// Reclassify reruns the scoring engine over the original description plus
// the Q&A transcript, then applies an escalation boost derived from the raw
// answers. The boost never exceeds 2 and the final priority is capped at 5.
func Reclassify(originalDescription string, qaPairs []types.QAPair) types.PriorityResult {
	enhanced := originalDescription + "\n\nAdditional Information:\n"
	for _, qa := range qaPairs {
		enhanced += "Q: " + qa.Question + "\nA: " + qa.Answer + "\n"
	}

	result := triage.Classify(enhanced)
	basePriority := result.Priority

	boost := analyzeQAResponses(qaPairs)

	finalPriority := basePriority + boost
	if finalPriority > 5 {
		finalPriority = 5
	}

	result.Priority = finalPriority
	result.BasePriority = basePriority
	result.QABoost = boost
	result.Recommendation = triage.Recommendation(finalPriority)

	// More information earned, more confidence granted.
	result.Confidence += confidenceGain
	if result.Confidence > maxQAConfidence {
		result.Confidence = maxQAConfidence
	}
	result.Source = "enhanced_with_qa"

	if boost > 0 {
		result.Reasoning += " (Escalated +" + strconv.Itoa(boost) + " based on Q&A responses)"
	}
	return result
}

func containsAny(text string, words []string) bool {
	for _, w := range words {
		if strings.Contains(text, w) {
			return true
		}
	}
	return false
}

func dedupe(questions []string) []string {
	seen := make(map[string]bool, len(questions))
	out := make([]string, 0, len(questions))
	for _, q := range questions {
		if !seen[q] {
			seen[q] = true
			out = append(out, q)
		}
	}
	return out
}

func filterQuestions(questions []string, keepWords []string, limit int) []string {
	var out []string
	for _, q := range questions {
		if containsAny(strings.ToLower(q), keepWords) {
			out = append(out, q)
			if len(out) == limit {
				break
			}
		}
	}
	return out
}

