package conversation

import (
	"regexp"
	"strings"

	"github.com/jorget15/UnityAid/types"
)

// escalationPattern is one entry of a pattern group: a plain substring or,
// when isRegex is set, a precompiled expression.
type escalationPattern struct {
	text    string
	isRegex bool
}

func subs(words ...string) []escalationPattern {
	out := make([]escalationPattern, len(words))
	for i, w := range words {
		out[i] = escalationPattern{text: w}
	}
	return out
}

// Critical escalation groups (+2). Evaluated in order, first match wins.
// The vulnerable group is a co-occurrence pair handled separately below.
var criticalEscalation = [][]escalationPattern{
	subs("unconscious", "not breathing", "no pulse", "cardiac", "heart attack"),
	subs("trapped", "buried", "stuck under", "collapsed on", "pinned down"),
	subs("severe bleeding", "lots of blood", "hemorrhaging", "bleeding heavily"),
	subs("multiple people", "many people", "several people", "group of"),
	subs("getting worse", "deteriorating", "spreading", "unstable", "collapsing"),
}

// Vulnerable-person-in-danger: both halves must appear in the answers.
var (
	vulnerablePersonTerms = []string{"child", "baby", "infant", "pregnant"}
	inDangerTerms         = []string{"danger", "immediate", "critical"}
)

// High-priority escalation groups (+1).
var highEscalation = [][]escalationPattern{
	subs("difficulty breathing", "can't breathe", "chest pain", "diabetic", "insulin"),
	subs("injury", "hurt", "pain", "broken", "fractured"),
	subs("immediate danger", "unsafe", "hazardous", "dangerous"),
	subs("elderly", "disabled", "wheelchair", "vulnerable"),
	subs("urgent", "immediately", "asap", "help now", "emergency"),
	{
		{text: `yes.*danger`, isRegex: true},
		{text: `yes.*immediate`, isRegex: true},
		{text: `yes.*critical`, isRegex: true},
	},
}

var regexCache = map[string]*regexp.Regexp{}

func init() {
	for _, group := range highEscalation {
		for _, p := range group {
			if p.isRegex {
				regexCache[p.text] = regexp.MustCompile(p.text)
			}
		}
	}
}

// analyzeQAResponses derives the 0-2 priority boost from raw answers.
func analyzeQAResponses(qaPairs []types.QAPair) int {
	boost := 0

	var b strings.Builder
	for _, qa := range qaPairs {
		b.WriteString(strings.ToLower(qa.Answer))
		b.WriteString(" ")
	}
	allAnswers := b.String()

	for _, group := range criticalEscalation {
		if matchGroup(allAnswers, group) {
			boost = maxBoost
			break
		}
	}
	if boost < maxBoost && containsAny(allAnswers, vulnerablePersonTerms) &&
		containsAny(allAnswers, inDangerTerms) {
		boost = maxBoost
	}

	if boost < maxBoost {
		for _, group := range highEscalation {
			if matchGroup(allAnswers, group) {
				if boost < 1 {
					boost = 1
				}
				break
			}
		}
	}

	boost += analyzeSpecificQuestions(qaPairs)

	if boost > maxBoost {
		boost = maxBoost
	}
	return boost
}

func matchGroup(text string, group []escalationPattern) bool {
	for _, p := range group {
		if p.isRegex {
			if regexCache[p.text].MatchString(text) {
				return true
			}
		} else if strings.Contains(text, p.text) {
			return true
		}
	}
	return false
}

// analyzeSpecificQuestions looks at answers to recognized question types.
// Its contribution is independently capped at +1.
func analyzeSpecificQuestions(qaPairs []types.QAPair) int {
	boost := 0

	for _, qa := range qaPairs {
		q := strings.ToLower(qa.Question)
		a := strings.ToLower(qa.Answer)

		switch {
		case strings.Contains(q, "immediate") && strings.Contains(q, "danger"):
			if containsAny(a, []string{"yes", "trapped", "stuck", "buried", "critical"}) {
				boost++
			}
		case strings.Contains(q, "how many") || strings.Contains(q, "people affected"):
			if containsAny(a, []string{"multiple", "several", "many", "group", "family"}) {
				boost++
			} else if containsAny(a, []string{"two", "three", "four", "five", "2", "3", "4", "5"}) {
				boost++
			} else if containsAny(a, []string{"child", "baby", "elderly", "pregnant"}) {
				boost++
			}
		case strings.Contains(q, "getting worse") || strings.Contains(q, "deteriorating"):
			if containsAny(a, []string{"yes", "worse", "unstable", "collapsing", "spreading"}) {
				boost++
			}
		case containsAny(q, []string{"conscious", "breathing", "medical", "condition"}):
			if containsAny(a, []string{"no", "unconscious", "difficulty", "struggling", "critical"}) {
				boost++
			}
		}
	}

	if boost > 1 {
		boost = 1
	}
	return boost
}
