package store

import (
	"strings"

	"github.com/jorget15/UnityAid/types"
)

// The ingestion queue is a bounded FIFO of pending report IDs. When full,
// the oldest entry is evicted so ingress never blocks.

func (s *Store) Enqueue(reportID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.enqueueLocked(reportID)
}

func (s *Store) enqueueLocked(reportID string) {
	if len(s.queue) >= maxQueuedReports {
		s.queue = s.queue[1:]
	}
	s.queue = append(s.queue, reportID)
}

// DequeueOne pops the oldest pending report ID, if any.
func (s *Store) DequeueOne() (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.queue) == 0 {
		return "", false
	}
	id := s.queue[0]
	s.queue = s.queue[1:]
	return id, true
}

func (s *Store) QueueLen() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.queue)
}

// RequeueUnmatched puts every unmatched report back on the queue so a later
// cycle can retry once capacity frees up. Returns the number requeued.
func (s *Store) RequeueUnmatched() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	queued := make(map[string]bool, len(s.queue))
	for _, id := range s.queue {
		queued[id] = true
	}

	n := 0
	for id, rep := range s.reports {
		if rep.MatchedResourceID == "" && !queued[id] {
			s.enqueueLocked(id)
			n++
		}
	}
	return n
}

// Keyword sets for the store-side categorizer, evaluated in fixed order.
// The categorizer agent mirrors these with its own smaller sets.
var categoryKeywords = []struct {
	cat      types.Category
	keywords []string
}{
	{types.Medical, []string{"insulin", "injury", "bleeding", "medicine", "asthma", "diabetes", "clinic", "doctor"}},
	{types.Water, []string{"water", "thirst", "dehydrated", "bottles"}},
	{types.Food, []string{"food", "hungry", "meal", "grocery", "hunger"}},
	{types.Shelter, []string{"shelter", "roof", "evacuate", "evacuation", "homeless"}},
}

// Categorize derives a report category from its description. The first
// category with a keyword hit wins; no hit means "other".
func Categorize(text string) types.Category {
	t := strings.ToLower(text)
	for _, entry := range categoryKeywords {
		for _, w := range entry.keywords {
			if strings.Contains(t, w) {
				return entry.cat
			}
		}
	}
	return types.Other
}
