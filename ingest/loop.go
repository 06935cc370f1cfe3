// Package ingest runs the polling loop that drains the pending-report queue.
// It is the primary categorize-and-match path; the a2a agents provide the
// same result choreographically and whichever lands first wins.
package ingest

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/jorget15/UnityAid/bus"
	"github.com/jorget15/UnityAid/matching"
	"github.com/jorget15/UnityAid/store"
)

const DefaultPollInterval = 500 * time.Millisecond

type Loop struct {
	Store    *store.Store
	Stream   *bus.Bus
	Interval time.Duration
}

func NewLoop(st *store.Store, stream *bus.Bus) *Loop {
	return &Loop{Store: st, Stream: stream, Interval: DefaultPollInterval}
}

// Run polls until ctx is cancelled. Each tick handles at most one report so
// a burst of ingress never monopolizes the loop. No tick error is fatal.
func (l *Loop) Run(ctx context.Context) {
	interval := l.Interval
	if interval <= 0 {
		interval = DefaultPollInterval
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	log.Printf("ingestion loop polling every %s", interval)
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			l.Tick()
		}
	}
}

// Tick processes one queued report: derive its category, pick the nearest
// eligible resource, apply the match, and publish the observer event. A
// report that cannot be matched stays unmatched and is retried by the sweep.
func (l *Loop) Tick() {
	id, ok := l.Store.DequeueOne()
	if !ok {
		return
	}
	rep, ok := l.Store.GetReport(id)
	if !ok {
		log.Printf("ingest: queued report %s no longer exists, skipping", id)
		return
	}
	if rep.MatchedResourceID != "" {
		return
	}

	cat := store.Categorize(rep.Description)
	if err := l.Store.SetCategory(rep.ID, cat); err != nil {
		log.Printf("ingest: %v", err)
		return
	}
	rep.Category = cat

	res, ok := matching.Match(rep, l.Store.ListResources())
	if !ok {
		log.Printf("ingest: no eligible resource for report %s, leaving unmatched", rep.ID)
		return
	}

	matched, err := l.Store.ApplyMatch(rep.ID, res.ID, false)
	if err != nil {
		// A concurrent a2a apply may have won; that is not a failure.
		if !errors.Is(err, store.ErrAlreadyMatched) {
			log.Printf("ingest: %v", err)
		}
		return
	}
	log.Printf("ingest: matched report %s to resource %s (capacity %d left)",
		matched.ReportID, matched.ResourceID, matched.Capacity)
	l.Stream.Publish(matched)
}
