// Package agents holds the independent consumer loops of the a2a
// choreography. Each agent subscribes to the bus, filters for the one event
// type it cares about, computes against read-only store queries, and
// publishes its result back. No agent mutates state directly; the applier
// loop is the only bridge into the store.
package agents

import (
	"context"
	"errors"
	"log"
	"strings"

	"github.com/jorget15/UnityAid/bus"
	"github.com/jorget15/UnityAid/store"
	"github.com/jorget15/UnityAid/types"
)

// Agent-side category keywords. Coarser than the store's own table, matching
// what an external agent with no access to the full rule set would use.
// Fixed evaluation order: medical, water, food, shelter.
var agentCategoryKeywords = []struct {
	cat      types.Category
	keywords []string
}{
	{types.Medical, []string{"insulin", "medicine", "clinic", "injury"}},
	{types.Water, []string{"water", "thirst"}},
	{types.Food, []string{"food", "hungry"}},
	{types.Shelter, []string{"shelter", "evacua", "roof"}},
}

func agentCategorize(text string) types.Category {
	t := strings.ToLower(text)
	for _, entry := range agentCategoryKeywords {
		for _, w := range entry.keywords {
			if strings.Contains(t, w) {
				return entry.cat
			}
		}
	}
	return types.Other
}

// RunCategorizer consumes ReportCreated events and republishes the derived
// category. Duplicates and unknown reports are dropped.
func RunCategorizer(ctx context.Context, a2a *bus.Bus, st *store.Store) {
	log.Println("starting categorizer agent")
	sub := a2a.Subscribe()
	defer a2a.Unsubscribe(sub)

	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-sub.C:
			if !ok {
				return
			}
			created, ok := ev.(types.ReportCreatedEvent)
			if !ok {
				continue
			}
			rep, ok := st.GetReport(created.Report.ID)
			if !ok {
				log.Printf("categorizer: unknown report %s, dropping event", created.Report.ID)
				continue
			}
			if rep.MatchedResourceID != "" {
				continue
			}
			cat := agentCategorize(rep.Description)
			log.Printf("categorizer: report %s -> %s", rep.ID, cat)
			a2a.Publish(types.ReportCategorizedEvent{ReportID: rep.ID, Category: cat})
		}
	}
}

// RunMatcher consumes ReportCategorized events, picks the nearest resource
// with remaining capacity by squared-euclidean distance (a coarse
// approximation is fine on the agent side), and republishes the choice.
func RunMatcher(ctx context.Context, a2a *bus.Bus, st *store.Store) {
	log.Println("starting matcher agent")
	sub := a2a.Subscribe()
	defer a2a.Unsubscribe(sub)

	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-sub.C:
			if !ok {
				return
			}
			categorized, ok := ev.(types.ReportCategorizedEvent)
			if !ok {
				continue
			}
			rep, ok := st.GetReport(categorized.ReportID)
			if !ok {
				log.Printf("matcher: unknown report %s, dropping event", categorized.ReportID)
				continue
			}
			if rep.MatchedResourceID != "" {
				continue
			}

			resourceID, ok := nearestWithCapacity(rep, st.ListResources())
			if !ok {
				log.Printf("matcher: no resource with capacity for report %s", rep.ID)
				continue
			}
			log.Printf("matcher: report %s -> resource %s", rep.ID, resourceID)
			a2a.Publish(types.ResourceMatchedEvent{ReportID: rep.ID, ResourceID: resourceID})
		}
	}
}

// nearestWithCapacity expects resources in ID-ascending order (ListResources
// guarantees it) so ties resolve to the lowest ID.
func nearestWithCapacity(rep types.Report, resources []types.Resource) (string, bool) {
	bestID := ""
	bestDist := 0.0
	for _, res := range resources {
		if res.Capacity <= 0 {
			continue
		}
		dLat := res.Lat - rep.Lat
		dLon := res.Lon - rep.Lon
		d := dLat*dLat + dLon*dLon
		if bestID == "" || d < bestDist {
			bestID = res.ID
			bestDist = d
		}
	}
	return bestID, bestID != ""
}

// RunApplier is the store-authority side of the choreography: it applies
// ReportCategorized and ResourceMatched events to state and emits the
// terminal match event for UI observers. Duplicate or stale events are
// idempotently ignored.
func RunApplier(ctx context.Context, a2a, stream *bus.Bus, st *store.Store) {
	sub := a2a.Subscribe()
	defer a2a.Unsubscribe(sub)

	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-sub.C:
			if !ok {
				return
			}
			switch e := ev.(type) {
			case types.ReportCategorizedEvent:
				if err := st.SetCategory(e.ReportID, e.Category); err != nil {
					log.Printf("applier: %v, dropping event", err)
				}
			case types.ResourceMatchedEvent:
				matched, err := st.ApplyMatch(e.ReportID, e.ResourceID, false)
				if err != nil {
					if !errors.Is(err, store.ErrAlreadyMatched) {
						log.Printf("applier: %v, dropping event", err)
					}
					continue
				}
				stream.Publish(matched)
			}
		}
	}
}
