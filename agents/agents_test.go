package agents

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jorget15/UnityAid/bus"
	"github.com/jorget15/UnityAid/store"
	"github.com/jorget15/UnityAid/types"
)

func TestAgentCategorizeFixedOrder(t *testing.T) {
	cases := []struct {
		text     string
		expected types.Category
	}{
		{"Elderly person needs insulin", types.Medical},
		{"out of water", types.Water},
		{"we are hungry", types.Food},
		{"need to evacuate the block", types.Shelter},
		{"unclear situation", types.Other},
		// Medical is evaluated first when keywords from two categories appear.
		{"clinic has no water", types.Medical},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.expected, agentCategorize(tc.text), "text: %s", tc.text)
	}
}

func TestNearestWithCapacity(t *testing.T) {
	rep := types.Report{Lat: 25.77, Lon: -80.19}
	resources := []types.Resource{
		{ID: "a", Lat: 25.77, Lon: -80.19, Capacity: 0},
		{ID: "b", Lat: 26.50, Lon: -80.19, Capacity: 2},
		{ID: "c", Lat: 25.80, Lon: -80.19, Capacity: 2},
	}

	id, ok := nearestWithCapacity(rep, resources)
	require.True(t, ok)
	assert.Equal(t, "c", id)

	_, ok = nearestWithCapacity(rep, []types.Resource{{ID: "a", Capacity: 0}})
	assert.False(t, ok)
}

// startChoreography wires both buses with all three loops, the way main does.
func startChoreography(t *testing.T, st *store.Store) (*bus.Bus, *bus.Bus, context.CancelFunc) {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	a2a := bus.New("a2a-test")
	stream := bus.New("stream-test")
	go a2a.Run(ctx)
	go stream.Run(ctx)
	go RunCategorizer(ctx, a2a, st)
	go RunMatcher(ctx, a2a, st)
	go RunApplier(ctx, a2a, stream, st)
	return a2a, stream, cancel
}

func waitForMatch(t *testing.T, st *store.Store, reportID string) types.Report {
	t.Helper()
	deadline := time.Now().Add(3 * time.Second)
	for time.Now().Before(deadline) {
		if rep, ok := st.GetReport(reportID); ok && rep.MatchedResourceID != "" {
			return rep
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatalf("report %s never matched", reportID)
	return types.Report{}
}

func TestChoreographyCreatedToMatched(t *testing.T) {
	st := store.New()
	st.Seed(store.DefaultResources())
	a2a, stream, cancel := startChoreography(t, st)
	defer cancel()

	observer := stream.Subscribe()

	rep, err := st.CreateReport(types.ReportIn{
		Description: "Elderly person needs insulin",
		Lat:         25.77, Lon: -80.19, Urgency: 4,
	})
	require.NoError(t, err)
	a2a.Publish(types.ReportCreatedEvent{Report: rep})

	matched := waitForMatch(t, st, rep.ID)
	// rc4 (Pop-up Clinic) is the nearest resource to the report.
	assert.Equal(t, "rc4", matched.MatchedResourceID)
	assert.Equal(t, types.Medical, matched.Category)

	select {
	case ev := <-observer.C:
		matchEv, ok := ev.(types.MatchEvent)
		require.True(t, ok)
		assert.Equal(t, rep.ID, matchEv.ReportID)
		assert.Equal(t, "rc4", matchEv.ResourceID)
		assert.Equal(t, 39, matchEv.Capacity)
	case <-time.After(3 * time.Second):
		t.Fatal("no match event reached the UI stream")
	}
}

func TestDuplicateResourceMatchedIsIdempotent(t *testing.T) {
	st := store.New()
	st.Seed(store.DefaultResources())
	a2a, stream, cancel := startChoreography(t, st)
	defer cancel()

	observer := stream.Subscribe()

	rep, err := st.CreateReport(types.ReportIn{Description: "water please", Urgency: 3})
	require.NoError(t, err)

	a2a.Publish(types.ResourceMatchedEvent{ReportID: rep.ID, ResourceID: "rc2"})
	a2a.Publish(types.ResourceMatchedEvent{ReportID: rep.ID, ResourceID: "rc2"})
	a2a.Publish(types.ResourceMatchedEvent{ReportID: rep.ID, ResourceID: "rc1"})

	waitForMatch(t, st, rep.ID)

	// Exactly one observer event; the duplicates were dropped.
	select {
	case ev := <-observer.C:
		matchEv, ok := ev.(types.MatchEvent)
		require.True(t, ok)
		assert.Equal(t, "rc2", matchEv.ResourceID)
	case <-time.After(3 * time.Second):
		t.Fatal("no match event reached the UI stream")
	}

	time.Sleep(100 * time.Millisecond)
	select {
	case ev := <-observer.C:
		t.Fatalf("unexpected second event: %#v", ev)
	default:
	}

	res, _ := st.GetResource("rc2")
	assert.Equal(t, 299, res.Capacity)
	rep2, _ := st.GetReport(rep.ID)
	assert.Equal(t, "rc2", rep2.MatchedResourceID)
}

func TestUnknownReportEventsAreDropped(t *testing.T) {
	st := store.New()
	st.Seed(store.DefaultResources())
	a2a, _, cancel := startChoreography(t, st)
	defer cancel()

	// None of these may crash a loop or mutate anything.
	a2a.Publish(types.ReportCreatedEvent{Report: types.Report{ID: "ghost"}})
	a2a.Publish(types.ReportCategorizedEvent{ReportID: "ghost", Category: types.Food})
	a2a.Publish(types.ResourceMatchedEvent{ReportID: "ghost", ResourceID: "rc1"})

	time.Sleep(100 * time.Millisecond)

	res, _ := st.GetResource("rc1")
	assert.Equal(t, 150, res.Capacity)
}

func TestMatcherSkipsAlreadyMatchedReports(t *testing.T) {
	st := store.New()
	st.Seed(store.DefaultResources())
	a2a, _, cancel := startChoreography(t, st)
	defer cancel()

	rep, err := st.CreateReport(types.ReportIn{Description: "need food", Urgency: 3})
	require.NoError(t, err)
	_, err = st.ApplyMatch(rep.ID, "rc1", false)
	require.NoError(t, err)

	a2a.Publish(types.ReportCategorizedEvent{ReportID: rep.ID, Category: types.Food})
	time.Sleep(100 * time.Millisecond)

	// Still matched to the original resource, capacity untouched since.
	got, _ := st.GetReport(rep.ID)
	assert.Equal(t, "rc1", got.MatchedResourceID)
	res, _ := st.GetResource("rc1")
	assert.Equal(t, 149, res.Capacity)
}
