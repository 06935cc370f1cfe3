// Package store is the single authority over reports and resources. All
// mutation goes through its locked operations; callers only ever receive
// copies, never references into the maps.
package store

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/jorget15/UnityAid/types"
)

const maxQueuedReports = 1000

var (
	ErrUnknownReport   = errors.New("unknown report id")
	ErrUnknownResource = errors.New("unknown resource id")
	ErrNoCapacity      = errors.New("resource has no remaining capacity")
	ErrAlreadyMatched  = errors.New("report is already matched")
)

type Store struct {
	mu        sync.Mutex
	reports   map[string]*types.Report
	resources map[string]*types.Resource
	queue     []string
}

func New() *Store {
	return &Store{
		reports:   make(map[string]*types.Report),
		resources: make(map[string]*types.Resource),
	}
}

// DefaultResources is the startup seed set.
func DefaultResources() []types.Resource {
	return []types.Resource{
		{ID: "rc1", Name: "NGO Food Hub", Type: types.Food, Lat: 25.775, Lon: -80.20, Capacity: 150},
		{ID: "rc2", Name: "Water Station North", Type: types.Water, Lat: 25.810, Lon: -80.19, Capacity: 300},
		{ID: "rc3", Name: "Shelter @ HighSchool", Type: types.Shelter, Lat: 25.740, Lon: -80.22, Capacity: 120},
		{ID: "rc4", Name: "Pop-up Clinic", Type: types.Medical, Lat: 25.770, Lon: -80.18, Capacity: 40, Notes: "Basic meds"},
	}
}

// Seed installs resources. Resources are fixed for the process lifetime;
// only their capacity changes afterwards.
func (s *Store) Seed(resources []types.Resource) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range resources {
		res := resources[i]
		s.resources[res.ID] = &res
	}
}

// CreateReport validates the payload, assigns an ID, stores the report with
// the neutral category, and enqueues it for the ingestion loop.
func (s *Store) CreateReport(in types.ReportIn) (types.Report, error) {
	if err := in.Validate(); err != nil {
		return types.Report{}, err
	}

	rep := types.Report{
		ID:          uuid.NewString()[:8],
		Description: in.Description,
		Lat:         in.Lat,
		Lon:         in.Lon,
		Urgency:     in.Urgency,
		Category:    types.Other,
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.reports[rep.ID] = &rep
	s.enqueueLocked(rep.ID)
	return rep, nil
}

func (s *Store) GetReport(id string) (types.Report, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rep, ok := s.reports[id]
	if !ok {
		return types.Report{}, false
	}
	return *rep, true
}

func (s *Store) ListReports() []types.Report {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]types.Report, 0, len(s.reports))
	for _, rep := range s.reports {
		out = append(out, *rep)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (s *Store) GetResource(id string) (types.Resource, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	res, ok := s.resources[id]
	if !ok {
		return types.Resource{}, false
	}
	return *res, true
}

// ListResources returns copies sorted by ID ascending. Matching relies on
// this order for deterministic tie-breaks.
func (s *Store) ListResources() []types.Resource {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]types.Resource, 0, len(s.resources))
	for _, res := range s.resources {
		out = append(out, *res)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// SetCategory records a derived category for a report.
func (s *Store) SetCategory(reportID string, cat types.Category) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	rep, ok := s.reports[reportID]
	if !ok {
		return fmt.Errorf("set category %q: %w", reportID, ErrUnknownReport)
	}
	rep.Category = cat
	return nil
}

// ApplyMatch assigns a resource to a report and decrements the resource's
// capacity, as one atomic read-modify-write. A report that is already
// matched is rejected unless force is set (explicit re-match); the previous
// resource's capacity is not restored on re-match.
func (s *Store) ApplyMatch(reportID, resourceID string, force bool) (types.MatchEvent, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rep, ok := s.reports[reportID]
	if !ok {
		return types.MatchEvent{}, fmt.Errorf("apply match %q: %w", reportID, ErrUnknownReport)
	}
	res, ok := s.resources[resourceID]
	if !ok {
		return types.MatchEvent{}, fmt.Errorf("apply match %q: %w", resourceID, ErrUnknownResource)
	}
	if rep.MatchedResourceID != "" && !force {
		return types.MatchEvent{}, fmt.Errorf("apply match %q: %w", reportID, ErrAlreadyMatched)
	}
	if res.Capacity <= 0 {
		return types.MatchEvent{}, fmt.Errorf("apply match %q: %w", resourceID, ErrNoCapacity)
	}

	rep.MatchedResourceID = res.ID
	res.Capacity--

	return types.MatchEvent{ReportID: rep.ID, ResourceID: res.ID, Capacity: res.Capacity}, nil
}

// Counts reports the sizes of both collections, for the health endpoint.
func (s *Store) Counts() (reports, resources int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.reports), len(s.resources)
}
