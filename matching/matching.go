// Package matching selects the nearest capacity-bearing resource for a
// report. It only chooses; applying the match (and the capacity decrement)
// is the store's job.
package matching

import (
	"math"
	"sort"

	"github.com/jorget15/UnityAid/types"
)

const earthRadiusKM = 6371.0

// Match returns the eligible resource nearest to the report, or false when
// no resource has capacity. Candidates are resources with capacity whose
// type matches the report's category; an "other" report accepts any type.
// When the typed candidate set is empty the search widens to every resource
// with capacity.
//
// Resources are evaluated in ID-ascending order and ties keep the earlier
// resource, so the result is deterministic for a fixed input.
func Match(rep types.Report, resources []types.Resource) (types.Resource, bool) {
	ordered := make([]types.Resource, len(resources))
	copy(ordered, resources)
	sort.Slice(ordered, func(i, j int) bool { return ordered[i].ID < ordered[j].ID })

	var candidates []types.Resource
	for _, res := range ordered {
		if res.Capacity > 0 && (res.Type == rep.Category || rep.Category == types.Other) {
			candidates = append(candidates, res)
		}
	}
	if len(candidates) == 0 {
		for _, res := range ordered {
			if res.Capacity > 0 {
				candidates = append(candidates, res)
			}
		}
	}
	if len(candidates) == 0 {
		return types.Resource{}, false
	}

	best := candidates[0]
	bestDist := HaversineKM(rep.Lat, rep.Lon, best.Lat, best.Lon)
	for _, res := range candidates[1:] {
		d := HaversineKM(rep.Lat, rep.Lon, res.Lat, res.Lon)
		if d < bestDist {
			best = res
			bestDist = d
		}
	}
	return best, true
}

// HaversineKM calculates the great-circle distance between two points
// on the earth (specified in decimal degrees).
func HaversineKM(lat1, lon1, lat2, lon2 float64) float64 {
	radLat1 := lat1 * math.Pi / 180
	radLat2 := lat2 * math.Pi / 180

	deltaLat := (lat2 - lat1) * math.Pi / 180
	deltaLon := (lon2 - lon1) * math.Pi / 180

	a := math.Sin(deltaLat/2)*math.Sin(deltaLat/2) +
		math.Cos(radLat1)*math.Cos(radLat2)*
			math.Sin(deltaLon/2)*math.Sin(deltaLon/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return earthRadiusKM * c
}
