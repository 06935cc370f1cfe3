package types

// GeoJSON feature output for the dashboard map. Coordinates are [lon, lat]
// per the GeoJSON spec.

type FeatureCollection struct {
	Type     string    `json:"type"`
	Features []Feature `json:"features"`
}

type Feature struct {
	Type       string                 `json:"type"`
	Geometry   Geometry               `json:"geometry"`
	Properties map[string]interface{} `json:"properties"`
}

type Geometry struct {
	Type        string     `json:"type"`
	Coordinates [2]float64 `json:"coordinates"`
}

func BuildGeoJSON(reports []Report, resources []Resource) FeatureCollection {
	feats := make([]Feature, 0, len(reports)+len(resources))
	for _, rep := range reports {
		feats = append(feats, Feature{
			Type:     "Feature",
			Geometry: Geometry{Type: "Point", Coordinates: [2]float64{rep.Lon, rep.Lat}},
			Properties: map[string]interface{}{
				"id":               rep.ID,
				"kind":             "report",
				"category":         rep.Category,
				"urgency":          rep.Urgency,
				"matched_resource": rep.MatchedResourceID,
				"description":      rep.Description,
			},
		})
	}
	for _, res := range resources {
		feats = append(feats, Feature{
			Type:     "Feature",
			Geometry: Geometry{Type: "Point", Coordinates: [2]float64{res.Lon, res.Lat}},
			Properties: map[string]interface{}{
				"id":       res.ID,
				"kind":     "resource",
				"category": res.Type,
				"capacity": res.Capacity,
				"name":     res.Name,
				"notes":    res.Notes,
			},
		})
	}
	return FeatureCollection{Type: "FeatureCollection", Features: feats}
}
