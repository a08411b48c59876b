package domain

// Category thresholds. Values on a boundary fall in the middle bucket.
const (
	ModerateMagnitudeMin = 4.0
	ModerateMagnitudeMax = 7.0

	IntermediateDepthMin = 70.0
	IntermediateDepthMax = 300.0
)

// ClassifyMagnitude maps a magnitude to Minor (<4), Moderate ([4,7]) or
// Major (>7).
func ClassifyMagnitude(magnitude float64) MagnitudeCategory {
	switch {
	case magnitude < ModerateMagnitudeMin:
		return Minor
	case magnitude <= ModerateMagnitudeMax:
		return Moderate
	default:
		return Major
	}
}

// ClassifyDepth maps a depth in km to Shallow (<70), Intermediate ([70,300])
// or Deep (>300). Negative depths are Shallow.
func ClassifyDepth(depthKm float64) DepthCategory {
	switch {
	case depthKm < IntermediateDepthMin:
		return Shallow
	case depthKm <= IntermediateDepthMax:
		return Intermediate
	default:
		return Deep
	}
}
