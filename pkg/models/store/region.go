package store

// RegionRecord is one row of the demographics dataset.
type RegionRecord struct {
	Region           string
	TargetPopulation int
	AvgRentPerSqm    float64
}

type BusinessRecord struct {
	Region          string
	CompetitorCount int
}

// AssumptionRecord is one region/parameter/value triple of the long-format
// assumptions dataset.
type AssumptionRecord struct {
	Region string
	Param  string
	Value  float64
}
