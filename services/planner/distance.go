package planner

import (
	"math"

	"slate/models"
)

const (
	earthRadiusMiles   = 3959
	metersPerMile      = 1609.34
	walkMinutesPerMile = 20
)

// haversineMiles returns the great-circle distance between two points in miles.
func haversineMiles(a, b models.Coordinates) float64 {
	dLat := (b.Latitude - a.Latitude) * math.Pi / 180
	dLon := (b.Longitude - a.Longitude) * math.Pi / 180
	lat1 := a.Latitude * math.Pi / 180
	lat2 := b.Latitude * math.Pi / 180

	x := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLon/2)*math.Sin(dLon/2)
	return earthRadiusMiles * 2 * math.Atan2(math.Sqrt(x), math.Sqrt(1-x))
}

func walkingInfo(miles float64) *models.WalkingInfo {
	return &models.WalkingInfo{
		Minutes:        int(math.Round(miles * walkMinutesPerMile)),
		DistanceMeters: int(math.Round(miles * metersPerMile)),
	}
}

// EstimateCost is the per-evening spend: price ordinal x $30 x party size, summed over stops.
func EstimateCost(stops []models.PlanStop, partySize int) int {
	total := 0
	for _, s := range stops {
		total += s.Restaurant.PriceOrdinal() * 30 * partySize
	}
	return total
}
