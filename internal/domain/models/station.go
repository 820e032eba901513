package models

// Station is one stop on the fixed route. Sequence gives its position
// (1 = origin), DistanceKm its distance from the route origin. Stations
// are created at setup time and effectively immutable afterwards.
type Station struct {
	ID            int64  `json:"id"`
	Name          string `json:"name"`
	ArrivalTime   string `json:"arrival_time"`
	DepartureTime string `json:"departure_time"`
	DistanceKm    int    `json:"distance_km"`
	Sequence      int    `json:"sequence"`
}
