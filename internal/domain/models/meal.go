package models

// Meal is a catalog item bookings may reference. Lifecycle is
// independent of bookings (admin CRUD).
type Meal struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Price       int64  `json:"price"`
	Category    string `json:"category"` // VEG, NON_VEG, DESSERT, BEVERAGE
	Available   bool   `json:"is_available"`
}
