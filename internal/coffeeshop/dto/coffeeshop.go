package dto

// CreateCoffeeShopRequest is the body for creating a coffee shop. The owner
// is never taken from the body; it always comes from the authenticated user.
type CreateCoffeeShopRequest struct {
	Name     string            `json:"name" binding:"required"`
	Address  string            `json:"address"`
	Lat      *float64          `json:"lat" binding:"required"`
	Lon      *float64          `json:"lon" binding:"required"`
	Distance *float64          `json:"distance"`
	Tags     map[string]string `json:"tags"`
	OSMID    string            `json:"osmId"`
}
