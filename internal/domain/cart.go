package domain

// CartItem represents a single line in the shopping cart. The cart holds at
// most one CartItem per product id.
type CartItem struct {
	Product  Product `json:"product"`
	Quantity int     `json:"quantity"`
}

// CartItems is an ordered sequence of cart lines (insertion order).
type CartItems []CartItem

// TotalItems returns the sum of quantities across all lines.
func (items CartItems) TotalItems() int {
	var total int
	for _, item := range items {
		total += item.Quantity
	}
	return total
}

// TotalPrice returns the sum of price*quantity across all lines.
func (items CartItems) TotalPrice() float64 {
	var total float64
	for _, item := range items {
		total += item.Product.Price * float64(item.Quantity)
	}
	return total
}

// FindIndex returns the index of the line matching the given product id,
// or -1 if not found.
func (items CartItems) FindIndex(productID int) int {
	for i := range items {
		if items[i].Product.ID == productID {
			return i
		}
	}
	return -1
}
