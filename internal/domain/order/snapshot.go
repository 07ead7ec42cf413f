package order

import "time"

// Address is the delivery address entered at checkout
type Address struct {
	Street  string `json:"street" binding:"required" gorm:"size:255"`
	Area    string `json:"area" gorm:"size:255"`
	City    string `json:"city" binding:"required" gorm:"size:100"`
	State   string `json:"state" gorm:"size:100"`
	Country string `json:"country" binding:"required" gorm:"size:100"`
}

// ContactInfo is how the shopper can be reached
type ContactInfo struct {
	Email string `json:"email" binding:"required,email"`
	Phone string `json:"phone" binding:"required"`
}

// SnapshotItem is one cart line as captured at checkout
type SnapshotItem struct {
	ID       string  `json:"_id"`
	Title    string  `json:"title"`
	ImageURL string  `json:"imageUrl"`
	Price    float64 `json:"price"`
	Quantity int     `json:"quantity"`
}

// Snapshot is the order record kept under the orderDetails key
type Snapshot struct {
	Cart          []SnapshotItem `json:"cart"`
	Total         float64        `json:"total"`
	Address       Address        `json:"address"`
	PaymentMethod string         `json:"paymentMethod"`
	ContactInfo   ContactInfo    `json:"contactInfo"`
	OrderNumber   string         `json:"orderNumber,omitempty"`
	OrderDate     *time.Time     `json:"orderDate,omitempty"`
}
