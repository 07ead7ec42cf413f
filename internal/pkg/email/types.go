// internal/pkg/email/types.go
package email

import (
	"time"
)

// EmailType represents the type of email being sent
type EmailType string

const (
	EmailTypeOrderConfirmation EmailType = "order_confirmation"
	EmailTypeTest              EmailType = "test"
)

// Email represents an email message
type Email struct {
	To          []string               `json:"to"`
	CC          []string               `json:"cc,omitempty"`
	BCC         []string               `json:"bcc,omitempty"`
	Subject     string                 `json:"subject"`
	HTMLContent string                 `json:"html_content"`
	TextContent string                 `json:"text_content,omitempty"`
	Type        EmailType              `json:"type"`
	Data        map[string]interface{} `json:"data,omitempty"`
}

// EmailTemplateData contains common data for all email templates
type EmailTemplateData struct {
	SiteName   string `json:"site_name"`
	SiteURL    string `json:"site_url"`
	SupportURL string `json:"support_url"`
	UserName   string `json:"user_name"`
	UserEmail  string `json:"user_email"`
	Year       int    `json:"year"`
}

// OrderConfirmationData contains data for order confirmation email
type OrderConfirmationData struct {
	EmailTemplateData
	OrderNumber       string      `json:"order_number"`
	OrderDate         string      `json:"order_date"`
	OrderTotal        float64     `json:"order_total"`
	OrderURL          string      `json:"order_url"`
	Items             []OrderItem `json:"items"`
	PaymentMethod     string      `json:"payment_method"`
	ShippingAddress   Address     `json:"shipping_address"`
	ContactPhone      string      `json:"contact_phone"`
	EstimatedDelivery string      `json:"estimated_delivery"`
}

// OrderItem represents an item in the order
type OrderItem struct {
	Title      string  `json:"title"`
	Quantity   int     `json:"quantity"`
	Price      float64 `json:"price"`
	Total      float64 `json:"total"`
	ImageURL   string  `json:"image_url"`
	ProductURL string  `json:"product_url"`
}

// Address represents the delivery address
type Address struct {
	Street  string `json:"street"`
	Area    string `json:"area"`
	City    string `json:"city"`
	State   string `json:"state"`
	Country string `json:"country"`
}

// GetBaseTemplateData returns common template data
func GetBaseTemplateData(siteName, siteURL, userName, userEmail string) EmailTemplateData {
	return EmailTemplateData{
		SiteName:   siteName,
		SiteURL:    siteURL,
		SupportURL: siteURL + "/support",
		UserName:   userName,
		UserEmail:  userEmail,
		Year:       time.Now().Year(),
	}
}
