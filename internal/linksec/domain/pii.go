package domain

// PIIRecord holds the customer-identifying fields carried inside an encrypted
// link token. The URL is its only custodian: nothing else persists it.
type PIIRecord struct {
	Name    string `json:"name,omitempty"`
	Email   string `json:"email,omitempty"`
	Title   string `json:"title,omitempty"`
	OrderID string `json:"order_id,omitempty"`
}
