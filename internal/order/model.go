package order

import (
	"time"

	"ds-storefront/internal/cart"
)

type Contact struct {
	FullName     string `json:"fullName"`
	Email        string `json:"email"`
	Phone        string `json:"phone"`
	Company      string `json:"company,omitempty"`
	Requirements string `json:"requirements,omitempty"`
}

// Message is the read-only result of one successful checkout.
type Message struct {
	Reference   string          `json:"reference"`
	Contact     Contact         `json:"contact"`
	Items       []cart.LineItem `json:"items"`
	Subtotal    int64           `json:"subtotal"`
	Tax         int64           `json:"tax"`
	Total       int64           `json:"total"`
	Text        string          `json:"text"`
	Link        string          `json:"link"`
	SubmittedAt time.Time       `json:"submittedAt"`
}

type State string

const (
	StateIdle       State = "IDLE"
	StateValidating State = "VALIDATING"
	StateRejected   State = "REJECTED"
	StateSubmitted  State = "SUBMITTED"
)
