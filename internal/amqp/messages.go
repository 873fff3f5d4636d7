package amqp

import (
	"encoding/json"
	"time"
)

// InvoiceAlertMessage notifies downstream workers that a projected invoice
// crossed an alert threshold. It carries the invoice identity and totals so
// consumers do not need to re-run the projection.
type InvoiceAlertMessage struct {
	CardID     string    `json:"card_id"`
	Owner      string    `json:"owner,omitempty"`
	Year       int       `json:"year"`
	Month      int       `json:"month"`
	TotalCents int64     `json:"total_cents"`
	Status     string    `json:"status"`
	DueDate    string    `json:"due_date"`
	Timestamp  time.Time `json:"timestamp"`
}

func NewInvoiceAlertMessage(cardID, owner string, year, month int, totalCents int64, status, dueDate string) *InvoiceAlertMessage {
	return &InvoiceAlertMessage{
		CardID:     cardID,
		Owner:      owner,
		Year:       year,
		Month:      month,
		TotalCents: totalCents,
		Status:     status,
		DueDate:    dueDate,
		Timestamp:  time.Now(),
	}
}

func (m *InvoiceAlertMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

func InvoiceAlertMessageFromJSON(data []byte) (*InvoiceAlertMessage, error) {
	var msg InvoiceAlertMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
