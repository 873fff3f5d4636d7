package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"fatura/internal/core"
)

const maxBodySize = 1 << 20 // 1MB

// amountField accepts a monetary amount as either a JSON string ("150,00")
// or a bare number (150.00).
type amountField string

func (a *amountField) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*a = amountField(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err == nil {
		*a = amountField(n.String())
		return nil
	}
	return errors.New("amount must be a string or number")
}

type transactionRequest struct {
	Date               string      `json:"date"`
	Kind               string      `json:"kind"`
	Category           string      `json:"category"`
	Description        string      `json:"description"`
	Amount             amountField `json:"amount"`
	OwnerProfile       string      `json:"owner_profile"`
	PaidByCard         bool        `json:"paid_by_card"`
	CardID             string      `json:"card_id"`
	InstallmentCount   int         `json:"installment_count"`
	CurrentInstallment int         `json:"current_installment"`
	AutoGenerateFuture bool        `json:"auto_generate_future"`
}

func (req transactionRequest) toTransaction() (core.Transaction, error) {
	date, err := parseDate(req.Date)
	if err != nil {
		return core.Transaction{}, fmt.Errorf("invalid date: %w", err)
	}
	cents, err := core.ParseDecimalToCents(string(req.Amount))
	if err != nil {
		return core.Transaction{}, fmt.Errorf("invalid amount: %w", err)
	}
	t := core.Transaction{
		Date:               date,
		Kind:               core.Kind(strings.TrimSpace(req.Kind)),
		Category:           strings.TrimSpace(req.Category),
		Description:        strings.TrimSpace(req.Description),
		Amount:             core.Money{Cents: cents},
		OwnerProfile:       strings.TrimSpace(req.OwnerProfile),
		PaidByCard:         req.PaidByCard,
		CardID:             strings.TrimSpace(req.CardID),
		InstallmentCount:   req.InstallmentCount,
		CurrentInstallment: req.CurrentInstallment,
		AutoGenerateFuture: req.AutoGenerateFuture,
	}
	if err := t.Validate(); err != nil {
		return core.Transaction{}, err
	}
	return t, nil
}

type cardRequest struct {
	ID           string `json:"id"`
	Brand        string `json:"brand"`
	OwnerProfile string `json:"owner_profile"`
	ClosingDay   int    `json:"closing_day"`
	DueDay       int    `json:"due_day"`
}

func (req cardRequest) toCard() (core.Card, error) {
	c := core.Card{
		ID:           strings.TrimSpace(req.ID),
		Brand:        strings.TrimSpace(req.Brand),
		OwnerProfile: strings.TrimSpace(req.OwnerProfile),
		ClosingDay:   req.ClosingDay,
		DueDay:       req.DueDay,
	}
	if err := c.Validate(); err != nil {
		return core.Card{}, err
	}
	return c, nil
}

func decodeJSON(r *http.Request, dst any) error {
	dec := json.NewDecoder(http.MaxBytesReader(nil, r.Body, maxBodySize))
	if err := dec.Decode(dst); err != nil {
		return fmt.Errorf("decode request body: %w", err)
	}
	return nil
}

func parseDate(s string) (core.Date, error) {
	t, err := time.Parse("2006-01-02", strings.TrimSpace(s))
	if err != nil {
		return core.Date{}, err
	}
	return core.Date{Time: t}, nil
}

// parseMonths reads the months query parameter, falling back to def when
// absent. Range validation happens later in the projection window.
func parseMonths(query url.Values, def int) (int, error) {
	v := strings.TrimSpace(query.Get("months"))
	if v == "" {
		return def, nil
	}
	months, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("invalid months parameter %q", v)
	}
	return months, nil
}

// parseDateRange reads from/to query parameters, defaulting to the current
// calendar year.
func parseDateRange(query url.Values) (from, to core.Date, err error) {
	now := time.Now().UTC()
	from = core.NewDate(now.Year(), 1, 1)
	to = core.NewDate(now.Year(), 12, 31)

	if v := strings.TrimSpace(query.Get("from")); v != "" {
		from, err = parseDate(v)
		if err != nil {
			return from, to, fmt.Errorf("invalid from parameter: %w", err)
		}
	}
	if v := strings.TrimSpace(query.Get("to")); v != "" {
		to, err = parseDate(v)
		if err != nil {
			return from, to, fmt.Errorf("invalid to parameter: %w", err)
		}
	}
	if to.Before(from.Time) {
		return from, to, errors.New("to parameter before from parameter")
	}
	return from, to, nil
}

// parseInvoicePath extracts card id, year and month from a detail path of the
// form /api/invoices/{card}/{year}/{month}.
func parseInvoicePath(path string) (cardID string, year, month int, err error) {
	rest := strings.TrimPrefix(path, "/api/invoices/")
	parts := strings.Split(strings.Trim(rest, "/"), "/")
	if len(parts) != 3 || parts[0] == "" {
		return "", 0, 0, errors.New("expected /api/invoices/{card}/{year}/{month}")
	}
	cardID, err = url.PathUnescape(parts[0])
	if err != nil {
		return "", 0, 0, fmt.Errorf("invalid card id: %w", err)
	}
	year, err = strconv.Atoi(parts[1])
	if err != nil {
		return "", 0, 0, fmt.Errorf("invalid year %q", parts[1])
	}
	month, err = strconv.Atoi(parts[2])
	if err != nil || month < 1 || month > 12 {
		return "", 0, 0, fmt.Errorf("invalid month %q", parts[2])
	}
	return cardID, year, month, nil
}

// pathID extracts the trailing id from paths like /api/transactions/{id}.
func pathID(path, prefix string) (string, error) {
	rest := strings.Trim(strings.TrimPrefix(path, prefix), "/")
	if rest == "" || strings.Contains(rest, "/") {
		return "", errors.New("missing or malformed id in path")
	}
	return url.PathUnescape(rest)
}
