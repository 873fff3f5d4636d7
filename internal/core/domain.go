package core

import (
	"errors"
	"strings"
	"time"
)

const (
	Income  Kind = "income"
	Expense Kind = "expense"
)

const (
	// StatusClosed marks an invoice whose due date is already past.
	StatusClosed Status = "closed"
	// StatusDueSoon marks an invoice whose due date falls within the alert window.
	StatusDueSoon Status = "due-soon"
	// StatusHighValue marks an invoice whose total exceeds the alert threshold.
	StatusHighValue Status = "high-value"
	// StatusOK marks everything else.
	StatusOK Status = "ok"
)

// Day-of-month fallback applied when a transaction references a card that is
// no longer in the registry. Charges roll as late as possible and the owner
// is left empty.
const FallbackCardDay = 31

type (
	// Kind distinguishes money coming in from money going out.
	Kind string

	// Status is the classification of a projected invoice.
	Status string

	Date struct {
		time.Time
	}

	Money struct {
		Cents int64
	}

	// MonthKey identifies one calendar month, and by extension one billing cycle.
	MonthKey struct {
		Year  int
		Month int // 1-12
	}

	// Transaction is a financial event as entered by the user. Card payment
	// attributes are meaningful only when PaidByCard is set.
	Transaction struct {
		ID           string
		Date         Date
		Kind         Kind
		Category     string
		Description  string
		Amount       Money
		OwnerProfile string

		PaidByCard         bool
		CardID             string
		InstallmentCount   int
		CurrentInstallment int
		AutoGenerateFuture bool
	}

	// Card is a credit card registered by the user. ID doubles as the display
	// name and must be unique. DueDay defaults to ClosingDay when zero.
	Card struct {
		ID           string
		Brand        string
		OwnerProfile string
		ClosingDay   int // 1-31
		DueDay       int // 1-31, 0 means "same as closing day"
	}

	// Installment is one dated, amount-bearing slice of a purchase. It is
	// derived from a Transaction and never persisted as authoritative state.
	Installment struct {
		GroupID           string // shared by all installments of one purchase; empty for single-shot
		Index             int    // 1..TotalInstallments
		TotalInstallments int
		Date              Date
		Amount            Money
		CardID            string
		Kind              Kind
		Category          string
		Description       string
		OwnerProfile      string
	}

	// Invoice is the aggregated projection of all installments billed to one
	// card in one billing month. Recomputed fresh on every query.
	Invoice struct {
		CardID           string
		Owner            string
		Year             int
		Month            int
		Total            Money
		TransactionCount int
		DueDay           int // captured from the card at aggregation time
		DueDate          Date
		Status           Status
	}

	// InvoiceKey addresses one invoice in a projection's detail map.
	InvoiceKey struct {
		CardID string
		Month  MonthKey
	}
)

var (
	ErrInvalidDay         = errors.New("invalid day")
	ErrInvalidMonth       = errors.New("invalid month")
	ErrInvalidAmount      = errors.New("invalid amount")
	ErrInvalidKind        = errors.New("invalid kind")
	ErrEmptyDescription   = errors.New("empty description")
	ErrEmptyCategory      = errors.New("empty category")
	ErrEmptyCardID        = errors.New("empty card id")
	ErrInvalidInstallment = errors.New("invalid installment numbers")
)

// NewDate creates a new Date from year, month, day.
func NewDate(year, month, day int) Date {
	return Date{Time: time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)}
}

func (d Date) Validate() error {
	if d.IsZero() {
		return errors.New("date cannot be zero")
	}
	return nil
}

// Day returns the day of the month.
func (d Date) Day() int {
	return d.Time.Day()
}

// Month returns the month as 1-12.
func (d Date) Month() int {
	return int(d.Time.Month())
}

// Year returns the year.
func (d Date) Year() int {
	return d.Time.Year()
}

// AddMonths returns the date n calendar months later, clamping the day to the
// target month's length: Jan 31 plus one month yields Feb 28 (or 29), never an
// overflow into March.
func (d Date) AddMonths(n int) Date {
	y, m, day := d.Time.Date()
	m += time.Month(n)
	last := DaysInMonth(y, int(m)) // time.Date normalizes month overflow
	if day > last {
		day = last
	}
	return Date{Time: time.Date(y, m, day, 0, 0, 0, 0, time.UTC)}
}

// DaysUntil returns the number of whole days from d to other; negative when
// other is in the past.
func (d Date) DaysUntil(other Date) int {
	return int(other.Time.Sub(d.Time).Hours() / 24)
}

// DaysInMonth returns the length of the given month. Out-of-range months are
// normalized the way time.Date does (month 13 is January of the next year).
func DaysInMonth(year, month int) int {
	return time.Date(year, time.Month(month)+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// Key returns the MonthKey of the date's calendar month.
func (d Date) Key() MonthKey {
	return MonthKey{Year: d.Year(), Month: d.Month()}
}

func (k MonthKey) Validate() error {
	if k.Month < 1 || k.Month > 12 {
		return ErrInvalidMonth
	}
	return nil
}

// Next returns the following calendar month.
func (k MonthKey) Next() MonthKey {
	if k.Month == 12 {
		return MonthKey{Year: k.Year + 1, Month: 1}
	}
	return MonthKey{Year: k.Year, Month: k.Month + 1}
}

// Before reports whether k is strictly earlier than other.
func (k MonthKey) Before(other MonthKey) bool {
	if k.Year != other.Year {
		return k.Year < other.Year
	}
	return k.Month < other.Month
}

func (k Kind) Validate() error {
	switch k {
	case Income, Expense:
		return nil
	}
	return ErrInvalidKind
}

func (m Money) Validate() error {
	if m.Cents < 0 {
		return ErrInvalidAmount
	}
	return nil
}

func (t Transaction) Validate() error {
	if err := t.Date.Validate(); err != nil {
		return err
	}
	if err := t.Kind.Validate(); err != nil {
		return err
	}
	if len(strings.TrimSpace(t.Description)) == 0 {
		return ErrEmptyDescription
	}
	if len(t.Description) > 200 {
		return errors.New("description too long (max 200 characters)")
	}
	if err := t.Amount.Validate(); err != nil {
		return err
	}
	if strings.TrimSpace(t.Category) == "" {
		return ErrEmptyCategory
	}
	if t.PaidByCard {
		if strings.TrimSpace(t.CardID) == "" {
			return ErrEmptyCardID
		}
		if t.InstallmentCount > 1 {
			cur := t.CurrentInstallment
			if cur == 0 {
				cur = 1
			}
			if cur < 1 || cur > t.InstallmentCount {
				return ErrInvalidInstallment
			}
		}
	}
	return nil
}

func (c Card) Validate() error {
	if strings.TrimSpace(c.ID) == "" {
		return ErrEmptyCardID
	}
	if c.ClosingDay < 1 || c.ClosingDay > 31 {
		return ErrInvalidDay
	}
	if c.DueDay != 0 && (c.DueDay < 1 || c.DueDay > 31) {
		return ErrInvalidDay
	}
	return nil
}

// EffectiveDueDay returns the configured due day, falling back to the closing
// day when none is set.
func (c Card) EffectiveDueDay() int {
	if c.DueDay == 0 {
		return c.ClosingDay
	}
	return c.DueDay
}

// FallbackCard is the profile applied to installments whose card is missing
// from the registry. Deleting a card must not drop historical data.
func FallbackCard(id string) Card {
	return Card{ID: id, ClosingDay: FallbackCardDay, DueDay: FallbackCardDay}
}
