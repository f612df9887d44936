package core

import (
	"errors"
	"strings"
	"time"
)

const (
	Daily   Frequency = "daily"
	Weekly  Frequency = "weekly"
	Monthly Frequency = "monthly"
	Yearly  Frequency = "yearly"
	OneTime Frequency = "one-time"
)

const (
	DefaultBudgetIcon = "💰"
	DefaultIncomeIcon = "💵"

	// UncategorizedName labels expenses without a matching budget.
	UncategorizedName = "Uncategorized"

	maxNameLength = 200
)

type (
	// Frequency is how often an income source recurs.
	Frequency string

	Date struct {
		time.Time
	}

	// Budget is a named spending allocation owned by one user.
	Budget struct {
		ID        string    `json:"id"`
		Name      string    `json:"name"`
		Amount    Money     `json:"amount"`
		Icon      string    `json:"icon"`
		OwnerID   string    `json:"ownerId"`
		CreatedAt time.Time `json:"createdAt"`
	}

	// Expense is a recorded outflow, optionally tied to a budget.
	// BudgetID is empty when the expense is not associated with any budget.
	Expense struct {
		ID        string    `json:"id"`
		Name      string    `json:"name"`
		Amount    Money     `json:"amount"`
		BudgetID  string    `json:"budgetId,omitempty"`
		OwnerID   string    `json:"ownerId"`
		CreatedAt time.Time `json:"createdAt"`
	}

	// Income is a recorded inflow with a recurrence frequency.
	Income struct {
		ID          string    `json:"id"`
		Name        string    `json:"name"`
		Amount      Money     `json:"amount"`
		Frequency   Frequency `json:"frequency"`
		Date        Date      `json:"date"`
		Description string    `json:"description,omitempty"`
		Icon        string    `json:"icon"`
		OwnerID     string    `json:"ownerId"`
		CreatedAt   time.Time `json:"createdAt"`
	}

	// Goal is an ownerless savings target kept in local state.
	Goal struct {
		ID            string    `json:"id"`
		Title         string    `json:"title"`
		TargetAmount  Money     `json:"targetAmount"`
		CurrentAmount Money     `json:"currentAmount"`
		Deadline      Date      `json:"deadline"`
		Category      string    `json:"category"`
		CreatedAt     time.Time `json:"createdAt"`
	}
)

var (
	ErrInvalidDay       = errors.New("invalid day")
	ErrInvalidMonth     = errors.New("invalid month")
	ErrInvalidDate      = errors.New("invalid date")
	ErrMissingAmount    = errors.New("missing amount")
	ErrInvalidAmount    = errors.New("invalid amount")
	ErrNegativeAmount   = errors.New("amount must not be negative")
	ErrEmptyName        = errors.New("empty name")
	ErrNameTooLong      = errors.New("name too long (max 200 characters)")
	ErrEmptyTitle       = errors.New("empty title")
	ErrInvalidFrequency = errors.New("invalid frequency")
	ErrMissingOwner     = errors.New("missing owner id")
	ErrNotFound         = errors.New("not found")
)

// Frequencies lists every accepted income frequency.
func Frequencies() []Frequency {
	return []Frequency{Daily, Weekly, Monthly, Yearly, OneTime}
}

// Valid reports whether f is a known frequency.
func (f Frequency) Valid() bool {
	switch f {
	case Daily, Weekly, Monthly, Yearly, OneTime:
		return true
	default:
		return false
	}
}

func (d Date) Validate() error {
	if d.IsZero() {
		return errors.New("date cannot be zero")
	}
	_, month, day := d.Date()
	if day < 1 || day > 31 {
		return ErrInvalidDay
	}
	if month < 1 || month > 12 {
		return ErrInvalidMonth
	}
	return nil
}

// Day returns the day of the month
func (d Date) Day() int {
	return d.Time.Day()
}

// Month returns the month
func (d Date) Month() int {
	return int(d.Time.Month())
}

// Year returns the year
func (d Date) Year() int {
	return d.Time.Year()
}

// NewDate creates a new Date from year, month, day
func NewDate(year, month, day int) Date {
	return Date{Time: time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)}
}

// IsEmpty returns true if the date is zero (optional dates)
func (d Date) IsEmpty() bool {
	return d.IsZero()
}

// String formats the date as YYYY-MM-DD, or "" when empty.
func (d Date) String() string {
	if d.IsZero() {
		return ""
	}
	return d.Format(time.DateOnly)
}

// ParseDate accepts YYYY-MM-DD or RFC 3339. Empty input yields an empty date.
func ParseDate(s string) (Date, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Date{}, nil
	}
	if t, err := time.Parse(time.DateOnly, s); err == nil {
		return Date{Time: t}, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return Date{}, ErrInvalidDate
	}
	return NewDate(t.Year(), int(t.Month()), t.Day()), nil
}

func (d Date) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.String() + `"`), nil
}

func (d *Date) UnmarshalJSON(b []byte) error {
	s := strings.Trim(strings.TrimSpace(string(b)), `"`)
	if s == "null" {
		*d = Date{}
		return nil
	}
	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

func validateName(name string) error {
	if len(strings.TrimSpace(name)) == 0 {
		return ErrEmptyName
	}
	if len(name) > maxNameLength {
		return ErrNameTooLong
	}
	return nil
}

func (b Budget) Validate() error {
	if err := validateName(b.Name); err != nil {
		return err
	}
	if b.Amount.IsNegative() {
		return ErrNegativeAmount
	}
	if strings.TrimSpace(b.OwnerID) == "" {
		return ErrMissingOwner
	}
	return nil
}

func (e Expense) Validate() error {
	if err := validateName(e.Name); err != nil {
		return err
	}
	if e.Amount.IsNegative() {
		return ErrNegativeAmount
	}
	if strings.TrimSpace(e.OwnerID) == "" {
		return ErrMissingOwner
	}
	return nil
}

func (i Income) Validate() error {
	if err := validateName(i.Name); err != nil {
		return err
	}
	if i.Amount.IsNegative() {
		return ErrNegativeAmount
	}
	if !i.Frequency.Valid() {
		return ErrInvalidFrequency
	}
	if !i.Date.IsEmpty() {
		if err := i.Date.Validate(); err != nil {
			return err
		}
	}
	if strings.TrimSpace(i.OwnerID) == "" {
		return ErrMissingOwner
	}
	return nil
}

func (g Goal) Validate() error {
	if len(strings.TrimSpace(g.Title)) == 0 {
		return ErrEmptyTitle
	}
	if len(g.Title) > maxNameLength {
		return ErrNameTooLong
	}
	if g.TargetAmount.Cents <= 0 {
		return ErrInvalidAmount
	}
	if g.CurrentAmount.IsNegative() {
		return ErrNegativeAmount
	}
	return nil
}

// ApplyDefaults fills optional fields the way records are stored.
func (b *Budget) ApplyDefaults() {
	b.Name = strings.TrimSpace(b.Name)
	if b.Icon == "" {
		b.Icon = DefaultBudgetIcon
	}
}

// ApplyDefaults fills optional fields the way records are stored.
func (i *Income) ApplyDefaults() {
	i.Name = strings.TrimSpace(i.Name)
	if i.Icon == "" {
		i.Icon = DefaultIncomeIcon
	}
	if i.Frequency == "" {
		i.Frequency = Monthly
	}
}

// ApplyDefaults fills optional fields the way records are stored.
func (e *Expense) ApplyDefaults() {
	e.Name = strings.TrimSpace(e.Name)
	e.BudgetID = strings.TrimSpace(e.BudgetID)
}

// ApplyDefaults fills optional fields the way records are stored.
func (g *Goal) ApplyDefaults() {
	g.Title = strings.TrimSpace(g.Title)
	if g.Category == "" {
		g.Category = "savings"
	}
}

// Progress is the share of the target reached, capped at 100.
func (g Goal) Progress() float64 {
	if g.TargetAmount.Cents <= 0 {
		return 0
	}
	p := float64(g.CurrentAmount.Cents) * 100 / float64(g.TargetAmount.Cents)
	if p > 100 {
		return 100
	}
	if p < 0 {
		return 0
	}
	return p
}
