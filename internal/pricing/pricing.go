package pricing

import (
	"fmt"

	"nafs-registration.backend/internal/domain/entities"
	domainerrors "nafs-registration.backend/internal/domain/errors"
)

// Tier is one volume pricing rule for school group registrations.
// ProgrammeFee is the already-discounted per-student fee, so totals are
// exact integer arithmetic with no percentage rounding at request time.
type Tier struct {
	MinStudents     int
	ProgrammeFee    int64
	DiscountPercent int
}

// Config holds the pricing table. Tiers must be ordered by descending
// MinStudents and end with a MinStudents=1 fallback tier.
type Config struct {
	BookFee         int64
	IndividualPrice int64
	Tiers           []Tier
}

// DefaultConfig returns the Naira pricing table
func DefaultConfig() Config {
	return Config{
		BookFee:         2500,
		IndividualPrice: 5000,
		Tiers: []Tier{
			{MinStudents: 100, ProgrammeFee: 1750, DiscountPercent: 30},
			{MinStudents: 50, ProgrammeFee: 2000, DiscountPercent: 20},
			{MinStudents: 20, ProgrammeFee: 2250, DiscountPercent: 10},
			{MinStudents: 1, ProgrammeFee: 2500, DiscountPercent: 0},
		},
	}
}

// Quote is the priced breakdown for a school group
type Quote struct {
	ProgrammeFee    int64 `json:"programmeFee"`
	BookFee         int64 `json:"bookFee"`
	PerStudent      int64 `json:"perStudent"`
	Total           int64 `json:"total"`
	DiscountPercent int   `json:"discountPercent"`
}

// Engine prices registrations from an injected configuration
type Engine struct {
	cfg Config
}

// NewEngine validates the pricing table and returns an engine
func NewEngine(cfg Config) (*Engine, error) {
	if len(cfg.Tiers) == 0 {
		return nil, fmt.Errorf("pricing: no tiers configured")
	}
	if cfg.BookFee < 0 || cfg.IndividualPrice <= 0 {
		return nil, fmt.Errorf("pricing: invalid base fees")
	}
	prev := 0
	for i, t := range cfg.Tiers {
		if t.ProgrammeFee < 0 || t.DiscountPercent < 0 || t.DiscountPercent > 100 {
			return nil, fmt.Errorf("pricing: invalid tier at index %d", i)
		}
		if i > 0 && t.MinStudents >= prev {
			return nil, fmt.Errorf("pricing: tiers must be ordered by descending threshold")
		}
		prev = t.MinStudents
	}
	if cfg.Tiers[len(cfg.Tiers)-1].MinStudents != 1 {
		return nil, fmt.Errorf("pricing: missing fallback tier with threshold 1")
	}
	return &Engine{cfg: cfg}, nil
}

// MustNewEngine is NewEngine panicking on invalid config, for wiring
// with the compiled-in default table.
func MustNewEngine(cfg Config) *Engine {
	e, err := NewEngine(cfg)
	if err != nil {
		panic(err)
	}
	return e
}

// Config returns the table the engine was built with, for read-only
// display. Handlers must render this rather than the compiled-in
// default so the public pricing page and the charged amounts always
// come from the same table.
func (e *Engine) Config() Config {
	return e.cfg
}

// tierFor selects the first tier whose threshold is at or below the
// count. Thresholds are boundary-inclusive: exactly 20 students earns
// the 10% tier.
func (e *Engine) tierFor(studentCount int) Tier {
	for _, t := range e.cfg.Tiers {
		if studentCount >= t.MinStudents {
			return t
		}
	}
	return e.cfg.Tiers[len(e.cfg.Tiers)-1]
}

// SchoolPrice prices a school group registration. Counts below 1 are
// rejected, not clamped.
func (e *Engine) SchoolPrice(studentCount int) (Quote, error) {
	if studentCount < 1 {
		return Quote{}, domainerrors.NewError("student count must be at least 1", domainerrors.ErrInvalidInput)
	}

	tier := e.tierFor(studentCount)
	perStudent := tier.ProgrammeFee + e.cfg.BookFee
	return Quote{
		ProgrammeFee:    tier.ProgrammeFee,
		BookFee:         e.cfg.BookFee,
		PerStudent:      perStudent,
		Total:           perStudent * int64(studentCount),
		DiscountPercent: tier.DiscountPercent,
	}, nil
}

// Discount returns the discount percentage a student count qualifies for
func (e *Engine) Discount(studentCount int) int {
	if studentCount < 1 {
		return 0
	}
	return e.tierFor(studentCount).DiscountPercent
}

// IndividualPrice returns the fixed price for a non-school category
func (e *Engine) IndividualPrice(category entities.RegistrationCategory) (int64, error) {
	switch category {
	case entities.CategoryUniversity, entities.CategoryGeneral:
		return e.cfg.IndividualPrice, nil
	default:
		return 0, domainerrors.NewError("category has no fixed price", domainerrors.ErrInvalidInput)
	}
}
