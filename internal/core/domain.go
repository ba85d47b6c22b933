package core

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// UnknownCounterparty is the sentinel used when a bank export row carries no
// counterparty name.
const UnknownCounterparty = "Unknown"

// NoLabel is the sentinel label for counterparties without a label record.
const NoLabel = "no label"

type (
	// RawRecord is a single source row as read from a bank export file,
	// keyed by trimmed column name. Purely transport, no invariants.
	RawRecord map[string]string

	// Month is a calendar month used as grouping key for summaries.
	Month struct {
		Year  int
		Month time.Month
	}

	// Transaction is a canonical, normalized bank transaction. Date and
	// Amount are always valid; rows that fail parsing never become a
	// Transaction.
	Transaction struct {
		Date                time.Time
		Amount              decimal.Decimal
		Counterparty        string
		CounterpartyAccount string
		OwnAccount          string
		Month               Month
	}

	// LabelRecord is the persistent, user-authored mapping from an exact
	// counterparty name to a free-text label and a business flag.
	LabelRecord struct {
		Counterparty string
		Label        string
		IsBusiness   bool
	}
)

var ErrInvalidMonth = errors.New("invalid month")

// MonthOf truncates a date to its calendar month.
func MonthOf(t time.Time) Month {
	return Month{Year: t.Year(), Month: t.Month()}
}

// ParseMonth parses the "2006-01" form produced by Month.String.
func ParseMonth(s string) (Month, error) {
	t, err := time.Parse("2006-01", strings.TrimSpace(s))
	if err != nil {
		return Month{}, fmt.Errorf("%w: %q", ErrInvalidMonth, s)
	}
	return MonthOf(t), nil
}

func (m Month) String() string {
	return fmt.Sprintf("%04d-%02d", m.Year, int(m.Month))
}

// Before reports whether m is chronologically before other.
func (m Month) Before(other Month) bool {
	if m.Year != other.Year {
		return m.Year < other.Year
	}
	return m.Month < other.Month
}

func (m Month) IsZero() bool {
	return m.Year == 0 && m.Month == 0
}

func (m Month) MarshalJSON() ([]byte, error) {
	return []byte(`"` + m.String() + `"`), nil
}

func (m *Month) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	parsed, err := ParseMonth(s)
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}

// BusinessFilter restricts label summaries by the business flag.
type BusinessFilter int

const (
	FilterAll BusinessFilter = iota
	FilterBusinessOnly
	FilterNonBusinessOnly
)

var ErrInvalidFilter = errors.New("invalid business filter")

// ParseBusinessFilter maps the API query values to a filter. An empty value
// means no restriction.
func ParseBusinessFilter(s string) (BusinessFilter, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "all":
		return FilterAll, nil
	case "business":
		return FilterBusinessOnly, nil
	case "personal":
		return FilterNonBusinessOnly, nil
	default:
		return FilterAll, fmt.Errorf("%w: %q", ErrInvalidFilter, s)
	}
}

// Matches reports whether a row with the given business flag passes the filter.
func (f BusinessFilter) Matches(isBusiness bool) bool {
	switch f {
	case FilterBusinessOnly:
		return isBusiness
	case FilterNonBusinessOnly:
		return !isBusiness
	default:
		return true
	}
}
