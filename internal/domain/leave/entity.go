package leave

import (
	"strings"
	"time"

	"github.com/storepulse/storeops-backend-go/internal/pkg/clock"
)

// Type is the closed leave category set, validated at the write boundary.
type Type string

const (
	TypeAnnual   Type = "annual"
	TypeSick     Type = "sick"
	TypeUnpaid   Type = "unpaid"
	TypePersonal Type = "personal" // fixed-quota category, 3 days/year
	TypeOther    Type = "other"
)

func (t Type) Valid() bool {
	switch t {
	case TypeAnnual, TypeSick, TypeUnpaid, TypePersonal, TypeOther:
		return true
	}
	return false
}

// ParseType classifies a free-text category label from the legacy import
// feed into the closed set. Kept only as a migration/import adapter; new
// writes carry a Type directly.
func ParseType(label string) (Type, bool) {
	l := strings.ToLower(label)
	switch {
	case strings.Contains(l, "unpaid"):
		return TypeUnpaid, strings.Contains(l, "half")
	case strings.Contains(l, "lakij") || strings.Contains(l, "personal"):
		return TypePersonal, strings.Contains(l, "half")
	case strings.Contains(l, "sick"):
		return TypeSick, strings.Contains(l, "half")
	default:
		return TypeAnnual, strings.Contains(l, "half")
	}
}

type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
)

// Request is one leave request. Only approved requests count toward
// consumption.
type Request struct {
	ID         string
	StoreID    string
	EmployeeID string
	Date       clock.Date
	Type       Type
	// HalfDay requests consume 0.5 days instead of 1.0.
	HalfDay        bool
	Status         Status
	Reason         string
	CertificateRef string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Days is the day value this request contributes when approved.
func (r Request) Days() float64 {
	if r.HalfDay {
		return 0.5
	}
	return 1.0
}
