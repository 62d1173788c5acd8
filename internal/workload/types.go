// Package workload implements the faculty workload computation engine:
// period norms, activity aggregation, overcompliance, teaching overload and
// overload-pay allocation. Every function is a pure computation over rows
// already fetched by the caller; the package performs no I/O.
package workload

import (
	"time"

	"github.com/shopspring/decimal"
)

// MemberRow is a faculty member as fetched for workload computation. Members
// without an assigned category carry a nil CategoryID and are skipped by
// norm-based calculations.
type MemberRow struct {
	ID           uint
	Name         string
	Surname      string
	RoleID       uint
	DepartmentID *uint
	CategoryID   *uint
	Category     string
	WeeklyNorm   decimal.Decimal
}

// ActivityRow is a single recorded activity enriched with the capability
// flags of its activity type.
type ActivityRow struct {
	MemberID       uint
	TypeID         uint
	TypeName       string
	Date           time.Time
	Hours          decimal.Decimal
	DirectTeaching bool
	Pregrad        bool
	Preparation    bool
}

// TypeTotal is the aggregated hour total for one activity type.
type TypeTotal struct {
	TypeID   uint
	TypeName string
	Hours    decimal.Decimal
}
