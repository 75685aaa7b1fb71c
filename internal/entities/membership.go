package entities

import "time"

// MembershipType labels combine audience (normal/student) with duration.
type MembershipType string

const (
	MembershipNormalMonthly    MembershipType = "normal_monthly"
	MembershipNormalQuarterly  MembershipType = "normal_quarterly"
	MembershipNormalYearly     MembershipType = "normal_yearly"
	MembershipStudentMonthly   MembershipType = "student_monthly"
	MembershipStudentQuarterly MembershipType = "student_quarterly"
	MembershipStudentYearly    MembershipType = "student_yearly"
)

// MembershipTypes lists every valid membership type label.
var MembershipTypes = []MembershipType{
	MembershipNormalMonthly,
	MembershipNormalQuarterly,
	MembershipNormalYearly,
	MembershipStudentMonthly,
	MembershipStudentQuarterly,
	MembershipStudentYearly,
}

func ValidMembershipType(t MembershipType) bool {
	for _, known := range MembershipTypes {
		if t == known {
			return true
		}
	}
	return false
}

type Membership struct {
	ID        int64          `db:"id" json:"id"`
	ClientID  int64          `db:"client_id" json:"client_id"`
	Type      MembershipType `db:"type" json:"type"`
	StartDate string         `db:"start_date" json:"start_date"`
	EndDate   string         `db:"end_date" json:"end_date"`
	Price     float64        `db:"price" json:"price"`
	IsActive  bool           `db:"is_active" json:"is_active"`
}

// IsValid reports whether the membership is usable today: the active flag
// is set and today falls within [start, end]. String comparison is correct
// for the fixed-width date format.
func (m Membership) IsValid() bool {
	today := Today()
	return m.IsActive && m.StartDate <= today && today <= m.EndDate
}

// DaysRemaining returns the number of days until the membership expires,
// zero for expired or malformed memberships.
func (m Membership) DaysRemaining() int {
	end, err := time.Parse(DateFormat, m.EndDate)
	if err != nil {
		return 0
	}
	today, _ := time.Parse(DateFormat, Today())
	days := int(end.Sub(today).Hours() / 24)
	if days < 0 {
		return 0
	}
	return days
}
