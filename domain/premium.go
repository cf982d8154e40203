package domain

import "time"

type Premium struct {
	ID           string    `bson:"id" json:"id"`
	User         string    `bson:"user" json:"user"`
	StartingDate time.Time `bson:"starting_date" json:"starting_date"`
	ClosingDate  time.Time `bson:"closing_date" json:"closing_date"`
	ReferralCode string    `bson:"referral_code" json:"referral_code"`
	AmountPaid   float64   `bson:"amount_paid" json:"amount_paid"`
	CreatedAt    time.Time `bson:"created_at" json:"created_at"`
}

// ActiveAt reports whether the membership covers the given instant. The
// boundary is exclusive: a membership closing exactly now is expired.
func (p *Premium) ActiveAt(now time.Time) bool {
	return now.Before(p.ClosingDate)
}
