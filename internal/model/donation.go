package model

import "time"

type FoodStatus string

const (
	FoodStatusAvailable FoodStatus = "available"
	FoodStatusRequested FoodStatus = "requested"
	FoodStatusDonated   FoodStatus = "donated"
)

// BestBeforeLayout is the calendar-date format stored on donations.
const BestBeforeLayout = "2006-01-02"

type Donation struct {
	DonationID  string     `gorm:"column:donation_id;primaryKey;size:36" json:"donationId"`
	DonatedBy   string     `gorm:"column:donated_by;size:128;index;not null" json:"donatedBy"`
	Title       string     `gorm:"column:title;size:120;not null" json:"title"`
	Description string     `gorm:"column:description;type:text" json:"description"`
	Quantity    string     `gorm:"column:quantity;size:60" json:"quantity"`
	BestBefore  string     `gorm:"column:best_before;size:10" json:"bestBefore"`
	Status      FoodStatus `gorm:"column:status;size:32;index;not null" json:"status"`
	FoodDeleted bool       `gorm:"column:food_deleted;not null;default:false" json:"foodDeleted"`
	CreatedOn   time.Time  `gorm:"column:created_on;autoCreateTime" json:"createdOn"`
	UpdatedOn   time.Time  `gorm:"column:updated_on;autoUpdateTime" json:"updatedOn"`

	// Populated at read time, never persisted on the donation row.
	Location    *Location `gorm:"-" json:"location,omitempty"`
	ImageURIs   []string  `gorm:"-" json:"imageUris,omitempty"`
	RequestedBy string    `gorm:"-" json:"requestedBy,omitempty"`
}

func (Donation) TableName() string {
	return "donations"
}

// Expired reports whether the best-before date is strictly before the
// calendar date of now in local time. A malformed or empty date counts
// as expired so it never shows up as available.
func (d Donation) Expired(now time.Time) bool {
	best, err := time.ParseInLocation(BestBeforeLayout, d.BestBefore, time.Local)
	if err != nil {
		return true
	}
	y, m, day := now.Date()
	today := time.Date(y, m, day, 0, 0, 0, 0, time.Local)
	return best.Before(today)
}

// CanTransition reports whether moving from the current status to next is
// one of the legal moves: available→requested, requested→donated, and
// requested→available when a request is withdrawn.
func (d Donation) CanTransition(next FoodStatus) bool {
	switch d.Status {
	case FoodStatusAvailable:
		return next == FoodStatusRequested
	case FoodStatusRequested:
		return next == FoodStatusDonated || next == FoodStatusAvailable
	default:
		return false
	}
}
