package model

import "time"

type FoodRequest struct {
	RequestID   string    `gorm:"column:request_id;primaryKey;size:36" json:"requestId"`
	DonationID  string    `gorm:"column:donation_id;size:36;index;not null" json:"donationId"`
	RequestedBy string    `gorm:"column:requested_by;size:128;index;not null" json:"requestedBy"`
	Cancelled   bool      `gorm:"column:cancelled;not null;default:false" json:"cancelled"`
	CreatedOn   time.Time `gorm:"column:created_on;autoCreateTime" json:"createdOn"`
	UpdatedOn   time.Time `gorm:"column:updated_on;autoUpdateTime" json:"updatedOn"`
}

func (FoodRequest) TableName() string {
	return "food_requests"
}
