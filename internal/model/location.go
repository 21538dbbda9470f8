package model

import "time"

type Location struct {
	LocationID      string    `gorm:"column:location_id;primaryKey;size:36" json:"locationId"`
	DonationID      string    `gorm:"column:donation_id;size:36;index;not null" json:"donationId"`
	Address         string    `gorm:"column:address;size:255;not null" json:"address"`
	Latitude        float64   `gorm:"column:latitude" json:"latitude"`
	Longitude       float64   `gorm:"column:longitude" json:"longitude"`
	LocationDeleted bool      `gorm:"column:location_deleted;not null;default:false" json:"locationDeleted"`
	UpdatedOn       time.Time `gorm:"column:updated_on;autoUpdateTime" json:"updatedOn"`
}

func (Location) TableName() string {
	return "locations"
}
