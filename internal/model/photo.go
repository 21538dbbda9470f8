package model

import "time"

type Photo struct {
	PhotoID    string    `gorm:"column:photo_id;primaryKey;size:36" json:"photoId"`
	DonationID string    `gorm:"column:donation_id;size:36;index:idx_photos_donation_id;not null" json:"donationId"`
	ImageURI   string    `gorm:"column:image_uri;size:512;not null" json:"imageUri"`
	CreatedOn  time.Time `gorm:"column:created_on;autoCreateTime" json:"createdOn"`
}

func (Photo) TableName() string {
	return "photos"
}
