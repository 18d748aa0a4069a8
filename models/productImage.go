package models

import "gorm.io/gorm"

// ProductImage is owned exclusively by one Product. S3Key identifies the
// backing object in the bucket; ImageURL is the public URL built from it.
type ProductImage struct {
	gorm.Model
	ProductID uint   `gorm:"not null;index" json:"productId"`
	ImageURL  string `gorm:"not null" json:"imageUrl"`
	S3Key     string `gorm:"not null" json:"s3key"`
}
