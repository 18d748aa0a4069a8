package models

import "gorm.io/gorm"

type Product struct {
	gorm.Model
	Name        string         `gorm:"not null" json:"name"`
	Slug        string         `gorm:"unique;not null" json:"slug"`
	Price       uint           `gorm:"not null" json:"price"`
	Description string         `json:"description"`
	IsFeatured  bool           `gorm:"default:false" json:"isFeatured"`
	CategoryID  uint           `gorm:"not null" json:"categoryId"`
	Category    Category       `json:"category"`
	Images      []ProductImage `gorm:"foreignKey:ProductID" json:"images"`
}
