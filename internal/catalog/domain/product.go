package domain

import "gorm.io/gorm"

type Category struct {
	gorm.Model
	Name string `gorm:"column:name;type:varchar(100);uniqueIndex;not null" json:"name"`
	Slug string `gorm:"column:slug;type:varchar(100);uniqueIndex;not null" json:"slug"`
}

func (Category) TableName() string { return "categories" }

type Product struct {
	gorm.Model
	Name        string   `gorm:"column:name;type:varchar(255);not null" json:"name"`
	Description string   `gorm:"column:description;type:text" json:"description"`
	Price       float64  `gorm:"column:price;type:decimal(12,2);not null" json:"price"`
	Stock       int      `gorm:"column:stock;not null;default:0" json:"stock"`
	ImagePath   string   `gorm:"column:image_path;type:varchar(512)" json:"image_path"`
	CategoryID  uint     `gorm:"column:category_id;index" json:"category_id"`
	Category    Category `gorm:"foreignKey:CategoryID" json:"category"`
}

func (Product) TableName() string { return "products" }

// InStock 请求数量是否可售
func (p *Product) InStock(quantity int) bool {
	return quantity > 0 && p.Stock >= quantity
}
