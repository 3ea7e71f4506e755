package models

// FireStation has the same geographic shape as Location but is its own table.
type FireStation struct {
	Base
	Name      string  `gorm:"size:150;not null" json:"name" form:"name" binding:"required,max=150"`
	Latitude  float64 `gorm:"type:decimal(22,16)" json:"latitude" form:"latitude" binding:"min=-90,max=90"`
	Longitude float64 `gorm:"type:decimal(22,16)" json:"longitude" form:"longitude" binding:"min=-180,max=180"`
	Address   string  `gorm:"size:150" json:"address" form:"address" binding:"max=150"`
	City      string  `gorm:"size:150" json:"city" form:"city" binding:"max=150"`
	Country   string  `gorm:"size:150" json:"country" form:"country" binding:"max=150"`
}
