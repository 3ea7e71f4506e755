package models

import (
	"time"

	"gorm.io/gorm"
)

type Incident struct {
	Base
	LocationID    uint      `gorm:"index;not null" json:"location_id" form:"location_id" binding:"required"`
	DateTime      time.Time `gorm:"index;not null" json:"date_time" form:"date_time" time_format:"2006-01-02T15:04" binding:"required"`
	SeverityLevel string    `gorm:"size:45;index;not null" json:"severity_level" form:"severity_level" binding:"required"`
	Description   string    `gorm:"size:250" json:"description" form:"description" binding:"max=250"`

	Location *Location `gorm:"foreignKey:LocationID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;" json:"location,omitempty" form:"-" binding:"-"`
}

// BeforeSave keeps every stored timestamp in UTC so month and year
// extraction agree across drivers.
func (i *Incident) BeforeSave(*gorm.DB) error {
	i.DateTime = i.DateTime.UTC()
	return nil
}
