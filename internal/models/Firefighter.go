package models

type Firefighter struct {
	Base
	Name            string `gorm:"size:150;not null" json:"name" form:"name" binding:"required,max=150"`
	Rank            string `gorm:"size:45;not null" json:"rank" form:"rank" binding:"required"`
	ExperienceLevel string `gorm:"size:45;not null" json:"experience_level" form:"experience_level" binding:"required"`
	StationID       uint   `gorm:"index;not null" json:"station_id" form:"station_id" binding:"required"`

	Station *FireStation `gorm:"foreignKey:StationID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;" json:"station,omitempty" form:"-" binding:"-"`
}
