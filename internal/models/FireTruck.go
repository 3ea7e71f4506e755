package models

type FireTruck struct {
	Base
	TruckNumber string `gorm:"size:10;uniqueIndex;not null" json:"truck_number" form:"truck_number" binding:"required,max=10"`
	Model       string `gorm:"size:150;not null" json:"model" form:"model" binding:"required,max=150"`
	Capacity    int    `gorm:"not null" json:"capacity" form:"capacity" binding:"min=0"`
	StationID   uint   `gorm:"index;not null" json:"station_id" form:"station_id" binding:"required"`

	Station *FireStation `gorm:"foreignKey:StationID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;" json:"station,omitempty" form:"-" binding:"-"`
}
