package models

type WeatherCondition struct {
	Base
	IncidentID         uint    `gorm:"index;not null" json:"incident_id" form:"incident_id" binding:"required"`
	Temperature        float64 `gorm:"type:decimal(10,2)" json:"temperature" form:"temperature"`
	Humidity           float64 `gorm:"type:decimal(10,2)" json:"humidity" form:"humidity" binding:"min=0,max=100"`
	WindSpeed          float64 `gorm:"type:decimal(10,2)" json:"wind_speed" form:"wind_speed" binding:"min=0"`
	WeatherDescription string  `gorm:"size:150" json:"weather_description" form:"weather_description" binding:"max=150"`

	Incident *Incident `gorm:"foreignKey:IncidentID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"incident,omitempty" form:"-" binding:"-"`
}
