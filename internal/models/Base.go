package models

import "time"

// Base replaces gorm.Model: records are hard-deleted, so there is no DeletedAt.
type Base struct {
	ID        uint      `gorm:"primaryKey" json:"id" form:"-"`
	CreatedAt time.Time `json:"created_at" form:"-"`
	UpdatedAt time.Time `json:"updated_at" form:"-"`
}

func (b *Base) GetID() uint   { return b.ID }
func (b *Base) SetID(id uint) { b.ID = id }

// Pointer is satisfied by every *Model in this package.
type Pointer[T any] interface {
	*T
	GetID() uint
	SetID(uint)
}
