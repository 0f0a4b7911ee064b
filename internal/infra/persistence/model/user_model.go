// Package model holds the GORM persistence models. They are the only types
// that carry credential columns.
package model

import "time"

// UserModel mirrors the 'users' table created by the goose migrations.
type UserModel struct {
	ID           int64     `gorm:"primaryKey;autoIncrement"`
	FirstName    string    `gorm:"type:varchar(128);not null"`
	LastName     string    `gorm:"type:varchar(128);not null"`
	Email        string    `gorm:"type:varchar(128);not null;uniqueIndex:users_email_key"`
	PasswordHash string    `gorm:"type:varchar(255);not null"`
	Salt         string    `gorm:"type:varchar(128);not null"`
	CreatedAt    time.Time `gorm:"not null;autoCreateTime:false"`
	UpdatedAt    time.Time `gorm:"not null;autoUpdateTime:false"`
}

// TableName explicitly sets the table name for GORM.
func (UserModel) TableName() string {
	return "users"
}
