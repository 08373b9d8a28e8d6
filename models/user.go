package models

import "time"

type User struct {
	ID        uint       `gorm:"column:id;primaryKey" json:"id"`
	Username  string     `gorm:"column:username;size:80;uniqueIndex;not null" json:"username"`
	Email     string     `gorm:"column:email;size:120;uniqueIndex;not null" json:"email"`
	Password  string     `gorm:"column:password;size:200;not null" json:"-"`
	Role      string     `gorm:"column:role;size:20;default:user" json:"role"`
	CreatedAt time.Time  `gorm:"column:created_at" json:"created_at"`
	LastLogin *time.Time `gorm:"column:last_login" json:"last_login"`
	Active    bool       `gorm:"column:is_active;default:true" json:"is_active"`
}

func (User) TableName() string { return "users" }

func (u User) IsAdmin() bool { return u.Role == "admin" }
