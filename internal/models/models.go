package models

import (
	"time"
)

type User struct {
	ID           uint   `gorm:"primaryKey;autoIncrement"      json:"id"`
	Username     string `gorm:"size:255;uniqueIndex;not null" json:"username"`
	PasswordHash string `gorm:"size:255;not null"             json:"-"`
	Disabled     bool   `gorm:"not null;default:false"        json:"disabled"`
}

func (u *User) Active() bool { return !u.Disabled }

type Snake struct {
	ID          uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	Species     string `gorm:"size:255;not null"        json:"snake_species"`
	Description string `gorm:"size:255;not null"        json:"snake_description"`
	Sex         string `gorm:"size:255;not null"        json:"snake_sex"`
	ImageURL    string `gorm:"size:255"                 json:"snake_image"`
	ImageKey    string `gorm:"size:255"                 json:"-"`
}

type Message struct {
	ID       uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Sender   string    `gorm:"size:255;not null"        json:"sender"`
	Body     string    `gorm:"size:255;not null"        json:"body"`
	Title    string    `gorm:"size:255;not null"        json:"title"`
	Datetime time.Time `gorm:"not null"                 json:"datetime"`
}

func All() []any {
	return []any{&User{}, &Snake{}, &Message{}}
}
