package dukamodel

import "time"

// Session is a signed-in browser. UserID is the backend's _id for the user.
type Session struct {
	ID        int    `json:"id"`
	Token     string `json:"-" gorm:"uniqueIndex;size:64"`
	UserID    string `json:"user_id" gorm:"index;size:64"`
	Username  string `json:"username"`
	Language  string `json:"language"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

type UserPreference struct {
	UserID    string `json:"user_id" gorm:"primaryKey;size:64"`
	Language  string `json:"language"`
	UpdatedAt time.Time
}
