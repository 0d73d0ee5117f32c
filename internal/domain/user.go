package domain

import "time"

// User is an account that owns file records.
type User struct {
	ID           int64     `json:"id" gorm:"primaryKey"`
	Email        string    `json:"email" gorm:"uniqueIndex;not null"`
	PasswordHash string    `json:"-" gorm:"not null"`
	CreatedAt    time.Time `json:"-" gorm:"autoCreateTime"`
}

// UserView is the public projection of an account.
type UserView struct {
	ID    int64  `json:"id"`
	Email string `json:"email"`
}

// View returns the public projection of the user.
func (u *User) View() UserView {
	return UserView{ID: u.ID, Email: u.Email}
}
