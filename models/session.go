package models

import "time"

// Session is a server-side login session. The token travels as a bearer
// token or cookie; expiry is checked on every authenticated request.
type Session struct {
	ID        uint      `gorm:"primaryKey;column:sessionId" json:"sessionId"`
	UserID    uint      `gorm:"column:userId;not null;index" json:"userId"`
	User      User      `gorm:"foreignKey:UserID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
	Token     string    `gorm:"type:varchar(64);uniqueIndex;not null" json:"-"`
	ExpiresAt time.Time `gorm:"not null" json:"expiresAt"`
	CreatedAt time.Time `gorm:"not null" json:"createdAt"`
}

func (s *Session) Expired(now time.Time) bool {
	return now.After(s.ExpiresAt)
}
