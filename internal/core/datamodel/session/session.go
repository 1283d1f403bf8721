package session

import "time"

// Session persists one signed-in principal under a single opaque key.
// The principal snapshot is stored as a JSON payload and deserialized
// verbatim on restore; payloads that fail to parse are treated as if
// no session existed.
type Session struct {
	ID        string    `gorm:"primaryKey;column:id"`
	UserID    int64     `gorm:"column:user_id;not null;index"`
	Principal string    `gorm:"column:principal;not null"`
	ExpiresAt time.Time `gorm:"column:expires_at;not null"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
}

func (Session) TableName() string {
	return "sessions"
}
