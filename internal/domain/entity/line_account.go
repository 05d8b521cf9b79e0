package entity

import "time"

// LineAccount links a LINE user id to the auth directory identity created for it.
// The unique index on line_user_id is what keeps one identity per LINE user.
type LineAccount struct {
	ID         uint      `gorm:"primaryKey;autoIncrement"`
	LineUserID string    `gorm:"column:line_user_id;uniqueIndex;not null"`
	AuthUserID string    `gorm:"column:auth_user_id;not null"`
	Email      string    `gorm:"column:email;not null"`
	CreatedAt  time.Time `gorm:"column:created_at"`
	UpdatedAt  time.Time `gorm:"column:updated_at"`
}

// TableName specifies the table name for the LineAccount entity.
func (LineAccount) TableName() string {
	return "line_accounts"
}
