package migrations

import (
	"time"

	"github.com/lib/pq"
	"gorm.io/gorm"
)

// Run applies the schema of the reference cart service.
func Run(db *gorm.DB) error {
	if db == nil {
		return nil
	}
	return db.AutoMigrate(
		&cartRecord{},
		&sessionRecord{},
	)
}

// Cart schema mirrors the carts Postgres adapter.
type cartRecord struct {
	UserID    string         `gorm:"primaryKey;column:user_id;size:255"`
	ItemOrder pq.StringArray `gorm:"column:item_order;type:text[]"`
	Lines     map[string]any `gorm:"column:lines;type:jsonb;serializer:json"`
	CreatedAt time.Time      `gorm:"column:created_at"`
	UpdatedAt time.Time      `gorm:"column:updated_at;index"`
}

func (cartRecord) TableName() string { return "carts" }

// Session schema mirrors the sessions Postgres store.
type sessionRecord struct {
	Token     string     `gorm:"primaryKey;column:token;size:512"`
	UserID    string     `gorm:"column:user_id;index"`
	ExpiresAt *time.Time `gorm:"column:expires_at;index"`
	CreatedAt time.Time  `gorm:"column:created_at;index"`
	UpdatedAt time.Time  `gorm:"column:updated_at;index"`
}

func (sessionRecord) TableName() string { return "cart_sessions" }
