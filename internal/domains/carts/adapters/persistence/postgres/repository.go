package postgres

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/lib/pq"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	cartdomain "github.com/Apurer/cartsync/internal/domains/cart/domain"
	"github.com/Apurer/cartsync/internal/domains/carts/domain"
	"github.com/Apurer/cartsync/internal/domains/carts/ports"
	"github.com/Apurer/cartsync/internal/shared/projection"
)

var _ ports.Repository = (*Repository)(nil)

// Repository persists cart documents in PostgreSQL using GORM. Caller manages DB lifecycle.
type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// cartRecord stores lines keyed by item id; ItemOrder keeps insertion order.
type cartRecord struct {
	UserID    string                `gorm:"primaryKey;column:user_id;size:255"`
	ItemOrder pq.StringArray        `gorm:"column:item_order;type:text[]"`
	Lines     map[string]lineRecord `gorm:"column:lines;type:jsonb;serializer:json"`
	CreatedAt time.Time             `gorm:"column:created_at"`
	UpdatedAt time.Time             `gorm:"column:updated_at"`
}

type lineRecord struct {
	Item     cartdomain.Item `json:"item"`
	Quantity int             `json:"quantity"`
}

func (cartRecord) TableName() string { return "carts" }

// Load returns the stored document or an empty one for unknown users.
func (r *Repository) Load(ctx context.Context, userID string) (*ports.DocumentProjection, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	userID = strings.TrimSpace(userID)
	var record cartRecord
	if err := r.db.WithContext(ctx).First(&record, "user_id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			doc, err := domain.NewDocument(userID, nil)
			if err != nil {
				return nil, err
			}
			return &ports.DocumentProjection{Entity: doc}, nil
		}
		return nil, err
	}
	return record.toProjection()
}

// Save upserts the document keyed by user id.
func (r *Repository) Save(ctx context.Context, doc *domain.Document) (*ports.DocumentProjection, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	if doc == nil {
		return nil, errors.New("cart document is nil")
	}
	record := toRecord(doc)
	if err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"item_order", "lines", "updated_at"}),
		}).
		Create(&record).Error; err != nil {
		return nil, err
	}
	return r.Load(ctx, record.UserID)
}

// Delete removes the document. Deleting an unknown cart is not an error.
func (r *Repository) Delete(ctx context.Context, userID string) error {
	if err := r.ensureDB(); err != nil {
		return err
	}
	return r.db.WithContext(ctx).Where("user_id = ?", strings.TrimSpace(userID)).Delete(&cartRecord{}).Error
}

func (r *Repository) ensureDB() error {
	if r == nil || r.db == nil {
		return errors.New("postgres cart repository not configured")
	}
	return nil
}

func toRecord(doc *domain.Document) cartRecord {
	lines := doc.Lines()
	record := cartRecord{
		UserID:    doc.UserID,
		ItemOrder: make(pq.StringArray, 0, len(lines)),
		Lines:     make(map[string]lineRecord, len(lines)),
	}
	for _, line := range lines {
		record.ItemOrder = append(record.ItemOrder, line.ID)
		record.Lines[line.ID] = lineRecord{Item: line.Item, Quantity: line.Quantity}
	}
	return record
}

func (r cartRecord) toProjection() (*ports.DocumentProjection, error) {
	lines := make([]cartdomain.CartLine, 0, len(r.ItemOrder))
	for _, id := range r.ItemOrder {
		line, ok := r.Lines[id]
		if !ok {
			continue
		}
		lines = append(lines, cartdomain.CartLine{Item: line.Item, Quantity: line.Quantity})
	}
	doc, err := domain.NewDocument(r.UserID, lines)
	if err != nil {
		return nil, err
	}
	return &ports.DocumentProjection{
		Entity:   doc,
		Metadata: projection.Metadata{CreatedAt: r.CreatedAt, UpdatedAt: r.UpdatedAt},
	}, nil
}
