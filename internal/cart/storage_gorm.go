package cart

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Snapshot is the single-row-per-session durable record for the gorm
// backend. The payload is the same JSON array every backend stores.
type Snapshot struct {
	SessionKey string    `gorm:"primaryKey;size:128" json:"session_key"`
	Payload    []byte    `gorm:"not null" json:"payload"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// TableName pins the snapshot table.
func (Snapshot) TableName() string {
	return "cart_snapshots"
}

// GormStorage persists cart snapshots through the shared GORM connection.
type GormStorage struct {
	db *gorm.DB
}

func NewGormStorage(db *gorm.DB) (*GormStorage, error) {
	if db == nil {
		return nil, errors.New("gorm connection required")
	}
	return &GormStorage{db: db}, nil
}

// Migrate creates the snapshot table when auto-migration is enabled.
func (g *GormStorage) Migrate() error {
	return g.db.AutoMigrate(&Snapshot{})
}

func (g *GormStorage) Load(ctx context.Context, key string) ([]byte, bool, error) {
	var snap Snapshot
	err := g.db.WithContext(ctx).First(&snap, "session_key = ?", key).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, false, nil
		}
		return nil, false, err
	}
	return snap.Payload, true, nil
}

func (g *GormStorage) Save(ctx context.Context, key string, payload []byte) error {
	snap := Snapshot{SessionKey: key, Payload: payload, UpdatedAt: time.Now()}
	return g.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "session_key"}},
			DoUpdates: clause.AssignmentColumns([]string{"payload", "updated_at"}),
		}).
		Create(&snap).Error
}
