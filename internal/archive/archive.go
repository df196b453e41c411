// Package archive persists drained transcript turns to Postgres for later
// review. The archive is optional and strictly best-effort: the transcript
// file remains the durable record, and a database failure never interrupts
// a call.
package archive

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/and-other-tales/reception/internal/models"
	"github.com/and-other-tales/reception/internal/utils"
)

type Store interface {
	Append(ctx context.Context, roomName string, e models.TranscriptEntry, metadata map[string]string) error
	ListByRoom(ctx context.Context, roomName string, limit int) ([]models.CallTurn, error)
}

type pgStore struct {
	db *gorm.DB
}

func NewStore(db *gorm.DB) Store {
	return &pgStore{db: db}
}

// Migrate creates the call_turns table if it does not exist.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&models.CallTurn{})
}

func (s *pgStore) Append(ctx context.Context, roomName string, e models.TranscriptEntry, metadata map[string]string) error {
	const op = "archive.Store.Append"

	row := &models.CallTurn{
		ID:        uuid.NewString(),
		RoomName:  roomName,
		Role:      string(e.Role),
		Content:   e.Text,
		Timestamp: e.Timestamp.UTC(),
	}
	if len(metadata) > 0 {
		b, err := json.Marshal(metadata)
		if err == nil {
			row.Metadata = datatypes.JSON(b)
		}
	}
	if row.Timestamp.IsZero() {
		row.Timestamp = time.Now().UTC()
	}

	if err := s.db.WithContext(ctx).Create(row).Error; err != nil {
		return utils.E(utils.CodeInternal, op, "failed to insert call turn", err)
	}
	return nil
}

func (s *pgStore) ListByRoom(ctx context.Context, roomName string, limit int) ([]models.CallTurn, error) {
	const op = "archive.Store.ListByRoom"

	if roomName == "" {
		return nil, utils.E(utils.CodeInvalidArgument, op, "room name is required", nil)
	}
	if limit <= 0 || limit > 500 {
		limit = 100
	}

	var rows []models.CallTurn
	err := s.db.WithContext(ctx).
		Where("room_name = ?", roomName).
		Order("timestamp asc").
		Limit(limit).
		Find(&rows).Error
	if err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to list call turns", err)
	}
	return rows, nil
}
