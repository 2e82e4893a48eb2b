package db

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/balkashynov/worklog/internal/models"
)

func createEvent(tx *gorm.DB, taskID int64, notes, timestamp, duration string) (*models.Event, error) {
	event := models.Event{
		TaskID:    taskID,
		Notes:     &notes,
		TimeStamp: timestamp,
		Duration:  duration,
	}

	if err := tx.Create(&event).Error; err != nil {
		return nil, newError(KindExec, "create event", fmt.Errorf("task #%d: %w", taskID, err))
	}
	return &event, nil
}

// eventRow mirrors the event table with every column nullable,
// so NULLs can be reported instead of silently zeroed
type eventRow struct {
	ID        int64   `gorm:"column:id"`
	TaskID    *int64  `gorm:"column:task_id"`
	Notes     *string `gorm:"column:notes"`
	TimeStamp *string `gorm:"column:time_stamp"`
	Duration  *string `gorm:"column:duration"`
}

// GetEvents returns every event in row order
func (s *Store) GetEvents() ([]models.Event, error) {
	rows, err := s.db.Raw("SELECT id, task_id, notes, time_stamp, duration FROM event ORDER BY id").Rows()
	if err != nil {
		return nil, newError(KindQuery, "get events", err)
	}
	defer rows.Close()

	var events []models.Event
	for rows.Next() {
		var row eventRow
		if err := s.db.ScanRows(rows, &row); err != nil {
			return nil, newError(KindDecode, "get events", err)
		}

		switch {
		case row.TaskID == nil:
			return nil, newError(KindDecode, "get events", nullColumn("task_id", row.ID))
		case row.TimeStamp == nil:
			return nil, newError(KindDecode, "get events", nullColumn("time_stamp", row.ID))
		case row.Duration == nil:
			return nil, newError(KindDecode, "get events", nullColumn("duration", row.ID))
		}

		events = append(events, models.Event{
			ID:        row.ID,
			TaskID:    *row.TaskID,
			Notes:     row.Notes,
			TimeStamp: *row.TimeStamp,
			Duration:  *row.Duration,
		})
	}
	if err := rows.Err(); err != nil {
		return nil, newError(KindQuery, "get events", err)
	}

	return events, nil
}
