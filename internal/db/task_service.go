package db

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/balkashynov/worklog/internal/models"
)

// AddTask logs one occurrence of work under the task called name.
// The task is created on first use; details become the event's notes.
// A new task's own details column is stored empty whatever details holds.
// Lookup and inserts share one transaction, so a failed event insert
// leaves no orphan task behind.
func (s *Store) AddTask(name, details, timestamp, duration string) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		task, err := findTaskByName(tx, name)
		if errors.Is(err, ErrTaskNotFound) {
			task, err = createTask(tx, name)
		}
		if err != nil {
			return err
		}

		_, err = createEvent(tx, task.ID, details, timestamp, duration)
		return err
	})
}

// TaskByName returns the task whose name matches exactly (case-sensitive).
// Events is left nil.
func (s *Store) TaskByName(name string) (*models.Task, error) {
	return findTaskByName(s.db, name)
}

func findTaskByName(tx *gorm.DB, name string) (*models.Task, error) {
	var tasks []models.Task
	err := tx.Where("name = ?", name).Order("id").Limit(1).Find(&tasks).Error
	if err != nil {
		return nil, newError(KindQuery, "find task", err)
	}
	if len(tasks) == 0 {
		return nil, ErrTaskNotFound
	}
	return &tasks[0], nil
}

// createTask inserts a new task row with empty details.
// TODO: store the caller's details here if product decides tasks should
// carry them (see "Task details quirk" in DESIGN.md).
func createTask(tx *gorm.DB, name string) (*models.Task, error) {
	empty := ""
	task := models.Task{
		Name:    name,
		Details: &empty,
	}

	if err := tx.Omit("Events").Create(&task).Error; err != nil {
		return nil, newError(KindExec, "create task", fmt.Errorf("task %q: %w", name, err))
	}
	return &task, nil
}

// taskEventRow is one row of the task LEFT JOIN event query
type taskEventRow struct {
	TaskID         int64   `gorm:"column:task_id"`
	TaskName       string  `gorm:"column:task_name"`
	TaskDetails    *string `gorm:"column:task_details"`
	EventID        *int64  `gorm:"column:event_id"`
	EventTaskID    *int64  `gorm:"column:event_task_id"`
	EventNotes     *string `gorm:"column:event_notes"`
	EventTimeStamp *string `gorm:"column:event_time_stamp"`
	EventDuration  *string `gorm:"column:event_duration"`
}

const tasksWithEventsQuery = `
SELECT
	task.id AS task_id,
	task.name AS task_name,
	task.details AS task_details,
	event.id AS event_id,
	event.task_id AS event_task_id,
	event.notes AS event_notes,
	event.time_stamp AS event_time_stamp,
	event.duration AS event_duration
FROM task
LEFT JOIN event ON task.id = event.task_id
ORDER BY task.id, event.id`

// GetTasks returns every task that has at least one event, each with all
// of its events. Tasks without events are not returned.
func (s *Store) GetTasks() ([]models.Task, error) {
	rows, err := s.db.Raw(tasksWithEventsQuery).Rows()
	if err != nil {
		return nil, newError(KindQuery, "get tasks", err)
	}
	defer rows.Close()

	var tasks []models.Task
	index := make(map[int64]int) // task id -> position in tasks

	for rows.Next() {
		var row taskEventRow
		if err := s.db.ScanRows(rows, &row); err != nil {
			return nil, newError(KindDecode, "get tasks", err)
		}

		// Task with no events
		if row.EventID == nil {
			continue
		}

		event, err := row.event()
		if err != nil {
			return nil, newError(KindDecode, "get tasks", err)
		}

		i, ok := index[row.TaskID]
		if !ok {
			i = len(tasks)
			index[row.TaskID] = i
			tasks = append(tasks, models.Task{
				ID:      row.TaskID,
				Name:    row.TaskName,
				Details: row.TaskDetails,
				Events:  []models.Event{},
			})
		}
		tasks[i].Events = append(tasks[i].Events, event)
	}
	if err := rows.Err(); err != nil {
		return nil, newError(KindQuery, "get tasks", err)
	}

	return tasks, nil
}

// event builds the event half of the row. The caller has checked EventID.
func (r taskEventRow) event() (models.Event, error) {
	id := *r.EventID
	switch {
	case r.EventTaskID == nil:
		return models.Event{}, nullColumn("task_id", id)
	case r.EventTimeStamp == nil:
		return models.Event{}, nullColumn("time_stamp", id)
	case r.EventDuration == nil:
		return models.Event{}, nullColumn("duration", id)
	}

	return models.Event{
		ID:        id,
		TaskID:    *r.EventTaskID,
		Notes:     r.EventNotes,
		TimeStamp: *r.EventTimeStamp,
		Duration:  *r.EventDuration,
	}, nil
}
