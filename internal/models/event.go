package models

// Event is one logged occurrence of work against a task.
// TimeStamp and Duration are stored exactly as the caller formatted them.
type Event struct {
	ID        int64   `gorm:"column:id;primaryKey" json:"id"`
	TaskID    int64   `gorm:"column:task_id" json:"task_id"`
	Notes     *string `gorm:"column:notes" json:"notes"`
	TimeStamp string  `gorm:"column:time_stamp" json:"time_stamp"`
	Duration  string  `gorm:"column:duration" json:"duration"`
}

func (Event) TableName() string {
	return "event"
}
