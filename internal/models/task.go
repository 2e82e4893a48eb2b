package models

// Task is a named unit of work that events are logged against
type Task struct {
	ID      int64   `gorm:"column:id;primaryKey" json:"id"`
	Name    string  `gorm:"column:name;not null" json:"name"`
	Details *string `gorm:"column:details" json:"details"`

	// Events is only populated by reads that join task and event.
	// A task loaded from its own row leaves it nil.
	Events []Event `gorm:"foreignKey:TaskID" json:"events,omitempty"`
}

func (Task) TableName() string {
	return "task"
}
