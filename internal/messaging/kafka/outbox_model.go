package kafka

import "time"

// OutboxRecord mirrors outbox_events for schema migration only; reads and
// writes go through OutboxRepository.
type OutboxRecord struct {
	ID            string     `gorm:"type:varchar(36);primaryKey"`
	RequestID     string     `gorm:"type:varchar(64)"`
	AggregateType string     `gorm:"type:varchar(50);not null"`
	AggregateID   string     `gorm:"type:varchar(36);not null;index:idx_outbox_aggregate"`
	EventType     string     `gorm:"type:varchar(80);not null"`
	Topic         string     `gorm:"type:varchar(120);not null"`
	Payload       []byte     `gorm:"not null"`
	Status        string     `gorm:"type:varchar(20);not null;default:'pending';index:idx_outbox_status_created"`
	RetryCount    int        `gorm:"not null;default:0"`
	ErrorMessage  *string    `gorm:"type:varchar(500)"`
	NextRetryAt   *time.Time `gorm:"index:idx_outbox_next_retry"`
	ProcessedAt   *time.Time
	CreatedAt     time.Time `gorm:"index:idx_outbox_status_created"`
	UpdatedAt     time.Time
}

func (OutboxRecord) TableName() string {
	return "outbox_events"
}
