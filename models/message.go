package models

import "time"

const (
	MessageUnread  = "unread"
	MessageRead    = "read"
	MessageReplied = "replied"
)

type ContactMessage struct {
	ID        uint      `gorm:"column:id;primaryKey" json:"id"`
	Name      string    `gorm:"column:name;size:100;not null" json:"name"`
	Email     string    `gorm:"column:email;size:100;not null" json:"email"`
	Subject   string    `gorm:"column:subject;size:200" json:"subject"`
	Message   string    `gorm:"column:message;not null" json:"message"`
	Language  string    `gorm:"column:language;size:10;default:en" json:"language"`
	Status    string    `gorm:"column:status;size:20;default:unread" json:"status"`
	CreatedAt time.Time `gorm:"column:created_at" json:"created_at"`
}

func (ContactMessage) TableName() string { return "contact_messages" }

// CanTransition reports whether the message status may move to next.
// Transitions only go forward: unread -> read, unread/read -> replied.
func (m ContactMessage) CanTransition(next string) bool {
	switch next {
	case MessageRead:
		return m.Status == MessageUnread
	case MessageReplied:
		return m.Status == MessageUnread || m.Status == MessageRead
	default:
		return false
	}
}
