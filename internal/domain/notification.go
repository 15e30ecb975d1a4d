package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// NotificationType mirrors the request status values plus the
// supervisor-facing review prompt.
type NotificationType string

const (
	NotifPending              NotificationType = "pending"
	NotifSupervisorNeedsToAct NotificationType = "supervisor_need_to_approve"
	NotifSupervisorApproved   NotificationType = "supervisor_approved"
	NotifITApproved           NotificationType = "it_approved"
	NotifApproved             NotificationType = "approved"
	NotifRejected             NotificationType = "rejected"
	NotifActive               NotificationType = "active"
	NotifExpired              NotificationType = "expired"
	NotifRevoked              NotificationType = "revoked"
)

func (t NotificationType) IsValid() bool {
	switch t {
	case NotifPending, NotifSupervisorNeedsToAct, NotifSupervisorApproved,
		NotifITApproved, NotifApproved, NotifRejected, NotifActive,
		NotifExpired, NotifRevoked:
		return true
	default:
		return false
	}
}

type NotificationPriority string

const (
	PriorityLow    NotificationPriority = "low"
	PriorityMedium NotificationPriority = "medium"
	PriorityHigh   NotificationPriority = "high"
	PriorityUrgent NotificationPriority = "urgent"
)

type Channel string

const (
	ChannelEmail Channel = "email"
	ChannelSMS   Channel = "sms"
	ChannelInApp Channel = "inApp"
	ChannelPush  Channel = "push"
)

func (c Channel) IsValid() bool {
	switch c {
	case ChannelEmail, ChannelSMS, ChannelInApp, ChannelPush:
		return true
	default:
		return false
	}
}

type Notification struct {
	ID          uuid.UUID  `json:"id" db:"id"`
	RecipientID *uuid.UUID `json:"recipient_id,omitempty" db:"recipient_id"`
	SenderID    *uuid.UUID `json:"sender_id,omitempty" db:"sender_id"`

	RecipientName  *string `json:"recipient_name,omitempty" db:"recipient_name"`
	RecipientEmail *string `json:"recipient_email,omitempty" db:"recipient_email"`
	SenderName     *string `json:"sender_name,omitempty" db:"sender_name"`
	SenderEmail    *string `json:"sender_email,omitempty" db:"sender_email"`

	RelatedAccessRequestID *uuid.UUID `json:"related_access_request_id,omitempty" db:"related_access_request_id"`
	RelatedSystemID        *uuid.UUID `json:"related_system_id,omitempty" db:"related_system_id"`

	Type     NotificationType     `json:"type" db:"type"`
	Priority NotificationPriority `json:"priority" db:"priority"`
	Title    string               `json:"title" db:"title"`
	Message  string               `json:"message" db:"message"`
	Channels pq.StringArray       `json:"channels" db:"channels"`

	IsRead    bool       `json:"is_read" db:"is_read"`
	ReadAt    *time.Time `json:"read_at,omitempty" db:"read_at"`
	CreatedAt time.Time  `json:"created_at" db:"created_at"`
}

// HasChannel reports whether the notification targets the given channel.
func (n *Notification) HasChannel(c Channel) bool {
	for _, ch := range n.Channels {
		if Channel(ch) == c {
			return true
		}
	}
	return false
}

type CreateNotificationInput struct {
	RecipientID     uuid.UUID            `json:"recipient_id"`
	Type            NotificationType     `json:"type"`
	Title           string               `json:"title"`
	Message         string               `json:"message"`
	Priority        NotificationPriority `json:"priority,omitempty"`
	Channels        []Channel            `json:"channels,omitempty"`
	RelatedSystemID *uuid.UUID           `json:"related_system_id,omitempty"`
}
