package kafka

import "time"

// EventType определяет тип события
type EventType string

const (
	// Saga события
	EventTypeSagaStarted     EventType = "saga.started"
	EventTypeSagaCompleted   EventType = "saga.completed"
	EventTypeSagaFailed      EventType = "saga.failed"
	EventTypeSagaCompensated EventType = "saga.compensated"

	// Booking события
	EventTypeBookingCreated  EventType = "booking.created"
	EventTypeBookingCanceled EventType = "booking.canceled"
)

// Topics для Kafka
const (
	TopicSagaEvents    = "booking.saga.events"
	TopicBookingEvents = "booking.events"
)

// SagaEvent представляет событие саги бронирования
type SagaEvent struct {
	EventType      EventType              `json:"event_type"`
	Username       string                 `json:"username"`
	ReservationUID string                 `json:"reservation_uid,omitempty"`
	Timestamp      time.Time              `json:"timestamp"`
	Metadata       map[string]interface{} `json:"metadata,omitempty"`
}

// NewSagaEvent создает новое событие саги
func NewSagaEvent(eventType EventType, username, reservationUID string, metadata map[string]interface{}) *SagaEvent {
	return &SagaEvent{
		EventType:      eventType,
		Username:       username,
		ReservationUID: reservationUID,
		Timestamp:      time.Now(),
		Metadata:       metadata,
	}
}
