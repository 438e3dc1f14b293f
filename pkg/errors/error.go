package errors

// ErrorCode represents a specific error code in the system.
type ErrorCode string

const (
	// ErrInvalidOrder represents an order rejected by validation before
	// touching the book.
	ErrInvalidOrder ErrorCode = "invalid_order"

	// KafkaReadError represents an error while reading from the order topic.
	KafkaReadError ErrorCode = "kafka_read_error"
	// KafkaPublishError represents an error while publishing to the trade topic.
	KafkaPublishError ErrorCode = "kafka_publish_error"
)
