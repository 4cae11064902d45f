package topicmgr

import "maps"

// Topic is a registered pub/sub topic.
type Topic interface {
	Name() string
	Module() string
	Description() string
	Metadata() map[string]any
}

// TopicConfig describes a topic before registration.
type TopicConfig struct {
	Name        string         `json:"name"`
	Module      string         `json:"module"`
	Description string         `json:"description"`
	Metadata    map[string]any `json:"metadata"`
}

// TypedTopic is the Topic implementation produced by DefineModule.
type TypedTopic struct {
	name        string
	module      string
	description string
	metadata    map[string]any
}

var _ Topic = (*TypedTopic)(nil)

func (t *TypedTopic) Name() string        { return t.name }
func (t *TypedTopic) Module() string      { return t.module }
func (t *TypedTopic) Description() string { return t.description }
func (t *TypedTopic) String() string      { return t.name }

// Metadata returns a copy of the topic metadata.
func (t *TypedTopic) Metadata() map[string]any {
	if t.metadata == nil {
		return map[string]any{}
	}
	return maps.Clone(t.metadata)
}

// ErrorType classifies a TopicError.
type ErrorType string

const (
	ErrorDuplicateRegistration ErrorType = "duplicate_registration"
	ErrorValidationFailed      ErrorType = "validation_failed"
)

// TopicError is returned by registry operations.
type TopicError struct {
	Type    ErrorType `json:"type"`
	Topic   string    `json:"topic"`
	Message string    `json:"message"`
}

func (e *TopicError) Error() string {
	return e.Message
}
