package topicmgr

import "sync"

// Manager is the entry point for topic registration and lookup.
type Manager struct {
	registry *Registry
}

// NewManager creates a manager with an empty registry.
func NewManager() *Manager {
	return &Manager{registry: NewRegistry()}
}

var (
	defaultManager *Manager
	defaultOnce    sync.Once
)

// Default returns the process-wide manager.
func Default() *Manager {
	defaultOnce.Do(func() {
		defaultManager = NewManager()
	})
	return defaultManager
}

// DefineModule creates a topic owned by an application module.
func DefineModule(config TopicConfig) Topic {
	return &TypedTopic{
		name:        config.Name,
		module:      config.Module,
		description: config.Description,
		metadata:    config.Metadata,
	}
}

// Register adds a topic to the manager.
func (m *Manager) Register(topic Topic) error {
	return m.registry.Register(topic)
}

// MustRegister is Register for package-level topic declarations, where a
// failure is a programming error.
func (m *Manager) MustRegister(topic Topic) {
	if err := m.Register(topic); err != nil {
		panic(err)
	}
}

// List returns every registered topic.
func (m *Manager) List() []Topic {
	return m.registry.List()
}

// Count returns the number of registered topics.
func (m *Manager) Count() int {
	return m.registry.Count()
}
