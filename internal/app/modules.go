package app

import (
	"github.com/nfrund/signupboard/internal/module"
	"github.com/nfrund/signupboard/internal/modules/board"
)

// NewModules creates and returns the list of all active modules for the application.
// This is the single source of truth for which features are enabled.
func NewModules() []module.Module {
	return []module.Module{
		board.NewModule(),
	}
}
