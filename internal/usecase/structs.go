package usecase

import (
	"github.com/azuree0/Mehen/internal/mehen"
	"github.com/azuree0/Mehen/internal/view"
)

// SessionState - what a client needs after every command.
type SessionState struct {
	SessionID string      `json:"session_id"`
	RecordID  string      `json:"record_id,omitempty"`
	Game      mehen.State `json:"game"`
	View      view.Frame  `json:"view"`

	LastRoll   int               `json:"last_roll,omitempty"`
	LastMove   *mehen.MoveResult `json:"last_move,omitempty"`
	AutoPassed bool              `json:"auto_passed,omitempty"`
}
