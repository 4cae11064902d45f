package boardview

// Kind is the style of a status message.
type Kind string

const (
	KindInfo    Kind = "info"
	KindSuccess Kind = "success"
	KindError   Kind = "error"
)

// Message is the transient status line of a board.
type Message struct {
	Text    string `json:"text"`
	Kind    Kind   `json:"kind"`
	Visible bool   `json:"visible"`
	// Seq increases with every shown message; a hide only applies to the
	// message it was scheduled for.
	Seq uint64 `json:"seq"`
}
