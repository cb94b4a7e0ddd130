package transcript

// Role constants
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Turn is one message in a conversation, tagged with its speaker role.
type Turn struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Transcript is the full ordered history of turns for a conversation.
// Insertion order is chronological order. The caller owns it across
// pipeline invocations: the pipeline only reads it and returns an
// extended copy, so two invocations sharing a transcript never alias.
type Transcript []Turn

// Clone returns an independent copy.
func (t Transcript) Clone() Transcript {
	out := make(Transcript, len(t))
	copy(out, t)
	return out
}

// Append returns a new transcript with the turn added; the receiver is
// left untouched.
func (t Transcript) Append(turn Turn) Transcript {
	out := make(Transcript, len(t), len(t)+1)
	copy(out, t)
	return append(out, turn)
}
