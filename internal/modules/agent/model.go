// README: Agent account model and validation rules.
package agent

import "time"

// Agent is a sales user operating the chatbot. The access code is the sole
// credential; only its bcrypt hash is stored.
type Agent struct {
	ID        int64
	CodeHash  string
	Name      string
	Phone     string
	IsAdmin   bool
	CreatedAt time.Time
}

// Identity is the slice of an agent injected into the conversation context.
// Immutable for the duration of a conversation.
type Identity struct {
	Name  string
	Phone string
}

func (a *Agent) Identity() Identity {
	return Identity{Name: a.Name, Phone: a.Phone}
}
