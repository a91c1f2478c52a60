package models

type Role string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

type Message struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

type ConversationState string

const (
	ConversationEmpty                 ConversationState = "empty"
	ConversationAwaitingFirstResponse ConversationState = "awaiting-first-response"
	ConversationAccumulating          ConversationState = "accumulating"
)

// Conversation is an append-only message history. Role alternation is not
// enforced. A Conversation is not safe for concurrent use; callers hold the
// owning session's lock.
type Conversation struct {
	messages []Message
}

func NewConversation(messages ...Message) *Conversation {
	c := &Conversation{}
	c.Append(messages...)
	return c
}

func (c *Conversation) Append(messages ...Message) {
	c.messages = append(c.messages, messages...)
}

// Messages returns a copy of the full history, system messages included.
func (c *Conversation) Messages() []Message {
	out := make([]Message, len(c.messages))
	copy(out, c.messages)
	return out
}

// Visible returns the history without system messages, as shown to the user.
func (c *Conversation) Visible() []Message {
	out := make([]Message, 0, len(c.messages))
	for _, m := range c.messages {
		if m.Role == RoleSystem {
			continue
		}
		out = append(out, m)
	}
	return out
}

func (c *Conversation) Len() int {
	return len(c.messages)
}

func (c *Conversation) State() ConversationState {
	if len(c.messages) == 0 {
		return ConversationEmpty
	}
	for _, m := range c.messages {
		if m.Role == RoleAssistant {
			return ConversationAccumulating
		}
	}
	return ConversationAwaitingFirstResponse
}
