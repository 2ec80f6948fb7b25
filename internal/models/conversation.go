package models

import "time"

// Message is one line written into a conversation
type Message struct {
	ID             string    `json:"id" validate:"required" example:"msg_4f1c9e2a"`
	ConversationID string    `json:"conversationId" validate:"required"`
	SenderID       string    `json:"senderId" validate:"required"`
	Content        string    `json:"content" validate:"required,max=2000" example:"I'll be there at 10am"`
	Timestamp      time.Time `json:"timestamp" validate:"required"`
	IsRead         bool      `json:"isRead"`
}

// Conversation is the private thread between the elder of a request and the
// volunteer matched to it. There is at most one per request and volunteer.
type Conversation struct {
	ID                  string    `json:"id" validate:"required" example:"conv_9a0e7b11"`
	ElderID             string    `json:"elderId" validate:"required"`
	VolunteerID         string    `json:"volunteerId" validate:"required,nefield=ElderID"`
	AssistanceRequestID string    `json:"assistanceRequestId" validate:"required"`
	Messages            []Message `json:"messages" validate:"dive"`
	LastMessageAt       time.Time `json:"lastMessageAt" validate:"required"`
}

// Involves reports whether accountID is one of the two parties
func (c Conversation) Involves(accountID string) bool {
	return accountID != "" && (accountID == c.ElderID || accountID == c.VolunteerID)
}

// UnreadFor counts the messages the other party sent that accountID has not read
func (c Conversation) UnreadFor(accountID string) int {
	n := 0
	for _, m := range c.Messages {
		if m.SenderID != accountID && !m.IsRead {
			n++
		}
	}
	return n
}

// ConversationSummary is a conversation as listed for one of its parties
type ConversationSummary struct {
	ID                  string    `json:"id"`
	AssistanceRequestID string    `json:"assistanceRequestId"`
	ElderID             string    `json:"elderId"`
	VolunteerID         string    `json:"volunteerId"`
	LastMessage         *Message  `json:"lastMessage,omitempty"`
	LastMessageAt       time.Time `json:"lastMessageAt"`
	UnreadCount         int       `json:"unreadCount"`
}

// Summarize condenses c for accountID
func (c Conversation) Summarize(accountID string) ConversationSummary {
	s := ConversationSummary{
		ID:                  c.ID,
		AssistanceRequestID: c.AssistanceRequestID,
		ElderID:             c.ElderID,
		VolunteerID:         c.VolunteerID,
		LastMessageAt:       c.LastMessageAt,
		UnreadCount:         c.UnreadFor(accountID),
	}
	if n := len(c.Messages); n > 0 {
		last := c.Messages[n-1]
		s.LastMessage = &last
	}
	return s
}
