// Package model holds the record type shown by the firelist commands.
package model

import (
	"time"
)

// Field names shared by the Firestore documents and the demo feed.
const (
	FieldAuthor = "author"
	FieldText   = "text"
	FieldSent   = "sent"
)

// Message is one chat message.
type Message struct {
	Author string    `firestore:"author" yaml:"author"`
	Text   string    `firestore:"text" yaml:"text"`
	Sent   time.Time `firestore:"sent" yaml:"sent"`
}

// Fields returns the message as a document field map.
func (m Message) Fields() map[string]any {
	return map[string]any{
		FieldAuthor: m.Author,
		FieldText:   m.Text,
		FieldSent:   m.Sent,
	}
}

// Meta is the send time shown next to the author, or "" when unknown.
func (m Message) Meta() string {
	if m.Sent.IsZero() {
		return ""
	}
	return m.Sent.Local().Format("15:04:05")
}
