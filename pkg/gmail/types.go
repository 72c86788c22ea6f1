package gmail

// MessageRef identifies a message and its conversation.
type MessageRef struct {
	ID       string `json:"id"`
	ThreadID string `json:"thread_id"`
}

// Message is a fetched message with the headers that were asked for. Absent
// headers read as the empty string.
type Message struct {
	ID       string
	ThreadID string
	Snippet  string
	Headers  map[string]string
}

// Header returns the value of a header by its canonical name, or "" when the
// message does not carry it.
func (m *Message) Header(name string) string {
	if m.Headers == nil {
		return ""
	}
	return m.Headers[name]
}

// Draft identifies a created draft and the thread it belongs to.
type Draft struct {
	ID       string `json:"draftId"`
	ThreadID string `json:"threadId"`
}

// UnreadSummary is one entry of the unread listing. Field names are part of
// the tool contract.
type UnreadSummary struct {
	Sender   string `json:"sender"`
	Subject  string `json:"subject"`
	Body     string `json:"body"`
	EmailID  string `json:"emailId"`
	ThreadID string `json:"threadId"`
}
