// Package envelope shapes a chat result for each wire protocol.
// Every function here is a pure transformation of domain.Result.
package envelope

import (
	"multilingo/domain"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Flat is the plain JSON answer of /chat and /translate.
type Flat struct {
	Intent  string         `json:"intent"`
	Success bool           `json:"success"`
	Message string         `json:"message"`
	Data    map[string]any `json:"data"`
	Error   *string        `json:"error"`
}

func NewFlat(r domain.Result) Flat {
	return Flat{
		Intent:  r.Intent,
		Success: r.Success,
		Message: r.Text,
		Data:    r.Data,
		Error:   r.Error,
	}
}

const (
	KindTask     = "task"
	KindMessage  = "message"
	KindText     = "text"
	KindData     = "data"
	RoleAgent    = "agent"
	RoleUser     = "user"
	StateDone    = "completed"
	StateFailed  = "failed"
	artifactName = "response"
)

type Part struct {
	Kind string         `json:"kind"`
	Text string         `json:"text,omitempty"`
	Data map[string]any `json:"data,omitempty"`
}

type Message struct {
	Role      string `json:"role"`
	Parts     []Part `json:"parts"`
	MessageID string `json:"messageId"`
	TaskID    string `json:"taskId,omitempty"`
	ContextID string `json:"contextId,omitempty"`
	Kind      string `json:"kind"`
}

// Text joins the text parts of a message.
func (m Message) Text() string {
	var texts []string
	for _, p := range m.Parts {
		if p.Kind == KindText || (p.Kind == "" && p.Text != "") {
			texts = append(texts, p.Text)
		}
	}
	return strings.TrimSpace(strings.Join(texts, "\n"))
}

type Status struct {
	State     string  `json:"state"`
	Timestamp string  `json:"timestamp"`
	Message   Message `json:"message"`
}

type Artifact struct {
	ArtifactID string `json:"artifactId"`
	Name       string `json:"name"`
	Parts      []Part `json:"parts"`
}

type Task struct {
	ID        string     `json:"id"`
	ContextID string     `json:"contextId"`
	Kind      string     `json:"kind"`
	Status    Status     `json:"status"`
	Artifacts []Artifact `json:"artifacts"`
}

// NewTask wraps a result in a task envelope. Empty ids are generated.
func NewTask(r domain.Result, taskID, contextID string, now time.Time) Task {
	if taskID == "" {
		taskID = uuid.NewString()
	}
	if contextID == "" {
		contextID = uuid.NewString()
	}
	state := StateDone
	if !r.Success {
		state = StateFailed
	}
	parts := []Part{{Kind: KindText, Text: r.Text}}
	if r.Data != nil {
		parts = append(parts, Part{Kind: KindData, Data: r.Data})
	}
	return Task{
		ID:        taskID,
		ContextID: contextID,
		Kind:      KindTask,
		Status: Status{
			State:     state,
			Timestamp: now.UTC().Format(time.RFC3339),
			Message: Message{
				Role:      RoleAgent,
				Parts:     []Part{{Kind: KindText, Text: r.Text}},
				MessageID: uuid.NewString(),
				TaskID:    taskID,
				ContextID: contextID,
				Kind:      KindMessage,
			},
		},
		Artifacts: []Artifact{{
			ArtifactID: uuid.NewString(),
			Name:       artifactName,
			Parts:      parts,
		}},
	}
}
