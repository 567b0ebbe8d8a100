package envelope

import (
	"encoding/json"
	"multilingo/domain"
	"testing"
	"time"

	"github.com/samber/lo"
	"github.com/stretchr/testify/require"
)

func TestNewFlat(t *testing.T) {
	req := require.New(t)
	result := domain.Result{Intent: "translate", Success: false, Text: "nope", Error: lo.ToPtr("translation_timeout")}

	flat := NewFlat(result)

	req.Equal("translate", flat.Intent)
	req.Equal("nope", flat.Message)
	req.Equal("translation_timeout", *flat.Error)
	bytes, err := json.Marshal(flat)
	req.NoError(err)
	req.JSONEq(`{"intent":"translate","success":false,"message":"nope","data":null,"error":"translation_timeout"}`, string(bytes))
}

func TestNewTask(t *testing.T) {
	tests := []struct {
		name      string
		result    domain.Result
		taskID    string
		state     string
		artifacts int
	}{
		{
			name:      "successful result with data",
			result:    domain.Result{Intent: "analyze_string", Success: true, Text: "done", Data: map[string]any{"length": 7}},
			taskID:    "task-1",
			state:     StateDone,
			artifacts: 2,
		},
		{
			name:      "failed result",
			result:    domain.Result{Intent: "translate", Success: false, Text: "unknown language", Error: lo.ToPtr("unresolved_language")},
			state:     StateFailed,
			artifacts: 1,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := require.New(t)
			now := time.Date(2025, 5, 1, 10, 0, 0, 0, time.UTC)

			task := NewTask(tt.result, tt.taskID, "ctx-1", now)

			req.Equal(KindTask, task.Kind)
			req.NotEmpty(task.ID)
			if tt.taskID != "" {
				req.Equal(tt.taskID, task.ID)
			}
			req.Equal("ctx-1", task.ContextID)
			req.Equal(tt.state, task.Status.State)
			req.Equal("2025-05-01T10:00:00Z", task.Status.Timestamp)
			req.Equal(RoleAgent, task.Status.Message.Role)
			req.Equal(tt.result.Text, task.Status.Message.Text())
			req.Len(task.Artifacts, 1)
			req.Len(task.Artifacts[0].Parts, tt.artifacts)
		})
	}
}

func TestMessage_Text(t *testing.T) {
	req := require.New(t)
	msg := Message{Parts: []Part{
		{Kind: KindText, Text: "translate hello"},
		{Kind: KindData, Data: map[string]any{"x": 1}},
		{Kind: KindText, Text: " to french "},
	}}

	req.Equal("translate hello\n to french", msg.Text())
}

func TestRPCEnvelope(t *testing.T) {
	req := require.New(t)

	success, err := json.Marshal(RPCSuccess(json.RawMessage(`7`), map[string]string{"ok": "yes"}))
	req.NoError(err)
	req.JSONEq(`{"jsonrpc":"2.0","id":7,"result":{"ok":"yes"}}`, string(success))

	failure, err := json.Marshal(RPCFailure(nil, CodeParseError, "Parse error"))
	req.NoError(err)
	req.JSONEq(`{"jsonrpc":"2.0","id":null,"error":{"code":-32700,"message":"Parse error"}}`, string(failure))
}

func TestNewAgentCard(t *testing.T) {
	req := require.New(t)

	card := NewAgentCard("https://lingo.example.com/", "1.0.0")

	req.Equal("https://lingo.example.com/a2a", card.URL)
	req.Len(card.Skills, 3)
}
