package envelope

import (
	"encoding/json"
)

const Version = "2.0"

const (
	CodeParseError     = -32700
	CodeInvalidRequest = -32600
	CodeMethodNotFound = -32601
	CodeInvalidParams  = -32602
	CodeInternalError  = -32603
)

const (
	MethodMessageSend = "message/send"
	MethodExecute     = "execute"
)

type RPCRequest struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      json.RawMessage `json:"id"`
	Method  string          `json:"method"`
	Params  json.RawMessage `json:"params"`
}

// MessageParams is the payload of message/send and execute.
type MessageParams struct {
	Message Message `json:"message"`
	Context *struct {
		LastText string `json:"last_text"`
	} `json:"context,omitempty"`
}

func (p MessageParams) LastText() string {
	if p.Context == nil {
		return ""
	}
	return p.Context.LastText
}

type RPCError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

type RPCResponse struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      json.RawMessage `json:"id"`
	Result  any             `json:"result,omitempty"`
	Error   *RPCError       `json:"error,omitempty"`
}

func RPCSuccess(id json.RawMessage, result any) RPCResponse {
	return RPCResponse{JSONRPC: Version, ID: nullable(id), Result: result}
}

func RPCFailure(id json.RawMessage, code int, message string) RPCResponse {
	return RPCResponse{JSONRPC: Version, ID: nullable(id), Error: &RPCError{Code: code, Message: message}}
}

// An absent id is answered with an explicit null.
func nullable(id json.RawMessage) json.RawMessage {
	if len(id) == 0 {
		return json.RawMessage("null")
	}
	return id
}
