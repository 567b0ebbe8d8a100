package server

import (
	"encoding/json"
	"multilingo/infrastructure/http/envelope"
	"multilingo/services"
	"net/http"
)

type chatRequest struct {
	Message string `json:"message" validate:"required"`
	Context *struct {
		LastText string `json:"last_text"`
	} `json:"context"`
}

type translateRequest struct {
	Text           string `json:"text" validate:"required"`
	TargetLanguage string `json:"target_language" validate:"required"`
}

func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	var body chatRequest
	if err := s.decodeJSON(w, r, &body); err != nil {
		writeProblem(w, bodyStatus(err), err.Error())
		return
	}
	if err := s.validate.Struct(body); err != nil {
		writeProblem(w, http.StatusUnprocessableEntity, `missing "message" field`)
		return
	}
	request := services.ChatRequest{Message: body.Message}
	if body.Context != nil {
		request.LastText = body.Context.LastText
	}
	result := s.chat.Handle(r.Context(), request)
	writeJSON(w, http.StatusOK, envelope.NewFlat(result))
}

func (s *Server) handleTranslate(w http.ResponseWriter, r *http.Request) {
	var body translateRequest
	if err := s.decodeJSON(w, r, &body); err != nil {
		writeProblem(w, bodyStatus(err), err.Error())
		return
	}
	if err := s.validate.Struct(body); err != nil {
		writeProblem(w, http.StatusUnprocessableEntity, `"text" and "target_language" are required`)
		return
	}
	result := s.chat.Translate(r.Context(), body.Text, body.TargetLanguage)
	writeJSON(w, http.StatusOK, envelope.NewFlat(result))
}

// handleRPC serves JSON-RPC 2.0 calls. Protocol errors are answered with HTTP 200
// and an error object, as JSON-RPC requires.
func (s *Server) handleRPC(w http.ResponseWriter, r *http.Request) {
	body, err := s.readBody(w, r)
	if err != nil {
		writeProblem(w, bodyStatus(err), err.Error())
		return
	}
	var call envelope.RPCRequest
	defer func() {
		if rec := recover(); rec != nil {
			s.log.Error("Agent call panicked", "method", call.Method, "panic", rec)
			writeJSON(w, http.StatusOK, envelope.RPCFailure(call.ID, envelope.CodeInternalError, "Internal error"))
		}
	}()
	if err = json.Unmarshal(body, &call); err != nil {
		writeJSON(w, http.StatusOK, envelope.RPCFailure(nil, envelope.CodeParseError, "Parse error"))
		return
	}
	if call.JSONRPC != envelope.Version || call.Method == "" {
		writeJSON(w, http.StatusOK, envelope.RPCFailure(call.ID, envelope.CodeInvalidRequest, "Invalid Request"))
		return
	}
	if call.Method != envelope.MethodMessageSend && call.Method != envelope.MethodExecute {
		writeJSON(w, http.StatusOK, envelope.RPCFailure(call.ID, envelope.CodeMethodNotFound, "Method not found: "+call.Method))
		return
	}
	var params envelope.MessageParams
	if err = json.Unmarshal(call.Params, &params); err != nil || params.Message.Text() == "" {
		writeJSON(w, http.StatusOK, envelope.RPCFailure(call.ID, envelope.CodeInvalidParams,
			"Invalid params: a message with at least one text part is required"))
		return
	}

	result := s.chat.Handle(r.Context(), services.ChatRequest{
		Message:  params.Message.Text(),
		LastText: params.LastText(),
	})
	task := envelope.NewTask(result, params.Message.TaskID, params.Message.ContextID, s.now())
	writeJSON(w, http.StatusOK, envelope.RPCSuccess(call.ID, task))
}

func (s *Server) handleAgentCard(w http.ResponseWriter, r *http.Request) {
	baseURL := s.config.BaseURL
	if baseURL == "" {
		baseURL = "http://" + r.Host
	}
	writeJSON(w, http.StatusOK, envelope.NewAgentCard(baseURL, Version))
}
