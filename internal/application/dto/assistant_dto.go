package dto

// ChatRequest body para POST /api/assistant/chat.
type ChatRequest struct {
	SessionID string `json:"session_id,omitempty"` // "default" si va vacío
	Message   string `json:"message"`
}

// ChatTurn un turno de la conversación (para el historial enviado al LLM).
type ChatTurn struct {
	Role    string `json:"role"` // "user" | "assistant"
	Content string `json:"content"`
}

// ChatResponse respuesta del asistente, ya sin los comandos [ACTION: ...].
type ChatResponse struct {
	SessionID string `json:"session_id"`
	Reply     string `json:"reply"`
	Actions   int    `json:"actions_executed"`
}
