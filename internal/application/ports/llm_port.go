package ports

import "context"

// ChatMessage un turno de conversación que se envía al modelo.
type ChatMessage struct {
	Role    string // "user" | "assistant"
	Content string
}

// LLMService define el puerto de salida hacia los servicios de inteligencia
// artificial. Cualquier adaptador (Anthropic, Gemini, mock) debe implementar
// esta interfaz. Siguiendo el principio de inversión de dependencias (DIP),
// la aplicación solo conoce este contrato, no la implementación concreta.
type LLMService interface {
	// Chat envía el prompt de sistema más el historial de la conversación y
	// devuelve el texto de respuesta del modelo.
	// El contexto debe llevar un timeout para evitar bloqueos en llamadas externas.
	Chat(ctx context.Context, system string, history []ChatMessage) (string, error)
}
