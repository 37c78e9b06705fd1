package assistant

import (
	"sync"
	"time"

	"github.com/tu-usuario/factura-pyme/internal/application/ports"
)

const (
	// maxTurns pares usuario/asistente que se conservan por sesión.
	maxTurns = 10
	// sessionTTL tiempo de vida de una sesión sin actividad.
	sessionTTL = 30 * time.Minute
	// maxSessions tope de sesiones vivas; al superarlo se expulsa la más vieja.
	maxSessions = 256
)

// session estado conversacional de un cliente del chat: historial acotado y
// la factura en curso (si el flujo de facturación está abierto).
type session struct {
	history        []ports.ChatMessage
	openInvoiceID  string
	openInvoiceNum string
	activeCustomer string
	lastActivity   time.Time
}

// SessionStore guarda las sesiones del asistente en memoria, con TTL y tope
// de tamaño. Seguro para uso concurrente.
type SessionStore struct {
	mu       sync.Mutex
	sessions map[string]*session
	now      func() time.Time
}

// NewSessionStore construye el almacén.
func NewSessionStore() *SessionStore {
	return &SessionStore{
		sessions: make(map[string]*session),
		now:      time.Now,
	}
}

// get devuelve la sesión viva para el id, creándola si no existe o si expiró.
// El caller debe tener tomado s.mu.
func (s *SessionStore) get(id string) *session {
	now := s.now()
	sess, ok := s.sessions[id]
	if !ok || now.Sub(sess.lastActivity) > sessionTTL {
		sess = &session{lastActivity: now}
		s.sessions[id] = sess
		s.evictLocked(now)
	}
	sess.lastActivity = now
	return sess
}

// evictLocked elimina sesiones expiradas y, si aún se supera el tope, la de
// actividad más antigua.
func (s *SessionStore) evictLocked(now time.Time) {
	for id, sess := range s.sessions {
		if now.Sub(sess.lastActivity) > sessionTTL {
			delete(s.sessions, id)
		}
	}
	for len(s.sessions) > maxSessions {
		oldestID := ""
		var oldest time.Time
		for id, sess := range s.sessions {
			if oldestID == "" || sess.lastActivity.Before(oldest) {
				oldestID = id
				oldest = sess.lastActivity
			}
		}
		delete(s.sessions, oldestID)
	}
}

// History devuelve una copia del historial de la sesión.
func (s *SessionStore) History(id string) []ports.ChatMessage {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess := s.get(id)
	out := make([]ports.ChatMessage, len(sess.history))
	copy(out, sess.history)
	return out
}

// AppendTurn agrega un par usuario/asistente al historial, recortando los
// turnos más viejos si se supera el tope.
func (s *SessionStore) AppendTurn(id, userMsg, assistantMsg string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess := s.get(id)
	sess.history = append(sess.history,
		ports.ChatMessage{Role: "user", Content: userMsg},
		ports.ChatMessage{Role: "assistant", Content: assistantMsg},
	)
	if excess := len(sess.history) - maxTurns*2; excess > 0 {
		sess.history = append(sess.history[:0:0], sess.history[excess:]...)
	}
}

// OpenInvoice registra la factura en curso del flujo de facturación.
func (s *SessionStore) OpenInvoice(id, invoiceID, invoiceNumber, customerID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess := s.get(id)
	sess.openInvoiceID = invoiceID
	sess.openInvoiceNum = invoiceNumber
	sess.activeCustomer = customerID
}

// CurrentInvoice devuelve la factura en curso, si la hay.
func (s *SessionStore) CurrentInvoice(id string) (invoiceID, invoiceNumber string, ok bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess := s.get(id)
	return sess.openInvoiceID, sess.openInvoiceNum, sess.openInvoiceID != ""
}

// CloseInvoice limpia el flujo de facturación de la sesión.
func (s *SessionStore) CloseInvoice(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess := s.get(id)
	sess.openInvoiceID = ""
	sess.openInvoiceNum = ""
	sess.activeCustomer = ""
}
