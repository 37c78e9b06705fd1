package assistant

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// storeAt construye un SessionStore con reloj controlado por el test.
func storeAt(t0 time.Time) (*SessionStore, *time.Time) {
	clock := t0
	s := NewSessionStore()
	s.now = func() time.Time { return clock }
	return s, &clock
}

func TestSessionStore_HistorialPorSesion(t *testing.T) {
	s := NewSessionStore()

	s.AppendTurn("a", "hola", "buenas")
	s.AppendTurn("b", "crear cliente", "listo")

	histA := s.History("a")
	require.Len(t, histA, 2)
	assert.Equal(t, "user", histA[0].Role)
	assert.Equal(t, "hola", histA[0].Content)
	assert.Equal(t, "assistant", histA[1].Role)

	assert.Len(t, s.History("b"), 2, "las sesiones no se mezclan")
}

func TestSessionStore_RecortaTurnosViejos(t *testing.T) {
	s := NewSessionStore()
	for i := 0; i < maxTurns+5; i++ {
		s.AppendTurn("a", fmt.Sprintf("pregunta %d", i), fmt.Sprintf("respuesta %d", i))
	}

	hist := s.History("a")
	assert.Len(t, hist, maxTurns*2, "se conservan solo los últimos turnos")
	assert.Equal(t, fmt.Sprintf("pregunta %d", 5), hist[0].Content, "los más viejos salen primero")
}

func TestSessionStore_ExpiraPorInactividad(t *testing.T) {
	s, clock := storeAt(time.Date(2026, 8, 30, 10, 0, 0, 0, time.UTC))

	s.AppendTurn("a", "hola", "buenas")
	s.OpenInvoice("a", "inv-1", "INV-000001", "cust-1")

	*clock = clock.Add(sessionTTL + time.Minute)

	assert.Empty(t, s.History("a"), "pasado el TTL la sesión arranca de cero")
	_, _, ok := s.CurrentInvoice("a")
	assert.False(t, ok, "la factura en curso también se pierde")
}

func TestSessionStore_FacturaEnCurso(t *testing.T) {
	s := NewSessionStore()

	_, _, ok := s.CurrentInvoice("a")
	assert.False(t, ok)

	s.OpenInvoice("a", "inv-1", "INV-000001", "cust-1")
	id, number, ok := s.CurrentInvoice("a")
	require.True(t, ok)
	assert.Equal(t, "inv-1", id)
	assert.Equal(t, "INV-000001", number)

	s.CloseInvoice("a")
	_, _, ok = s.CurrentInvoice("a")
	assert.False(t, ok)
}

func TestSessionStore_ExpulsaLaMasViejaAlSuperarElTope(t *testing.T) {
	s, clock := storeAt(time.Date(2026, 8, 30, 10, 0, 0, 0, time.UTC))

	for i := 0; i < maxSessions; i++ {
		s.AppendTurn(fmt.Sprintf("sesion-%d", i), "hola", "buenas")
		*clock = clock.Add(time.Second)
	}
	// Una más: la de actividad más antigua (sesion-0) debe salir.
	s.AppendTurn("nueva", "hola", "buenas")

	s.mu.Lock()
	_, haySesionCero := s.sessions["sesion-0"]
	_, hayNueva := s.sessions["nueva"]
	total := len(s.sessions)
	s.mu.Unlock()

	assert.False(t, haySesionCero)
	assert.True(t, hayNueva)
	assert.LessOrEqual(t, total, maxSessions)
}
