package ledger

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/tu-usuario/factura-pyme/internal/domain/repository"
)

// Prefijo y ancho del consecutivo de facturas: INV-000001, INV-000002, ...
const (
	invoiceNumberPrefix = "INV-"
	invoiceNumberWidth  = 6
)

// NumberAllocator genera el siguiente número de factura: escanea los números
// existentes, toma el sufijo numérico máximo entre los que tienen prefijo
// INV- y devuelve max+1 (tolera huecos en la secuencia).
//
// Nunca retorna error: si el escaneo falla degrada a count+1, un modo débil
// que puede chocar con una secuencia con huecos; se registra un warning cada
// vez que se usa. La unicidad real la garantiza el constraint único de la
// tabla: una colisión en el insert llega al caller como ErrConflict.
type NumberAllocator struct{}

// NewNumberAllocator construye el asignador.
func NewNumberAllocator() *NumberAllocator { return &NumberAllocator{} }

// Next devuelve el siguiente número usando el repo recibido (que puede estar
// atado a la transacción en curso).
func (a *NumberAllocator) Next(invoiceRepo repository.InvoiceRepository) string {
	numbers, err := invoiceRepo.ListNumbers()
	if err != nil {
		return a.fallback(invoiceRepo, err)
	}
	max := 0
	for _, n := range numbers {
		if !strings.HasPrefix(n, invoiceNumberPrefix) {
			continue
		}
		suffix, err := strconv.Atoi(n[len(invoiceNumberPrefix):])
		if err != nil {
			continue // números con sufijo no numérico se ignoran
		}
		if suffix > max {
			max = suffix
		}
	}
	return formatInvoiceNumber(max + 1)
}

// fallback: modo degradado basado en count+1. Puede colisionar si la
// secuencia tiene huecos; el constraint único de la tabla es la última línea
// de defensa.
func (a *NumberAllocator) fallback(invoiceRepo repository.InvoiceRepository, cause error) string {
	count, err := invoiceRepo.Count()
	if err != nil {
		count = 0
	}
	log.Warn().
		Err(cause).
		Int("count", count).
		Msg("asignador de números de factura en modo degradado (count+1)")
	return formatInvoiceNumber(count + 1)
}

func formatInvoiceNumber(n int) string {
	return fmt.Sprintf("%s%0*d", invoiceNumberPrefix, invoiceNumberWidth, n)
}
