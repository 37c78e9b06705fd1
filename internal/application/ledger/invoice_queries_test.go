package ledger_test

import (
	"context"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/factura-pyme/internal/application/ledger"
	"github.com/tu-usuario/factura-pyme/internal/domain"
	"github.com/tu-usuario/factura-pyme/internal/domain/entity"
)

func newQueryUseCase(store *memStore) *ledger.InvoiceQueryUseCase {
	return ledger.NewInvoiceQueryUseCase(
		&memTxRunner{store},
		ledger.NewNumberAllocator(),
		&memCustomerRepo{store},
		&memInvoiceRepo{store},
		&memPaymentRepo{store},
	)
}

func TestDeleteInvoice_DescuentaSoloElRemanente(t *testing.T) {
	store := newMemStore()
	customer := store.addCustomer("Cliente", dec("60"))
	inv := store.addInvoice("INV-000001", customer.ID, day("2026-08-01"), dec("100"), dec("40"))

	uc := newQueryUseCase(store)
	require.NoError(t, uc.DeleteInvoice(context.Background(), inv.ID))

	assert.NotContains(t, store.invoices, inv.ID)
	// Del saldo salen los 60 no cobrados; los 40 ya cobrados no se devuelven.
	assert.True(t, store.customers[customer.ID].OutstandingBalance.IsZero())
}

func TestDeleteInvoice_PisoEnCero(t *testing.T) {
	store := newMemStore()
	// Saldo desfasado por debajo del remanente de la factura.
	customer := store.addCustomer("Cliente", dec("20"))
	inv := store.addInvoice("INV-000001", customer.ID, day("2026-08-01"), dec("100"), decimal.Zero)

	uc := newQueryUseCase(store)
	require.NoError(t, uc.DeleteInvoice(context.Background(), inv.ID))
	assert.True(t, store.customers[customer.ID].OutstandingBalance.IsZero())
}

func TestDeleteInvoice_NoExiste(t *testing.T) {
	store := newMemStore()
	uc := newQueryUseCase(store)
	assert.ErrorIs(t, uc.DeleteInvoice(context.Background(), "no-existe"), domain.ErrNotFound)
}

func TestDuplicateInvoice_NaceSinPagosConNumeroNuevo(t *testing.T) {
	store := newMemStore()
	customer := store.addCustomer("Cliente", dec("100"))
	original := store.addInvoice("INV-000001", customer.ID, day("2026-07-01"), dec("100"), dec("100"))
	store.items[original.ID] = []*entity.InvoiceItem{
		{ID: "item-1", InvoiceID: original.ID, ProductID: "p1", Qty: 2, Price: dec("50"), LineTotal: dec("100")},
	}

	uc := newQueryUseCase(store)
	resp, err := uc.DuplicateInvoice(context.Background(), original.ID)
	require.NoError(t, err)

	assert.Equal(t, "INV-000002", resp.Number)
	assert.True(t, dec("100").Equal(resp.Total))
	assert.True(t, resp.TotalPaid.IsZero(), "la copia nace sin pagos aunque la original esté pagada")
	assert.Equal(t, entity.PaymentStatusUnpaid, resp.PaymentStatus)
	require.Len(t, resp.Items, 1)
	assert.NotEqual(t, "item-1", resp.Items[0].ID, "las líneas copiadas llevan ID propio")

	// El total de la copia entra al saldo del cliente.
	assert.True(t, dec("200").Equal(store.customers[customer.ID].OutstandingBalance))
}

func TestExportCSV_IncluyeEncabezadoYFilas(t *testing.T) {
	store := newMemStore()
	customer := store.addCustomer("Tienda La Esquina", decimal.Zero)
	store.addInvoice("INV-000001", customer.ID, day("2026-08-01"), dec("150.50"), dec("150.50"))
	store.addInvoice("INV-000002", customer.ID, day("2026-08-02"), dec("99"), decimal.Zero)

	uc := newQueryUseCase(store)
	data, err := uc.ExportCSV(context.Background())
	require.NoError(t, err)

	csv := string(data)
	lines := strings.Split(strings.TrimSpace(csv), "\n")
	require.Len(t, lines, 3, "encabezado + dos filas")
	assert.Contains(t, csv, "INV-000001")
	assert.Contains(t, csv, "Tienda La Esquina")
	assert.Contains(t, csv, "150.50")
	assert.Contains(t, csv, entity.PaymentStatusUnpaid)
}

func TestGetInvoice_ConLineasYNombreDelCliente(t *testing.T) {
	store := newMemStore()
	customer := store.addCustomer("Cliente", decimal.Zero)
	inv := store.addInvoice("INV-000001", customer.ID, day("2026-08-01"), dec("100"), decimal.Zero)
	store.items[inv.ID] = []*entity.InvoiceItem{
		{ID: "item-1", InvoiceID: inv.ID, Qty: 1, Price: dec("100"), LineTotal: dec("100")},
	}

	uc := newQueryUseCase(store)
	resp, err := uc.GetInvoice(context.Background(), inv.ID)
	require.NoError(t, err)

	assert.Equal(t, "Cliente", resp.CustomerName)
	assert.Len(t, resp.Items, 1)

	_, err = uc.GetInvoice(context.Background(), "no-existe")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
