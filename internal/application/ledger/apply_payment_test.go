package ledger_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/factura-pyme/internal/application/dto"
	"github.com/tu-usuario/factura-pyme/internal/application/ledger"
	"github.com/tu-usuario/factura-pyme/internal/domain"
	"github.com/tu-usuario/factura-pyme/internal/domain/entity"
)

func day(s string) time.Time {
	d, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return d
}

func TestApplyToInvoice_PagoParcial(t *testing.T) {
	store := newMemStore()
	customer := store.addCustomer("Cliente", dec("100"))
	inv := store.addInvoice("INV-000001", customer.ID, day("2026-08-01"), dec("100"), decimal.Zero)

	uc := ledger.NewApplyPaymentUseCase(&memTxRunner{store})
	resp, err := uc.ApplyToInvoice(context.Background(), inv.ID, dto.ApplyPaymentRequest{
		Amount: dec("40"),
	})
	require.NoError(t, err)

	assert.True(t, dec("40").Equal(resp.Amount))
	assert.Equal(t, "INV-000001", resp.InvoiceNumber)
	assert.Equal(t, entity.PaymentMethodCash, resp.PaymentMethod, "sin método explícito queda cash")

	stored := store.invoices[inv.ID]
	assert.True(t, dec("40").Equal(stored.TotalPaid))
	assert.Equal(t, entity.PaymentStatusPartial, stored.PaymentStatus)
	assert.True(t, dec("60").Equal(store.customers[customer.ID].OutstandingBalance))
}

func TestApplyToInvoice_SobrepagoSeAplicaConTope(t *testing.T) {
	store := newMemStore()
	customer := store.addCustomer("Cliente", dec("70"))
	inv := store.addInvoice("INV-000001", customer.ID, day("2026-08-01"), dec("100"), dec("30"))

	uc := ledger.NewApplyPaymentUseCase(&memTxRunner{store})
	resp, err := uc.ApplyToInvoice(context.Background(), inv.ID, dto.ApplyPaymentRequest{
		Amount: dec("500"),
	})
	require.NoError(t, err)

	// Solo se aplican los 70 que faltaban; el Payment registra 70, no 500.
	assert.True(t, dec("70").Equal(resp.Amount))
	stored := store.invoices[inv.ID]
	assert.True(t, dec("100").Equal(stored.TotalPaid))
	assert.Equal(t, entity.PaymentStatusPaid, stored.PaymentStatus)

	// El saldo del cliente baja solo en lo aplicado, con piso en cero.
	assert.True(t, store.customers[customer.ID].OutstandingBalance.IsZero())
}

func TestApplyToInvoice_ClienteBorradoNoRompeElPago(t *testing.T) {
	store := newMemStore()
	// Factura huérfana: el cliente se borró y la referencia quedó vacía.
	inv := store.addInvoice("INV-000001", "", day("2026-08-01"), dec("100"), decimal.Zero)

	uc := ledger.NewApplyPaymentUseCase(&memTxRunner{store})
	resp, err := uc.ApplyToInvoice(context.Background(), inv.ID, dto.ApplyPaymentRequest{
		Amount: dec("100"),
	})
	require.NoError(t, err)
	assert.True(t, dec("100").Equal(resp.Amount))
	assert.Equal(t, entity.PaymentStatusPaid, store.invoices[inv.ID].PaymentStatus)
}

func TestApplyToInvoice_Validaciones(t *testing.T) {
	store := newMemStore()
	customer := store.addCustomer("Cliente", decimal.Zero)
	inv := store.addInvoice("INV-000001", customer.ID, day("2026-08-01"), dec("100"), decimal.Zero)
	uc := ledger.NewApplyPaymentUseCase(&memTxRunner{store})

	_, err := uc.ApplyToInvoice(context.Background(), inv.ID, dto.ApplyPaymentRequest{Amount: decimal.Zero})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "monto en cero")

	_, err = uc.ApplyToInvoice(context.Background(), inv.ID, dto.ApplyPaymentRequest{Amount: dec("-10")})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "monto negativo")

	_, err = uc.ApplyToInvoice(context.Background(), inv.ID, dto.ApplyPaymentRequest{
		Amount: dec("10"), PaymentMethod: "bitcoin",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "método fuera del catálogo")

	_, err = uc.ApplyToInvoice(context.Background(), "no-existe", dto.ApplyPaymentRequest{Amount: dec("10")})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	assert.Empty(t, store.allPayments(), "ningún intento fallido debe dejar pagos")
}

func TestApplyToCustomer_DistribucionFIFO(t *testing.T) {
	store := newMemStore()
	customer := store.addCustomer("Cliente", dec("150"))
	vieja := store.addInvoice("INV-000001", customer.ID, day("2026-07-01"), dec("60"), decimal.Zero)
	nueva := store.addInvoice("INV-000002", customer.ID, day("2026-08-01"), dec("90"), decimal.Zero)

	uc := ledger.NewApplyPaymentUseCase(&memTxRunner{store})
	resp, err := uc.ApplyToCustomer(context.Background(), customer.ID, dto.ApplyPaymentRequest{
		Amount: dec("100"),
	})
	require.NoError(t, err)

	// La más antigua se salda completa; el resto va a la siguiente.
	assert.True(t, dec("100").Equal(resp.AppliedAmount))
	require.Len(t, resp.Payments, 2, "un Payment por factura tocada")
	assert.Equal(t, "INV-000001", resp.Payments[0].InvoiceNumber)
	assert.True(t, dec("60").Equal(resp.Payments[0].Amount))
	assert.Equal(t, "INV-000002", resp.Payments[1].InvoiceNumber)
	assert.True(t, dec("40").Equal(resp.Payments[1].Amount))

	assert.Equal(t, entity.PaymentStatusPaid, store.invoices[vieja.ID].PaymentStatus)
	assert.Equal(t, entity.PaymentStatusPartial, store.invoices[nueva.ID].PaymentStatus)
	assert.True(t, dec("50").Equal(store.customers[customer.ID].OutstandingBalance))
}

func TestApplyToCustomer_SeDetieneAlAgotarElMonto(t *testing.T) {
	store := newMemStore()
	customer := store.addCustomer("Cliente", dec("300"))
	store.addInvoice("INV-000001", customer.ID, day("2026-07-01"), dec("100"), decimal.Zero)
	intacta := store.addInvoice("INV-000002", customer.ID, day("2026-08-01"), dec("200"), decimal.Zero)

	uc := ledger.NewApplyPaymentUseCase(&memTxRunner{store})
	resp, err := uc.ApplyToCustomer(context.Background(), customer.ID, dto.ApplyPaymentRequest{
		Amount: dec("100"),
	})
	require.NoError(t, err)

	require.Len(t, resp.Payments, 1, "la segunda factura no debe tocarse")
	assert.True(t, store.invoices[intacta.ID].TotalPaid.IsZero())
}

// El sobrepago FIFO descuenta del saldo del cliente el monto completo
// solicitado aunque solo parte se haya distribuido; el sobrante no se
// registra en ningún lado. Este test fija ese comportamiento para que un
// cambio accidental lo delate.
func TestApplyToCustomer_SobrepagoDescuadraElSaldo(t *testing.T) {
	store := newMemStore()
	customer := store.addCustomer("Cliente", dec("500"))
	store.addInvoice("INV-000001", customer.ID, day("2026-07-01"), dec("80"), decimal.Zero)

	uc := ledger.NewApplyPaymentUseCase(&memTxRunner{store})
	resp, err := uc.ApplyToCustomer(context.Background(), customer.ID, dto.ApplyPaymentRequest{
		Amount: dec("200"),
	})
	require.NoError(t, err)

	assert.True(t, dec("80").Equal(resp.AppliedAmount))
	assert.True(t, dec("200").Equal(resp.RequestedAmount))
	// El saldo baja 200 (lo solicitado), no 80 (lo aplicado): queda 300.
	assert.True(t, dec("300").Equal(store.customers[customer.ID].OutstandingBalance))
}

func TestApplyToCustomer_PisoEnCeroDelSaldo(t *testing.T) {
	store := newMemStore()
	customer := store.addCustomer("Cliente", dec("50"))
	store.addInvoice("INV-000001", customer.ID, day("2026-07-01"), dec("50"), decimal.Zero)

	uc := ledger.NewApplyPaymentUseCase(&memTxRunner{store})
	_, err := uc.ApplyToCustomer(context.Background(), customer.ID, dto.ApplyPaymentRequest{
		Amount: dec("120"),
	})
	require.NoError(t, err)

	// 50 - 120 se recorta a cero, nunca queda negativo.
	assert.True(t, store.customers[customer.ID].OutstandingBalance.IsZero())
}

func TestApplyToCustomer_SinFacturasPendientes(t *testing.T) {
	store := newMemStore()
	customer := store.addCustomer("Cliente", dec("30"))

	uc := ledger.NewApplyPaymentUseCase(&memTxRunner{store})
	resp, err := uc.ApplyToCustomer(context.Background(), customer.ID, dto.ApplyPaymentRequest{
		Amount: dec("30"),
	})
	require.NoError(t, err)

	assert.Empty(t, resp.Payments)
	assert.True(t, resp.AppliedAmount.IsZero())
	// Aun sin facturas el saldo baja: el abono directo se acepta.
	assert.True(t, store.customers[customer.ID].OutstandingBalance.IsZero())
}

func TestApplyToCustomer_ClienteInexistente(t *testing.T) {
	store := newMemStore()
	uc := ledger.NewApplyPaymentUseCase(&memTxRunner{store})
	_, err := uc.ApplyToCustomer(context.Background(), "no-existe", dto.ApplyPaymentRequest{Amount: dec("10")})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
