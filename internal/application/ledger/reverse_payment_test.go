package ledger_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/factura-pyme/internal/application/dto"
	"github.com/tu-usuario/factura-pyme/internal/application/ledger"
	"github.com/tu-usuario/factura-pyme/internal/domain"
	"github.com/tu-usuario/factura-pyme/internal/domain/entity"
)

func TestReverse_ReabreLaFactura(t *testing.T) {
	store := newMemStore()
	customer := store.addCustomer("Cliente", dec("100"))
	inv := store.addInvoice("INV-000001", customer.ID, day("2026-08-01"), dec("100"), decimal.Zero)

	applier := ledger.NewApplyPaymentUseCase(&memTxRunner{store})
	pago, err := applier.ApplyToInvoice(context.Background(), inv.ID, dto.ApplyPaymentRequest{
		Amount: dec("100"),
	})
	require.NoError(t, err)
	require.Equal(t, entity.PaymentStatusPaid, store.invoices[inv.ID].PaymentStatus)

	reverser := ledger.NewReversePaymentUseCase(&memTxRunner{store})
	resp, err := reverser.Reverse(context.Background(), pago.ID)
	require.NoError(t, err)

	assert.Equal(t, entity.PaymentStatusUnpaid, resp.PaymentStatus)
	assert.True(t, resp.TotalPaid.IsZero())

	stored := store.invoices[inv.ID]
	assert.True(t, stored.TotalPaid.IsZero())
	assert.Equal(t, entity.PaymentStatusUnpaid, stored.PaymentStatus)
	assert.Empty(t, store.allPayments(), "el pago revertido desaparece")
}

func TestReverse_PagoParcialQuedaPartial(t *testing.T) {
	store := newMemStore()
	customer := store.addCustomer("Cliente", dec("100"))
	inv := store.addInvoice("INV-000001", customer.ID, day("2026-08-01"), dec("100"), decimal.Zero)

	applier := ledger.NewApplyPaymentUseCase(&memTxRunner{store})
	primero, err := applier.ApplyToInvoice(context.Background(), inv.ID, dto.ApplyPaymentRequest{Amount: dec("30")})
	require.NoError(t, err)
	_, err = applier.ApplyToInvoice(context.Background(), inv.ID, dto.ApplyPaymentRequest{Amount: dec("70")})
	require.NoError(t, err)

	reverser := ledger.NewReversePaymentUseCase(&memTxRunner{store})
	resp, err := reverser.Reverse(context.Background(), primero.ID)
	require.NoError(t, err)

	assert.True(t, dec("70").Equal(resp.TotalPaid))
	assert.Equal(t, entity.PaymentStatusPartial, resp.PaymentStatus)
	assert.Len(t, store.allPayments(), 1, "el otro pago sobrevive")
}

// Revertir un pago NO devuelve el monto al saldo pendiente del cliente: la
// reversa solo toca la factura. El saldo real se recompone al consultar el
// estado de cuenta, que recalcula desde las facturas. Este test fija la
// asimetría.
func TestReverse_NoRestauraElSaldoDelCliente(t *testing.T) {
	store := newMemStore()
	customer := store.addCustomer("Cliente", dec("100"))
	inv := store.addInvoice("INV-000001", customer.ID, day("2026-08-01"), dec("100"), decimal.Zero)

	applier := ledger.NewApplyPaymentUseCase(&memTxRunner{store})
	pago, err := applier.ApplyToInvoice(context.Background(), inv.ID, dto.ApplyPaymentRequest{Amount: dec("40")})
	require.NoError(t, err)
	require.True(t, dec("60").Equal(store.customers[customer.ID].OutstandingBalance))

	reverser := ledger.NewReversePaymentUseCase(&memTxRunner{store})
	_, err = reverser.Reverse(context.Background(), pago.ID)
	require.NoError(t, err)

	// La factura vuelve a deber 100, pero el saldo del cliente sigue en 60.
	assert.True(t, store.invoices[inv.ID].TotalPaid.IsZero())
	assert.True(t, dec("60").Equal(store.customers[customer.ID].OutstandingBalance))
}

func TestReverse_PagoInexistente(t *testing.T) {
	store := newMemStore()
	reverser := ledger.NewReversePaymentUseCase(&memTxRunner{store})
	_, err := reverser.Reverse(context.Background(), "no-existe")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
