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

func newInvoiceUseCase(store *memStore) *ledger.InvoiceUseCase {
	return ledger.NewInvoiceUseCase(&memTxRunner{store}, ledger.NewNumberAllocator())
}

func TestCreateInvoice_TotalesYSaldoDelCliente(t *testing.T) {
	store := newMemStore()
	customer := store.addCustomer("Tienda La Esquina", dec("100"))
	arroz := store.addProduct("Arroz 500g", dec("2500"), dec("5"))
	aceite := store.addProduct("Aceite 1L", dec("12900"), decimal.Zero)

	uc := newInvoiceUseCase(store)
	resp, err := uc.CreateInvoice(context.Background(), dto.CreateInvoiceRequest{
		CustomerID: customer.ID,
		Items: []dto.InvoiceItemRequest{
			// 10*2500 = 25000, con 5% de impuesto = 26250
			{ProductID: arroz.ID, Qty: 10},
			// precio explícito 12000 con descuento 1000: (2*12000 - 1000) = 23000
			{ProductID: aceite.ID, Qty: 2, Price: dec("12000"), DiscountAmount: dec("1000")},
		},
		DiscountAmount: dec("250"),
	})
	require.NoError(t, err)

	assert.Equal(t, "INV-000001", resp.Number)
	assert.True(t, dec("49000").Equal(resp.Total), "26250 + 23000 - 250, obtenido %s", resp.Total)
	assert.Equal(t, entity.PaymentStatusUnpaid, resp.PaymentStatus)
	assert.Len(t, resp.Items, 2)

	// El total de la factura entra al saldo pendiente del cliente.
	stored := store.customers[customer.ID]
	assert.True(t, dec("49100").Equal(stored.OutstandingBalance),
		"saldo previo 100 + total 49000, obtenido %s", stored.OutstandingBalance)
}

func TestCreateInvoice_ProductoInexistenteDescartaSoloEsaLinea(t *testing.T) {
	store := newMemStore()
	customer := store.addCustomer("Cliente", decimal.Zero)
	panela := store.addProduct("Panela x4", dec("6800"), decimal.Zero)

	uc := newInvoiceUseCase(store)
	resp, err := uc.CreateInvoice(context.Background(), dto.CreateInvoiceRequest{
		CustomerID: customer.ID,
		Items: []dto.InvoiceItemRequest{
			{ProductID: panela.ID, Qty: 3},
			{ProductID: "no-existe", Qty: 5},
		},
	})
	require.NoError(t, err)

	assert.Len(t, resp.Items, 1, "la línea del producto inexistente se descarta")
	assert.True(t, dec("20400").Equal(resp.Total))
}

func TestCreateInvoice_DatosInvalidos(t *testing.T) {
	store := newMemStore()
	customer := store.addCustomer("Cliente", decimal.Zero)
	producto := store.addProduct("Arroz", dec("2500"), decimal.Zero)
	uc := newInvoiceUseCase(store)

	casos := []struct {
		name string
		req  dto.CreateInvoiceRequest
	}{
		{"sin cliente", dto.CreateInvoiceRequest{
			Items: []dto.InvoiceItemRequest{{ProductID: producto.ID, Qty: 1}},
		}},
		{"sin líneas", dto.CreateInvoiceRequest{CustomerID: customer.ID}},
		{"cantidad en cero", dto.CreateInvoiceRequest{
			CustomerID: customer.ID,
			Items:      []dto.InvoiceItemRequest{{ProductID: producto.ID, Qty: 0}},
		}},
		{"precio negativo", dto.CreateInvoiceRequest{
			CustomerID: customer.ID,
			Items:      []dto.InvoiceItemRequest{{ProductID: producto.ID, Qty: 1, Price: dec("-5")}},
		}},
		{"fecha ilegible", dto.CreateInvoiceRequest{
			CustomerID:  customer.ID,
			InvoiceDate: "mañana",
			Items:       []dto.InvoiceItemRequest{{ProductID: producto.ID, Qty: 1}},
		}},
		{"pago inicial en cero", dto.CreateInvoiceRequest{
			CustomerID:     customer.ID,
			Items:          []dto.InvoiceItemRequest{{ProductID: producto.ID, Qty: 1}},
			InitialPayment: &dto.InitialPaymentRequest{Amount: decimal.Zero},
		}},
	}
	for _, tc := range casos {
		t.Run(tc.name, func(t *testing.T) {
			_, err := uc.CreateInvoice(context.Background(), tc.req)
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
			assert.Empty(t, store.invoices, "una validación fallida no debe persistir nada")
		})
	}
}

func TestCreateInvoice_ClienteInexistente(t *testing.T) {
	store := newMemStore()
	producto := store.addProduct("Arroz", dec("2500"), decimal.Zero)

	uc := newInvoiceUseCase(store)
	_, err := uc.CreateInvoice(context.Background(), dto.CreateInvoiceRequest{
		CustomerID: "no-existe",
		Items:      []dto.InvoiceItemRequest{{ProductID: producto.ID, Qty: 1}},
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCreateInvoice_PagoInicialConTope(t *testing.T) {
	store := newMemStore()
	customer := store.addCustomer("Cliente", decimal.Zero)
	producto := store.addProduct("Aceite", dec("10000"), decimal.Zero)

	uc := newInvoiceUseCase(store)
	resp, err := uc.CreateInvoice(context.Background(), dto.CreateInvoiceRequest{
		CustomerID: customer.ID,
		Items:      []dto.InvoiceItemRequest{{ProductID: producto.ID, Qty: 2}},
		// Pago inicial mayor que el total: se aplica con tope.
		InitialPayment: &dto.InitialPaymentRequest{Amount: dec("50000")},
	})
	require.NoError(t, err)

	stored := store.invoices[resp.ID]
	assert.True(t, dec("20000").Equal(stored.TotalPaid), "el pago se aplica con tope en el total")
	assert.Equal(t, entity.PaymentStatusPaid, stored.PaymentStatus)

	payments := store.allPayments()
	require.Len(t, payments, 1)
	assert.True(t, dec("20000").Equal(payments[0].Amount),
		"el Payment registra el monto aplicado, no el solicitado")

	// Saldo: +20000 por la factura, -20000 por el pago aplicado.
	assert.True(t, store.customers[customer.ID].OutstandingBalance.IsZero())
}
