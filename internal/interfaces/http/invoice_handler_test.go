package http_test

import (
	"context"
	"fmt"
	"net/http"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/tu-usuario/factura-pyme/internal/application/ledger"
	"github.com/tu-usuario/factura-pyme/internal/domain"
	"github.com/tu-usuario/factura-pyme/internal/domain/entity"
	"github.com/tu-usuario/factura-pyme/internal/domain/repository"
	apphttp "github.com/tu-usuario/factura-pyme/internal/interfaces/http"
)

// Stubs mínimos: solo los métodos que CreateInvoice recorre hasta el insert.

type invCustomerRepoStub struct{ repository.CustomerRepository }

func (invCustomerRepoStub) GetByID(id string) (*entity.Customer, error) {
	return &entity.Customer{ID: id, Name: "Cliente", OutstandingBalance: decimal.Zero}, nil
}

type invProductRepoStub struct{ repository.ProductRepository }

func (invProductRepoStub) GetByID(id string) (*entity.Product, error) {
	return &entity.Product{ID: id, Name: "Arroz 500g", Price: decimal.NewFromInt(2500)}, nil
}

type invInvoiceRepoStub struct{ repository.InvoiceRepository }

func (invInvoiceRepoStub) ListNumbers() ([]string, error) { return nil, nil }

func (invInvoiceRepoStub) Create(*entity.Invoice) error {
	return fmt.Errorf("insert invoice: %w", domain.ErrDuplicate)
}

type stubTxRunner struct{}

func (stubTxRunner) RunLedger(_ context.Context, fn func(
	repository.CustomerRepository,
	repository.ProductRepository,
	repository.InvoiceRepository,
	repository.PaymentRepository,
) error) error {
	return fn(invCustomerRepoStub{}, invProductRepoStub{}, invInvoiceRepoStub{}, nil)
}

// Una colisión del consecutivo en el insert (por ejemplo con el asignador en
// modo degradado) debe salir como 409, no como 500.
func TestInvoiceCreate_NumeroEnConflictoDevuelve409(t *testing.T) {
	uc := ledger.NewInvoiceUseCase(stubTxRunner{}, ledger.NewNumberAllocator())
	h := apphttp.NewInvoiceHandler(uc, nil, nil, nil)
	app := fiber.New()
	app.Post("/invoices", h.Create)

	resp := postJSON(t, app, "/invoices", `{"customer_id":"c1","items":[{"product_id":"p1","qty":2}]}`)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	assert.Equal(t, "DUPLICATE", errorCode(t, resp))
}
