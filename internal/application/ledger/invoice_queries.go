package ledger

import (
	"context"
	"time"

	"github.com/gocarina/gocsv"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/tu-usuario/factura-pyme/internal/application/dto"
	"github.com/tu-usuario/factura-pyme/internal/domain"
	"github.com/tu-usuario/factura-pyme/internal/domain/entity"
	"github.com/tu-usuario/factura-pyme/internal/domain/repository"
)

// InvoiceQueryUseCase lecturas y operaciones secundarias sobre facturas:
// consulta, listado, borrado, duplicado y export CSV.
type InvoiceQueryUseCase struct {
	txRunner     TxRunner
	allocator    *NumberAllocator
	customerRepo repository.CustomerRepository
	invoiceRepo  repository.InvoiceRepository
	paymentRepo  repository.PaymentRepository
}

// NewInvoiceQueryUseCase construye el caso de uso.
func NewInvoiceQueryUseCase(
	txRunner TxRunner,
	allocator *NumberAllocator,
	customerRepo repository.CustomerRepository,
	invoiceRepo repository.InvoiceRepository,
	paymentRepo repository.PaymentRepository,
) *InvoiceQueryUseCase {
	return &InvoiceQueryUseCase{
		txRunner:     txRunner,
		allocator:    allocator,
		customerRepo: customerRepo,
		invoiceRepo:  invoiceRepo,
		paymentRepo:  paymentRepo,
	}
}

// GetInvoice devuelve la factura con sus líneas.
func (uc *InvoiceQueryUseCase) GetInvoice(ctx context.Context, id string) (*dto.InvoiceResponse, error) {
	inv, err := uc.invoiceRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if inv == nil {
		return nil, domain.ErrNotFound
	}
	items, err := uc.invoiceRepo.GetItemsByInvoiceID(inv.ID)
	if err != nil {
		return nil, err
	}
	name, err := uc.customerName(inv.CustomerID)
	if err != nil {
		return nil, err
	}
	return toInvoiceResponse(inv, name, items), nil
}

// ListInvoices devuelve una página de facturas sin detalle de líneas.
func (uc *InvoiceQueryUseCase) ListInvoices(ctx context.Context, page dto.PageRequest) ([]dto.InvoiceResponse, error) {
	invoices, err := uc.invoiceRepo.List(page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]dto.InvoiceResponse, 0, len(invoices))
	for _, inv := range invoices {
		name, err := uc.customerName(inv.CustomerID)
		if err != nil {
			return nil, err
		}
		out = append(out, *toInvoiceResponse(inv, name, nil))
	}
	return out, nil
}

// ListPayments devuelve los pagos registrados sobre una factura.
func (uc *InvoiceQueryUseCase) ListPayments(ctx context.Context, invoiceID string) ([]dto.PaymentResponse, error) {
	inv, err := uc.invoiceRepo.GetByID(invoiceID)
	if err != nil {
		return nil, err
	}
	if inv == nil {
		return nil, domain.ErrNotFound
	}
	payments, err := uc.paymentRepo.ListByInvoice(invoiceID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.PaymentResponse, 0, len(payments))
	for _, p := range payments {
		out = append(out, toPaymentResponse(p, inv.Number))
	}
	return out, nil
}

// DeleteInvoice borra la factura con sus líneas y pagos, y descuenta el
// remanente no cobrado del saldo del cliente (con piso en cero). Lo ya
// cobrado no se devuelve.
func (uc *InvoiceQueryUseCase) DeleteInvoice(ctx context.Context, id string) error {
	return uc.txRunner.RunLedger(ctx, func(
		customerRepo repository.CustomerRepository,
		_ repository.ProductRepository,
		invoiceRepo repository.InvoiceRepository,
		_ repository.PaymentRepository,
	) error {
		inv, err := invoiceRepo.GetByID(id)
		if err != nil {
			return err
		}
		if inv == nil {
			return domain.ErrNotFound
		}
		if err := invoiceRepo.Delete(id); err != nil {
			return err
		}
		if inv.CustomerID == "" {
			return nil
		}
		customer, err := customerRepo.GetByID(inv.CustomerID)
		if err != nil {
			return err
		}
		if customer == nil {
			return nil
		}
		customer.OutstandingBalance = customer.OutstandingBalance.Sub(inv.RemainingBalance())
		if customer.OutstandingBalance.IsNegative() {
			customer.OutstandingBalance = decimal.Zero
		}
		return customerRepo.UpdateLedger(customer)
	})
}

// DuplicateInvoice crea una factura nueva con número propio, fecha de hoy y
// las mismas líneas que la original. Nace sin pagos y suma su total al saldo
// del cliente.
func (uc *InvoiceQueryUseCase) DuplicateInvoice(ctx context.Context, id string) (*dto.InvoiceResponse, error) {
	var copyInv *entity.Invoice
	var copyItems []*entity.InvoiceItem
	var customerName string
	err := uc.txRunner.RunLedger(ctx, func(
		customerRepo repository.CustomerRepository,
		_ repository.ProductRepository,
		invoiceRepo repository.InvoiceRepository,
		_ repository.PaymentRepository,
	) error {
		original, err := invoiceRepo.GetByID(id)
		if err != nil {
			return err
		}
		if original == nil {
			return domain.ErrNotFound
		}
		items, err := invoiceRepo.GetItemsByInvoiceID(original.ID)
		if err != nil {
			return err
		}
		now := time.Now()
		copyInv = &entity.Invoice{
			ID:             uuid.New().String(),
			Number:         uc.allocator.Next(invoiceRepo),
			CustomerID:     original.CustomerID,
			InvoiceDate:    now,
			Terms:          original.Terms,
			Salesperson:    original.Salesperson,
			Notes:          original.Notes,
			DiscountAmount: original.DiscountAmount,
			Total:          original.Total,
			TotalPaid:      decimal.Zero,
			PaymentStatus:  entity.PaymentStatusUnpaid,
			CreatedAt:      now,
			UpdatedAt:      now,
		}
		if err := invoiceRepo.Create(copyInv); err != nil {
			return err
		}
		for _, item := range items {
			copied := *item
			copied.ID = uuid.New().String()
			copied.InvoiceID = copyInv.ID
			if err := invoiceRepo.CreateItem(&copied); err != nil {
				return err
			}
			copyItems = append(copyItems, &copied)
		}
		if copyInv.CustomerID == "" {
			return nil
		}
		customer, err := customerRepo.GetByID(copyInv.CustomerID)
		if err != nil {
			return err
		}
		if customer == nil {
			return nil
		}
		customerName = customer.Name
		customer.OutstandingBalance = customer.OutstandingBalance.Add(copyInv.Total)
		return customerRepo.UpdateLedger(customer)
	})
	if err != nil {
		return nil, err
	}
	return toInvoiceResponse(copyInv, customerName, copyItems), nil
}

// ExportCSV serializa el historial de facturas como CSV.
func (uc *InvoiceQueryUseCase) ExportCSV(ctx context.Context) ([]byte, error) {
	invoices, err := uc.invoiceRepo.List(0, 0)
	if err != nil {
		return nil, err
	}
	rows := make([]dto.InvoiceCSVRow, 0, len(invoices))
	for _, inv := range invoices {
		name, err := uc.customerName(inv.CustomerID)
		if err != nil {
			return nil, err
		}
		rows = append(rows, dto.InvoiceCSVRow{
			Number:        inv.Number,
			CustomerName:  name,
			InvoiceDate:   inv.InvoiceDate.Format(dateLayout),
			Total:         inv.Total.StringFixed(2),
			TotalPaid:     inv.TotalPaid.StringFixed(2),
			PaymentStatus: inv.PaymentStatus,
		})
	}
	out, err := gocsv.MarshalString(&rows)
	if err != nil {
		return nil, err
	}
	return []byte(out), nil
}

func (uc *InvoiceQueryUseCase) customerName(customerID string) (string, error) {
	if customerID == "" {
		return "", nil
	}
	customer, err := uc.customerRepo.GetByID(customerID)
	if err != nil {
		return "", err
	}
	if customer == nil {
		return "", nil
	}
	return customer.Name, nil
}
