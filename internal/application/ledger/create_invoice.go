package ledger

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/tu-usuario/factura-pyme/internal/application/dto"
	"github.com/tu-usuario/factura-pyme/internal/domain"
	"github.com/tu-usuario/factura-pyme/internal/domain/entity"
	domledger "github.com/tu-usuario/factura-pyme/internal/domain/ledger"
	"github.com/tu-usuario/factura-pyme/internal/domain/repository"
)

// InvoiceUseCase crea y consulta facturas. La creación asigna el número,
// calcula los totales de línea y de factura, persiste cabecera y líneas,
// suma el total al saldo pendiente del cliente y, si viene un pago inicial,
// lo aplica con las mismas reglas de tope que cualquier otro pago — todo en
// una sola transacción.
type InvoiceUseCase struct {
	txRunner  TxRunner
	allocator *NumberAllocator
}

// NewInvoiceUseCase construye el caso de uso.
func NewInvoiceUseCase(txRunner TxRunner, allocator *NumberAllocator) *InvoiceUseCase {
	return &InvoiceUseCase{txRunner: txRunner, allocator: allocator}
}

// CreateInvoice crea la factura completa.
func (uc *InvoiceUseCase) CreateInvoice(ctx context.Context, in dto.CreateInvoiceRequest) (*dto.InvoiceResponse, error) {
	if in.CustomerID == "" || len(in.Items) == 0 {
		return nil, domain.ErrInvalidInput
	}
	for _, item := range in.Items {
		if item.Qty <= 0 || item.Price.IsNegative() {
			return nil, domain.ErrInvalidInput
		}
	}
	invoiceDate, err := parseDateOr(in.InvoiceDate, time.Now())
	if err != nil {
		return nil, domain.ErrInvalidInput
	}
	dueDate, err := parseOptionalDate(in.DueDate)
	if err != nil {
		return nil, domain.ErrInvalidInput
	}
	if in.InitialPayment != nil {
		if !in.InitialPayment.Amount.GreaterThan(decimal.Zero) {
			return nil, domain.ErrInvalidInput
		}
		if in.InitialPayment.PaymentMethod != "" && !entity.ValidPaymentMethod(in.InitialPayment.PaymentMethod) {
			return nil, domain.ErrInvalidInput
		}
	}

	var inv *entity.Invoice
	var items []*entity.InvoiceItem
	var customerName string

	err = uc.txRunner.RunLedger(ctx, func(
		customerRepo repository.CustomerRepository,
		productRepo repository.ProductRepository,
		invoiceRepo repository.InvoiceRepository,
		paymentRepo repository.PaymentRepository,
	) error {
		customer, err := customerRepo.GetByID(in.CustomerID)
		if err != nil {
			return err
		}
		if customer == nil {
			return domain.ErrNotFound
		}
		customerName = customer.Name

		now := time.Now()
		inv = &entity.Invoice{
			ID:             uuid.New().String(),
			Number:         uc.allocator.Next(invoiceRepo),
			CustomerID:     customer.ID,
			InvoiceDate:    invoiceDate,
			DueDate:        dueDate,
			Terms:          in.Terms,
			Salesperson:    in.Salesperson,
			Notes:          in.Notes,
			DiscountAmount: in.DiscountAmount,
			PaymentStatus:  entity.PaymentStatusUnpaid,
			TotalPaid:      decimal.Zero,
			CreatedAt:      now,
			UpdatedAt:      now,
		}

		// Líneas: un producto inexistente descarta solo esa línea; el resto
		// de la factura sigue adelante.
		var lineTotals []decimal.Decimal
		for _, itemIn := range in.Items {
			item, err := buildItem(productRepo, inv.ID, itemIn)
			if err != nil {
				return err
			}
			if item == nil {
				continue // producto no encontrado, línea descartada
			}
			items = append(items, item)
			lineTotals = append(lineTotals, item.LineTotal)
		}
		inv.Total = domledger.InvoiceTotal(lineTotals, inv.DiscountAmount)

		if err := invoiceRepo.Create(inv); err != nil {
			return err
		}
		for _, item := range items {
			if err := invoiceRepo.CreateItem(item); err != nil {
				return err
			}
		}

		// El total de la factura entra al saldo pendiente del cliente.
		customer.OutstandingBalance = customer.OutstandingBalance.Add(inv.Total)
		if err := customerRepo.UpdateLedger(customer); err != nil {
			return err
		}

		if in.InitialPayment != nil {
			paymentDate, err := parseDateOr(in.InitialPayment.PaymentDate, now)
			if err != nil {
				return domain.ErrInvalidInput
			}
			method := in.InitialPayment.PaymentMethod
			if method == "" {
				method = entity.PaymentMethodCash
			}
			notes := in.InitialPayment.Notes
			if notes == "" {
				notes = fmt.Sprintf("Pago inicial de la factura %s", inv.Number)
			}
			applied, _, err := applyToInvoice(invoiceRepo, paymentRepo, inv, paymentMeta{
				amount: in.InitialPayment.Amount,
				date:   paymentDate,
				method: method,
				notes:  notes,
			})
			if err != nil {
				return err
			}
			debitCustomer(customer, applied, paymentDate)
			if next, err := parseOptionalDate(in.InitialPayment.ExpectedNextPayment); err == nil && next != nil {
				customer.ExpectedNextPayment = next
			}
			if err := customerRepo.UpdateLedger(customer); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return toInvoiceResponse(inv, customerName, items), nil
}

// buildItem resuelve el producto y calcula el total de la línea.
// Devuelve nil, nil si el producto referenciado no existe (línea descartada).
func buildItem(productRepo repository.ProductRepository, invoiceID string, in dto.InvoiceItemRequest) (*entity.InvoiceItem, error) {
	product, err := productRepo.GetByID(in.ProductID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, nil
	}
	price := in.Price
	if price.IsZero() {
		price = product.Price
	}
	tax := in.Tax
	if tax.IsZero() {
		tax = product.Tax
	}
	description := in.Description
	if description == "" {
		description = product.Description
	}
	return &entity.InvoiceItem{
		ID:             uuid.New().String(),
		InvoiceID:      invoiceID,
		ProductID:      product.ID,
		Qty:            in.Qty,
		Price:          price,
		DiscountAmount: in.DiscountAmount,
		Tax:            tax,
		LineTotal:      domledger.LineTotal(in.Qty, price, in.DiscountAmount, tax),
		Description:    description,
	}, nil
}

// StartInvoice abre una factura vacía para un cliente (flujo del asistente:
// las líneas llegan después y FinalizeInvoice cierra el total).
func (uc *InvoiceUseCase) StartInvoice(ctx context.Context, customerID string) (*dto.InvoiceResponse, error) {
	if customerID == "" {
		return nil, domain.ErrInvalidInput
	}
	var inv *entity.Invoice
	var customerName string
	err := uc.txRunner.RunLedger(ctx, func(
		customerRepo repository.CustomerRepository,
		_ repository.ProductRepository,
		invoiceRepo repository.InvoiceRepository,
		_ repository.PaymentRepository,
	) error {
		customer, err := customerRepo.GetByID(customerID)
		if err != nil {
			return err
		}
		if customer == nil {
			return domain.ErrNotFound
		}
		customerName = customer.Name
		now := time.Now()
		inv = &entity.Invoice{
			ID:            uuid.New().String(),
			Number:        uc.allocator.Next(invoiceRepo),
			CustomerID:    customer.ID,
			InvoiceDate:   now,
			Total:         decimal.Zero,
			TotalPaid:     decimal.Zero,
			PaymentStatus: entity.PaymentStatusUnpaid,
			CreatedAt:     now,
			UpdatedAt:     now,
		}
		return invoiceRepo.Create(inv)
	})
	if err != nil {
		return nil, err
	}
	return toInvoiceResponse(inv, customerName, nil), nil
}

// AddItem agrega una línea a una factura abierta. El total de la factura no
// se recalcula aquí; eso ocurre en FinalizeInvoice.
func (uc *InvoiceUseCase) AddItem(ctx context.Context, invoiceID string, in dto.InvoiceItemRequest) (*dto.InvoiceItemResponse, error) {
	if invoiceID == "" || in.Qty <= 0 || in.Price.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	var item *entity.InvoiceItem
	err := uc.txRunner.RunLedger(ctx, func(
		_ repository.CustomerRepository,
		productRepo repository.ProductRepository,
		invoiceRepo repository.InvoiceRepository,
		_ repository.PaymentRepository,
	) error {
		inv, err := invoiceRepo.GetByID(invoiceID)
		if err != nil {
			return err
		}
		if inv == nil {
			return domain.ErrNotFound
		}
		item, err = buildItem(productRepo, inv.ID, in)
		if err != nil {
			return err
		}
		if item == nil {
			return domain.ErrNotFound // producto inexistente
		}
		return invoiceRepo.CreateItem(item)
	})
	if err != nil {
		return nil, err
	}
	resp := toItemResponse(item)
	return &resp, nil
}

// FinalizeInvoice recalcula el total desde las líneas y ajusta el saldo del
// cliente por la diferencia con el total anterior.
func (uc *InvoiceUseCase) FinalizeInvoice(ctx context.Context, invoiceID string) (*dto.InvoiceResponse, error) {
	var inv *entity.Invoice
	var items []*entity.InvoiceItem
	var customerName string
	err := uc.txRunner.RunLedger(ctx, func(
		customerRepo repository.CustomerRepository,
		_ repository.ProductRepository,
		invoiceRepo repository.InvoiceRepository,
		_ repository.PaymentRepository,
	) error {
		var err error
		inv, err = invoiceRepo.GetByID(invoiceID)
		if err != nil {
			return err
		}
		if inv == nil {
			return domain.ErrNotFound
		}
		items, err = invoiceRepo.GetItemsByInvoiceID(inv.ID)
		if err != nil {
			return err
		}
		lineTotals := make([]decimal.Decimal, 0, len(items))
		for _, item := range items {
			lineTotals = append(lineTotals, item.LineTotal)
		}
		previousTotal := inv.Total
		inv.Total = domledger.InvoiceTotal(lineTotals, inv.DiscountAmount)
		if inv.TotalPaid.IsZero() {
			inv.PaymentStatus = entity.PaymentStatusUnpaid
		} else {
			inv.PaymentStatus = domledger.StatusAfterPayment(inv.TotalPaid, inv.Total)
		}
		inv.UpdatedAt = time.Now()
		if err := invoiceRepo.UpdateTotals(inv); err != nil {
			return err
		}

		if inv.CustomerID != "" {
			customer, err := customerRepo.GetByID(inv.CustomerID)
			if err != nil {
				return err
			}
			if customer != nil {
				customerName = customer.Name
				customer.OutstandingBalance = customer.OutstandingBalance.Add(inv.Total.Sub(previousTotal))
				if customer.OutstandingBalance.IsNegative() {
					customer.OutstandingBalance = decimal.Zero
				}
				if err := customerRepo.UpdateLedger(customer); err != nil {
					return err
				}
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return toInvoiceResponse(inv, customerName, items), nil
}

// ── helpers compartidos del paquete ──────────────────────────────────────────

const dateLayout = "2006-01-02"

func parseDateOr(s string, def time.Time) (time.Time, error) {
	if s == "" {
		return def, nil
	}
	return time.Parse(dateLayout, s)
}

func parseOptionalDate(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func formatDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(dateLayout)
}

func toItemResponse(item *entity.InvoiceItem) dto.InvoiceItemResponse {
	return dto.InvoiceItemResponse{
		ID:             item.ID,
		ProductID:      item.ProductID,
		Qty:            item.Qty,
		Price:          item.Price,
		DiscountAmount: item.DiscountAmount,
		Tax:            item.Tax,
		LineTotal:      item.LineTotal,
		Description:    item.Description,
	}
}

func toInvoiceResponse(inv *entity.Invoice, customerName string, items []*entity.InvoiceItem) *dto.InvoiceResponse {
	resp := &dto.InvoiceResponse{
		ID:             inv.ID,
		Number:         inv.Number,
		CustomerID:     inv.CustomerID,
		CustomerName:   customerName,
		InvoiceDate:    inv.InvoiceDate.Format(dateLayout),
		DueDate:        formatDate(inv.DueDate),
		Terms:          inv.Terms,
		Salesperson:    inv.Salesperson,
		Notes:          inv.Notes,
		DiscountAmount: inv.DiscountAmount,
		Total:          inv.Total,
		TotalPaid:      inv.TotalPaid,
		PaymentStatus:  inv.PaymentStatus,
		Remaining:      inv.RemainingBalance(),
	}
	for _, item := range items {
		resp.Items = append(resp.Items, toItemResponse(item))
	}
	return resp
}
