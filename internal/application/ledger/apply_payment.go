package ledger

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/tu-usuario/factura-pyme/internal/application/dto"
	"github.com/tu-usuario/factura-pyme/internal/domain"
	"github.com/tu-usuario/factura-pyme/internal/domain/entity"
	domledger "github.com/tu-usuario/factura-pyme/internal/domain/ledger"
	"github.com/tu-usuario/factura-pyme/internal/domain/repository"
)

// ApplyPaymentUseCase aplica pagos: a una factura concreta, o distribuidos
// FIFO sobre las facturas pendientes de un cliente (la más antigua primero).
type ApplyPaymentUseCase struct {
	txRunner TxRunner
}

// NewApplyPaymentUseCase construye el caso de uso.
func NewApplyPaymentUseCase(txRunner TxRunner) *ApplyPaymentUseCase {
	return &ApplyPaymentUseCase{txRunner: txRunner}
}

// paymentMeta datos comunes del pago que se van a registrar.
type paymentMeta struct {
	amount     decimal.Decimal
	date       time.Time
	method     string
	reference  string
	notes      string
	receivedBy string
}

// applyToInvoice aplica un pago con tope a una sola factura: incrementa
// total_paid en min(amount, total - total_paid), recalcula el estado y crea
// el registro Payment con el monto efectivamente aplicado.
// No toca el saldo del cliente; eso lo decide el caller.
func applyToInvoice(
	invoiceRepo repository.InvoiceRepository,
	paymentRepo repository.PaymentRepository,
	inv *entity.Invoice,
	meta paymentMeta,
) (applied decimal.Decimal, payment *entity.Payment, err error) {
	applied = domledger.CappedAmount(meta.amount, inv.Total, inv.TotalPaid)
	inv.TotalPaid = inv.TotalPaid.Add(applied)
	inv.PaymentStatus = domledger.StatusAfterPayment(inv.TotalPaid, inv.Total)
	inv.UpdatedAt = time.Now()
	if err := invoiceRepo.UpdateTotals(inv); err != nil {
		return decimal.Zero, nil, err
	}
	payment = &entity.Payment{
		ID:              uuid.New().String(),
		InvoiceID:       inv.ID,
		Amount:          applied,
		PaymentDate:     meta.date,
		PaymentMethod:   meta.method,
		ReferenceNumber: meta.reference,
		Notes:           meta.notes,
		ReceivedBy:      meta.receivedBy,
		CreatedAt:       time.Now(),
	}
	if err := paymentRepo.Create(payment); err != nil {
		return decimal.Zero, nil, err
	}
	return applied, payment, nil
}

// debitCustomer descuenta el monto del saldo pendiente (con piso en cero) y
// registra la fecha del pago.
func debitCustomer(customer *entity.Customer, amount decimal.Decimal, date time.Time) {
	customer.OutstandingBalance = customer.OutstandingBalance.Sub(amount)
	if customer.OutstandingBalance.IsNegative() {
		customer.OutstandingBalance = decimal.Zero
	}
	d := date
	customer.LastPaymentDate = &d
}

func validatePayment(in dto.ApplyPaymentRequest) (paymentMeta, error) {
	if !in.Amount.GreaterThan(decimal.Zero) {
		return paymentMeta{}, domain.ErrInvalidInput
	}
	method := in.PaymentMethod
	if method == "" {
		method = entity.PaymentMethodCash
	}
	if !entity.ValidPaymentMethod(method) {
		return paymentMeta{}, domain.ErrInvalidInput
	}
	date, err := parseDateOr(in.PaymentDate, time.Now())
	if err != nil {
		return paymentMeta{}, domain.ErrInvalidInput
	}
	return paymentMeta{
		amount:     in.Amount,
		date:       date,
		method:     method,
		reference:  in.ReferenceNumber,
		notes:      in.Notes,
		receivedBy: in.ReceivedBy,
	}, nil
}

// ApplyToInvoice registra un pago sobre una factura concreta.
// El saldo del cliente baja en el monto efectivamente aplicado (con tope),
// con piso en cero.
func (uc *ApplyPaymentUseCase) ApplyToInvoice(ctx context.Context, invoiceID string, in dto.ApplyPaymentRequest) (*dto.PaymentResponse, error) {
	meta, err := validatePayment(in)
	if err != nil {
		return nil, err
	}
	var payment *entity.Payment
	var invoiceNumber string
	err = uc.txRunner.RunLedger(ctx, func(
		customerRepo repository.CustomerRepository,
		_ repository.ProductRepository,
		invoiceRepo repository.InvoiceRepository,
		paymentRepo repository.PaymentRepository,
	) error {
		inv, err := invoiceRepo.GetByID(invoiceID)
		if err != nil {
			return err
		}
		if inv == nil {
			return domain.ErrNotFound
		}
		invoiceNumber = inv.Number
		applied, p, err := applyToInvoice(invoiceRepo, paymentRepo, inv, meta)
		if err != nil {
			return err
		}
		payment = p
		if inv.CustomerID == "" {
			return nil
		}
		customer, err := customerRepo.GetByID(inv.CustomerID)
		if err != nil {
			return err
		}
		if customer == nil {
			return nil // la referencia quedó en nulo al borrar el cliente
		}
		debitCustomer(customer, applied, meta.date)
		if next, err := parseOptionalDate(in.ExpectedNextPayment); err == nil && next != nil {
			customer.ExpectedNextPayment = next
		}
		return customerRepo.UpdateLedger(customer)
	})
	if err != nil {
		return nil, err
	}
	resp := toPaymentResponse(payment, invoiceNumber)
	return &resp, nil
}

// ApplyToCustomer distribuye un pago sin factura destino entre las facturas
// pendientes del cliente, FIFO por fecha de factura. Crea un Payment por cada
// factura tocada y se detiene al agotar el monto o las facturas.
//
// El saldo del cliente baja en el monto completo solicitado (piso en cero),
// no en lo efectivamente distribuido: un sobrante tras saldar todas las
// facturas no se reembolsa ni se registra. Ese descuadre está documentado en
// DESIGN.md y cubierto por tests.
func (uc *ApplyPaymentUseCase) ApplyToCustomer(ctx context.Context, customerID string, in dto.ApplyPaymentRequest) (*dto.CustomerPaymentResponse, error) {
	meta, err := validatePayment(in)
	if err != nil {
		return nil, err
	}
	resp := &dto.CustomerPaymentResponse{
		CustomerID:      customerID,
		RequestedAmount: meta.amount,
		AppliedAmount:   decimal.Zero,
	}
	err = uc.txRunner.RunLedger(ctx, func(
		customerRepo repository.CustomerRepository,
		_ repository.ProductRepository,
		invoiceRepo repository.InvoiceRepository,
		paymentRepo repository.PaymentRepository,
	) error {
		customer, err := customerRepo.GetByID(customerID)
		if err != nil {
			return err
		}
		if customer == nil {
			return domain.ErrNotFound
		}
		outstanding, err := invoiceRepo.ListOutstandingByCustomer(customerID)
		if err != nil {
			return err
		}
		remaining := meta.amount
		for _, inv := range outstanding {
			if !remaining.GreaterThan(decimal.Zero) {
				break
			}
			share := meta
			share.amount = remaining
			applied, payment, err := applyToInvoice(invoiceRepo, paymentRepo, inv, share)
			if err != nil {
				return err
			}
			remaining = remaining.Sub(applied)
			resp.AppliedAmount = resp.AppliedAmount.Add(applied)
			resp.Payments = append(resp.Payments, toPaymentResponse(payment, inv.Number))
		}

		debitCustomer(customer, meta.amount, meta.date)
		if next, err := parseOptionalDate(in.ExpectedNextPayment); err == nil && next != nil {
			customer.ExpectedNextPayment = next
		}
		return customerRepo.UpdateLedger(customer)
	})
	if err != nil {
		return nil, err
	}
	return resp, nil
}

func toPaymentResponse(p *entity.Payment, invoiceNumber string) dto.PaymentResponse {
	return dto.PaymentResponse{
		ID:              p.ID,
		InvoiceID:       p.InvoiceID,
		InvoiceNumber:   invoiceNumber,
		Amount:          p.Amount,
		PaymentDate:     p.PaymentDate.Format(dateLayout),
		PaymentMethod:   p.PaymentMethod,
		ReferenceNumber: p.ReferenceNumber,
		Notes:           p.Notes,
		ReceivedBy:      p.ReceivedBy,
	}
}
