package ledger

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/tu-usuario/factura-pyme/internal/application/dto"
	"github.com/tu-usuario/factura-pyme/internal/domain"
	"github.com/tu-usuario/factura-pyme/internal/domain/entity"
	"github.com/tu-usuario/factura-pyme/internal/domain/repository"
)

// ReceivablesUseCase libro de cartera: resumen de clientes con saldo y estado
// de cuenta por cliente.
type ReceivablesUseCase struct {
	txRunner     TxRunner
	customerRepo repository.CustomerRepository
}

// NewReceivablesUseCase construye el caso de uso.
func NewReceivablesUseCase(txRunner TxRunner, customerRepo repository.CustomerRepository) *ReceivablesUseCase {
	return &ReceivablesUseCase{txRunner: txRunner, customerRepo: customerRepo}
}

// Summary devuelve los clientes con saldo pendiente, el total de cartera y
// cuánto se espera cobrar en el mes en curso.
func (uc *ReceivablesUseCase) Summary(ctx context.Context) (*dto.ReceivablesSummaryResponse, error) {
	customers, err := uc.customerRepo.ListWithBalance()
	if err != nil {
		return nil, err
	}
	month := time.Now().Format("2006-01")
	expected, err := uc.customerRepo.SumExpectedInMonth(month)
	if err != nil {
		return nil, err
	}
	resp := &dto.ReceivablesSummaryResponse{
		Rows:              make([]dto.ReceivableRow, 0, len(customers)),
		TotalOutstanding:  decimal.Zero,
		ExpectedThisMonth: expected,
		Month:             month,
	}
	for _, c := range customers {
		resp.TotalOutstanding = resp.TotalOutstanding.Add(c.OutstandingBalance)
		resp.Rows = append(resp.Rows, dto.ReceivableRow{
			CustomerID:          c.ID,
			CustomerName:        c.Name,
			Phone:               c.Phone,
			OutstandingBalance:  c.OutstandingBalance,
			LastPaymentDate:     formatDate(c.LastPaymentDate),
			ExpectedNextPayment: formatDate(c.ExpectedNextPayment),
		})
	}
	return resp, nil
}

// CustomerStatement devuelve facturas, pagos y saldo real de un cliente.
// El saldo real se recalcula desde las facturas (suma de remanentes
// positivos); si el saldo incremental almacenado quedó desfasado, se corrige
// aquí con el valor recalculado.
func (uc *ReceivablesUseCase) CustomerStatement(ctx context.Context, customerID string) (*dto.CustomerStatementResponse, error) {
	var resp *dto.CustomerStatementResponse
	err := uc.txRunner.RunLedger(ctx, func(
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
		invoices, err := invoiceRepo.ListByCustomer(customerID)
		if err != nil {
			return err
		}
		payments, err := paymentRepo.ListByCustomer(customerID)
		if err != nil {
			return err
		}

		outstanding := decimal.Zero
		for _, inv := range invoices {
			if remaining := inv.RemainingBalance(); remaining.GreaterThan(decimal.Zero) {
				outstanding = outstanding.Add(remaining)
			}
		}
		if !customer.OutstandingBalance.Equal(outstanding) {
			customer.OutstandingBalance = outstanding
			if err := customerRepo.UpdateLedger(customer); err != nil {
				return err
			}
		}

		numbers := make(map[string]string, len(invoices))
		resp = &dto.CustomerStatementResponse{
			Customer:    toCustomerResponse(customer),
			Invoices:    make([]dto.InvoiceResponse, 0, len(invoices)),
			Payments:    make([]dto.PaymentResponse, 0, len(payments)),
			Outstanding: outstanding,
		}
		for _, inv := range invoices {
			numbers[inv.ID] = inv.Number
			resp.Invoices = append(resp.Invoices, *toInvoiceResponse(inv, customer.Name, nil))
		}
		for _, p := range payments {
			resp.Payments = append(resp.Payments, toPaymentResponse(p, numbers[p.InvoiceID]))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return resp, nil
}

func toCustomerResponse(c *entity.Customer) dto.CustomerResponse {
	return dto.CustomerResponse{
		ID:                  c.ID,
		Name:                c.Name,
		Phone:               c.Phone,
		Email:               c.Email,
		Address:             c.Address,
		TaxID:               c.TaxID,
		OutstandingBalance:  c.OutstandingBalance,
		CreditLimit:         c.CreditLimit,
		LastPaymentDate:     formatDate(c.LastPaymentDate),
		ExpectedNextPayment: formatDate(c.ExpectedNextPayment),
	}
}
