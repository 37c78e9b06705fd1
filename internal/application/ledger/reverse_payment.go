package ledger

import (
	"context"
	"time"

	"github.com/tu-usuario/factura-pyme/internal/application/dto"
	"github.com/tu-usuario/factura-pyme/internal/domain"
	domledger "github.com/tu-usuario/factura-pyme/internal/domain/ledger"
	"github.com/tu-usuario/factura-pyme/internal/domain/repository"
)

// ReversePaymentUseCase elimina un pago y revierte su efecto sobre la factura.
//
// Solo revierte la factura: el saldo pendiente del cliente NO se restaura.
// La asimetría con la aplicación de pagos es intencional y queda documentada
// en DESIGN.md; el resumen de cartera permite recomputar el saldo real.
type ReversePaymentUseCase struct {
	txRunner TxRunner
}

// NewReversePaymentUseCase construye el caso de uso.
func NewReversePaymentUseCase(txRunner TxRunner) *ReversePaymentUseCase {
	return &ReversePaymentUseCase{txRunner: txRunner}
}

// Reverse borra el pago, descuenta su monto de total_paid y recalcula el
// estado de la factura.
func (uc *ReversePaymentUseCase) Reverse(ctx context.Context, paymentID string) (*dto.InvoiceResponse, error) {
	var resp *dto.InvoiceResponse
	err := uc.txRunner.RunLedger(ctx, func(
		_ repository.CustomerRepository,
		_ repository.ProductRepository,
		invoiceRepo repository.InvoiceRepository,
		paymentRepo repository.PaymentRepository,
	) error {
		payment, err := paymentRepo.GetByID(paymentID)
		if err != nil {
			return err
		}
		if payment == nil {
			return domain.ErrNotFound
		}
		inv, err := invoiceRepo.GetByID(payment.InvoiceID)
		if err != nil {
			return err
		}
		if inv == nil {
			return domain.ErrNotFound
		}
		if err := paymentRepo.Delete(paymentID); err != nil {
			return err
		}
		inv.TotalPaid = inv.TotalPaid.Sub(payment.Amount)
		inv.PaymentStatus = domledger.StatusAfterReversal(inv.TotalPaid, inv.Total)
		inv.UpdatedAt = time.Now()
		if err := invoiceRepo.UpdateTotals(inv); err != nil {
			return err
		}
		resp = toInvoiceResponse(inv, "", nil)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return resp, nil
}
