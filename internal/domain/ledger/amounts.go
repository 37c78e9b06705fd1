package ledger

import (
	"github.com/shopspring/decimal"

	"github.com/tu-usuario/factura-pyme/internal/domain/entity"
)

var hundred = decimal.NewFromInt(100)

// LineTotal implementa la fórmula de línea (servicio de dominio):
// (qty*price - discount) * (1 + tax/100). No se recorta a cero: un descuento
// mayor que el valor de la línea produce un total negativo y se acepta tal cual.
func LineTotal(qty int, price, discount, taxPercent decimal.Decimal) decimal.Decimal {
	base := decimal.NewFromInt(int64(qty)).Mul(price).Sub(discount)
	return base.Mul(decimal.NewFromInt(1).Add(taxPercent.Div(hundred)))
}

// InvoiceTotal suma los totales de línea y resta el descuento a nivel de factura.
func InvoiceTotal(lineTotals []decimal.Decimal, invoiceDiscount decimal.Decimal) decimal.Decimal {
	total := decimal.Zero
	for _, lt := range lineTotals {
		total = total.Add(lt)
	}
	return total.Sub(invoiceDiscount)
}

// StatusAfterPayment calcula el estado tras aplicar un pago:
// paid si totalPaid >= total, partial si totalPaid > 0, si no unpaid.
func StatusAfterPayment(totalPaid, total decimal.Decimal) string {
	switch {
	case totalPaid.GreaterThanOrEqual(total):
		return entity.PaymentStatusPaid
	case totalPaid.GreaterThan(decimal.Zero):
		return entity.PaymentStatusPartial
	default:
		return entity.PaymentStatusUnpaid
	}
}

// StatusAfterReversal calcula el estado tras revertir un pago:
// unpaid si totalPaid <= 0, partial si totalPaid < total, si no paid.
// El orden de los cortes difiere del de StatusAfterPayment en los bordes
// (totalPaid == 0 y totalPaid == total) y debe conservarse.
func StatusAfterReversal(totalPaid, total decimal.Decimal) string {
	switch {
	case totalPaid.LessThanOrEqual(decimal.Zero):
		return entity.PaymentStatusUnpaid
	case totalPaid.LessThan(total):
		return entity.PaymentStatusPartial
	default:
		return entity.PaymentStatusPaid
	}
}

// CappedAmount devuelve cuánto de amount puede aplicarse a una factura con el
// saldo dado: min(amount, total - totalPaid).
func CappedAmount(amount, total, totalPaid decimal.Decimal) decimal.Decimal {
	remaining := total.Sub(totalPaid)
	if amount.GreaterThan(remaining) {
		return remaining
	}
	return amount
}
