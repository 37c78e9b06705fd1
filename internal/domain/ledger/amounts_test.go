package ledger_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/tu-usuario/factura-pyme/internal/domain/entity"
	"github.com/tu-usuario/factura-pyme/internal/domain/ledger"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestLineTotal(t *testing.T) {
	tests := []struct {
		name     string
		qty      int
		price    string
		discount string
		tax      string
		want     string
	}{
		{"sin descuento ni impuesto", 2, "100", "0", "0", "200"},
		{"con descuento", 2, "100", "50", "0", "150"},
		{"con impuesto", 2, "100", "0", "19", "238"},
		{"descuento e impuesto: el impuesto aplica sobre la base descontada", 10, "2500", "500", "5", "25725"},
		{"descuento mayor que la línea produce total negativo", 1, "100", "150", "0", "-50"},
		{"el impuesto amplifica una base negativa", 1, "100", "200", "10", "-110"},
		{"precio con decimales", 3, "12.50", "0", "18", "44.25"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ledger.LineTotal(tt.qty, dec(tt.price), dec(tt.discount), dec(tt.tax))
			assert.True(t, dec(tt.want).Equal(got), "esperado %s, obtenido %s", tt.want, got)
		})
	}
}

func TestInvoiceTotal(t *testing.T) {
	lines := []decimal.Decimal{dec("100"), dec("250.50"), dec("-20")}

	got := ledger.InvoiceTotal(lines, dec("30"))
	assert.True(t, dec("300.50").Equal(got))

	// Sin líneas: el descuento de factura se resta igual y el total queda negativo.
	got = ledger.InvoiceTotal(nil, dec("10"))
	assert.True(t, dec("-10").Equal(got))
}

func TestStatusAfterPayment(t *testing.T) {
	tests := []struct {
		name      string
		totalPaid string
		total     string
		want      string
	}{
		{"nada pagado", "0", "100", entity.PaymentStatusUnpaid},
		{"pago parcial", "40", "100", entity.PaymentStatusPartial},
		{"pago exacto", "100", "100", entity.PaymentStatusPaid},
		{"sobrepago", "150", "100", entity.PaymentStatusPaid},
		{"factura en cero con cero pagado queda paid", "0", "0", entity.PaymentStatusPaid},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ledger.StatusAfterPayment(dec(tt.totalPaid), dec(tt.total)))
		})
	}
}

func TestStatusAfterReversal(t *testing.T) {
	tests := []struct {
		name      string
		totalPaid string
		total     string
		want      string
	}{
		{"todo revertido", "0", "100", entity.PaymentStatusUnpaid},
		{"pagado por debajo de cero", "-10", "100", entity.PaymentStatusUnpaid},
		{"queda pago parcial", "60", "100", entity.PaymentStatusPartial},
		{"sigue totalmente pagada", "100", "100", entity.PaymentStatusPaid},
		// El borde total==0, pagado==0 cae en unpaid aquí (en StatusAfterPayment
		// cae en paid); los dos recorridos de cortes son deliberadamente distintos.
		{"factura en cero con cero pagado queda unpaid", "0", "0", entity.PaymentStatusUnpaid},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ledger.StatusAfterReversal(dec(tt.totalPaid), dec(tt.total)))
		})
	}
}

func TestCappedAmount(t *testing.T) {
	// El pago cabe completo en el saldo.
	assert.True(t, dec("40").Equal(ledger.CappedAmount(dec("40"), dec("100"), dec("30"))))
	// El pago excede el saldo: se aplica solo lo que falta.
	assert.True(t, dec("70").Equal(ledger.CappedAmount(dec("500"), dec("100"), dec("30"))))
	// Factura ya saldada: no se aplica nada.
	assert.True(t, ledger.CappedAmount(dec("50"), dec("100"), dec("100")).IsZero())
}
