package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/tu-usuario/factura-pyme/internal/domain/entity"
	"github.com/tu-usuario/factura-pyme/internal/domain/repository"
)

var _ repository.PaymentRepository = (*PaymentRepo)(nil)

// PaymentRepo implementación de PaymentRepository (usable con pool o tx).
type PaymentRepo struct {
	q Querier
}

// NewPaymentRepository construye el adaptador. Pasar pool o tx (Querier).
func NewPaymentRepository(q Querier) *PaymentRepo {
	return &PaymentRepo{q: q}
}

const paymentColumns = `id, invoice_id, amount, payment_date, payment_method,
	reference_number, notes, received_by, created_at`

func scanPayment(row pgx.Row) (*entity.Payment, error) {
	var p entity.Payment
	var reference, notes, receivedBy *string
	err := row.Scan(
		&p.ID, &p.InvoiceID, &p.Amount, &p.PaymentDate, &p.PaymentMethod,
		&reference, &notes, &receivedBy, &p.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	p.ReferenceNumber = strOrEmpty(reference)
	p.Notes = strOrEmpty(notes)
	p.ReceivedBy = strOrEmpty(receivedBy)
	return &p, nil
}

// Create persiste un pago.
func (r *PaymentRepo) Create(payment *entity.Payment) error {
	query := `
		INSERT INTO payments (id, invoice_id, amount, payment_date, payment_method,
			reference_number, notes, received_by, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(context.Background(), query,
		payment.ID, payment.InvoiceID, payment.Amount, payment.PaymentDate,
		payment.PaymentMethod, nullIfEmpty(payment.ReferenceNumber),
		nullIfEmpty(payment.Notes), nullIfEmpty(payment.ReceivedBy), payment.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert payment: %w", err)
	}
	return nil
}

// GetByID obtiene un pago por ID.
func (r *PaymentRepo) GetByID(id string) (*entity.Payment, error) {
	query := `SELECT ` + paymentColumns + ` FROM payments WHERE id = $1`
	p, err := scanPayment(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get payment: %w", err)
	}
	return p, nil
}

// ListByInvoice devuelve los pagos de una factura, el más antiguo primero.
func (r *PaymentRepo) ListByInvoice(invoiceID string) ([]*entity.Payment, error) {
	query := `
		SELECT ` + paymentColumns + ` FROM payments
		WHERE invoice_id = $1 ORDER BY payment_date ASC, created_at ASC`
	rows, err := r.q.Query(context.Background(), query, invoiceID)
	if err != nil {
		return nil, fmt.Errorf("list payments by invoice: %w", err)
	}
	return collectPayments(rows)
}

// ListByCustomer devuelve los pagos de todas las facturas del cliente,
// el más reciente primero.
func (r *PaymentRepo) ListByCustomer(customerID string) ([]*entity.Payment, error) {
	query := `
		SELECT p.id, p.invoice_id, p.amount, p.payment_date, p.payment_method,
			p.reference_number, p.notes, p.received_by, p.created_at
		FROM payments p
		JOIN invoices i ON i.id = p.invoice_id
		WHERE i.customer_id = $1
		ORDER BY p.payment_date DESC, p.created_at DESC`
	rows, err := r.q.Query(context.Background(), query, customerID)
	if err != nil {
		return nil, fmt.Errorf("list payments by customer: %w", err)
	}
	return collectPayments(rows)
}

// Delete elimina un pago por ID.
func (r *PaymentRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM payments WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete payment: %w", err)
	}
	return nil
}

func collectPayments(rows pgx.Rows) ([]*entity.Payment, error) {
	defer rows.Close()
	var list []*entity.Payment
	for rows.Next() {
		p, err := scanPayment(rows)
		if err != nil {
			return nil, fmt.Errorf("scan payment: %w", err)
		}
		list = append(list, p)
	}
	return list, rows.Err()
}
