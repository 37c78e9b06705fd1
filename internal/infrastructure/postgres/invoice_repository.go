package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/tu-usuario/factura-pyme/internal/domain"
	"github.com/tu-usuario/factura-pyme/internal/domain/entity"
	"github.com/tu-usuario/factura-pyme/internal/domain/repository"
)

var _ repository.InvoiceRepository = (*InvoiceRepo)(nil)

// InvoiceRepo implementación de InvoiceRepository (usable con pool o tx).
type InvoiceRepo struct {
	q Querier
}

// NewInvoiceRepository construye el adaptador. Pasar pool o tx (Querier).
func NewInvoiceRepository(q Querier) *InvoiceRepo {
	return &InvoiceRepo{q: q}
}

const invoiceColumns = `id, number, customer_id, invoice_date, due_date, terms,
	salesperson, notes, discount_amount, total, payment_status, total_paid,
	created_at, updated_at`

func scanInvoice(row pgx.Row) (*entity.Invoice, error) {
	var inv entity.Invoice
	var customerID, terms, salesperson, notes *string
	err := row.Scan(
		&inv.ID, &inv.Number, &customerID, &inv.InvoiceDate, &inv.DueDate, &terms,
		&salesperson, &notes, &inv.DiscountAmount, &inv.Total, &inv.PaymentStatus, &inv.TotalPaid,
		&inv.CreatedAt, &inv.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	inv.CustomerID = strOrEmpty(customerID)
	inv.Terms = strOrEmpty(terms)
	inv.Salesperson = strOrEmpty(salesperson)
	inv.Notes = strOrEmpty(notes)
	return &inv, nil
}

// Create persiste la cabecera de una factura.
func (r *InvoiceRepo) Create(invoice *entity.Invoice) error {
	query := `
		INSERT INTO invoices (id, number, customer_id, invoice_date, due_date, terms,
			salesperson, notes, discount_amount, total, payment_status, total_paid,
			created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`
	_, err := r.q.Exec(context.Background(), query,
		invoice.ID, invoice.Number, nullIfEmpty(invoice.CustomerID),
		invoice.InvoiceDate, invoice.DueDate, nullIfEmpty(invoice.Terms),
		nullIfEmpty(invoice.Salesperson), nullIfEmpty(invoice.Notes),
		invoice.DiscountAmount, invoice.Total, invoice.PaymentStatus, invoice.TotalPaid,
		invoice.CreatedAt, invoice.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert invoice: %w", err)
	}
	return nil
}

// CreateItem persiste una línea de factura.
func (r *InvoiceRepo) CreateItem(item *entity.InvoiceItem) error {
	query := `
		INSERT INTO invoice_items (id, invoice_id, product_id, qty, price,
			discount_amount, tax, line_total, description)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(context.Background(), query,
		item.ID, item.InvoiceID, nullIfEmpty(item.ProductID), item.Qty, item.Price,
		item.DiscountAmount, item.Tax, item.LineTotal, nullIfEmpty(item.Description),
	)
	if err != nil {
		return fmt.Errorf("insert invoice item: %w", err)
	}
	return nil
}

// UpdateTotals persiste total, total_paid, payment_status y updated_at.
func (r *InvoiceRepo) UpdateTotals(invoice *entity.Invoice) error {
	query := `
		UPDATE invoices SET total = $2, total_paid = $3, payment_status = $4, updated_at = $5
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		invoice.ID, invoice.Total, invoice.TotalPaid, invoice.PaymentStatus, invoice.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update invoice totals: %w", err)
	}
	return nil
}

// GetByID obtiene una factura por ID.
func (r *InvoiceRepo) GetByID(id string) (*entity.Invoice, error) {
	query := `SELECT ` + invoiceColumns + ` FROM invoices WHERE id = $1`
	inv, err := scanInvoice(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get invoice: %w", err)
	}
	return inv, nil
}

// GetByNumber obtiene una factura por su consecutivo.
func (r *InvoiceRepo) GetByNumber(number string) (*entity.Invoice, error) {
	query := `SELECT ` + invoiceColumns + ` FROM invoices WHERE number = $1`
	inv, err := scanInvoice(r.q.QueryRow(context.Background(), query, number))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get invoice by number: %w", err)
	}
	return inv, nil
}

// GetItemsByInvoiceID devuelve las líneas de la factura en orden de inserción.
func (r *InvoiceRepo) GetItemsByInvoiceID(invoiceID string) ([]*entity.InvoiceItem, error) {
	query := `
		SELECT id, invoice_id, product_id, qty, price, discount_amount, tax, line_total, description
		FROM invoice_items WHERE invoice_id = $1 ORDER BY seq`
	rows, err := r.q.Query(context.Background(), query, invoiceID)
	if err != nil {
		return nil, fmt.Errorf("list invoice items: %w", err)
	}
	defer rows.Close()
	var list []*entity.InvoiceItem
	for rows.Next() {
		var item entity.InvoiceItem
		var productID, description *string
		if err := rows.Scan(
			&item.ID, &item.InvoiceID, &productID, &item.Qty, &item.Price,
			&item.DiscountAmount, &item.Tax, &item.LineTotal, &description,
		); err != nil {
			return nil, fmt.Errorf("scan invoice item: %w", err)
		}
		item.ProductID = strOrEmpty(productID)
		item.Description = strOrEmpty(description)
		list = append(list, &item)
	}
	return list, rows.Err()
}

// List lista facturas, la más reciente primero. limit <= 0 devuelve todo.
func (r *InvoiceRepo) List(limit, offset int) ([]*entity.Invoice, error) {
	query := `SELECT ` + invoiceColumns + ` FROM invoices ORDER BY invoice_date DESC, number DESC`
	var rows pgx.Rows
	var err error
	if limit > 0 {
		rows, err = r.q.Query(context.Background(), query+` LIMIT $1 OFFSET $2`, limit, offset)
	} else {
		rows, err = r.q.Query(context.Background(), query)
	}
	if err != nil {
		return nil, fmt.Errorf("list invoices: %w", err)
	}
	return collectInvoices(rows)
}

// ListByCustomer devuelve las facturas del cliente, la más reciente primero.
func (r *InvoiceRepo) ListByCustomer(customerID string) ([]*entity.Invoice, error) {
	query := `
		SELECT ` + invoiceColumns + ` FROM invoices
		WHERE customer_id = $1 ORDER BY invoice_date DESC, number DESC`
	rows, err := r.q.Query(context.Background(), query, customerID)
	if err != nil {
		return nil, fmt.Errorf("list invoices by customer: %w", err)
	}
	return collectInvoices(rows)
}

// ListOutstandingByCustomer devuelve las facturas del cliente con saldo por
// cobrar, la más antigua primero; empates por orden de inserción.
func (r *InvoiceRepo) ListOutstandingByCustomer(customerID string) ([]*entity.Invoice, error) {
	query := `
		SELECT ` + invoiceColumns + ` FROM invoices
		WHERE customer_id = $1 AND total > total_paid
		ORDER BY invoice_date ASC, created_at ASC, number ASC`
	rows, err := r.q.Query(context.Background(), query, customerID)
	if err != nil {
		return nil, fmt.Errorf("list outstanding invoices: %w", err)
	}
	return collectInvoices(rows)
}

// ListNumbers devuelve todos los consecutivos existentes.
func (r *InvoiceRepo) ListNumbers() ([]string, error) {
	rows, err := r.q.Query(context.Background(), `SELECT number FROM invoices`)
	if err != nil {
		return nil, fmt.Errorf("list invoice numbers: %w", err)
	}
	defer rows.Close()
	var numbers []string
	for rows.Next() {
		var n string
		if err := rows.Scan(&n); err != nil {
			return nil, fmt.Errorf("scan invoice number: %w", err)
		}
		numbers = append(numbers, n)
	}
	return numbers, rows.Err()
}

// Count devuelve el número de facturas existentes.
func (r *InvoiceRepo) Count() (int, error) {
	var n int
	if err := r.q.QueryRow(context.Background(), `SELECT COUNT(*) FROM invoices`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count invoices: %w", err)
	}
	return n, nil
}

// Delete borra la factura; los FKs en cascada se llevan líneas y pagos.
func (r *InvoiceRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM invoices WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete invoice: %w", err)
	}
	return nil
}

func collectInvoices(rows pgx.Rows) ([]*entity.Invoice, error) {
	defer rows.Close()
	var list []*entity.Invoice
	for rows.Next() {
		inv, err := scanInvoice(rows)
		if err != nil {
			return nil, fmt.Errorf("scan invoice: %w", err)
		}
		list = append(list, inv)
	}
	return list, rows.Err()
}
