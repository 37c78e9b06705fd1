package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/tu-usuario/factura-pyme/internal/domain"
	"github.com/tu-usuario/factura-pyme/internal/domain/entity"
	"github.com/tu-usuario/factura-pyme/internal/domain/repository"
)

var _ repository.CustomerRepository = (*CustomerRepo)(nil)

// CustomerRepo implementación de CustomerRepository (usable con pool o tx).
type CustomerRepo struct {
	q Querier
}

// NewCustomerRepository construye el adaptador. Pasar pool o tx (Querier).
func NewCustomerRepository(q Querier) *CustomerRepo {
	return &CustomerRepo{q: q}
}

const customerColumns = `id, name, phone, email, address, tax_id,
	outstanding_balance, credit_limit, last_payment_date, expected_next_payment_date,
	created_at, updated_at`

func scanCustomer(row pgx.Row) (*entity.Customer, error) {
	var c entity.Customer
	var phone, email, address, taxID *string
	err := row.Scan(
		&c.ID, &c.Name, &phone, &email, &address, &taxID,
		&c.OutstandingBalance, &c.CreditLimit, &c.LastPaymentDate, &c.ExpectedNextPayment,
		&c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	c.Phone = strOrEmpty(phone)
	c.Email = strOrEmpty(email)
	c.Address = strOrEmpty(address)
	c.TaxID = strOrEmpty(taxID)
	return &c, nil
}

// Create persiste un nuevo cliente.
func (r *CustomerRepo) Create(customer *entity.Customer) error {
	query := `
		INSERT INTO customers (id, name, phone, email, address, tax_id,
			outstanding_balance, credit_limit, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(context.Background(), query,
		customer.ID, customer.Name, nullIfEmpty(customer.Phone), nullIfEmpty(customer.Email),
		nullIfEmpty(customer.Address), nullIfEmpty(customer.TaxID),
		customer.OutstandingBalance, customer.CreditLimit,
		customer.CreatedAt, customer.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert customer: %w", err)
	}
	return nil
}

// GetByID obtiene un cliente por ID.
func (r *CustomerRepo) GetByID(id string) (*entity.Customer, error) {
	query := `SELECT ` + customerColumns + ` FROM customers WHERE id = $1`
	c, err := scanCustomer(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get customer: %w", err)
	}
	return c, nil
}

// Search busca por nombre o teléfono (coincidencia parcial, sin distinguir mayúsculas).
func (r *CustomerRepo) Search(q string, limit int) ([]*entity.Customer, error) {
	query := `
		SELECT ` + customerColumns + `
		FROM customers
		WHERE name ILIKE '%' || $1 || '%' OR phone ILIKE '%' || $1 || '%'
		ORDER BY name LIMIT $2`
	rows, err := r.q.Query(context.Background(), query, q, limit)
	if err != nil {
		return nil, fmt.Errorf("search customers: %w", err)
	}
	return collectCustomers(rows)
}

// List lista clientes con paginación. limit <= 0 devuelve todo.
func (r *CustomerRepo) List(limit, offset int) ([]*entity.Customer, error) {
	query := `SELECT ` + customerColumns + ` FROM customers ORDER BY name`
	var rows pgx.Rows
	var err error
	if limit > 0 {
		rows, err = r.q.Query(context.Background(), query+` LIMIT $1 OFFSET $2`, limit, offset)
	} else {
		rows, err = r.q.Query(context.Background(), query)
	}
	if err != nil {
		return nil, fmt.Errorf("list customers: %w", err)
	}
	return collectCustomers(rows)
}

// Update actualiza los datos de contacto y el cupo de crédito.
func (r *CustomerRepo) Update(customer *entity.Customer) error {
	query := `
		UPDATE customers SET name = $2, phone = $3, email = $4, address = $5,
			tax_id = $6, credit_limit = $7, updated_at = $8
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		customer.ID, customer.Name, nullIfEmpty(customer.Phone), nullIfEmpty(customer.Email),
		nullIfEmpty(customer.Address), nullIfEmpty(customer.TaxID),
		customer.CreditLimit, customer.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update customer: %w", err)
	}
	return nil
}

// UpdateLedger persiste solo los campos de cartera.
func (r *CustomerRepo) UpdateLedger(customer *entity.Customer) error {
	query := `
		UPDATE customers SET outstanding_balance = $2, last_payment_date = $3,
			expected_next_payment_date = $4, updated_at = $5
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		customer.ID, customer.OutstandingBalance,
		customer.LastPaymentDate, customer.ExpectedNextPayment, time.Now(),
	)
	if err != nil {
		return fmt.Errorf("update customer ledger: %w", err)
	}
	return nil
}

// ListWithBalance devuelve los clientes con saldo pendiente > 0, saldo mayor primero.
func (r *CustomerRepo) ListWithBalance() ([]*entity.Customer, error) {
	query := `
		SELECT ` + customerColumns + ` FROM customers
		WHERE outstanding_balance > 0
		ORDER BY outstanding_balance DESC`
	rows, err := r.q.Query(context.Background(), query)
	if err != nil {
		return nil, fmt.Errorf("list customers with balance: %w", err)
	}
	return collectCustomers(rows)
}

// SumExpectedInMonth suma los saldos de clientes cuya próxima fecha de pago
// esperada cae en el mes dado (formato "2006-01").
func (r *CustomerRepo) SumExpectedInMonth(yearMonth string) (decimal.Decimal, error) {
	query := `
		SELECT COALESCE(SUM(outstanding_balance), 0)
		FROM customers
		WHERE outstanding_balance > 0
		  AND expected_next_payment_date IS NOT NULL
		  AND to_char(expected_next_payment_date, 'YYYY-MM') = $1`
	var sum decimal.Decimal
	if err := r.q.QueryRow(context.Background(), query, yearMonth).Scan(&sum); err != nil {
		return decimal.Zero, fmt.Errorf("sum expected in month: %w", err)
	}
	return sum, nil
}

// Delete borra el cliente; el FK con ON DELETE SET NULL deja sus facturas huérfanas pero vivas.
func (r *CustomerRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM customers WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete customer: %w", err)
	}
	return nil
}

func collectCustomers(rows pgx.Rows) ([]*entity.Customer, error) {
	defer rows.Close()
	var list []*entity.Customer
	for rows.Next() {
		c, err := scanCustomer(rows)
		if err != nil {
			return nil, fmt.Errorf("scan customer: %w", err)
		}
		list = append(list, c)
	}
	return list, rows.Err()
}
