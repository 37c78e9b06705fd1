package ledger_test

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/tu-usuario/factura-pyme/internal/domain/entity"
	"github.com/tu-usuario/factura-pyme/internal/domain/repository"
)

// memStore estado compartido de los repos en memoria para los tests.
// Los Get devuelven copias: la mutación solo se "persiste" vía Update*.
type memStore struct {
	customers map[string]*entity.Customer
	products  map[string]*entity.Product
	invoices  map[string]*entity.Invoice
	invOrder  []string // orden de inserción de facturas
	items     map[string][]*entity.InvoiceItem
	payments  map[string]*entity.Payment
	payOrder  []string

	// listNumbersErr fuerza el modo degradado del asignador de números.
	listNumbersErr error
}

func newMemStore() *memStore {
	return &memStore{
		customers: make(map[string]*entity.Customer),
		products:  make(map[string]*entity.Product),
		invoices:  make(map[string]*entity.Invoice),
		items:     make(map[string][]*entity.InvoiceItem),
		payments:  make(map[string]*entity.Payment),
	}
}

// memTxRunner ejecuta fn directamente sobre los repos en memoria (sin
// transacción real; los tests verifican semántica, no atomicidad).
type memTxRunner struct{ store *memStore }

func (r *memTxRunner) RunLedger(_ context.Context, fn func(
	repository.CustomerRepository,
	repository.ProductRepository,
	repository.InvoiceRepository,
	repository.PaymentRepository,
) error) error {
	return fn(
		&memCustomerRepo{r.store},
		&memProductRepo{r.store},
		&memInvoiceRepo{r.store},
		&memPaymentRepo{r.store},
	)
}

// ── helpers de alta de datos ──────────────────────────────────────────────────

func (s *memStore) addCustomer(name string, balance decimal.Decimal) *entity.Customer {
	c := &entity.Customer{ID: uuid.New().String(), Name: name, OutstandingBalance: balance}
	s.customers[c.ID] = c
	return c
}

func (s *memStore) addProduct(name string, price, tax decimal.Decimal) *entity.Product {
	p := &entity.Product{ID: uuid.New().String(), Name: name, Price: price, Tax: tax}
	s.products[p.ID] = p
	return p
}

func (s *memStore) addInvoice(number, customerID string, date time.Time, total, paid decimal.Decimal) *entity.Invoice {
	inv := &entity.Invoice{
		ID:          uuid.New().String(),
		Number:      number,
		CustomerID:  customerID,
		InvoiceDate: date,
		Total:       total,
		TotalPaid:   paid,
	}
	inv.PaymentStatus = entity.PaymentStatusUnpaid
	if paid.GreaterThan(decimal.Zero) {
		inv.PaymentStatus = entity.PaymentStatusPartial
	}
	s.invoices[inv.ID] = inv
	s.invOrder = append(s.invOrder, inv.ID)
	return inv
}

// ── CustomerRepository ────────────────────────────────────────────────────────

type memCustomerRepo struct{ s *memStore }

func (r *memCustomerRepo) Create(c *entity.Customer) error {
	cp := *c
	r.s.customers[c.ID] = &cp
	return nil
}

func (r *memCustomerRepo) GetByID(id string) (*entity.Customer, error) {
	c, ok := r.s.customers[id]
	if !ok {
		return nil, nil
	}
	cp := *c
	return &cp, nil
}

func (r *memCustomerRepo) Search(q string, limit int) ([]*entity.Customer, error) {
	var out []*entity.Customer
	for _, c := range r.s.customers {
		if strings.Contains(strings.ToLower(c.Name), strings.ToLower(q)) {
			cp := *c
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *memCustomerRepo) List(limit, offset int) ([]*entity.Customer, error) {
	var out []*entity.Customer
	for _, c := range r.s.customers {
		cp := *c
		out = append(out, &cp)
	}
	return out, nil
}

func (r *memCustomerRepo) Update(c *entity.Customer) error {
	cp := *c
	r.s.customers[c.ID] = &cp
	return nil
}

func (r *memCustomerRepo) UpdateLedger(c *entity.Customer) error {
	stored, ok := r.s.customers[c.ID]
	if !ok {
		return nil
	}
	stored.OutstandingBalance = c.OutstandingBalance
	stored.LastPaymentDate = c.LastPaymentDate
	stored.ExpectedNextPayment = c.ExpectedNextPayment
	return nil
}

func (r *memCustomerRepo) ListWithBalance() ([]*entity.Customer, error) {
	var out []*entity.Customer
	for _, c := range r.s.customers {
		if c.OutstandingBalance.GreaterThan(decimal.Zero) {
			cp := *c
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].OutstandingBalance.GreaterThan(out[j].OutstandingBalance)
	})
	return out, nil
}

func (r *memCustomerRepo) SumExpectedInMonth(yearMonth string) (decimal.Decimal, error) {
	sum := decimal.Zero
	for _, c := range r.s.customers {
		if c.ExpectedNextPayment != nil && c.ExpectedNextPayment.Format("2006-01") == yearMonth {
			sum = sum.Add(c.OutstandingBalance)
		}
	}
	return sum, nil
}

func (r *memCustomerRepo) Delete(id string) error {
	delete(r.s.customers, id)
	for _, inv := range r.s.invoices {
		if inv.CustomerID == id {
			inv.CustomerID = ""
		}
	}
	return nil
}

// ── ProductRepository ─────────────────────────────────────────────────────────

type memProductRepo struct{ s *memStore }

func (r *memProductRepo) Create(p *entity.Product) error {
	cp := *p
	r.s.products[p.ID] = &cp
	return nil
}

func (r *memProductRepo) GetByID(id string) (*entity.Product, error) {
	p, ok := r.s.products[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (r *memProductRepo) GetByBarcode(barcode string) (*entity.Product, error) {
	for _, p := range r.s.products {
		if p.Barcode == barcode {
			cp := *p
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *memProductRepo) Search(q string, limit int) ([]*entity.Product, error) {
	var out []*entity.Product
	for _, p := range r.s.products {
		if strings.Contains(strings.ToLower(p.Name), strings.ToLower(q)) {
			cp := *p
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *memProductRepo) List(limit, offset int) ([]*entity.Product, error) {
	var out []*entity.Product
	for _, p := range r.s.products {
		cp := *p
		out = append(out, &cp)
	}
	return out, nil
}

func (r *memProductRepo) Update(p *entity.Product) error {
	cp := *p
	r.s.products[p.ID] = &cp
	return nil
}

func (r *memProductRepo) Delete(id string) error {
	delete(r.s.products, id)
	return nil
}

// ── InvoiceRepository ─────────────────────────────────────────────────────────

type memInvoiceRepo struct{ s *memStore }

func (r *memInvoiceRepo) Create(inv *entity.Invoice) error {
	cp := *inv
	r.s.invoices[inv.ID] = &cp
	r.s.invOrder = append(r.s.invOrder, inv.ID)
	return nil
}

func (r *memInvoiceRepo) CreateItem(item *entity.InvoiceItem) error {
	cp := *item
	r.s.items[item.InvoiceID] = append(r.s.items[item.InvoiceID], &cp)
	return nil
}

func (r *memInvoiceRepo) UpdateTotals(inv *entity.Invoice) error {
	stored, ok := r.s.invoices[inv.ID]
	if !ok {
		return nil
	}
	stored.Total = inv.Total
	stored.TotalPaid = inv.TotalPaid
	stored.PaymentStatus = inv.PaymentStatus
	stored.UpdatedAt = inv.UpdatedAt
	return nil
}

func (r *memInvoiceRepo) GetByID(id string) (*entity.Invoice, error) {
	inv, ok := r.s.invoices[id]
	if !ok {
		return nil, nil
	}
	cp := *inv
	return &cp, nil
}

func (r *memInvoiceRepo) GetByNumber(number string) (*entity.Invoice, error) {
	for _, inv := range r.s.invoices {
		if inv.Number == number {
			cp := *inv
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *memInvoiceRepo) GetItemsByInvoiceID(invoiceID string) ([]*entity.InvoiceItem, error) {
	var out []*entity.InvoiceItem
	for _, item := range r.s.items[invoiceID] {
		cp := *item
		out = append(out, &cp)
	}
	return out, nil
}

func (r *memInvoiceRepo) List(limit, offset int) ([]*entity.Invoice, error) {
	var out []*entity.Invoice
	for _, id := range r.s.invOrder {
		if inv, ok := r.s.invoices[id]; ok {
			cp := *inv
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *memInvoiceRepo) ListByCustomer(customerID string) ([]*entity.Invoice, error) {
	var out []*entity.Invoice
	for _, id := range r.s.invOrder {
		inv, ok := r.s.invoices[id]
		if ok && inv.CustomerID == customerID {
			cp := *inv
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *memInvoiceRepo) ListOutstandingByCustomer(customerID string) ([]*entity.Invoice, error) {
	var out []*entity.Invoice
	for _, id := range r.s.invOrder {
		inv, ok := r.s.invoices[id]
		if ok && inv.CustomerID == customerID && inv.Total.GreaterThan(inv.TotalPaid) {
			cp := *inv
			out = append(out, &cp)
		}
	}
	// FIFO: fecha de factura ascendente, empates por orden de inserción.
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].InvoiceDate.Before(out[j].InvoiceDate)
	})
	return out, nil
}

func (r *memInvoiceRepo) ListNumbers() ([]string, error) {
	if r.s.listNumbersErr != nil {
		return nil, r.s.listNumbersErr
	}
	var out []string
	for _, inv := range r.s.invoices {
		out = append(out, inv.Number)
	}
	return out, nil
}

func (r *memInvoiceRepo) Count() (int, error) {
	return len(r.s.invoices), nil
}

func (r *memInvoiceRepo) Delete(id string) error {
	delete(r.s.invoices, id)
	delete(r.s.items, id)
	for pid, p := range r.s.payments {
		if p.InvoiceID == id {
			delete(r.s.payments, pid)
		}
	}
	return nil
}

// ── PaymentRepository ─────────────────────────────────────────────────────────

type memPaymentRepo struct{ s *memStore }

func (r *memPaymentRepo) Create(p *entity.Payment) error {
	cp := *p
	r.s.payments[p.ID] = &cp
	r.s.payOrder = append(r.s.payOrder, p.ID)
	return nil
}

func (r *memPaymentRepo) GetByID(id string) (*entity.Payment, error) {
	p, ok := r.s.payments[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (r *memPaymentRepo) ListByInvoice(invoiceID string) ([]*entity.Payment, error) {
	var out []*entity.Payment
	for _, id := range r.s.payOrder {
		p, ok := r.s.payments[id]
		if ok && p.InvoiceID == invoiceID {
			cp := *p
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *memPaymentRepo) ListByCustomer(customerID string) ([]*entity.Payment, error) {
	var out []*entity.Payment
	for _, id := range r.s.payOrder {
		p, ok := r.s.payments[id]
		if !ok {
			continue
		}
		inv, ok := r.s.invoices[p.InvoiceID]
		if ok && inv.CustomerID == customerID {
			cp := *p
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *memPaymentRepo) Delete(id string) error {
	delete(r.s.payments, id)
	return nil
}

// allPayments devuelve los pagos en orden de creación (para asserts).
func (s *memStore) allPayments() []*entity.Payment {
	var out []*entity.Payment
	for _, id := range s.payOrder {
		if p, ok := s.payments[id]; ok {
			out = append(out, p)
		}
	}
	return out
}
