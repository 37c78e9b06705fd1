package usecase

import (
	"time"

	"github.com/gocarina/gocsv"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/tu-usuario/factura-pyme/internal/application/dto"
	"github.com/tu-usuario/factura-pyme/internal/domain"
	"github.com/tu-usuario/factura-pyme/internal/domain/entity"
	"github.com/tu-usuario/factura-pyme/internal/domain/repository"
)

const dateLayout = "2006-01-02"

// CustomerUseCase casos de uso CRUD para clientes. Los campos de cartera
// (saldo, fechas de pago) no se tocan aquí: los escriben los casos de uso
// del ledger.
type CustomerUseCase struct {
	repo repository.CustomerRepository
}

// NewCustomerUseCase construye el caso de uso.
func NewCustomerUseCase(repo repository.CustomerRepository) *CustomerUseCase {
	return &CustomerUseCase{repo: repo}
}

// Create crea un cliente con saldo en cero.
func (uc *CustomerUseCase) Create(in dto.CreateCustomerRequest) (*dto.CustomerResponse, error) {
	if in.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	customer := &entity.Customer{
		ID:                 uuid.New().String(),
		Name:               in.Name,
		Phone:              in.Phone,
		Email:              in.Email,
		Address:            in.Address,
		TaxID:              in.TaxID,
		OutstandingBalance: decimal.Zero,
		CreditLimit:        in.CreditLimit,
		CreatedAt:          now,
		UpdatedAt:          now,
	}
	if err := uc.repo.Create(customer); err != nil {
		return nil, err
	}
	resp := toCustomerResponse(customer)
	return &resp, nil
}

// GetByID obtiene un cliente por ID.
func (uc *CustomerUseCase) GetByID(id string) (*dto.CustomerResponse, error) {
	customer, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, domain.ErrNotFound
	}
	resp := toCustomerResponse(customer)
	return &resp, nil
}

// Search busca clientes por nombre o teléfono.
func (uc *CustomerUseCase) Search(q string, limit int) ([]dto.CustomerResponse, error) {
	if limit <= 0 {
		limit = 20
	}
	customers, err := uc.repo.Search(q, limit)
	if err != nil {
		return nil, err
	}
	out := make([]dto.CustomerResponse, 0, len(customers))
	for _, c := range customers {
		out = append(out, toCustomerResponse(c))
	}
	return out, nil
}

// List lista clientes con paginación.
func (uc *CustomerUseCase) List(page dto.PageRequest) ([]dto.CustomerResponse, error) {
	page.DefaultPage()
	customers, err := uc.repo.List(page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]dto.CustomerResponse, 0, len(customers))
	for _, c := range customers {
		out = append(out, toCustomerResponse(c))
	}
	return out, nil
}

// Update actualiza los datos de contacto y el cupo de crédito.
func (uc *CustomerUseCase) Update(id string, in dto.UpdateCustomerRequest) (*dto.CustomerResponse, error) {
	if in.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	customer, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, domain.ErrNotFound
	}
	customer.Name = in.Name
	customer.Phone = in.Phone
	customer.Email = in.Email
	customer.Address = in.Address
	customer.TaxID = in.TaxID
	customer.CreditLimit = in.CreditLimit
	customer.UpdatedAt = time.Now()
	if err := uc.repo.Update(customer); err != nil {
		return nil, err
	}
	resp := toCustomerResponse(customer)
	return &resp, nil
}

// Delete borra el cliente. Sus facturas sobreviven con la referencia en nulo.
func (uc *CustomerUseCase) Delete(id string) error {
	customer, err := uc.repo.GetByID(id)
	if err != nil {
		return err
	}
	if customer == nil {
		return domain.ErrNotFound
	}
	return uc.repo.Delete(id)
}

// ExportCSV serializa el directorio de clientes como CSV.
func (uc *CustomerUseCase) ExportCSV() ([]byte, error) {
	customers, err := uc.repo.List(0, 0)
	if err != nil {
		return nil, err
	}
	rows := make([]dto.CustomerCSVRow, 0, len(customers))
	for _, c := range customers {
		rows = append(rows, dto.CustomerCSVRow{
			Name:                c.Name,
			Phone:               c.Phone,
			Email:               c.Email,
			Address:             c.Address,
			TaxID:               c.TaxID,
			OutstandingBalance:  c.OutstandingBalance.StringFixed(2),
			LastPaymentDate:     formatDate(c.LastPaymentDate),
			ExpectedNextPayment: formatDate(c.ExpectedNextPayment),
		})
	}
	out, err := gocsv.MarshalString(&rows)
	if err != nil {
		return nil, err
	}
	return []byte(out), nil
}

func formatDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(dateLayout)
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
