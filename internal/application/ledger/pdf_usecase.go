package ledger

import (
	"context"

	"github.com/tu-usuario/factura-pyme/internal/domain"
	"github.com/tu-usuario/factura-pyme/internal/domain/entity"
	"github.com/tu-usuario/factura-pyme/internal/domain/repository"
)

// InvoicePDFUseCase arma los datos de impresión de una factura y delega el
// render al generador. La identidad del negocio sale de settings.
type InvoicePDFUseCase struct {
	customerRepo repository.CustomerRepository
	productRepo  repository.ProductRepository
	invoiceRepo  repository.InvoiceRepository
	settingRepo  repository.SettingRepository
	generator    InvoicePDFGenerator
}

// NewInvoicePDFUseCase construye el caso de uso.
func NewInvoicePDFUseCase(
	customerRepo repository.CustomerRepository,
	productRepo repository.ProductRepository,
	invoiceRepo repository.InvoiceRepository,
	settingRepo repository.SettingRepository,
	generator InvoicePDFGenerator,
) *InvoicePDFUseCase {
	return &InvoicePDFUseCase{
		customerRepo: customerRepo,
		productRepo:  productRepo,
		invoiceRepo:  invoiceRepo,
		settingRepo:  settingRepo,
		generator:    generator,
	}
}

// Generate devuelve los bytes del PDF de la factura.
func (uc *InvoicePDFUseCase) Generate(ctx context.Context, invoiceID string) ([]byte, error) {
	inv, err := uc.invoiceRepo.GetByID(invoiceID)
	if err != nil {
		return nil, err
	}
	if inv == nil {
		return nil, domain.ErrNotFound
	}

	var customer *entity.Customer
	if inv.CustomerID != "" {
		customer, err = uc.customerRepo.GetByID(inv.CustomerID)
		if err != nil {
			return nil, err
		}
	}
	if customer == nil {
		// cliente borrado: la factura se imprime sin receptor
		customer = &entity.Customer{Name: "Cliente eliminado"}
	}

	items, err := uc.invoiceRepo.GetItemsByInvoiceID(inv.ID)
	if err != nil {
		return nil, err
	}
	pdfItems := make([]ItemForPDF, 0, len(items))
	for _, item := range items {
		description := item.Description
		if description == "" {
			product, err := uc.productRepo.GetByID(item.ProductID)
			if err != nil {
				return nil, err
			}
			if product != nil {
				description = product.Name
			}
		}
		pdfItems = append(pdfItems, ItemForPDF{
			Description: description,
			Qty:         item.Qty,
			UnitPrice:   item.Price,
			LineTotal:   item.LineTotal,
		})
	}

	shop, err := uc.shopInfo()
	if err != nil {
		return nil, err
	}
	return uc.generator.GenerateInvoicePDF(ctx, inv, customer, pdfItems, shop)
}

func (uc *InvoicePDFUseCase) shopInfo() (ShopInfo, error) {
	name, err := uc.settingRepo.Get(entity.SettingShopName, "Mi Negocio")
	if err != nil {
		return ShopInfo{}, err
	}
	address, err := uc.settingRepo.Get(entity.SettingShopAddress, "")
	if err != nil {
		return ShopInfo{}, err
	}
	phone, err := uc.settingRepo.Get(entity.SettingShopPhone, "")
	if err != nil {
		return ShopInfo{}, err
	}
	taxID, err := uc.settingRepo.Get(entity.SettingShopTaxID, "")
	if err != nil {
		return ShopInfo{}, err
	}
	return ShopInfo{Name: name, Address: address, Phone: phone, TaxID: taxID}, nil
}
