// seed carga datos de demostración: usuarios, clientes, productos y un par de
// facturas con pagos, para probar el panel sin empezar de cero.
//
// Uso: go run ./cmd/seed
// Idempotencia parcial: si el usuario admin ya existe se asume base sembrada y sale.
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"

	"github.com/tu-usuario/factura-pyme/internal/application/dto"
	"github.com/tu-usuario/factura-pyme/internal/application/ledger"
	"github.com/tu-usuario/factura-pyme/internal/domain/entity"
	"github.com/tu-usuario/factura-pyme/internal/infrastructure/postgres"
	"github.com/tu-usuario/factura-pyme/pkg/config"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fail("cargar configuración: %v", err)
	}

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		fail("conexión a PostgreSQL: %v", err)
	}
	defer pool.Close()

	userRepo := postgres.NewUserRepository(pool)
	customerRepo := postgres.NewCustomerRepository(pool)
	productRepo := postgres.NewProductRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	existing, err := userRepo.FindByUsername("admin")
	if err != nil {
		fail("consultar usuarios: %v", err)
	}
	if existing != nil {
		fmt.Println("la base ya tiene datos de demostración, nada que hacer")
		return
	}

	// Usuarios
	for _, u := range []struct{ username, password, role string }{
		{"admin", "admin123", entity.RoleAdmin},
		{"vendedor", "vendedor123", entity.RoleVendedor},
	} {
		hash, err := bcrypt.GenerateFromPassword([]byte(u.password), bcrypt.DefaultCost)
		if err != nil {
			fail("hash de contraseña: %v", err)
		}
		now := time.Now()
		if err := userRepo.Create(&entity.User{
			ID:           uuid.New().String(),
			Username:     u.username,
			PasswordHash: string(hash),
			Role:         u.role,
			CreatedAt:    now,
			UpdatedAt:    now,
		}); err != nil {
			fail("crear usuario %s: %v", u.username, err)
		}
	}

	// Clientes
	customers := []*entity.Customer{
		{Name: "Tienda La Esquina", Phone: "3001112233", Address: "Calle 10 #4-21", CreditLimit: dec("500000")},
		{Name: "Supermercado El Ahorro", Phone: "3014445566", Email: "compras@elahorro.example", CreditLimit: dec("1200000")},
		{Name: "Restaurante Doña Rosa", Phone: "3027778899", Address: "Carrera 7 #15-02"},
	}
	for _, c := range customers {
		c.ID = uuid.New().String()
		now := time.Now()
		c.CreatedAt, c.UpdatedAt = now, now
		if err := customerRepo.Create(c); err != nil {
			fail("crear cliente %s: %v", c.Name, err)
		}
	}

	// Productos
	products := []*entity.Product{
		{Barcode: "7701001000011", Name: "Arroz 500g", Company: "Molinos del Valle", Price: dec("2500"), Tax: dec("5")},
		{Barcode: "7701001000028", Name: "Aceite 1L", Company: "Oleofina", Price: dec("12900"), Tax: dec("19")},
		{Barcode: "7701001000035", Name: "Panela x4", Company: "Trapiche San José", Price: dec("6800")},
		{Name: "Bolsa reutilizable", Price: dec("1500"), Tax: dec("19")},
	}
	for _, p := range products {
		p.ID = uuid.New().String()
		now := time.Now()
		p.CreatedAt, p.UpdatedAt = now, now
		if err := productRepo.Create(p); err != nil {
			fail("crear producto %s: %v", p.Name, err)
		}
	}

	// Facturas de ejemplo con líneas y un pago parcial
	allocator := ledger.NewNumberAllocator()
	invoices := ledger.NewInvoiceUseCase(txRunner, allocator)
	payments := ledger.NewApplyPaymentUseCase(txRunner)

	inv1, err := invoices.CreateInvoice(ctx, dto.CreateInvoiceRequest{
		CustomerID: customers[0].ID,
		Items: []dto.InvoiceItemRequest{
			{ProductID: products[0].ID, Qty: 10},
			{ProductID: products[1].ID, Qty: 2},
		},
		Notes: "Entrega en tienda",
	})
	if err != nil {
		fail("crear factura 1: %v", err)
	}
	if _, err := payments.ApplyToInvoice(ctx, inv1.ID, dto.ApplyPaymentRequest{
		Amount:        dec("20000"),
		PaymentMethod: entity.PaymentMethodCash,
		ReceivedBy:    "admin",
	}); err != nil {
		fail("pago factura 1: %v", err)
	}

	inv2, err := invoices.CreateInvoice(ctx, dto.CreateInvoiceRequest{
		CustomerID: customers[1].ID,
		Items: []dto.InvoiceItemRequest{
			{ProductID: products[2].ID, Qty: 24},
			{ProductID: products[3].ID, Qty: 24},
		},
		DiscountAmount: dec("5000"),
	})
	if err != nil {
		fail("crear factura 2: %v", err)
	}

	fmt.Printf("datos de demostración listos: facturas %s y %s\n", inv1.Number, inv2.Number)
	fmt.Println("login: admin/admin123 o vendedor/vendedor123")
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func fail(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}
