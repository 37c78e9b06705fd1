package assistant

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/tu-usuario/factura-pyme/internal/application/dto"
	"github.com/tu-usuario/factura-pyme/internal/application/ledger"
	"github.com/tu-usuario/factura-pyme/internal/application/ports"
	"github.com/tu-usuario/factura-pyme/internal/application/usecase"
	"github.com/tu-usuario/factura-pyme/internal/domain/repository"
)

const systemPrompt = `Eres el asistente de un negocio que maneja su facturación y cartera en esta aplicación.
Respondes en español, breve y directo, como un dependiente de confianza.

Cuando necesites operar sobre la base de datos, incluye comandos en tu respuesta con este formato exacto:
[ACTION: CREATE_CUSTOMER] Name: NombreCliente, Phone: 3001234567, Address: Dirección
[ACTION: CREATE_PRODUCT] Name: NombreProducto, Price: 10000, Description: Descripción
[ACTION: START_INVOICE] CustomerName: NombreCliente
[ACTION: ADD_ITEM_TO_INVOICE] Product: NombreProducto, Quantity: 1, Price: 10000
[ACTION: FINALIZE_INVOICE] InvoiceNumber: INV-000001
[ACTION: RECORD_PAYMENT] Invoice: INV-000001, Amount: 5000, Method: cash, Date: 2024-01-15

Reglas:
- Emite un comando solo cuando el usuario pida la operación con datos suficientes; si falta algo, pregunta.
- Los montos van sin símbolo de moneda en los comandos.
- Method es uno de: cash, card, bank_transfer, cheque, upi.
- No inventes clientes, productos ni facturas. No incluyas texto dentro de los bloques de comando.`

// UseCase orquesta el chat: arma el historial, llama al LLM con timeout,
// parsea los comandos de la respuesta y los ejecuta contra los casos de uso.
type UseCase struct {
	llm          ports.LLMService
	sessions     *SessionStore
	customers    *usecase.CustomerUseCase
	products     *usecase.ProductUseCase
	invoices     *ledger.InvoiceUseCase
	payments     *ledger.ApplyPaymentUseCase
	customerRepo repository.CustomerRepository
	productRepo  repository.ProductRepository
	invoiceRepo  repository.InvoiceRepository
}

// NewUseCase construye el caso de uso del asistente.
func NewUseCase(
	llm ports.LLMService,
	sessions *SessionStore,
	customers *usecase.CustomerUseCase,
	products *usecase.ProductUseCase,
	invoices *ledger.InvoiceUseCase,
	payments *ledger.ApplyPaymentUseCase,
	customerRepo repository.CustomerRepository,
	productRepo repository.ProductRepository,
	invoiceRepo repository.InvoiceRepository,
) *UseCase {
	return &UseCase{
		llm:          llm,
		sessions:     sessions,
		customers:    customers,
		products:     products,
		invoices:     invoices,
		payments:     payments,
		customerRepo: customerRepo,
		productRepo:  productRepo,
		invoiceRepo:  invoiceRepo,
	}
}

// Chat procesa un mensaje del usuario y devuelve la respuesta ya limpia de
// comandos, con el resultado de cada acción ejecutada anexado al final.
func (uc *UseCase) Chat(ctx context.Context, in dto.ChatRequest) (*dto.ChatResponse, error) {
	if strings.TrimSpace(in.Message) == "" {
		return nil, fmt.Errorf("assistant: mensaje vacío")
	}
	sessionID := in.SessionID
	if sessionID == "" {
		sessionID = "default"
	}

	history := uc.sessions.History(sessionID)
	history = append(history, ports.ChatMessage{Role: "user", Content: in.Message})

	// Timeout de 10 s: las llamadas a LLMs pueden demorar varios segundos.
	llmCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	raw, err := uc.llm.Chat(llmCtx, systemPrompt, history)
	if err != nil {
		return nil, fmt.Errorf("assistant: llamada al LLM: %w", err)
	}

	clean, commands := ParseCommands(raw)
	executed := 0
	for _, cmd := range commands {
		result := uc.execute(ctx, sessionID, cmd)
		if result != "" {
			clean = strings.TrimSpace(clean + " " + result)
			executed++
		}
	}

	uc.sessions.AppendTurn(sessionID, in.Message, clean)
	return &dto.ChatResponse{SessionID: sessionID, Reply: clean, Actions: executed}, nil
}

// execute ejecuta un comando. Los errores no abortan el chat: se reportan en
// el texto de respuesta, como haría un dependiente que no encontró algo.
func (uc *UseCase) execute(ctx context.Context, sessionID string, cmd Command) string {
	switch cmd.Type {
	case CmdCreateCustomer:
		return uc.createCustomer(cmd)
	case CmdCreateProduct:
		return uc.createProduct(cmd)
	case CmdStartInvoice:
		return uc.startInvoice(ctx, sessionID, cmd)
	case CmdAddItem:
		return uc.addItem(ctx, sessionID, cmd)
	case CmdFinalize:
		return uc.finalizeInvoice(ctx, sessionID, cmd)
	case CmdRecordPayment:
		return uc.recordPayment(ctx, cmd)
	default:
		log.Warn().Str("type", cmd.Type).Msg("assistant: comando desconocido ignorado")
		return ""
	}
}

func (uc *UseCase) createCustomer(cmd Command) string {
	name := cmd.Get("name")
	phone := cmd.Get("phone")
	if name == "" || phone == "" {
		return ""
	}
	_, err := uc.customers.Create(dto.CreateCustomerRequest{
		Name:    name,
		Phone:   phone,
		Address: cmd.Get("address"),
	})
	if err != nil {
		return fmt.Sprintf("No pude crear el cliente %s: %v.", name, err)
	}
	return fmt.Sprintf("Cliente %s creado.", name)
}

func (uc *UseCase) createProduct(cmd Command) string {
	name := cmd.Get("name")
	price, ok := cmd.Amount("price")
	if name == "" || !ok {
		return ""
	}
	_, err := uc.products.Create(dto.CreateProductRequest{
		Name:        name,
		Price:       price,
		Description: cmd.Get("description"),
	})
	if err != nil {
		return fmt.Sprintf("No pude crear el producto %s: %v.", name, err)
	}
	return fmt.Sprintf("Producto %s agregado al catálogo.", name)
}

func (uc *UseCase) startInvoice(ctx context.Context, sessionID string, cmd Command) string {
	name := cmd.Get("customername", "customer")
	if name == "" {
		return ""
	}
	matches, err := uc.customerRepo.Search(name, 1)
	if err != nil || len(matches) == 0 {
		return fmt.Sprintf("No encontré al cliente %s. Primero hay que crearlo.", name)
	}
	customer := matches[0]
	inv, err := uc.invoices.StartInvoice(ctx, customer.ID)
	if err != nil {
		return fmt.Sprintf("No pude iniciar la factura: %v.", err)
	}
	uc.sessions.OpenInvoice(sessionID, inv.ID, inv.Number, customer.ID)
	return fmt.Sprintf("Factura %s iniciada para %s.", inv.Number, customer.Name)
}

func (uc *UseCase) addItem(ctx context.Context, sessionID string, cmd Command) string {
	productName := cmd.Get("product")
	if productName == "" {
		return ""
	}
	invoiceID, _, open := uc.sessions.CurrentInvoice(sessionID)
	if !open {
		return "No hay una factura en curso. Primero hay que iniciarla."
	}

	price, hasPrice := cmd.Amount("price")
	matches, err := uc.productRepo.Search(productName, 1)
	if err != nil {
		return fmt.Sprintf("No pude buscar el producto: %v.", err)
	}
	var productID string
	if len(matches) > 0 {
		productID = matches[0].ID
	} else {
		if !hasPrice {
			return fmt.Sprintf("No encontré el producto %s y no me diste precio. ¿A cuánto va?", productName)
		}
		created, err := uc.products.Create(dto.CreateProductRequest{
			Name:        productName,
			Price:       price,
			Description: "Creado durante facturación",
		})
		if err != nil {
			return fmt.Sprintf("No pude crear el producto %s: %v.", productName, err)
		}
		productID = created.ID
	}

	req := dto.InvoiceItemRequest{ProductID: productID, Qty: cmd.Qty("quantity", "qty")}
	if hasPrice {
		req.Price = price
	}
	item, err := uc.invoices.AddItem(ctx, invoiceID, req)
	if err != nil {
		return fmt.Sprintf("No pude agregar el producto: %v.", err)
	}
	return fmt.Sprintf("%d x %s @ $%s = $%s agregado.",
		item.Qty, productName, item.Price.StringFixed(2), item.LineTotal.StringFixed(2))
}

func (uc *UseCase) finalizeInvoice(ctx context.Context, sessionID string, cmd Command) string {
	invoiceID := ""
	if number := cmd.Get("invoicenumber", "invoice"); number != "" {
		inv, err := uc.invoiceRepo.GetByNumber(number)
		if err != nil || inv == nil {
			return fmt.Sprintf("No encontré la factura %s.", number)
		}
		invoiceID = inv.ID
	} else if id, _, open := uc.sessions.CurrentInvoice(sessionID); open {
		invoiceID = id
	}
	if invoiceID == "" {
		return "No hay factura para cerrar."
	}
	inv, err := uc.invoices.FinalizeInvoice(ctx, invoiceID)
	if err != nil {
		return fmt.Sprintf("No pude cerrar la factura: %v.", err)
	}
	uc.sessions.CloseInvoice(sessionID)
	return fmt.Sprintf("Factura %s cerrada. Total: $%s.", inv.Number, inv.Total.StringFixed(2))
}

func (uc *UseCase) recordPayment(ctx context.Context, cmd Command) string {
	number := cmd.Get("invoice", "invoicenumber")
	amount, ok := cmd.Amount("amount")
	if number == "" || !ok {
		return ""
	}
	inv, err := uc.invoiceRepo.GetByNumber(number)
	if err != nil || inv == nil {
		return fmt.Sprintf("No encontré la factura %s.", number)
	}
	req := dto.ApplyPaymentRequest{Amount: amount}
	if method := cmd.Get("method"); method != "" {
		req.PaymentMethod = strings.ToLower(method)
	}
	if date, ok := cmd.Date("date"); ok {
		req.PaymentDate = date.Format("2006-01-02")
	}
	payment, err := uc.payments.ApplyToInvoice(ctx, inv.ID, req)
	if err != nil {
		return fmt.Sprintf("No pude registrar el pago: %v.", err)
	}
	return fmt.Sprintf("Pago de $%s registrado sobre la factura %s.",
		payment.Amount.StringFixed(2), number)
}
