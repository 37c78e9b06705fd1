package http_test

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/factura-pyme/internal/application/dto"
	"github.com/tu-usuario/factura-pyme/internal/application/usecase"
	"github.com/tu-usuario/factura-pyme/internal/domain"
	"github.com/tu-usuario/factura-pyme/internal/domain/entity"
	"github.com/tu-usuario/factura-pyme/internal/domain/repository"
	apphttp "github.com/tu-usuario/factura-pyme/internal/interfaces/http"
)

// customerRepoStub cubre solo Create; el resto del puerto no se ejercita aquí.
type customerRepoStub struct {
	repository.CustomerRepository
	createErr error
}

func (s *customerRepoStub) Create(*entity.Customer) error { return s.createErr }

func customerTestApp(createErr error) *fiber.App {
	uc := usecase.NewCustomerUseCase(&customerRepoStub{createErr: createErr})
	h := apphttp.NewCustomerHandler(uc, nil, nil)
	app := fiber.New()
	app.Post("/customers", h.Create)
	return app
}

func postJSON(t *testing.T, app *fiber.App, path, body string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func errorCode(t *testing.T, resp *http.Response) string {
	t.Helper()
	var body dto.ErrorResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return body.Code
}

// El constraint único de teléfono/email llega al cliente como 409, incluso
// cuando el repositorio devuelve el sentinel envuelto.
func TestCustomerCreate_DuplicadoDevuelve409(t *testing.T) {
	app := customerTestApp(fmt.Errorf("insert customer: %w", domain.ErrDuplicate))
	resp := postJSON(t, app, "/customers", `{"name":"Hema Traders","phone":"3001112233"}`)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	assert.Equal(t, "DUPLICATE", errorCode(t, resp))
}

func TestCustomerCreate_NombreVacioDevuelve400(t *testing.T) {
	app := customerTestApp(nil)
	resp := postJSON(t, app, "/customers", `{"phone":"3001112233"}`)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "VALIDATION", errorCode(t, resp))
}

func TestCustomerCreate_OKDevuelve201(t *testing.T) {
	app := customerTestApp(nil)
	resp := postJSON(t, app, "/customers", `{"name":"Hema Traders"}`)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusCreated, resp.StatusCode)
}
