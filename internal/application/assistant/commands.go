package assistant

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/araddon/dateparse"
	"github.com/shopspring/decimal"
)

// Tipos de comando que el modelo puede emitir dentro de su respuesta.
const (
	CmdCreateCustomer = "CREATE_CUSTOMER"
	CmdCreateProduct  = "CREATE_PRODUCT"
	CmdStartInvoice   = "START_INVOICE"
	CmdAddItem        = "ADD_ITEM_TO_INVOICE"
	CmdFinalize       = "FINALIZE_INVOICE"
	CmdRecordPayment  = "RECORD_PAYMENT"
)

// Command es un comando ya parseado desde la respuesta del modelo.
// Params conserva las claves en minúsculas y sin espacios.
type Command struct {
	Type   string
	Params map[string]string
}

// actionRe captura cada bloque [ACTION: TIPO] con sus parámetros hasta el
// siguiente bloque o el fin del texto.
var actionRe = regexp.MustCompile(`(?is)\[ACTION:\s*([^\]]+)\](.*?)(?:(\[ACTION:)|\z)`)

// stripRe elimina los bloques de comando del texto visible para el usuario.
var stripRe = regexp.MustCompile(`(?is)\[ACTION:[^\]]+\].*?((\[ACTION:)|\z)`)

// ParseCommands extrae los comandos embebidos en la respuesta del modelo y
// devuelve además el texto limpio, sin los bloques [ACTION: ...].
func ParseCommands(reply string) (clean string, commands []Command) {
	rest := reply
	for {
		m := actionRe.FindStringSubmatchIndex(rest)
		if m == nil {
			break
		}
		cmdType := strings.ToUpper(strings.TrimSpace(rest[m[2]:m[3]]))
		params := parseParams(rest[m[4]:m[5]])
		commands = append(commands, Command{Type: cmdType, Params: params})
		// continuar desde el inicio del siguiente bloque (si lo hay)
		if m[6] != -1 {
			rest = rest[m[6]:]
		} else {
			rest = ""
		}
	}

	clean = reply
	for {
		loc := stripRe.FindStringSubmatchIndex(clean)
		if loc == nil {
			break
		}
		end := loc[1]
		if loc[4] != -1 { // el bloque termina donde empieza el siguiente
			end = loc[4]
		}
		clean = clean[:loc[0]] + clean[end:]
	}
	return strings.TrimSpace(clean), commands
}

// parseParams parte "Name: Hema, Phone: 987, Address: Cali" en un mapa con
// claves normalizadas a minúsculas.
func parseParams(s string) map[string]string {
	out := make(map[string]string)
	for _, part := range strings.Split(s, ",") {
		key, value, ok := strings.Cut(part, ":")
		if !ok {
			continue
		}
		k := strings.ToLower(strings.ReplaceAll(strings.TrimSpace(key), " ", ""))
		out[k] = strings.TrimSpace(value)
	}
	return out
}

// Get devuelve el primer parámetro presente entre los alias dados.
func (c Command) Get(keys ...string) string {
	for _, k := range keys {
		if v, ok := c.Params[k]; ok && v != "" {
			return v
		}
	}
	return ""
}

// Amount parsea un parámetro monetario tolerando símbolos de moneda y
// comas de miles ("₹1,500" → 1500).
func (c Command) Amount(keys ...string) (decimal.Decimal, bool) {
	raw := c.Get(keys...)
	if raw == "" {
		return decimal.Zero, false
	}
	cleaned := strings.NewReplacer("₹", "", "$", "", ",", "", " ", "").Replace(raw)
	d, err := decimal.NewFromString(cleaned)
	if err != nil {
		return decimal.Zero, false
	}
	return d, true
}

// Qty parsea un parámetro de cantidad; por defecto 1.
func (c Command) Qty(keys ...string) int {
	raw := c.Get(keys...)
	if raw == "" {
		return 1
	}
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || n <= 0 {
		return 1
	}
	return n
}

// Date parsea un parámetro de fecha en formato libre ("2024-01-15",
// "15 Jan 2024", "15/01/2024").
func (c Command) Date(keys ...string) (time.Time, bool) {
	raw := c.Get(keys...)
	if raw == "" {
		return time.Time{}, false
	}
	t, err := dateparse.ParseAny(raw)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}
