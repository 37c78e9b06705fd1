package assistant

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCommands_UnComando(t *testing.T) {
	reply := "Listo, creo el cliente.\n[ACTION: CREATE_CUSTOMER] Name: Hema Traders, Phone: 9876543210, Address: Cali"

	clean, cmds := ParseCommands(reply)

	assert.Equal(t, "Listo, creo el cliente.", clean)
	require.Len(t, cmds, 1)
	assert.Equal(t, CmdCreateCustomer, cmds[0].Type)
	assert.Equal(t, "Hema Traders", cmds[0].Params["name"])
	assert.Equal(t, "9876543210", cmds[0].Params["phone"])
	assert.Equal(t, "Cali", cmds[0].Params["address"])
}

func TestParseCommands_VariosComandosEncadenados(t *testing.T) {
	reply := "Armo la factura.\n" +
		"[ACTION: START_INVOICE] Customer: Hema\n" +
		"[ACTION: ADD_ITEM_TO_INVOICE] Product: Arroz, Qty: 5\n" +
		"[ACTION: FINALIZE_INVOICE]\n" +
		"Queda lista."

	clean, cmds := ParseCommands(reply)

	require.Len(t, cmds, 3)
	assert.Equal(t, CmdStartInvoice, cmds[0].Type)
	assert.Equal(t, CmdAddItem, cmds[1].Type)
	assert.Equal(t, "5", cmds[1].Params["qty"])
	assert.Equal(t, CmdFinalize, cmds[2].Type)
	assert.NotContains(t, clean, "[ACTION:")
	assert.Contains(t, clean, "Armo la factura.")
}

func TestParseCommands_SinComandos(t *testing.T) {
	clean, cmds := ParseCommands("Hola, ¿en qué te ayudo?")
	assert.Empty(t, cmds)
	assert.Equal(t, "Hola, ¿en qué te ayudo?", clean)
}

func TestParseCommands_TipoEnMinusculasYClavesConEspacios(t *testing.T) {
	reply := "[action: record_payment] Invoice Number: INV-000007, Amount: 1500"

	_, cmds := ParseCommands(reply)
	require.Len(t, cmds, 1)
	assert.Equal(t, CmdRecordPayment, cmds[0].Type, "el tipo se normaliza a mayúsculas")
	assert.Equal(t, "INV-000007", cmds[0].Params["invoicenumber"], "las claves pierden espacios y mayúsculas")
}

func TestCommand_Get_Alias(t *testing.T) {
	cmd := Command{Params: map[string]string{"customername": "Hema"}}
	assert.Equal(t, "Hema", cmd.Get("customer", "customername", "name"))
	assert.Equal(t, "", cmd.Get("phone"))
}

func TestCommand_Amount_ToleraSimbolosYComas(t *testing.T) {
	tests := []struct {
		raw  string
		want string
	}{
		{"1500", "1500"},
		{"₹1,500", "1500"},
		{"$ 2500.75", "2500.75"},
		{"12,000.50", "12000.50"},
	}
	for _, tt := range tests {
		cmd := Command{Params: map[string]string{"amount": tt.raw}}
		got, ok := cmd.Amount("amount")
		require.True(t, ok, "debe parsear %q", tt.raw)
		assert.True(t, decimal.RequireFromString(tt.want).Equal(got),
			"quería %s, obtuvo %s", tt.want, got)
	}

	cmd := Command{Params: map[string]string{"amount": "mil quinientos"}}
	_, ok := cmd.Amount("amount")
	assert.False(t, ok)
}

func TestCommand_Qty_DefaultUno(t *testing.T) {
	assert.Equal(t, 1, Command{Params: map[string]string{}}.Qty("qty"))
	assert.Equal(t, 1, Command{Params: map[string]string{"qty": "-3"}}.Qty("qty"))
	assert.Equal(t, 7, Command{Params: map[string]string{"qty": "7"}}.Qty("qty"))
}

func TestCommand_Date_FormatoLibre(t *testing.T) {
	for _, raw := range []string{"2026-01-15", "15 Jan 2026", "01/15/2026"} {
		cmd := Command{Params: map[string]string{"date": raw}}
		got, ok := cmd.Date("date")
		require.True(t, ok, "debe parsear %q", raw)
		assert.Equal(t, time.January, got.Month())
		assert.Equal(t, 15, got.Day())
	}

	_, ok := Command{Params: map[string]string{"date": "el otro día"}}.Date("date")
	assert.False(t, ok)
}
