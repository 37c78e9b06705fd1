package entity

import "time"

// Claves de configuración persistida (tabla settings).
const (
	SettingAutoPrint      = "AUTO_PRINT_AFTER_SAVE"
	SettingDefaultPrinter = "DEFAULT_PRINTER"
	SettingShopName       = "SHOP_NAME"
	SettingShopAddress    = "SHOP_ADDRESS"
	SettingShopPhone      = "SHOP_PHONE"
	SettingShopTaxID      = "SHOP_TAX_ID"
)

// Setting es un par clave/valor de configuración editable desde el panel.
type Setting struct {
	ID        string
	Key       string // única
	Value     string
	UpdatedAt time.Time
}
