package usecase

import (
	"github.com/tu-usuario/factura-pyme/internal/application/dto"
	"github.com/tu-usuario/factura-pyme/internal/domain/entity"
	"github.com/tu-usuario/factura-pyme/internal/domain/repository"
)

// SettingsUseCase lee y actualiza la configuración del panel.
type SettingsUseCase struct {
	repo repository.SettingRepository
}

// NewSettingsUseCase construye el caso de uso.
func NewSettingsUseCase(repo repository.SettingRepository) *SettingsUseCase {
	return &SettingsUseCase{repo: repo}
}

// Get devuelve la configuración vigente con defaults aplicados.
func (uc *SettingsUseCase) Get() (*dto.SettingsResponse, error) {
	autoPrint, err := uc.repo.Get(entity.SettingAutoPrint, "false")
	if err != nil {
		return nil, err
	}
	printer, err := uc.repo.Get(entity.SettingDefaultPrinter, "")
	if err != nil {
		return nil, err
	}
	shopName, err := uc.repo.Get(entity.SettingShopName, "")
	if err != nil {
		return nil, err
	}
	shopAddress, err := uc.repo.Get(entity.SettingShopAddress, "")
	if err != nil {
		return nil, err
	}
	shopPhone, err := uc.repo.Get(entity.SettingShopPhone, "")
	if err != nil {
		return nil, err
	}
	shopTaxID, err := uc.repo.Get(entity.SettingShopTaxID, "")
	if err != nil {
		return nil, err
	}
	return &dto.SettingsResponse{
		AutoPrint:      autoPrint == "true",
		DefaultPrinter: printer,
		ShopName:       shopName,
		ShopAddress:    shopAddress,
		ShopPhone:      shopPhone,
		ShopTaxID:      shopTaxID,
	}, nil
}

// Update aplica solo las claves presentes en la petición.
func (uc *SettingsUseCase) Update(in dto.UpdateSettingsRequest) (*dto.SettingsResponse, error) {
	if in.AutoPrint != nil {
		v := "false"
		if *in.AutoPrint {
			v = "true"
		}
		if err := uc.repo.Set(entity.SettingAutoPrint, v); err != nil {
			return nil, err
		}
	}
	set := func(key string, val *string) error {
		if val == nil {
			return nil
		}
		return uc.repo.Set(key, *val)
	}
	if err := set(entity.SettingDefaultPrinter, in.DefaultPrinter); err != nil {
		return nil, err
	}
	if err := set(entity.SettingShopName, in.ShopName); err != nil {
		return nil, err
	}
	if err := set(entity.SettingShopAddress, in.ShopAddress); err != nil {
		return nil, err
	}
	if err := set(entity.SettingShopPhone, in.ShopPhone); err != nil {
		return nil, err
	}
	if err := set(entity.SettingShopTaxID, in.ShopTaxID); err != nil {
		return nil, err
	}
	return uc.Get()
}
