package dto

import (
	"time"

	"gorm.io/datatypes"

	settingsModel "tutorbill_backend/internals/features/settings/business/model"
)

////////////////////////////////////////////////////////////////////////////////
// BUSINESS SETTINGS - DTO
////////////////////////////////////////////////////////////////////////////////

// Put replaces the whole settings document.
type BusinessSettingsPutDTO struct {
	Pricing       map[string]int              `json:"pricing" validate:"dive,min=0"`
	BankAccounts  []settingsModel.BankAccount `json:"bank_accounts" validate:"dive"`
	DefaultBankID string                      `json:"default_bank_id"`

	Name    string `json:"name" validate:"max=120"`
	Address string `json:"address"`
	GSTIN   string `json:"gstin" validate:"max=20"`
	PAN     string `json:"pan" validate:"max=12"`
	Email   string `json:"email" validate:"omitempty,email"`
	Phone   string `json:"phone" validate:"max=20"`
	Website string `json:"website" validate:"omitempty,url"`
}

// Pricing-only sub-update.
type PricingPutDTO struct {
	Pricing map[string]int `json:"pricing" validate:"required,dive,min=0"`
}

// Bank-accounts-only sub-update.
type BankAccountsPutDTO struct {
	BankAccounts  []settingsModel.BankAccount `json:"bank_accounts" validate:"required,dive"`
	DefaultBankID string                      `json:"default_bank_id"`
}

type BusinessSettingsResponse struct {
	Pricing       map[string]int              `json:"pricing"`
	BankAccounts  []settingsModel.BankAccount `json:"bank_accounts"`
	DefaultBankID string                      `json:"default_bank_id"`
	DefaultBank   *settingsModel.BankAccount  `json:"default_bank,omitempty"` // resolved preselection for the UI

	Name    string `json:"name"`
	Address string `json:"address"`
	GSTIN   string `json:"gstin"`
	PAN     string `json:"pan"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Website string `json:"website"`

	UpdatedAt time.Time `json:"updated_at"`
}

////////////////////////////////////////////////////////////////////////////////
// MAPPERS
////////////////////////////////////////////////////////////////////////////////

func ToBusinessSettingsResponse(m settingsModel.BusinessSettingsModel) BusinessSettingsResponse {
	pricing := m.BusinessSettingPricing.Data()
	if pricing == nil {
		pricing = map[string]int{}
	}
	accounts := []settingsModel.BankAccount(m.BusinessSettingBankAccounts)
	if accounts == nil {
		accounts = []settingsModel.BankAccount{}
	}
	return BusinessSettingsResponse{
		Pricing:       pricing,
		BankAccounts:  accounts,
		DefaultBankID: m.BusinessSettingDefaultBankID,
		DefaultBank:   m.DefaultBank(),
		Name:          m.BusinessSettingName,
		Address:       m.BusinessSettingAddress,
		GSTIN:         m.BusinessSettingGSTIN,
		PAN:           m.BusinessSettingPAN,
		Email:         m.BusinessSettingEmail,
		Phone:         m.BusinessSettingPhone,
		Website:       m.BusinessSettingWebsite,
		UpdatedAt:     m.BusinessSettingUpdatedAt,
	}
}

func BusinessSettingsPutDTOToModel(d BusinessSettingsPutDTO) settingsModel.BusinessSettingsModel {
	pricing := d.Pricing
	if pricing == nil {
		pricing = map[string]int{}
	}
	accounts := d.BankAccounts
	if accounts == nil {
		accounts = []settingsModel.BankAccount{}
	}
	return settingsModel.BusinessSettingsModel{
		BusinessSettingID:            settingsModel.BusinessSettingsID,
		BusinessSettingPricing:       datatypes.NewJSONType(pricing),
		BusinessSettingBankAccounts:  datatypes.NewJSONSlice(accounts),
		BusinessSettingDefaultBankID: d.DefaultBankID,
		BusinessSettingName:          d.Name,
		BusinessSettingAddress:       d.Address,
		BusinessSettingGSTIN:         d.GSTIN,
		BusinessSettingPAN:           d.PAN,
		BusinessSettingEmail:         d.Email,
		BusinessSettingPhone:         d.Phone,
		BusinessSettingWebsite:       d.Website,
	}
}
