package model

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// =========================================================
// BANK ACCOUNT - embedded in the settings row (JSONB)
// =========================================================

type BankAccount struct {
	ID            string `json:"id"`
	BankName      string `json:"bank_name"`
	AccountName   string `json:"account_name"`
	AccountNumber string `json:"account_number"`
	IFSC          string `json:"ifsc"`
	AccountType   string `json:"account_type"`
	UPIID         string `json:"upi_id"`
}

// =========================================================
// MODEL - singleton row, id fixed to "business".
// Pricing and bank accounts live here and are read afresh
// per billing operation, never cached as ambient state.
// =========================================================

const BusinessSettingsID = "business"

type BusinessSettingsModel struct {
	BusinessSettingID string `gorm:"column:business_setting_id;type:varchar(20);primaryKey" json:"business_setting_id"`

	// course name → integer rate per class (INR)
	BusinessSettingPricing datatypes.JSONType[map[string]int] `gorm:"column:business_setting_pricing;type:jsonb" json:"business_setting_pricing"`

	BusinessSettingBankAccounts  datatypes.JSONSlice[BankAccount] `gorm:"column:business_setting_bank_accounts;type:jsonb" json:"business_setting_bank_accounts"`
	BusinessSettingDefaultBankID string                           `gorm:"column:business_setting_default_bank_id;type:varchar(60)" json:"business_setting_default_bank_id"`

	BusinessSettingName    string `gorm:"column:business_setting_name;type:varchar(120)" json:"business_setting_name"`
	BusinessSettingAddress string `gorm:"column:business_setting_address;type:text" json:"business_setting_address"`
	BusinessSettingGSTIN   string `gorm:"column:business_setting_gstin;type:varchar(20)" json:"business_setting_gstin"`
	BusinessSettingPAN     string `gorm:"column:business_setting_pan;type:varchar(12)" json:"business_setting_pan"`
	BusinessSettingEmail   string `gorm:"column:business_setting_email;type:varchar(120)" json:"business_setting_email"`
	BusinessSettingPhone   string `gorm:"column:business_setting_phone;type:varchar(20)" json:"business_setting_phone"`
	BusinessSettingWebsite string `gorm:"column:business_setting_website;type:varchar(120)" json:"business_setting_website"`

	BusinessSettingCreatedAt time.Time `gorm:"column:business_setting_created_at;not null" json:"business_setting_created_at"`
	BusinessSettingUpdatedAt time.Time `gorm:"column:business_setting_updated_at;not null" json:"business_setting_updated_at"`
}

func (BusinessSettingsModel) TableName() string {
	return "business_settings"
}

// RateFor looks up the per-class rate for a course. Absent entries bill 0,
// a warning-worthy condition for the UI, never an engine error.
func (m *BusinessSettingsModel) RateFor(course string) int {
	pricing := m.BusinessSettingPricing.Data()
	if pricing == nil {
		return 0
	}
	return pricing[course]
}

// ResolveBank picks the snapshot source for an invoice: the explicitly
// chosen account by id, else the first configured account, else nil.
func (m *BusinessSettingsModel) ResolveBank(bankID string) *BankAccount {
	accounts := []BankAccount(m.BusinessSettingBankAccounts)
	if bankID != "" {
		for i := range accounts {
			if accounts[i].ID == bankID {
				return &accounts[i]
			}
		}
	}
	if len(accounts) > 0 {
		return &accounts[0]
	}
	return nil
}

// DefaultBank is the UI preselection, not part of invoice snapshot
// resolution.
func (m *BusinessSettingsModel) DefaultBank() *BankAccount {
	accounts := []BankAccount(m.BusinessSettingBankAccounts)
	for i := range accounts {
		if accounts[i].ID == m.BusinessSettingDefaultBankID {
			return &accounts[i]
		}
	}
	return nil
}

// =========================================================
// HOOKS
// =========================================================

func (m *BusinessSettingsModel) BeforeSave(tx *gorm.DB) (err error) {
	if m.BusinessSettingID == "" {
		m.BusinessSettingID = BusinessSettingsID
	}
	now := time.Now()
	if m.BusinessSettingCreatedAt.IsZero() {
		m.BusinessSettingCreatedAt = now
	}
	m.BusinessSettingUpdatedAt = now
	return nil
}
