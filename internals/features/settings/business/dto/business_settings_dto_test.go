package dto

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"

	settingsModel "tutorbill_backend/internals/features/settings/business/model"
)

func TestToBusinessSettingsResponse(t *testing.T) {
	banks := []settingsModel.BankAccount{
		{ID: "b1", BankName: "HDFC"},
		{ID: "b2", BankName: "SBI"},
	}
	m := settingsModel.BusinessSettingsModel{
		BusinessSettingID:            settingsModel.BusinessSettingsID,
		BusinessSettingPricing:       datatypes.NewJSONType(map[string]int{"Beginner": 999}),
		BusinessSettingBankAccounts:  datatypes.NewJSONSlice(banks),
		BusinessSettingDefaultBankID: "b2",
		BusinessSettingName:          "Bright Tutors",
	}

	resp := ToBusinessSettingsResponse(m)
	assert.Equal(t, map[string]int{"Beginner": 999}, resp.Pricing)
	assert.Len(t, resp.BankAccounts, 2)
	assert.Equal(t, "b2", resp.DefaultBankID)
	require.NotNil(t, resp.DefaultBank)
	assert.Equal(t, "SBI", resp.DefaultBank.BankName)

	// unconfigured settings come back as empty collections, not nulls
	empty := ToBusinessSettingsResponse(settingsModel.BusinessSettingsModel{})
	assert.NotNil(t, empty.Pricing)
	assert.NotNil(t, empty.BankAccounts)
	assert.Nil(t, empty.DefaultBank)
}
