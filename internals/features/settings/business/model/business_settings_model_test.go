package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
)

func settingsWith(banks []BankAccount, defaultID string) BusinessSettingsModel {
	return BusinessSettingsModel{
		BusinessSettingID:            BusinessSettingsID,
		BusinessSettingPricing:       datatypes.NewJSONType(map[string]int{"Beginner": 999}),
		BusinessSettingBankAccounts:  datatypes.NewJSONSlice(banks),
		BusinessSettingDefaultBankID: defaultID,
	}
}

func TestRateFor(t *testing.T) {
	m := settingsWith(nil, "")
	assert.Equal(t, 999, m.RateFor("Beginner"))
	assert.Equal(t, 0, m.RateFor("Advanced")) // absent course bills zero

	var empty BusinessSettingsModel
	assert.Equal(t, 0, empty.RateFor("Beginner"))
}

func TestResolveBank(t *testing.T) {
	banks := []BankAccount{
		{ID: "b1", BankName: "HDFC"},
		{ID: "b2", BankName: "SBI"},
	}
	m := settingsWith(banks, "b2")

	// explicit id wins
	got := m.ResolveBank("b2")
	require.NotNil(t, got)
	assert.Equal(t, "SBI", got.BankName)

	// unknown or empty id falls through to the first configured account;
	// the default bank id never enters snapshot resolution
	got = m.ResolveBank("nope")
	require.NotNil(t, got)
	assert.Equal(t, "HDFC", got.BankName)

	got = m.ResolveBank("")
	require.NotNil(t, got)
	assert.Equal(t, "HDFC", got.BankName)

	empty := settingsWith(nil, "")
	assert.Nil(t, empty.ResolveBank("b1"))
}

func TestDefaultBank(t *testing.T) {
	banks := []BankAccount{
		{ID: "b1", BankName: "HDFC"},
		{ID: "b2", BankName: "SBI"},
	}

	m := settingsWith(banks, "b2")
	got := m.DefaultBank()
	require.NotNil(t, got)
	assert.Equal(t, "SBI", got.BankName)

	// unset or dangling id means no preselection
	unset := settingsWith(banks, "")
	assert.Nil(t, unset.DefaultBank())
	dangling := settingsWith(banks, "gone")
	assert.Nil(t, dangling.DefaultBank())
}
