package controller

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	dto "tutorbill_backend/internals/features/settings/business/dto"
	settingsModel "tutorbill_backend/internals/features/settings/business/model"
	helper "tutorbill_backend/internals/helpers"
)

// =======================================================
// BOOTSTRAP
// =======================================================

type BusinessSettingsController struct {
	DB       *gorm.DB
	Validate *validator.Validate
}

func NewBusinessSettingsController(db *gorm.DB) *BusinessSettingsController {
	return &BusinessSettingsController{DB: db, Validate: validator.New()}
}

func (ctl *BusinessSettingsController) load(c *fiber.Ctx) (*settingsModel.BusinessSettingsModel, error) {
	var m settingsModel.BusinessSettingsModel
	err := ctl.DB.WithContext(c.UserContext()).
		First(&m, "business_setting_id = ?", settingsModel.BusinessSettingsID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// empty defaults until the owner configures the business
			return &settingsModel.BusinessSettingsModel{
				BusinessSettingID: settingsModel.BusinessSettingsID,
			}, nil
		}
		return nil, err
	}
	return &m, nil
}

// =======================================================
// GET
// GET /api/a/settings/business
// =======================================================

func (ctl *BusinessSettingsController) Get(c *fiber.Ctx) error {
	m, err := ctl.load(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	return helper.JsonOK(c, "ok", dto.ToBusinessSettingsResponse(*m))
}

// =======================================================
// PUT (wholesale replace)
// PUT /api/a/settings/business
// =======================================================

func (ctl *BusinessSettingsController) Put(c *fiber.Ctx) error {
	var in dto.BusinessSettingsPutDTO
	if err := c.BodyParser(&in); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid json")
	}
	if err := ctl.Validate.Struct(in); err != nil {
		return helper.JsonValidationError(c, err)
	}

	m := dto.BusinessSettingsPutDTOToModel(in)
	if err := ctl.DB.WithContext(c.UserContext()).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "business_setting_id"}},
			UpdateAll: true,
		}).
		Create(&m).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	return helper.JsonOK(c, "settings saved", dto.ToBusinessSettingsResponse(m))
}

// =======================================================
// PUT PRICING ONLY
// PUT /api/a/settings/business/pricing
// =======================================================

func (ctl *BusinessSettingsController) PutPricing(c *fiber.Ctx) error {
	var in dto.PricingPutDTO
	if err := c.BodyParser(&in); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid json")
	}
	if err := ctl.Validate.Struct(in); err != nil {
		return helper.JsonValidationError(c, err)
	}

	m, err := ctl.load(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	m.BusinessSettingPricing = datatypes.NewJSONType(in.Pricing)

	if err := ctl.DB.WithContext(c.UserContext()).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "business_setting_id"}},
			UpdateAll: true,
		}).
		Create(m).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	return helper.JsonOK(c, "pricing saved", dto.ToBusinessSettingsResponse(*m))
}

// =======================================================
// PUT BANK ACCOUNTS ONLY
// PUT /api/a/settings/business/bank-accounts
// =======================================================

func (ctl *BusinessSettingsController) PutBankAccounts(c *fiber.Ctx) error {
	var in dto.BankAccountsPutDTO
	if err := c.BodyParser(&in); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid json")
	}
	if err := ctl.Validate.Struct(in); err != nil {
		return helper.JsonValidationError(c, err)
	}

	m, err := ctl.load(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	m.BusinessSettingBankAccounts = datatypes.NewJSONSlice(in.BankAccounts)
	m.BusinessSettingDefaultBankID = in.DefaultBankID

	if err := ctl.DB.WithContext(c.UserContext()).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "business_setting_id"}},
			UpdateAll: true,
		}).
		Create(m).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	return helper.JsonOK(c, "bank accounts saved", dto.ToBusinessSettingsResponse(*m))
}
