package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

// =========================================================
// MODEL
// =========================================================

type ExpenseModel struct {
	// PK
	ExpenseID uuid.UUID `gorm:"column:expense_id;type:uuid;primaryKey" json:"expense_id"`

	ExpenseTitle    string  `gorm:"column:expense_title;type:varchar(120);not null" json:"expense_title"`
	ExpenseCategory string  `gorm:"column:expense_category;type:varchar(60);index:ix_expense_category" json:"expense_category"`
	ExpenseAmount   float64 `gorm:"column:expense_amount;not null;check:expense_amount>=0" json:"expense_amount"`

	ExpenseIncurredOn time.Time `gorm:"column:expense_incurred_on;not null;index:ix_expense_incurred_on" json:"expense_incurred_on"`

	ExpenseNote string         `gorm:"column:expense_note;type:text" json:"expense_note"`
	ExpenseTags pq.StringArray `gorm:"column:expense_tags;type:text[]" json:"expense_tags"`

	ExpenseCreatedAt time.Time      `gorm:"column:expense_created_at;not null" json:"expense_created_at"`
	ExpenseUpdatedAt time.Time      `gorm:"column:expense_updated_at;not null" json:"expense_updated_at"`
	ExpenseDeletedAt gorm.DeletedAt `gorm:"column:expense_deleted_at;index" json:"-"`
}

func (ExpenseModel) TableName() string {
	return "expenses"
}

// =========================================================
// HOOKS
// =========================================================

func (m *ExpenseModel) BeforeCreate(tx *gorm.DB) (err error) {
	if m.ExpenseID == uuid.Nil {
		m.ExpenseID = uuid.New()
	}
	now := time.Now()
	if m.ExpenseCreatedAt.IsZero() {
		m.ExpenseCreatedAt = now
	}
	m.ExpenseUpdatedAt = now
	return nil
}

func (m *ExpenseModel) BeforeUpdate(tx *gorm.DB) (err error) {
	m.ExpenseUpdatedAt = time.Now()
	return nil
}
