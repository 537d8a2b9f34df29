package dto

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	expenseModel "tutorbill_backend/internals/features/finance/expenses/model"
)

////////////////////////////////////////////////////////////////////////////////
// EXPENSES - DTO
////////////////////////////////////////////////////////////////////////////////

type ExpenseCreateDTO struct {
	Title      string   `json:"title" validate:"required,min=1,max=120"`
	Category   string   `json:"category" validate:"max=60"`
	Amount     float64  `json:"amount" validate:"required,min=0"`
	IncurredOn string   `json:"incurred_on" validate:"required,datetime=2006-01-02"`
	Note       string   `json:"note"`
	Tags       []string `json:"tags" validate:"dive,max=40"`
}

// Update (partial)
type ExpenseUpdateDTO struct {
	Title      *string  `json:"title,omitempty" validate:"omitempty,min=1,max=120"`
	Category   *string  `json:"category,omitempty" validate:"omitempty,max=60"`
	Amount     *float64 `json:"amount,omitempty" validate:"omitempty,min=0"`
	IncurredOn *string  `json:"incurred_on,omitempty" validate:"omitempty,datetime=2006-01-02"`
	Note       *string  `json:"note,omitempty"`
	Tags       []string `json:"tags,omitempty" validate:"omitempty,dive,max=40"`
}

type ExpenseResponse struct {
	ExpenseID  uuid.UUID `json:"expense_id"`
	Title      string    `json:"title"`
	Category   string    `json:"category"`
	Amount     float64   `json:"amount"`
	IncurredOn string    `json:"incurred_on"`
	Note       string    `json:"note"`
	Tags       []string  `json:"tags"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

////////////////////////////////////////////////////////////////////////////////
// MAPPERS
////////////////////////////////////////////////////////////////////////////////

func ToExpenseResponse(m expenseModel.ExpenseModel) ExpenseResponse {
	tags := []string(m.ExpenseTags)
	if tags == nil {
		tags = []string{}
	}
	return ExpenseResponse{
		ExpenseID:  m.ExpenseID,
		Title:      m.ExpenseTitle,
		Category:   m.ExpenseCategory,
		Amount:     m.ExpenseAmount,
		IncurredOn: m.ExpenseIncurredOn.Format("2006-01-02"),
		Note:       m.ExpenseNote,
		Tags:       tags,
		CreatedAt:  m.ExpenseCreatedAt,
		UpdatedAt:  m.ExpenseUpdatedAt,
	}
}

func ToExpenseResponses(ms []expenseModel.ExpenseModel) []ExpenseResponse {
	out := make([]ExpenseResponse, len(ms))
	for i := range ms {
		out[i] = ToExpenseResponse(ms[i])
	}
	return out
}

func ExpenseCreateDTOToModel(d ExpenseCreateDTO) expenseModel.ExpenseModel {
	incurred, _ := time.Parse("2006-01-02", d.IncurredOn) // validated upstream
	return expenseModel.ExpenseModel{
		ExpenseTitle:      strings.TrimSpace(d.Title),
		ExpenseCategory:   strings.TrimSpace(d.Category),
		ExpenseAmount:     d.Amount,
		ExpenseIncurredOn: incurred,
		ExpenseNote:       d.Note,
		ExpenseTags:       pq.StringArray(d.Tags),
	}
}

// ApplyExpenseUpdate patches only the provided fields.
func ApplyExpenseUpdate(m *expenseModel.ExpenseModel, d ExpenseUpdateDTO) {
	if d.Title != nil {
		m.ExpenseTitle = strings.TrimSpace(*d.Title)
	}
	if d.Category != nil {
		m.ExpenseCategory = strings.TrimSpace(*d.Category)
	}
	if d.Amount != nil {
		m.ExpenseAmount = *d.Amount
	}
	if d.IncurredOn != nil {
		if t, err := time.Parse("2006-01-02", *d.IncurredOn); err == nil {
			m.ExpenseIncurredOn = t
		}
	}
	if d.Note != nil {
		m.ExpenseNote = *d.Note
	}
	if d.Tags != nil {
		m.ExpenseTags = pq.StringArray(d.Tags)
	}
}
