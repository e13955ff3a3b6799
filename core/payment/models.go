package payment

import (
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/ttucompsci/paytrack/core"
)

type Method string

const (
	MethodMomo Method = "momo"
	MethodCash Method = "cash"
)

type Purpose string

const (
	PurposeBook    Purpose = "book"
	PurposeHandout Purpose = "handout"
	PurposeTrip    Purpose = "trip"
	PurposeOther   Purpose = "other"
)

type PayerType string

const (
	PayerSelf       PayerType = "self"
	PayerThirdParty PayerType = "third_party"
)

type ThirdPartyType string

const (
	ThirdPartyStudent  ThirdPartyType = "student"
	ThirdPartyRelative ThirdPartyType = "relative"
)

// Payment is one recorded transaction. Payments are immutable once created;
// there is deliberately no update or delete operation.
type Payment struct {
	ID                   string         `json:"id"`
	StudentID            string         `json:"student_id"`
	Amount               float64        `json:"amount"`
	PaymentMethod        Method         `json:"payment_method"`
	PaymentPurpose       Purpose        `json:"payment_purpose"`
	PayerType            PayerType      `json:"payer_type,omitempty"`
	ThirdPartyType       ThirdPartyType `json:"third_party_type,omitempty"`
	ThirdPartyDetails    string         `json:"third_party_details,omitempty"`
	ItemID               string         `json:"item_id,omitempty"`
	TransactionCode      string         `json:"transaction_code"`
	TransactionReference string         `json:"transaction_reference,omitempty"` // external MoMo reference
	PaymentDate          time.Time      `json:"payment_date"`                    // UTC
	RecordedBy           string         `json:"recorded_by"`
	Notes                string         `json:"notes,omitempty"`
	CreatedAt            time.Time      `json:"created_at"` // UTC
	UpdatedAt            time.Time      `json:"updated_at"` // UTC
}

// NewPayment is the input contract of the payment recorder.
type NewPayment struct {
	IndexNumber          string         `json:"index_number" validate:"required,indexnum"`
	Amount               float64        `json:"amount" validate:"required,gt=0"`
	PaymentMethod        Method         `json:"payment_method" validate:"required,oneof=momo cash"`
	PaymentPurpose       Purpose        `json:"payment_purpose" validate:"required,oneof=book handout trip other"`
	ItemID               string         `json:"item_id"`
	PayerType            PayerType      `json:"payer_type" validate:"omitempty,oneof=self third_party"`
	ThirdPartyType       ThirdPartyType `json:"third_party_type" validate:"omitempty,oneof=student relative"`
	ThirdPartyDetails    string         `json:"third_party_details"`
	TransactionReference string         `json:"transaction_reference"`
	RecordedBy           string         `json:"recorded_by" validate:"required"`
	Notes                string         `json:"notes"`
}

// Validate cleans the input and enforces the cross-field rules the struct
// tags cannot express. Mobile-money payments never carry payer/third-party
// details, and cash third-party payments must say who paid.
func (np *NewPayment) Validate(validate *validator.Validate) error {
	np.IndexNumber = core.CleanString(np.IndexNumber)
	np.ItemID = core.CleanString(np.ItemID)
	np.ThirdPartyDetails = core.CleanString(np.ThirdPartyDetails)
	np.TransactionReference = core.CleanString(np.TransactionReference)
	np.Notes = core.CleanString(np.Notes)

	if err := validate.Struct(np); err != nil {
		return err
	}

	switch np.PaymentMethod {
	case MethodMomo:
		// payer/third-party fields do not apply to mobile money
		np.PayerType = ""
		np.ThirdPartyType = ""
		np.ThirdPartyDetails = ""
	case MethodCash:
		np.TransactionReference = ""
		if np.PayerType == PayerThirdParty {
			if np.ThirdPartyType == "" {
				return core.NewValidationError(nil, core.FieldError{
					Field: "third_party_type", Error: "this field is required for third party payments",
				})
			}
			if np.ThirdPartyDetails == "" {
				return core.NewValidationError(nil, core.FieldError{
					Field: "third_party_details", Error: "this field is required for third party payments",
				})
			}
		} else {
			np.ThirdPartyType = ""
			np.ThirdPartyDetails = ""
		}
	}
	return nil
}

type QueryFilter struct {
	Search    string  `query:"search"` // matches transaction code
	StudentID string  `query:"student_id"`
	Method    Method  `query:"payment_method"`
	Purpose   Purpose `query:"payment_purpose"`
}

func (qf *QueryFilter) IsEmpty() bool {
	return qf.Search == "" && qf.StudentID == "" && qf.Method == "" && qf.Purpose == ""
}

func (qf *QueryFilter) Clean() {
	qf.Search = core.CleanString(qf.Search)
}
