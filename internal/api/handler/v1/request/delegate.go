package request

import (
	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"

	"github.com/vietanh2810/mesas-api/internal/domain"
)

type RegisterDelegateRequest struct {
	ID           string `json:"id,omitempty"`
	Name         string `json:"name"`
	Phone        string `json:"phone,omitempty"`
	Email        string `json:"email,omitempty"`
	Department   string `json:"department"`
	Municipality string `json:"municipality"`
}

func (req *RegisterDelegateRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.ID, is.UUID),
		validation.Field(&req.Name, validation.Required, validation.Length(2, 128)),
		validation.Field(&req.Email, is.Email),
		validation.Field(&req.Department, validation.Required),
		validation.Field(&req.Municipality, validation.Required),
	)
}

func (req *RegisterDelegateRequest) ToDelegate() domain.Delegate {
	return domain.Delegate{
		ID:           req.ID,
		Name:         req.Name,
		Phone:        req.Phone,
		Email:        req.Email,
		Department:   req.Department,
		Municipality: req.Municipality,
	}
}
