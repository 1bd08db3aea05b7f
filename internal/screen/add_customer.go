package screen

import (
	"context"
	"fmt"
	"loan-portal/internal/domain/customer"
	"loan-portal/internal/gateway"
	"loan-portal/internal/pkg/apperrors"
)

type AddCustomer struct {
	*Controller[customer.Customer]
	gw gateway.Gateway
}

func NewAddCustomer(gw gateway.Gateway) *AddCustomer {
	if gw == nil {
		panic("gateway cannot be nil")
	}
	return &AddCustomer{Controller: NewController[customer.Customer](), gw: gw}
}

// Submit validates the form and, only if it is valid, creates the customer.
func (a *AddCustomer) Submit(ctx context.Context, form customer.CreateForm) error {
	req, err := customer.ValidateCreateForm(form)
	if err != nil {
		a.Reject(validationNotification("Validation Error", err))
		return err
	}

	return a.Run(ctx, Cycle[customer.Customer]{
		Fetch: func(ctx context.Context) (customer.Customer, error) {
			return a.gw.CreateCustomer(ctx, req)
		},
		Failure: errorNotification("Error", "Failed to create customer. Please try again."),
		Success: func(c customer.Customer) *Notification {
			return &Notification{
				Kind:  KindSuccess,
				Title: "Success",
				Message: fmt.Sprintf("Account created successfully!\n\nAccount Number: %s\nCustomer: %s",
					c.AccountNumber, c.Name),
			}
		},
	})
}

func validationNotification(title string, err error) Notification {
	note := Notification{Kind: KindError, Title: title, Message: err.Error()}
	if ve, ok := apperrors.AsValidationError(err); ok {
		note.Message = ve.Message
		note.Field = ve.Field
	}
	return note
}
