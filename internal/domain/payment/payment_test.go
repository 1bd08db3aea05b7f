package payment

import (
	"errors"
	"loan-portal/internal/pkg/apperrors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidatePaymentForm(t *testing.T) {
	tests := []struct {
		name        string
		account     string
		amount      string
		wantField   string
		wantMessage string
		want        Request
	}{
		{name: "valid decimal amount", account: "ACC123", amount: "100.50", want: Request{AccountNumber: "ACC123", Amount: 100.5}},
		{name: "valid integer amount", account: "ACC123", amount: "2500", want: Request{AccountNumber: "ACC123", Amount: 2500}},
		{name: "empty account", account: "", amount: "100", wantField: FieldAccountNumber, wantMessage: "Please enter an account number"},
		{name: "whitespace account", account: "  ", amount: "100", wantField: FieldAccountNumber, wantMessage: "Please enter an account number"},
		{name: "account checked before amount", account: "", amount: "-5", wantField: FieldAccountNumber, wantMessage: "Please enter an account number"},
		{name: "negative amount", account: "ACC123", amount: "-5", wantField: FieldAmount, wantMessage: "Please enter a valid amount"},
		{name: "zero amount", account: "ACC123", amount: "0", wantField: FieldAmount, wantMessage: "Please enter a valid amount"},
		{name: "empty amount", account: "ACC123", amount: "", wantField: FieldAmount, wantMessage: "Please enter a valid amount"},
		{name: "non-numeric amount", account: "ACC123", amount: "abc", wantField: FieldAmount, wantMessage: "Please enter a valid amount"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ValidatePaymentForm(tt.account, tt.amount)
			if tt.wantField == "" {
				require.NoError(t, err)
				assert.Equal(t, tt.want, got)
				return
			}

			require.Error(t, err)
			assert.True(t, errors.Is(err, apperrors.ErrValidation))
			ve, ok := apperrors.AsValidationError(err)
			require.True(t, ok)
			assert.Equal(t, tt.wantField, ve.Field)
			assert.Equal(t, tt.wantMessage, ve.Message)
		})
	}
}

func TestPaymentStatusAndAmount(t *testing.T) {
	settled := Payment{ID: 1, AmountPaid: "4500.00", Status: StatusSuccess}
	pending := Payment{ID: 2, AmountPaid: "100", Status: "PROCESSING"}

	assert.True(t, settled.Succeeded())
	assert.False(t, pending.Succeeded())
	assert.Equal(t, 4500.0, settled.Amount())
}
