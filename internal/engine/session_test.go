package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSessionAcceptance(t *testing.T) {
	session := NewSession(0.95)

	session.Accept("B200")
	session.Accept("A100")
	session.Accept("B200")
	assert.Equal(t, []string{"A100", "B200"}, session.AcceptedCodes())

	session.Unaccept("B200")
	assert.Equal(t, []string{"A100"}, session.AcceptedCodes())

	session.Unaccept("never-accepted")
	assert.Equal(t, []string{"A100"}, session.AcceptedCodes())
}

func TestNewSessionClampsThreshold(t *testing.T) {
	assert.InDelta(t, 0.80, NewSession(0.10).Threshold, 1e-9)
	assert.InDelta(t, 1.00, NewSession(2.00).Threshold, 1e-9)
}

func TestQuantityConflictErrorMessage(t *testing.T) {
	err := &QuantityConflictError{RowIndex: 4, StdQty: 8, PromoQty: 4, Max: 10}
	assert.Equal(t, 12, err.Attempted())
	assert.Contains(t, err.Error(), "row 4")
	assert.Contains(t, err.Error(), "12")
	assert.Contains(t, err.Error(), "10")

	negative := &QuantityConflictError{RowIndex: 7, StdQty: -3, PromoQty: 9, Max: 10}
	assert.Contains(t, negative.Error(), "row 7")
	assert.Contains(t, negative.Error(), "negative")
	assert.Contains(t, negative.Error(), "-3")
}
