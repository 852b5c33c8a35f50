package scraper

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/custodia-labs/ordersnap/internal/core/domain"
)

func TestCanonicalStatus(t *testing.T) {
	tests := []struct {
		in   string
		want domain.OrderStatus
	}{
		{"Completed", domain.StatusDelivered},
		{"Confirmed receipt", domain.StatusDelivered},
		{"Delivered", domain.StatusDelivered},
		{"Awaiting Delivery", domain.StatusShipped},
		{"In transit", domain.StatusShipped},
		{"Confirmed", domain.StatusOrdered},
		{"To ship", domain.StatusOrdered},
		{"Awaiting Payment", domain.StatusPending},
		{"Unpaid", domain.StatusPending},
		{"Refunded", domain.StatusCancelled},
		{"Order Canceled", domain.StatusCancelled},
		{"xyz-unknown", domain.StatusOrdered},
		{"", domain.StatusOrdered},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, CanonicalStatus(tt.in))
		})
	}
}

func TestCanonicalStatus_LogsUnknown(t *testing.T) {
	buf := captureWarnings(t)

	CanonicalStatus("xyz-unknown")

	assert.Contains(t, buf.String(), "unknown order status")
}
