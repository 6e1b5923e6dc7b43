package application_test

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/fashion-storefront/internal/application"
	"github.com/oksasatya/fashion-storefront/internal/domain/entity"
)

func TestWritePurchasesCSV(t *testing.T) {
	at := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	var buf bytes.Buffer
	err := application.WritePurchasesCSV(&buf, []entity.PurchaseRecord{
		{UserID: 1, ProductID: 3, Quantity: 2, TotalSpent: entity.ParsePrice("89.00"), PurchasedAt: at},
	})
	require.NoError(t, err)
	assert.Equal(t,
		"user_id,product_id,quantity,total_spent,purchased_at\n1,3,2,89,2026-01-02T03:04:05Z\n",
		buf.String())
}

func TestExportWithoutBucket(t *testing.T) {
	svc := application.NewReportService(&fakePurchases{}, nil, "", discard())
	_, err := svc.ExportPurchases(context.Background())
	assert.ErrorIs(t, err, application.ErrExportUnavailable)
}
