package application

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"cloud.google.com/go/storage"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/fashion-storefront/internal/domain/entity"
	repo "github.com/oksasatya/fashion-storefront/internal/domain/repository"
	"github.com/oksasatya/fashion-storefront/pkg/helpers"
)

// ReportService exports purchase history for administrators.
type ReportService struct {
	Purchases repo.PurchaseRepository
	GCS       *storage.Client
	GCSBucket string
	Logger    *logrus.Logger
}

func NewReportService(purchases repo.PurchaseRepository, gcs *storage.Client, bucket string, logger *logrus.Logger) *ReportService {
	return &ReportService{Purchases: purchases, GCS: gcs, GCSBucket: bucket, Logger: logger}
}

type ExportResult struct {
	Location string `json:"location"`
	Records  int    `json:"records"`
}

// ExportPurchases uploads every purchase record as CSV to the bucket.
func (s *ReportService) ExportPurchases(ctx context.Context) (ExportResult, error) {
	if s.GCS == nil || s.GCSBucket == "" {
		return ExportResult{}, ErrExportUnavailable
	}
	records, err := s.Purchases.All(ctx)
	if err != nil {
		return ExportResult{}, err
	}
	var buf bytes.Buffer
	if err := WritePurchasesCSV(&buf, records); err != nil {
		return ExportResult{}, err
	}
	object := fmt.Sprintf("exports/purchases-%s.csv", time.Now().UTC().Format("20060102T150405Z"))
	loc, err := helpers.UploadObject(ctx, s.GCS, s.GCSBucket, object, "text/csv", &buf)
	if err != nil {
		return ExportResult{}, err
	}
	if s.Logger != nil {
		s.Logger.WithFields(logrus.Fields{"location": loc, "records": len(records)}).Info("purchase history exported")
	}
	return ExportResult{Location: loc, Records: len(records)}, nil
}

// WritePurchasesCSV writes one row per record with a header line.
func WritePurchasesCSV(w io.Writer, records []entity.PurchaseRecord) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"user_id", "product_id", "quantity", "total_spent", "purchased_at"}); err != nil {
		return err
	}
	for _, r := range records {
		row := []string{
			strconv.Itoa(r.UserID),
			strconv.Itoa(r.ProductID),
			strconv.Itoa(r.Quantity),
			r.TotalSpent.String(),
			r.PurchasedAt.UTC().Format(time.RFC3339),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
