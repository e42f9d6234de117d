package service

import (
	"alcyxob/gym-tally/internal/billing"
	"alcyxob/gym-tally/internal/storage"
	"bytes"
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid" // For generating unique identifiers for S3 keys
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const statementContentType = "text/csv"

// ExportedStatement points at a statement stored in object storage.
type ExportedStatement struct {
	ObjectKey   string
	DownloadURL string
	ExpiresAt   time.Time
	Total       float64
}

// StatementService archives payment statements in object storage.
type StatementService interface {
	Export(ctx context.Context, athleteID primitive.ObjectID) (*ExportedStatement, error)
}

type statementService struct {
	billingService BillingService
	fileStorage    storage.FileStorage // nil when object storage is not configured
	urlExpiry      time.Duration
	now            func() time.Time
}

// NewStatementService creates a StatementService. fileStorage may be nil, in
// which case Export fails with ErrStatementsDisabled.
func NewStatementService(billingService BillingService, fileStorage storage.FileStorage, urlExpiry time.Duration) StatementService {
	if urlExpiry <= 0 {
		urlExpiry = storage.DefaultPresignedURLExpiry
	}
	return &statementService{
		billingService: billingService,
		fileStorage:    fileStorage,
		urlExpiry:      urlExpiry,
		now:            time.Now,
	}
}

// Export renders the athlete's statement as CSV, uploads it under
// statements/<athleteID>/<uuid>.csv and returns a presigned download URL.
func (s *statementService) Export(ctx context.Context, athleteID primitive.ObjectID) (*ExportedStatement, error) {
	if s.fileStorage == nil {
		return nil, ErrStatementsDisabled
	}

	stmt, err := s.billingService.Statement(ctx, athleteID)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := billing.WriteCSV(&buf, stmt); err != nil {
		return nil, fmt.Errorf("render statement: %w", err)
	}

	objectKey := fmt.Sprintf("statements/%s/%s.csv", athleteID.Hex(), uuid.NewString())
	if err := s.fileStorage.PutObject(ctx, objectKey, statementContentType, bytes.NewReader(buf.Bytes()), int64(buf.Len())); err != nil {
		return nil, fmt.Errorf("upload statement: %w", err)
	}

	url, err := s.fileStorage.GeneratePresignedDownloadURL(ctx, objectKey, s.urlExpiry)
	if err != nil {
		return nil, fmt.Errorf("presign statement: %w", err)
	}
	log.Printf("INFO: Exported statement %s for athlete %s", objectKey, athleteID.Hex())

	return &ExportedStatement{
		ObjectKey:   objectKey,
		DownloadURL: url,
		ExpiresAt:   s.now().Add(s.urlExpiry),
		Total:       stmt.Total(),
	}, nil
}
