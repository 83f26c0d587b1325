package service

import (
	"errors"
	"testing"
	"time"

	"github.com/pharmatrace/internal/config"
	"github.com/pharmatrace/internal/constants"
	"github.com/pharmatrace/internal/models"
	"github.com/pharmatrace/internal/queue"
)

type fakeBatchRepo struct {
	batches       map[string]*models.Batch
	createCalls   int
	updateCalls   int
	updateMatched int64
}

func newFakeBatchRepo() *fakeBatchRepo {
	return &fakeBatchRepo{batches: map[string]*models.Batch{}}
}

func (r *fakeBatchRepo) Create(batch *models.Batch) error {
	r.createCalls++
	if _, ok := r.batches[batch.BatchID]; ok {
		return errors.New("UNIQUE constraint failed: batches.batch_id")
	}
	stored := *batch
	stored.CreatedAt = time.Now()
	r.batches[batch.BatchID] = &stored
	return nil
}

func (r *fakeBatchRepo) GetByBatchID(batchID string) (*models.Batch, error) {
	batch, ok := r.batches[batchID]
	if !ok {
		return nil, nil
	}
	copied := *batch
	return &copied, nil
}

func (r *fakeBatchRepo) UpdateStatus(batchID, status string) (int64, error) {
	r.updateCalls++
	batch, ok := r.batches[batchID]
	if !ok {
		return 0, nil
	}
	batch.Status = status
	r.updateMatched++
	return 1, nil
}

func (r *fakeBatchRepo) ListAll() ([]models.Batch, error) {
	out := make([]models.Batch, 0, len(r.batches))
	for _, batch := range r.batches {
		out = append(out, *batch)
	}
	return out, nil
}

func newBatchServiceForTest(t *testing.T, repo *fakeBatchRepo, strictRecall bool) *BatchService {
	t.Helper()
	cfg := &config.Config{}
	cfg.Recall.StrictNotFound = strictRecall
	cfg.Verify.PublicBaseURL = "https://trace.example.com"
	client, err := queue.NewClient(nil)
	if err != nil {
		t.Fatalf("build queue client failed: %v", err)
	}
	return NewBatchService(cfg, repo, client)
}

func TestRegisterStoresAuthenticBatch(t *testing.T) {
	repo := newFakeBatchRepo()
	svc := newBatchServiceForTest(t, repo, false)

	batch, err := svc.Register(RegisterInput{
		BatchID: "  BATCH-2026-001  ",
		Medicines: []models.Medicine{
			{Name: " Paracetamol ", Quantity: " 500 ", ExpiryDate: " 2027-12-31 "},
		},
	})
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}
	if batch.BatchID != "BATCH-2026-001" {
		t.Fatalf("batch id not trimmed, got %q", batch.BatchID)
	}
	if batch.Status != constants.BatchStatusAuthentic {
		t.Fatalf("new batch status want Authentic, got %q", batch.Status)
	}
	if batch.Medicines[0].Name != "Paracetamol" || batch.Medicines[0].ExpiryDate != "2027-12-31" {
		t.Fatalf("medicine fields not normalized: %+v", batch.Medicines[0])
	}
	if repo.createCalls != 1 {
		t.Fatalf("create calls want 1 got %d", repo.createCalls)
	}
}

func TestRegisterValidationRejectsBeforeStore(t *testing.T) {
	cases := []struct {
		name    string
		input   RegisterInput
		wantErr error
	}{
		{
			name:    "missing batch id",
			input:   RegisterInput{Medicines: []models.Medicine{{Name: "A", Quantity: "1", ExpiryDate: "2027-01-01"}}},
			wantErr: ErrBatchIDRequired,
		},
		{
			name:    "empty medicines",
			input:   RegisterInput{BatchID: "B-1"},
			wantErr: ErrMedicinesRequired,
		},
		{
			name: "blank medicine name",
			input: RegisterInput{
				BatchID:   "B-1",
				Medicines: []models.Medicine{{Name: "  ", Quantity: "1", ExpiryDate: "2027-01-01"}},
			},
			wantErr: ErrMedicineFieldInvalid,
		},
		{
			name: "bad expiry format",
			input: RegisterInput{
				BatchID:   "B-1",
				Medicines: []models.Medicine{{Name: "A", Quantity: "1", ExpiryDate: "01/01/2027"}},
			},
			wantErr: ErrMedicineExpiryFormat,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			repo := newFakeBatchRepo()
			svc := newBatchServiceForTest(t, repo, false)
			if _, err := svc.Register(tc.input); !errors.Is(err, tc.wantErr) {
				t.Fatalf("want %v, got %v", tc.wantErr, err)
			}
			if repo.createCalls != 0 {
				t.Fatalf("validation failure must not reach storage, create calls = %d", repo.createCalls)
			}
		})
	}
}

func TestRecallUpdatesStatus(t *testing.T) {
	repo := newFakeBatchRepo()
	svc := newBatchServiceForTest(t, repo, false)
	if _, err := svc.Register(RegisterInput{
		BatchID:   "B-RECALL",
		Medicines: []models.Medicine{{Name: "A", Quantity: "1", ExpiryDate: "2030-01-01"}},
	}); err != nil {
		t.Fatalf("register failed: %v", err)
	}

	if err := svc.Recall("B-RECALL"); err != nil {
		t.Fatalf("recall failed: %v", err)
	}
	stored, _ := repo.GetByBatchID("B-RECALL")
	if stored.Status != constants.BatchStatusRecalled {
		t.Fatalf("status want Recalled got %q", stored.Status)
	}
}

func TestRecallMissingBatchLenientMode(t *testing.T) {
	repo := newFakeBatchRepo()
	svc := newBatchServiceForTest(t, repo, false)
	if err := svc.Recall("NO-SUCH-BATCH"); err != nil {
		t.Fatalf("lenient recall on missing batch should succeed, got %v", err)
	}
}

func TestRecallMissingBatchStrictMode(t *testing.T) {
	repo := newFakeBatchRepo()
	svc := newBatchServiceForTest(t, repo, true)
	if err := svc.Recall("NO-SUCH-BATCH"); !errors.Is(err, ErrBatchNotFound) {
		t.Fatalf("strict recall on missing batch want ErrBatchNotFound, got %v", err)
	}
}

func TestVerifyMissingBatch(t *testing.T) {
	repo := newFakeBatchRepo()
	svc := newBatchServiceForTest(t, repo, false)
	if _, _, err := svc.Verify("NO-SUCH-BATCH", time.Now()); !errors.Is(err, ErrBatchNotFound) {
		t.Fatalf("want ErrBatchNotFound, got %v", err)
	}
}

func TestVerifyDerivesExpiredStatus(t *testing.T) {
	repo := newFakeBatchRepo()
	svc := newBatchServiceForTest(t, repo, false)
	if _, err := svc.Register(RegisterInput{
		BatchID:   "B-OLD",
		Medicines: []models.Medicine{{Name: "Paracetamol", Quantity: "10", ExpiryDate: "2024-06-30"}},
	}); err != nil {
		t.Fatalf("register failed: %v", err)
	}

	batch, status, err := svc.Verify("B-OLD", time.Date(2026, 8, 29, 12, 0, 0, 0, time.Local))
	if err != nil {
		t.Fatalf("verify failed: %v", err)
	}
	if status != constants.BatchStatusExpired {
		t.Fatalf("display status want Expired got %q", status)
	}
	if batch.Status != constants.BatchStatusAuthentic {
		t.Fatalf("stored status must stay Authentic, got %q", batch.Status)
	}
}

func TestVerificationURL(t *testing.T) {
	repo := newFakeBatchRepo()
	svc := newBatchServiceForTest(t, repo, false)
	got := svc.VerificationURL("BATCH-1")
	want := "https://trace.example.com/verify/BATCH-1"
	if got != want {
		t.Fatalf("verification url want %q got %q", want, got)
	}
}
