package repository

import (
	"testing"

	"github.com/pharmatrace/internal/constants"
	"github.com/pharmatrace/internal/models"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func setupBatchRepositoryTest(t *testing.T) (*GormBatchRepository, *gorm.DB) {
	t.Helper()
	// A distinct named in-memory database per test keeps them isolated.
	db, err := gorm.Open(sqlite.Open("file:"+t.Name()+"?mode=memory&cache=shared"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(&models.Batch{}); err != nil {
		t.Fatalf("migrate batch failed: %v", err)
	}
	return NewBatchRepository(db), db
}

func createTestBatch(t *testing.T, repo *GormBatchRepository, batchID string) *models.Batch {
	t.Helper()
	batch := &models.Batch{
		BatchID: batchID,
		Medicines: models.Medicines{
			{Name: "Paracetamol", Quantity: "500", ExpiryDate: "2027-12-31"},
			{Name: "Ibuprofen", Quantity: "200", ExpiryDate: "2028-06-30"},
		},
		Status: constants.BatchStatusAuthentic,
	}
	if err := repo.Create(batch); err != nil {
		t.Fatalf("create batch failed: %v", err)
	}
	return batch
}

func TestBatchCreateAndGetRoundTrip(t *testing.T) {
	repo, _ := setupBatchRepositoryTest(t)
	createTestBatch(t, repo, "BATCH-RT-001")

	got, err := repo.GetByBatchID("BATCH-RT-001")
	if err != nil {
		t.Fatalf("get batch failed: %v", err)
	}
	if got == nil {
		t.Fatalf("expected batch, got nil")
	}
	if len(got.Medicines) != 2 {
		t.Fatalf("medicines want 2 got %d", len(got.Medicines))
	}
	if got.Medicines[0].Name != "Paracetamol" || got.Medicines[0].ExpiryDate != "2027-12-31" {
		t.Fatalf("medicine json column round trip broken: %+v", got.Medicines[0])
	}
	if got.Status != constants.BatchStatusAuthentic {
		t.Fatalf("status want Authentic got %q", got.Status)
	}
}

func TestBatchGetMissingReturnsNilNil(t *testing.T) {
	repo, _ := setupBatchRepositoryTest(t)
	got, err := repo.GetByBatchID("NO-SUCH-BATCH")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != nil {
		t.Fatalf("missing batch should return nil, got %+v", got)
	}
}

func TestBatchIDUniqueConstraint(t *testing.T) {
	repo, _ := setupBatchRepositoryTest(t)
	createTestBatch(t, repo, "BATCH-DUP-001")

	dup := &models.Batch{
		BatchID:   "BATCH-DUP-001",
		Medicines: models.Medicines{{Name: "Aspirin", Quantity: "1", ExpiryDate: "2030-01-01"}},
		Status:    constants.BatchStatusAuthentic,
	}
	if err := repo.Create(dup); err == nil {
		t.Fatalf("duplicate batch_id must be rejected by the unique index")
	}
}

func TestBatchUpdateStatus(t *testing.T) {
	repo, _ := setupBatchRepositoryTest(t)
	createTestBatch(t, repo, "BATCH-UPD-001")

	affected, err := repo.UpdateStatus("BATCH-UPD-001", constants.BatchStatusRecalled)
	if err != nil {
		t.Fatalf("update status failed: %v", err)
	}
	if affected != 1 {
		t.Fatalf("affected rows want 1 got %d", affected)
	}

	got, err := repo.GetByBatchID("BATCH-UPD-001")
	if err != nil {
		t.Fatalf("reload batch failed: %v", err)
	}
	if got.Status != constants.BatchStatusRecalled {
		t.Fatalf("status want Recalled got %q", got.Status)
	}
}

func TestBatchUpdateStatusMissingRowsAffectedZero(t *testing.T) {
	repo, _ := setupBatchRepositoryTest(t)
	affected, err := repo.UpdateStatus("NO-SUCH-BATCH", constants.BatchStatusRecalled)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if affected != 0 {
		t.Fatalf("affected rows want 0 got %d", affected)
	}
}

func TestBatchListAll(t *testing.T) {
	repo, _ := setupBatchRepositoryTest(t)
	createTestBatch(t, repo, "BATCH-LIST-001")
	createTestBatch(t, repo, "BATCH-LIST-002")

	batches, err := repo.ListAll()
	if err != nil {
		t.Fatalf("list all failed: %v", err)
	}
	if len(batches) != 2 {
		t.Fatalf("batches want 2 got %d", len(batches))
	}
}
