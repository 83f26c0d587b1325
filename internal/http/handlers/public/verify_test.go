package public

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/pharmatrace/internal/config"
	"github.com/pharmatrace/internal/constants"
	"github.com/pharmatrace/internal/models"
	"github.com/pharmatrace/internal/provider"
	"github.com/pharmatrace/internal/queue"
	"github.com/pharmatrace/internal/repository"
	"github.com/pharmatrace/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func setupVerifyHandlerTest(t *testing.T) (*Handler, repository.BatchRepository) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	// A distinct named in-memory database per test keeps them isolated.
	db, err := gorm.Open(sqlite.Open("file:"+t.Name()+"?mode=memory&cache=shared"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(&models.Batch{}); err != nil {
		t.Fatalf("migrate batch failed: %v", err)
	}

	cfg := &config.Config{}
	cfg.Verify.PublicBaseURL = "https://trace.example.com"
	queueClient, err := queue.NewClient(nil)
	if err != nil {
		t.Fatalf("build queue client failed: %v", err)
	}
	batchRepo := repository.NewBatchRepository(db)
	container := &provider.Container{
		Config:       cfg,
		BatchRepo:    batchRepo,
		BatchService: service.NewBatchService(cfg, batchRepo, queueClient),
	}
	return New(container), batchRepo
}

func performVerify(t *testing.T, h *Handler, batchID string) map[string]interface{} {
	t.Helper()
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/api/v1/public/verify/"+batchID, nil)
	c.Params = gin.Params{{Key: "batch_id", Value: batchID}}

	h.VerifyBatch(c)

	if w.Code != http.StatusOK {
		t.Fatalf("http status want 200 got %d", w.Code)
	}
	var body map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode response failed: %v", err)
	}
	return body
}

func TestVerifyBatchNotFoundEnvelope(t *testing.T) {
	h, _ := setupVerifyHandlerTest(t)

	body := performVerify(t, h, "NO-SUCH-BATCH")
	if code, _ := body["status_code"].(float64); int(code) != 404 {
		t.Fatalf("status_code want 404 got %v", body["status_code"])
	}
	data, _ := body["data"].(map[string]interface{})
	if data == nil {
		t.Fatalf("missing data payload: %v", body)
	}
	if data["batch_id"] != "NO-SUCH-BATCH" {
		t.Fatalf("batch_id want echoed back, got %v", data["batch_id"])
	}
	if data["status"] != constants.BatchStatusNotFound {
		t.Fatalf("status want %q got %v", constants.BatchStatusNotFound, data["status"])
	}
}

func TestVerifyBatchAuthentic(t *testing.T) {
	h, repo := setupVerifyHandlerTest(t)
	if err := repo.Create(&models.Batch{
		BatchID:   "BATCH-OK",
		Medicines: models.Medicines{{Name: "Ibuprofen", Quantity: "100", ExpiryDate: "2030-01-01"}},
		Status:    constants.BatchStatusAuthentic,
	}); err != nil {
		t.Fatalf("create batch failed: %v", err)
	}

	body := performVerify(t, h, "BATCH-OK")
	if code, _ := body["status_code"].(float64); int(code) != 0 {
		t.Fatalf("status_code want 0 got %v", body["status_code"])
	}
	data, _ := body["data"].(map[string]interface{})
	if data["status"] != constants.BatchStatusAuthentic {
		t.Fatalf("status want Authentic got %v", data["status"])
	}
	if data["batch_id"] != "BATCH-OK" {
		t.Fatalf("batch_id want BATCH-OK got %v", data["batch_id"])
	}
	medicines, _ := data["medicines"].([]interface{})
	if len(medicines) != 1 {
		t.Fatalf("medicines want 1 got %d", len(medicines))
	}
	if _, ok := data["created_at"]; !ok {
		t.Fatalf("missing created_at in payload: %v", data)
	}
}

// Even a recalled batch displays as Expired once any medicine passes its
// expiry date; the expiry derivation wins over the stored status.
func TestVerifyBatchExpiredOverridesRecalled(t *testing.T) {
	h, repo := setupVerifyHandlerTest(t)
	if err := repo.Create(&models.Batch{
		BatchID:   "BATCH-RECALLED-OLD",
		Medicines: models.Medicines{{Name: "Amoxicillin", Quantity: "10", ExpiryDate: "2020-01-01"}},
		Status:    constants.BatchStatusRecalled,
	}); err != nil {
		t.Fatalf("create batch failed: %v", err)
	}

	body := performVerify(t, h, "BATCH-RECALLED-OLD")
	data, _ := body["data"].(map[string]interface{})
	if data["status"] != constants.BatchStatusExpired {
		t.Fatalf("status want Expired got %v", data["status"])
	}
}
