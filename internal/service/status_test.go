package service

import (
	"testing"
	"time"

	"github.com/pharmatrace/internal/constants"
	"github.com/pharmatrace/internal/models"
)

func mustTime(t *testing.T, value string) time.Time {
	t.Helper()
	parsed, err := time.ParseInLocation("2006-01-02 15:04:05", value, time.Local)
	if err != nil {
		t.Fatalf("parse time %q failed: %v", value, err)
	}
	return parsed
}

func TestEffectiveStatusNilBatch(t *testing.T) {
	if got := EffectiveStatus(nil, time.Now()); got != constants.BatchStatusNotFound {
		t.Fatalf("expected %q for nil batch, got %q", constants.BatchStatusNotFound, got)
	}
}

func TestEffectiveStatusAuthenticWhenNoMedicineExpired(t *testing.T) {
	batch := &models.Batch{
		BatchID: "BATCH-001",
		Status:  constants.BatchStatusAuthentic,
		Medicines: models.Medicines{
			{Name: "Ibuprofen", Quantity: "100", ExpiryDate: "2030-01-01"},
		},
	}
	now := mustTime(t, "2026-08-29 10:00:00")
	if got := EffectiveStatus(batch, now); got != constants.BatchStatusAuthentic {
		t.Fatalf("expected Authentic, got %q", got)
	}
}

func TestEffectiveStatusExpiredWhenAnyMedicineExpired(t *testing.T) {
	batch := &models.Batch{
		BatchID: "DRUG-123",
		Status:  constants.BatchStatusAuthentic,
		Medicines: models.Medicines{
			{Name: "Ibuprofen", Quantity: "100", ExpiryDate: "2030-01-01"},
			{Name: "Paracetamol", Quantity: "50", ExpiryDate: "2024-06-30"},
		},
	}
	now := mustTime(t, "2026-08-29 10:00:00")
	if got := EffectiveStatus(batch, now); got != constants.BatchStatusExpired {
		t.Fatalf("expected Expired, got %q", got)
	}
}

// A batch that is both recalled and past its expiry date displays as
// Expired: expiry derivation takes precedence over the stored status.
func TestEffectiveStatusExpiredOverridesRecalled(t *testing.T) {
	batch := &models.Batch{
		BatchID: "BATCH-RECALLED",
		Status:  constants.BatchStatusRecalled,
		Medicines: models.Medicines{
			{Name: "Amoxicillin", Quantity: "200", ExpiryDate: "2024-01-15"},
		},
	}
	now := mustTime(t, "2026-08-29 10:00:00")
	if got := EffectiveStatus(batch, now); got != constants.BatchStatusExpired {
		t.Fatalf("expected Expired to override Recalled, got %q", got)
	}
}

func TestEffectiveStatusRecalledWhenNotExpired(t *testing.T) {
	batch := &models.Batch{
		BatchID: "BATCH-RECALLED",
		Status:  constants.BatchStatusRecalled,
		Medicines: models.Medicines{
			{Name: "Amoxicillin", Quantity: "200", ExpiryDate: "2030-01-15"},
		},
	}
	now := mustTime(t, "2026-08-29 10:00:00")
	if got := EffectiveStatus(batch, now); got != constants.BatchStatusRecalled {
		t.Fatalf("expected Recalled, got %q", got)
	}
}

// The labeled expiry date itself still counts as valid; expiry starts at
// the beginning of the following day in local time.
func TestEffectiveStatusEndOfDayBoundary(t *testing.T) {
	batch := &models.Batch{
		BatchID: "BATCH-BOUNDARY",
		Status:  constants.BatchStatusAuthentic,
		Medicines: models.Medicines{
			{Name: "Aspirin", Quantity: "10", ExpiryDate: "2026-03-01"},
		},
	}

	onExpiryDay := mustTime(t, "2026-03-01 23:59:59")
	if got := EffectiveStatus(batch, onExpiryDay); got != constants.BatchStatusAuthentic {
		t.Fatalf("batch should still be valid on the labeled expiry day, got %q", got)
	}

	nextMidnight := mustTime(t, "2026-03-02 00:00:00")
	if got := EffectiveStatus(batch, nextMidnight); got != constants.BatchStatusExpired {
		t.Fatalf("batch should be expired from the following midnight, got %q", got)
	}
}

func TestEffectiveStatusIgnoresUnparseableExpiry(t *testing.T) {
	batch := &models.Batch{
		BatchID: "BATCH-BADDATE",
		Status:  constants.BatchStatusAuthentic,
		Medicines: models.Medicines{
			{Name: "Aspirin", Quantity: "10", ExpiryDate: "31/12/2020"},
			{Name: "Aspirin", Quantity: "10", ExpiryDate: ""},
		},
	}
	now := mustTime(t, "2026-08-29 10:00:00")
	if got := EffectiveStatus(batch, now); got != constants.BatchStatusAuthentic {
		t.Fatalf("unparseable expiry dates must not trigger expiry, got %q", got)
	}
}
