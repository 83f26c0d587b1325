package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/pharmatrace/internal/config"
)

type fakeGenerativeClient struct {
	calls int
	info  *DrugInfo
	err   error
}

func (c *fakeGenerativeClient) LookupDrugInfo(ctx context.Context, drugName string) (*DrugInfo, error) {
	c.calls++
	if c.err != nil {
		return nil, c.err
	}
	return c.info, nil
}

func TestLookupRejectsEmptyNameWithoutUpstreamCall(t *testing.T) {
	client := &fakeGenerativeClient{}
	svc := NewDrugInfoService(&config.Config{}, client)

	if _, err := svc.Lookup(context.Background(), "   "); !errors.Is(err, ErrDrugNameRequired) {
		t.Fatalf("want ErrDrugNameRequired, got %v", err)
	}
	if client.calls != 0 {
		t.Fatalf("empty name must not reach the upstream client, calls = %d", client.calls)
	}
}

func TestLookupUnavailableWithoutClient(t *testing.T) {
	svc := NewDrugInfoService(&config.Config{}, nil)
	if _, err := svc.Lookup(context.Background(), "Aspirin"); !errors.Is(err, ErrDrugInfoUnavailable) {
		t.Fatalf("want ErrDrugInfoUnavailable, got %v", err)
	}
}

func TestLookupMapsUpstreamFailureToSingleError(t *testing.T) {
	client := &fakeGenerativeClient{err: errors.New("deadline exceeded")}
	svc := NewDrugInfoService(&config.Config{}, client)

	if _, err := svc.Lookup(context.Background(), "Aspirin"); !errors.Is(err, ErrDrugInfoUnavailable) {
		t.Fatalf("upstream failures must map to ErrDrugInfoUnavailable, got %v", err)
	}
}

func TestLookupReturnsUpstreamInfo(t *testing.T) {
	client := &fakeGenerativeClient{
		info: &DrugInfo{
			Description:        "Pain reliever",
			UseCases:           []string{"Headache", "Fever"},
			GenericAlternative: "Acetylsalicylic acid",
			Warnings:           "Do not exceed recommended dose",
		},
	}
	svc := NewDrugInfoService(&config.Config{}, client)

	info, err := svc.Lookup(context.Background(), "Aspirin")
	if err != nil {
		t.Fatalf("lookup failed: %v", err)
	}
	if info.GenericAlternative != "Acetylsalicylic acid" {
		t.Fatalf("unexpected generic alternative: %q", info.GenericAlternative)
	}
	if len(info.UseCases) != 2 {
		t.Fatalf("use cases want 2 got %d", len(info.UseCases))
	}
	if client.calls != 1 {
		t.Fatalf("upstream calls want 1 got %d", client.calls)
	}
}

func TestBuildAlternativesTwoFixedEntries(t *testing.T) {
	alts := BuildAlternatives("Acetylsalicylic acid")
	if len(alts) != 2 {
		t.Fatalf("alternatives want 2 got %d", len(alts))
	}
	for _, alt := range alts {
		if !strings.Contains(alt.Name, "Acetylsalicylic acid") {
			t.Fatalf("alternative name %q must contain the generic name", alt.Name)
		}
	}
	if alts[0].Strength != "250mg" || alts[0].Form != "Tablet" || alts[0].Stock != "In Stock" {
		t.Fatalf("unexpected first alternative: %+v", alts[0])
	}
	if alts[1].Strength != "500mg" || alts[1].Form != "Capsule" || alts[1].Stock != "Limited Stock" {
		t.Fatalf("unexpected second alternative: %+v", alts[1])
	}
}

func TestBuildAlternativesFallbackName(t *testing.T) {
	alts := BuildAlternatives("  ")
	if len(alts) != 2 {
		t.Fatalf("alternatives want 2 got %d", len(alts))
	}
	if !strings.Contains(alts[0].Name, "Generic equivalent") {
		t.Fatalf("blank generic name should fall back, got %q", alts[0].Name)
	}
}
