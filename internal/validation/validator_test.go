package validation

import (
	"strings"
	"sync"
	"testing"

	"github.com/hyperjump/fitscout/internal/models"
)

func TestGetValidator_Singleton(t *testing.T) {
	var wg sync.WaitGroup
	seen := make(chan interface{}, 10)
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			seen <- GetValidator()
		}()
	}
	wg.Wait()
	close(seen)
	first := GetValidator()
	for v := range seen {
		if v != first {
			t.Fatal("GetValidator returned different instances")
		}
	}
}

func TestValidateStruct_SizeRequest(t *testing.T) {
	tests := []struct {
		name      string
		req       models.SizeRequest
		wantField string
		wantMsg   string
	}{
		{
			name: "valid",
			req: models.SizeRequest{Brand: "nike", Category: "clothing", FitPreference: "snug",
				Measurements: models.Measurements{ChestCM: models.Float(96)}},
		},
		{
			name:      "missing brand",
			req:       models.SizeRequest{Category: "shoes"},
			wantField: "brand",
			wantMsg:   "brand is required",
		},
		{
			name:      "chest out of range",
			req:       models.SizeRequest{Brand: "nike", Category: "clothing", Measurements: models.Measurements{ChestCM: models.Float(20)}},
			wantField: "chest_cm",
			wantMsg:   "chest_cm must be at least 50",
		},
		{
			name:      "foot too long",
			req:       models.SizeRequest{Brand: "nike", Category: "shoes", Measurements: models.Measurements{FootMM: models.Float(450)}},
			wantField: "foot_mm",
			wantMsg:   "foot_mm must be at most 400",
		},
		{
			name:      "unknown fit",
			req:       models.SizeRequest{Brand: "nike", Category: "shoes", FitPreference: "baggy"},
			wantField: "fitPreference",
			wantMsg:   "fitPreference must be one of",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateStruct(&tt.req)
			if tt.wantField == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if err == nil {
				t.Fatal("expected validation error")
			}
			fe := err.Errors()[0]
			if fe.Field() != tt.wantField {
				t.Errorf("field = %q, want %q", fe.Field(), tt.wantField)
			}
			if !strings.Contains(fe.Error(), tt.wantMsg) {
				t.Errorf("message = %q, want containing %q", fe.Error(), tt.wantMsg)
			}
			api := err.ToAPIError()
			if api.Code != "VALIDATION_ERROR" {
				t.Errorf("code = %q", api.Code)
			}
		})
	}
}

func TestValidateStruct_FindRequest(t *testing.T) {
	if err := ValidateStruct(&models.FindRequest{URL: "https://example.com/p"}); err != nil {
		t.Errorf("valid url rejected: %v", err)
	}
	if err := ValidateStruct(&models.FindRequest{Text: "shoes"}); err != nil {
		t.Errorf("empty url should be allowed: %v", err)
	}
	err := ValidateStruct(&models.FindRequest{URL: "not a url"})
	if err == nil {
		t.Fatal("expected invalid url error")
	}
	if err.Errors()[0].Field() != "url" {
		t.Errorf("field = %q", err.Errors()[0].Field())
	}
}

func TestToAPIError_Multiple(t *testing.T) {
	err := ValidateStruct(&models.SizeRequest{})
	if err == nil {
		t.Fatal("expected errors")
	}
	api := err.ToAPIError()
	fields, ok := api.Details["fields"].([]map[string]interface{})
	if !ok || len(fields) != 2 {
		t.Fatalf("expected 2 field errors, got %+v", api.Details)
	}
	if !strings.Contains(api.Message, "brand is required") || !strings.Contains(api.Message, "category is required") {
		t.Errorf("message = %q", api.Message)
	}
}
