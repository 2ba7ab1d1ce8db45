package models

import (
	"errors"
	"testing"
)

func TestParseFitPreference(t *testing.T) {
	tests := []struct {
		in      string
		want    FitPreference
		wantErr bool
	}{
		{"slim", FitSlim, false},
		{"snug", FitSlim, false},
		{"regular", FitRegular, false},
		{"", FitRegular, false},
		{"Loose", FitLoose, false},
		{" relaxed ", FitLoose, false},
		{"baggy", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseFitPreference(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseFitPreference(%q) error = %v", tt.in, err)
			}
			if tt.wantErr && !errors.Is(err, ErrInvalidFitPreference) {
				t.Errorf("expected ErrInvalidFitPreference, got %v", err)
			}
			if got != tt.want {
				t.Errorf("ParseFitPreference(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestSizeRequest_FitPrefersLongName(t *testing.T) {
	r := &SizeRequest{FitPreference: "slim", FitPref: "relaxed"}
	fit, err := r.Fit()
	if err != nil || fit != FitSlim {
		t.Errorf("Fit() = %q, %v", fit, err)
	}
	r = &SizeRequest{FitPref: "relaxed"}
	if fit, _ := r.Fit(); fit != FitLoose {
		t.Errorf("Fit() alias = %q, want loose", fit)
	}
}

func TestMeasurements_Presence(t *testing.T) {
	m := Measurements{ChestCM: Float(96), WaistCM: Float(0)}
	if v, ok := m.Chest(); !ok || v != 96 {
		t.Errorf("Chest() = %v, %v", v, ok)
	}
	if _, ok := m.Waist(); ok {
		t.Error("zero waist should count as absent")
	}
	if _, ok := m.Foot(); ok {
		t.Error("nil foot should count as absent")
	}
	if m.IsEmpty() {
		t.Error("measurements with chest should not be empty")
	}
	if !(Measurements{}).IsEmpty() {
		t.Error("zero value should be empty")
	}
}

func TestSizeChart_Validate(t *testing.T) {
	shoe := &SizeChart{Kind: ChartKindShoe, Shoe: &ShoeChart{Regions: []ShoeRegion{{Region: "US"}}}}
	if err := shoe.Validate(); err != nil {
		t.Errorf("valid shoe chart: %v", err)
	}
	broken := &SizeChart{Kind: ChartKindClothing, Shoe: shoe.Shoe}
	if err := broken.Validate(); err == nil {
		t.Error("clothing chart without sub-categories should be invalid")
	}
	if err := (&SizeChart{Kind: "hats"}).Validate(); err == nil {
		t.Error("unknown kind should be invalid")
	}
}

func TestIsUserError(t *testing.T) {
	if !IsUserError(ErrUnknownBrand) || !IsUserError(ErrEmptyQuery) {
		t.Error("brand and query errors are user errors")
	}
	if IsUserError(ErrMissingSizeChart) || IsUserError(ErrEmbedderUnavailable) {
		t.Error("data and dependency errors are not user errors")
	}
}
