package errors

import (
	"testing"
)

func TestValidateDatasetPath(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"relative", "data/London stations.csv", false},
		{"absolute", "/srv/tubemap/London_transport_network.csv", false},

		{"empty", "", true},
		{"blank", "   ", true},
		{"too long", string(make([]byte, 5000)), true},
		{"null byte", "foo\x00.csv", true},
		{"newline", "foo\n.csv", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateDatasetPath(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateDatasetPath(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}

func TestValidateDimensions(t *testing.T) {
	tests := []struct {
		name    string
		w, h    float64
		wantErr bool
	}{
		{"default", 1500, 900, false},
		{"zero width", 0, 900, true},
		{"negative height", 1500, -1, true},
		{"too large", 50000, 900, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateDimensions(tt.w, tt.h)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateDimensions(%v, %v) error = %v, wantErr %v", tt.w, tt.h, err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeInvalidInput) {
				t.Errorf("code = %v, want %v", GetCode(err), ErrCodeInvalidInput)
			}
		})
	}
}

func TestValidateFormats(t *testing.T) {
	allowed := []string{"svg", "png", "pdf", "json", "dot"}
	tests := []struct {
		name    string
		input   []string
		wantErr bool
	}{
		{"svg", []string{"svg"}, false},
		{"several", []string{"svg", "json", "dot"}, false},

		{"none", nil, true},
		{"unknown", []string{"svg", "gif"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateFormats(tt.input, allowed)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateFormats(%v) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeInvalidFormat) {
				t.Errorf("code = %v, want %v", GetCode(err), ErrCodeInvalidFormat)
			}
		})
	}
}

func TestValidateLineName(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"simple", "Central", false},
		{"ampersand", "Waterloo & City", false},

		{"empty", "", true},
		{"too long", string(make([]byte, 200)), true},
		{"control char", "Cen\x01tral", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateLineName(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateLineName(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}
