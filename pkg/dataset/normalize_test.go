package dataset

import (
	"testing"

	"github.com/matzehuels/tubemap/pkg/transit"
)

func TestTitleCase(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"BANK", "Bank"},
		{"liverpool street", "Liverpool Street"},
		{"harrow-on-the-hill", "Harrow-On-The-Hill"},
		{"king's cross", "King'S Cross"},
		{"heathrow 123", "Heathrow 123"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := TitleCase(tt.in); got != tt.want {
				t.Errorf("TitleCase(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestNormalizeEndpoints(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"HARROW-ON-THE-HILL", "Harrow-on-the-Hill"},
		{"bromley by bow", "Bromley-by-Bow"},
		{"Heathrow 123", "Heathrow Terminals 1 2 3"},
		{"HEATHROW TERMINAL FOUR", "Heathrow Terminal 4"},
		{"walthamstow", "Walthamstow Central"},
		{"Highbury", "Highbury & Islington"},
		{"shoreditch", "Shoreditch High Street"},
		{"Edgware Road (Bakerloo)", "Edgware Road"},
		{"Paddington (H&C) Line", "Paddington Line"},
		{"  bank  ", "Bank"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			ds := &Dataset{Segments: []transit.Segment{{From: tt.in, To: tt.in, Line: " Central "}}}
			Normalize(ds)
			s := ds.Segments[0]
			if s.From != tt.want || s.To != tt.want {
				t.Errorf("normalized %q = (%q, %q), want %q", tt.in, s.From, s.To, tt.want)
			}
			if s.Line != "Central" {
				t.Errorf("Line = %q, want trimmed", s.Line)
			}
		})
	}
}

func TestNormalizeRecordNames(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"St. Pauls", "St Pauls"},
		{"Earl's Court", "Earls Court"},
		{"St. James's Park", "St James Park"},
		{"Highbury and Islington", "Highbury & Islington"},
		{"Elephant and Castle", "Elephant & Castle"},
		{"Sandown", "Sandown"},
		{"Edgware Road (Circle)", "Edgware Road"},
		{" Bank ", "Bank"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			ds := &Dataset{Stations: []transit.StationRecord{{Name: tt.in}}}
			Normalize(ds)
			if got := ds.Stations[0].Name; got != tt.want {
				t.Errorf("normalized %q = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}
