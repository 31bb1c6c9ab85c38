package dataset

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/matzehuels/tubemap/pkg/errors"
	"github.com/matzehuels/tubemap/pkg/transit"
)

func TestLoad(t *testing.T) {
	ds, err := Load(filepath.Join("testdata", "stations.csv"), filepath.Join("testdata", "segments.csv"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if len(ds.Stations) != 4 || ds.DroppedStations != 1 {
		t.Errorf("stations = %d (dropped %d), want 4 (dropped 1)", len(ds.Stations), ds.DroppedStations)
	}
	if len(ds.Segments) != 3 || ds.DroppedSegments != 2 {
		t.Errorf("segments = %d (dropped %d), want 3 (dropped 2)", len(ds.Segments), ds.DroppedSegments)
	}

	first := ds.Segments[0]
	if first.From != "st. paul's" || first.To != "BANK" || first.Line != "Central" || first.Distance != 0.68 {
		t.Errorf("first segment = %+v", first)
	}
	bank := ds.Stations[0]
	if bank.Name != "Bank" || bank.Latitude != 51.513347 || bank.Longitude != -0.088954 {
		t.Errorf("first station = %+v", bank)
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join("testdata", "nope.csv"), filepath.Join("testdata", "segments.csv"))
	if !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("err = %v, want %s", err, errors.ErrCodeFileNotFound)
	}

	_, err = Load(filepath.Join("testdata", "stations.csv"), filepath.Join(t.TempDir(), "segments.csv"))
	if !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("err = %v, want %s", err, errors.ErrCodeFileNotFound)
	}
}

func TestReadSegmentsMissingColumn(t *testing.T) {
	in := "Line,Station from (A),Station to (B)\nCentral,A,B\n"
	_, _, err := ReadSegments(strings.NewReader(in))
	if !errors.Is(err, errors.ErrCodeInvalidDataset) {
		t.Fatalf("err = %v, want %s", err, errors.ErrCodeInvalidDataset)
	}
	if !strings.Contains(err.Error(), "Distance (Kms)") {
		t.Errorf("error %q should name the missing column", err)
	}
}

func TestReadStationsEmpty(t *testing.T) {
	_, _, err := ReadStations(strings.NewReader(""))
	if !errors.Is(err, errors.ErrCodeInvalidDataset) {
		t.Errorf("err = %v, want %s", err, errors.ErrCodeInvalidDataset)
	}
}

func TestReadStationsHeaderOrderAndBOM(t *testing.T) {
	in := "\ufeffLongitude,Station,Latitude\n-0.1,A,51.5\n-0.2,B,oops\n"
	records, dropped, err := ReadStations(strings.NewReader(in))
	if err != nil {
		t.Fatalf("ReadStations: %v", err)
	}
	if dropped != 1 {
		t.Errorf("dropped = %d, want 1", dropped)
	}
	want := transit.StationRecord{Name: "A", Latitude: 51.5, Longitude: -0.1}
	if len(records) != 1 || records[0] != want {
		t.Errorf("records = %+v, want [%+v]", records, want)
	}
}

func TestDatasetNetwork(t *testing.T) {
	ds, err := Load(filepath.Join("testdata", "stations.csv"), filepath.Join("testdata", "segments.csv"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	n := Normalize(ds).Network(transit.DefaultPalette())

	if got := n.Catalog().Names(); len(got) != 2 || got[0] != "Central" || got[1] != "Victoria" {
		t.Errorf("catalog = %v, want [Central Victoria]", got)
	}
	hi, ok := n.Station("Highbury & Islington")
	if !ok || !hi.Positioned {
		t.Errorf("Highbury & Islington = %+v, %v; want positioned", hi, ok)
	}
	kx, ok := n.Station("Kings Cross St. Pancras")
	if !ok || kx.Positioned {
		t.Errorf("Kings Cross St. Pancras = %+v, %v; want present without coordinates", kx, ok)
	}
}

func TestReadDropsNonFiniteNumbers(t *testing.T) {
	stations := "Station,Latitude,Longitude\nA,51.5,-0.1\nB,NaN,-0.2\nC,51.6,-Inf\nD,+Inf,0\n"
	records, dropped, err := ReadStations(strings.NewReader(stations))
	if err != nil {
		t.Fatalf("ReadStations: %v", err)
	}
	if len(records) != 1 || records[0].Name != "A" || dropped != 3 {
		t.Errorf("records = %+v, dropped = %d; want only A, 3 dropped", records, dropped)
	}

	segments := "Line,Station from (A),Station to (B),Distance (Kms)\n" +
		"Central,A,B,1.2\nCentral,B,C,NaN\nCentral,C,D,Inf\n"
	segs, dropped, err := ReadSegments(strings.NewReader(segments))
	if err != nil {
		t.Fatalf("ReadSegments: %v", err)
	}
	if len(segs) != 1 || segs[0].Distance != 1.2 || dropped != 2 {
		t.Errorf("segments = %+v, dropped = %d; want one segment, 2 dropped", segs, dropped)
	}
}
