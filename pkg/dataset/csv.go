package dataset

import (
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/matzehuels/tubemap/pkg/errors"
	"github.com/matzehuels/tubemap/pkg/transit"
)

// Column names of the two input files.
const (
	ColStation   = "Station"
	ColLatitude  = "Latitude"
	ColLongitude = "Longitude"

	ColFrom     = "Station from (A)"
	ColTo       = "Station to (B)"
	ColLine     = "Line"
	ColDistance = "Distance (Kms)"
)

// Dataset is the raw content of the two input files.
type Dataset struct {
	Stations []transit.StationRecord
	Segments []transit.Segment

	// DroppedStations and DroppedSegments count rows skipped because a
	// required field was empty or a number did not parse.
	DroppedStations int
	DroppedSegments int
}

// Load reads the station and segment files. A missing file is reported with
// errors.ErrCodeFileNotFound; a file lacking a required column with
// errors.ErrCodeInvalidDataset.
func Load(stationsPath, segmentsPath string) (*Dataset, error) {
	ds := &Dataset{}

	f, err := open(stationsPath)
	if err != nil {
		return nil, err
	}
	ds.Stations, ds.DroppedStations, err = ReadStations(f)
	f.Close()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", stationsPath, err)
	}

	f, err = open(segmentsPath)
	if err != nil {
		return nil, err
	}
	ds.Segments, ds.DroppedSegments, err = ReadSegments(f)
	f.Close()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", segmentsPath, err)
	}
	return ds, nil
}

// Network builds the transit network from the loaded tables.
func (ds *Dataset) Network(palette transit.Palette) *transit.Network {
	return transit.NewNetwork(ds.Stations, ds.Segments, palette)
}

func open(path string) (*os.File, error) {
	if err := errors.ValidateDatasetPath(path); err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "dataset not found: %s", path)
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidDataset, err, "open %s", path)
	}
	return f, nil
}

// ReadStations parses the coordinate file. Rows with an empty name or an
// unparsable or non-finite coordinate are dropped and counted.
func ReadStations(r io.Reader) ([]transit.StationRecord, int, error) {
	reader, idx, err := newReader(r, ColStation, ColLatitude, ColLongitude)
	if err != nil {
		return nil, 0, err
	}

	var (
		records []transit.StationRecord
		dropped int
	)
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			dropped++
			continue
		}

		name := getField(record, idx, ColStation)
		lat, errLat := parseNumber(getField(record, idx, ColLatitude))
		lon, errLon := parseNumber(getField(record, idx, ColLongitude))
		if name == "" || errLat != nil || errLon != nil {
			dropped++
			continue
		}
		records = append(records, transit.StationRecord{Name: name, Latitude: lat, Longitude: lon})
	}
	return records, dropped, nil
}

// ReadSegments parses the segment file. Rows with an empty endpoint or line, or
// an unparsable or non-finite distance, are dropped and counted.
func ReadSegments(r io.Reader) ([]transit.Segment, int, error) {
	reader, idx, err := newReader(r, ColFrom, ColTo, ColLine, ColDistance)
	if err != nil {
		return nil, 0, err
	}

	var (
		segments []transit.Segment
		dropped  int
	)
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			dropped++
			continue
		}

		from := getField(record, idx, ColFrom)
		to := getField(record, idx, ColTo)
		line := getField(record, idx, ColLine)
		dist, errDist := parseNumber(getField(record, idx, ColDistance))
		if from == "" || to == "" || line == "" || errDist != nil {
			dropped++
			continue
		}
		segments = append(segments, transit.Segment{From: from, To: to, Line: line, Distance: dist})
	}
	return segments, dropped, nil
}

// parseNumber parses a finite float. NaN and infinities count as missing.
func parseNumber(s string) (float64, error) {
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, fmt.Errorf("non-finite value %q", s)
	}
	return f, nil
}

func newReader(r io.Reader, required ...string) (*csv.Reader, map[string]int, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	header, err := reader.Read()
	if err == io.EOF {
		return nil, nil, errors.New(errors.ErrCodeInvalidDataset, "empty file")
	}
	if err != nil {
		return nil, nil, errors.Wrap(errors.ErrCodeInvalidDataset, err, "read header")
	}

	idx := makeIndex(header)
	for _, col := range required {
		if _, ok := idx[col]; !ok {
			return nil, nil, errors.New(errors.ErrCodeInvalidDataset, "missing column %q", col)
		}
	}
	return reader, idx, nil
}

func makeIndex(header []string) map[string]int {
	idx := make(map[string]int, len(header))
	for i, h := range header {
		// Strip a UTF-8 BOM left by spreadsheet exports.
		h = strings.TrimPrefix(h, "\ufeff")
		idx[strings.TrimSpace(h)] = i
	}
	return idx
}

func getField(record []string, idx map[string]int, name string) string {
	i, ok := idx[name]
	if !ok || i >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[i])
}
