package transit

import (
	"reflect"
	"testing"
)

func testNetwork() *Network {
	records := []StationRecord{
		{Name: "A", Latitude: 51.50, Longitude: -0.10},
		{Name: "B", Latitude: 51.51, Longitude: -0.12},
		{Name: "C", Latitude: 51.52, Longitude: -0.14},
		{Name: "D", Latitude: 51.53, Longitude: -0.16},
	}
	segments := []Segment{
		{From: "A", To: "B", Line: "Central", Distance: 1.20},
		{From: "B", To: "C", Line: "Jubilee", Distance: 2.00},
		{From: "C", To: "D", Line: "Jubilee", Distance: 0.80},
		{From: "D", To: "A", Line: "Victoria", Distance: 3.10},
	}
	return NewNetwork(records, segments, DefaultPalette())
}

func stationNames(stations []Station) []string {
	names := make([]string, len(stations))
	for i, s := range stations {
		names[i] = s.Name
	}
	return names
}

func TestApplyFilterScenario(t *testing.T) {
	n := testNetwork()
	f := n.ApplyFilter(NewSelection("Central"))

	if len(f.Segments) != 1 || f.Segments[0].Key() != (Key{From: "A", To: "B", Line: "Central"}) {
		t.Fatalf("Segments = %v, want [A->B Central]", f.Segments)
	}
	if got := stationNames(f.Stations); !reflect.DeepEqual(got, []string{"A", "B"}) {
		t.Errorf("Stations = %v, want [A B]", got)
	}
	for _, st := range f.Stations {
		if st.Name == "C" {
			t.Error("C should not be in the filtered stations")
		}
		if st.Name == "B" && st.LastLine != "Central" {
			t.Errorf("B.LastLine = %q, want Central", st.LastLine)
		}
	}
	if len(f.Lines) != 1 || f.Lines[0].Name != "Central" || f.Lines[0].Color != "#FF0000" {
		t.Errorf("Lines = %v, want [Central #FF0000]", f.Lines)
	}
}

func TestApplyFilterClosure(t *testing.T) {
	n := testNetwork()
	selections := []Selection{
		NewSelection(),
		NewSelection("Central"),
		NewSelection("Jubilee"),
		NewSelection("Central", "Victoria"),
		NewSelection("Jubilee", "Nonexistent"),
		NewSelection(n.Catalog().Names()...),
	}

	for _, sel := range selections {
		f := n.ApplyFilter(sel)

		endpoints := map[string]bool{}
		for _, s := range f.Segments {
			if !sel.Has(s.Line) || !n.Catalog().Has(s.Line) {
				t.Errorf("selection %v: segment on %q not in selection ∩ catalog", sel.Names(), s.Line)
			}
			endpoints[s.From] = true
			endpoints[s.To] = true
		}
		if len(f.Stations) != len(endpoints) {
			t.Errorf("selection %v: %d stations, want %d endpoints", sel.Names(), len(f.Stations), len(endpoints))
		}
		for _, st := range f.Stations {
			if !endpoints[st.Name] {
				t.Errorf("selection %v: station %s is not an endpoint", sel.Names(), st.Name)
			}
		}

		want := 0
		for _, s := range n.Segments() {
			if sel.Has(s.Line) {
				want++
			}
		}
		if len(f.Segments) != want {
			t.Errorf("selection %v: %d segments, want %d", sel.Names(), len(f.Segments), want)
		}
	}
}

func TestApplyFilterEmptySelection(t *testing.T) {
	f := testNetwork().ApplyFilter(NewSelection())

	if f.Segments == nil || f.Lines == nil || f.Stations == nil {
		t.Fatal("empty selection should yield non-nil empty tables")
	}
	if len(f.Segments) != 0 || len(f.Lines) != 0 || len(f.Stations) != 0 {
		t.Errorf("got %d segments, %d lines, %d stations; want all zero",
			len(f.Segments), len(f.Lines), len(f.Stations))
	}
	if !f.Empty() {
		t.Error("Empty() = false, want true")
	}
}

func TestApplyFilterFullCatalog(t *testing.T) {
	n := testNetwork()
	f := n.ApplyFilter(NewSelection(n.Catalog().Names()...))

	if len(f.Segments) != len(n.Segments()) {
		t.Errorf("Segments = %d, want %d", len(f.Segments), len(n.Segments()))
	}
	if len(f.Lines) != n.Catalog().Len() {
		t.Errorf("Lines = %d, want %d", len(f.Lines), n.Catalog().Len())
	}
	if len(f.Stations) != len(n.Stations()) {
		t.Errorf("Stations = %d, want %d", len(f.Stations), len(n.Stations()))
	}
}

func TestApplyFilterUnknownLineIgnored(t *testing.T) {
	n := testNetwork()
	with := n.ApplyFilter(NewSelection("Central", "Elizabeth"))
	without := n.ApplyFilter(NewSelection("Central"))

	if !reflect.DeepEqual(with, without) {
		t.Errorf("unknown line changed the result: %+v vs %+v", with, without)
	}
}

func TestApplyFilterIdempotent(t *testing.T) {
	n := testNetwork()
	sel := NewSelection("Jubilee", "Victoria")

	first := n.ApplyFilter(sel)
	second := n.ApplyFilter(sel)
	if !reflect.DeepEqual(first, second) {
		t.Errorf("ApplyFilter not idempotent:\n%+v\n%+v", first, second)
	}

	for _, st := range n.Stations() {
		if st.LastLine != "" {
			t.Errorf("base station %s was mutated: LastLine = %q", st.Name, st.LastLine)
		}
	}
}

func TestApplyFilterLinesKeepCatalogOrder(t *testing.T) {
	n := testNetwork()
	f := n.ApplyFilter(NewSelection("Victoria", "Central"))

	var got []string
	for _, l := range f.Lines {
		got = append(got, l.Name)
	}
	if want := []string{"Central", "Victoria"}; !reflect.DeepEqual(got, want) {
		t.Errorf("Lines = %v, want %v", got, want)
	}
}

func TestApplyFilterLastLineScopedToSelection(t *testing.T) {
	n := testNetwork()

	all := n.ApplyFilter(NewSelection(n.Catalog().Names()...))
	// D only starts the Victoria segment once Jubilee is hidden.
	vic := n.ApplyFilter(NewSelection("Victoria"))

	lookup := func(stations []Station, name string) Station {
		for _, s := range stations {
			if s.Name == name {
				return s
			}
		}
		t.Fatalf("station %s missing", name)
		return Station{}
	}

	if got := lookup(all.Stations, "A").LastLine; got != "Victoria" {
		t.Errorf("all: A.LastLine = %q, want Victoria", got)
	}
	if got := lookup(all.Stations, "B").LastLine; got != "Central" {
		t.Errorf("all: B.LastLine = %q, want Central", got)
	}
	if got := lookup(vic.Stations, "D").LastLine; got != "Victoria" {
		t.Errorf("victoria: D.LastLine = %q, want Victoria", got)
	}
}

func TestNewNetworkStationTable(t *testing.T) {
	records := []StationRecord{
		{Name: "A", Latitude: 1, Longitude: 2},
		{Name: "A", Latitude: 9, Longitude: 9},
	}
	segments := []Segment{
		{From: "A", To: "B", Line: "X"},
		{From: "C", To: "A", Line: "X"},
	}
	n := NewNetwork(records, segments, DefaultPalette())

	if got := stationNames(n.Stations()); !reflect.DeepEqual(got, []string{"A", "C", "B"}) {
		t.Errorf("station order = %v, want [A C B]", got)
	}

	a, ok := n.Station("A")
	if !ok || !a.Positioned || a.Latitude != 1 || a.Longitude != 2 {
		t.Errorf("A = %+v, want first record's coordinates", a)
	}
	b, _ := n.Station("B")
	if b.Positioned {
		t.Error("B has no record and should not be positioned")
	}

	sum := n.Summary()
	if sum.Stations != 3 || sum.Unpositioned != 2 || sum.Segments != 2 || sum.Lines != 1 {
		t.Errorf("Summary = %+v", sum)
	}
}
