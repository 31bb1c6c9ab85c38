package transit

import "testing"

func TestAssignLastLines(t *testing.T) {
	tests := []struct {
		name     string
		segments []Segment
		station  string
		want     string
	}{
		{
			name: "destination wins over origin",
			segments: []Segment{
				{From: "S", To: "T", Line: "Y"},
				{From: "R", To: "S", Line: "X"},
			},
			station: "S",
			want:    "X",
		},
		{
			name: "destination wins even when origin row is later",
			segments: []Segment{
				{From: "R", To: "S", Line: "X"},
				{From: "S", To: "T", Line: "Y"},
			},
			station: "S",
			want:    "X",
		},
		{
			name:     "origin only",
			segments: []Segment{{From: "S", To: "T", Line: "Y"}},
			station:  "S",
			want:     "Y",
		},
		{
			name: "last destination row wins",
			segments: []Segment{
				{From: "P", To: "S", Line: "X"},
				{From: "Q", To: "S", Line: "Z"},
			},
			station: "S",
			want:    "Z",
		},
		{
			name:     "untouched station falls back",
			segments: []Segment{{From: "P", To: "Q", Line: "X"}},
			station:  "S",
			want:     UnknownLastLine,
		},
		{
			name:     "empty segment table",
			segments: nil,
			station:  "S",
			want:     UnknownLastLine,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := AssignLastLines([]Station{{Name: tt.station}}, tt.segments)
			if len(got) != 1 {
				t.Fatalf("got %d stations, want 1", len(got))
			}
			if got[0].LastLine != tt.want {
				t.Errorf("LastLine = %q, want %q", got[0].LastLine, tt.want)
			}
		})
	}
}

func TestAssignLastLinesDoesNotMutateInput(t *testing.T) {
	in := []Station{{Name: "A"}, {Name: "B"}}
	out := AssignLastLines(in, []Segment{{From: "A", To: "B", Line: "X"}})

	if in[0].LastLine != "" || in[1].LastLine != "" {
		t.Errorf("input mutated: %+v", in)
	}
	if out[0].LastLine != "X" || out[1].LastLine != "X" {
		t.Errorf("out = %+v, want both on X", out)
	}
}

func TestAssignLastLinesNeverEmpty(t *testing.T) {
	stations := []Station{{Name: "A"}, {Name: "B"}, {Name: "C"}}
	for _, st := range AssignLastLines(stations, []Segment{{From: "A", To: "B", Line: "X"}}) {
		if st.LastLine == "" {
			t.Errorf("%s has an empty LastLine", st.Name)
		}
	}
}
