package transit

import (
	"reflect"
	"testing"
)

func TestSelection(t *testing.T) {
	s := NewSelection("Central", "Jubilee")

	if !s.Has("Central") || s.Has("Victoria") {
		t.Fatalf("Has() wrong: %v", s.Names())
	}

	if on := s.Toggle("Victoria"); !on {
		t.Error("Toggle(Victoria) = false, want true")
	}
	if on := s.Toggle("Central"); on {
		t.Error("Toggle(Central) = true, want false")
	}
	if want := []string{"Jubilee", "Victoria"}; !reflect.DeepEqual(s.Names(), want) {
		t.Errorf("Names() = %v, want %v", s.Names(), want)
	}

	clone := s.Clone()
	s.Clear()
	if len(s) != 0 {
		t.Errorf("Clear left %v", s.Names())
	}
	if len(clone) != 2 {
		t.Errorf("Clone shares state with original: %v", clone.Names())
	}

	s.Set("A", "B")
	s.Remove("A")
	s.Add("C")
	if want := []string{"B", "C"}; !reflect.DeepEqual(s.Names(), want) {
		t.Errorf("Names() = %v, want %v", s.Names(), want)
	}
}
