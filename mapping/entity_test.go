package mapping

import "testing"

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		want EntityType
	}{
		{"P04637", EntityProtein},
		{"TP53", EntityProtein},
		{"MIMAT0000062", EntityMirna},
		{"COMPLEX:P04637_P62993", EntityComplex},
		{"  COMPLEX:A_B  ", EntityComplex},
		{"", EntityProtein},
		{"some unknown form", EntityProtein},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Classify(tt.name); got != tt.want {
				t.Errorf("Classify(%q) = %v, want %v", tt.name, got, tt.want)
			}
		})
	}
}

func TestComplexComponents(t *testing.T) {
	tests := []struct {
		id   string
		want []string
	}{
		{"COMPLEX:P04637_P62993", []string{"P04637", "P62993"}},
		{"COMPLEX:A", []string{"A"}},
		{"COMPLEX:", nil},
		{"P04637", nil},
	}

	for _, tt := range tests {
		t.Run(tt.id, func(t *testing.T) {
			got := ComplexComponents(tt.id)
			if len(got) != len(tt.want) {
				t.Fatalf("ComplexComponents(%q) = %v, want %v", tt.id, got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("component[%d] = %q, want %q", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestComplexID(t *testing.T) {
	// components are sorted so equal sets yield equal identifiers
	a := ComplexID([]string{"P62993", "P04637"})
	b := ComplexID([]string{"P04637", "P62993"})
	if a != b {
		t.Errorf("ComplexID not canonical: %q != %q", a, b)
	}
	if a != "COMPLEX:P04637_P62993" {
		t.Errorf("ComplexID = %q, want COMPLEX:P04637_P62993", a)
	}
}

func TestNewEntityKey(t *testing.T) {
	k := NewEntityKey("  MIMAT0000062 ", "MIR-MAT", 9606)
	if k.ID != "MIMAT0000062" {
		t.Errorf("ID = %q, want trimmed", k.ID)
	}
	if k.IDType != "mir-mat" {
		t.Errorf("IDType = %q, want lowercased", k.IDType)
	}
	if k.Entity != EntityMirna {
		t.Errorf("Entity = %v, want EntityMirna", k.Entity)
	}

	// comparable: usable as a map key
	seen := map[EntityKey]bool{k: true}
	if !seen[NewEntityKey("MIMAT0000062", "mir-mat", 9606)] {
		t.Error("equal keys should hash equal")
	}
}

func TestValidUniprot(t *testing.T) {
	tests := []struct {
		id   string
		want bool
	}{
		{"P04637", true},
		{"Q4VBY6", true},
		{"A0A024R1R8", true},
		{"TP53", false},
		{"P0463", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.id, func(t *testing.T) {
			if got := ValidUniprot(tt.id); got != tt.want {
				t.Errorf("ValidUniprot(%q) = %v, want %v", tt.id, got, tt.want)
			}
		})
	}
}
