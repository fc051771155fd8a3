package races

import "testing"

func TestClassifier_Tracked(t *testing.T) {
	cls := NewClassifier(nil, nil)

	tests := []struct {
		title string
		want  bool
	}{
		{"President and Vice President", true},
		{"PRESIDENT AND VICE PRESIDENT", true},
		{"Governor/Lieutenant Governor", true},
		{"U.S. Senator", true},
		{"US Senator", true},
		{"United States Senator", true},
		{"U.S. Rep. Dist. 3", true},
		{"United States Representative District 1", true},
		{"State Senator District 22", true},
		{"State Representative District 44", true},
		{"Supreme Court Judge Susan Christensen", false},
		{"Shall the following amendment be adopted?", false},
		{"County Auditor", false},
		{"", false},
	}

	for _, tt := range tests {
		if got := cls.Tracked(tt.title); got != tt.want {
			t.Errorf("Tracked(%q) = %v, want %v", tt.title, got, tt.want)
		}
	}
}

func TestClassifier_Statewide(t *testing.T) {
	cls := NewClassifier(nil, nil)

	tests := []struct {
		title string
		want  bool
	}{
		{"President and Vice President", true},
		{"Governor", true},
		{"U.S. Senator", true},
		{"United States Senator", true},
		{"U.S. Rep. Dist. 3", false},
		{"State Senator District 22", false},
	}

	for _, tt := range tests {
		if got := cls.Statewide(tt.title); got != tt.want {
			t.Errorf("Statewide(%q) = %v, want %v", tt.title, got, tt.want)
		}
	}
}

func TestClassifier_CustomKeywords(t *testing.T) {
	cls := NewClassifier([]string{"Mayor"}, []string{"Mayor"})

	if !cls.Tracked("Mayor of Des Moines") {
		t.Error("Tracked() = false for custom keyword")
	}
	if cls.Tracked("Governor") {
		t.Error("Tracked() = true for race outside custom keyword set")
	}
}
