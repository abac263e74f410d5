package slug

import "testing"

func TestGenerate(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "simple", input: "School Bus", want: "school-bus"},
		{name: "keeps digits and hyphens", input: "F-35 Fighter Jet", want: "f-35-fighter-jet"},
		{name: "ampersand", input: "Roads & Bridges", want: "roads-and-bridges"},
		{name: "punctuation", input: "Teacher's Salary (Annual)", want: "teachers-salary-annual"},
		{name: "surrounding whitespace", input: "  Eiffel Tower  ", want: "eiffel-tower"},
		{name: "tabs and newlines", input: "NASA\tBudget\nFY24", want: "nasa-budget-fy24"},
		{name: "dollar sign", input: "$1 Coffee", want: "1-coffee"},
		{name: "collapses hyphens", input: "a -- b", want: "a-b"},
		{name: "non-ascii dropped", input: "Café Latte", want: "caf-latte"},
		{name: "only symbols", input: "!!!", want: ""},
		{name: "empty", input: "", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Generate(tt.input); got != tt.want {
				t.Errorf("Generate(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestUnique(t *testing.T) {
	taken := map[string]bool{"school-bus": true, "school-bus-2": true}
	isTaken := func(s string) bool { return taken[s] }

	if got := Unique("ambulance", isTaken); got != "ambulance" {
		t.Errorf("free base: got %q", got)
	}
	if got := Unique("school-bus", isTaken); got != "school-bus-3" {
		t.Errorf("taken base: got %q, want %q", got, "school-bus-3")
	}
}
