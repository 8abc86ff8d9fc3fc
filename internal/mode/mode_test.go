package mode

import "testing"

func TestResult_WithArguments(t *testing.T) {
	tests := []struct {
		name  string
		query string
		want  string
	}{
		{"no query", "", "ls"},
		{"match key only", "l", "ls"},
		{"one argument", "l -la", "ls -la"},
		{"several arguments", "l  -l   -a /tmp", "ls -l -a /tmp"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := Result{Display: "ls", Context: 3}
			got := r.WithArguments(tt.query)
			if got.Display != tt.want {
				t.Fatalf("Display = %q, want %q", got.Display, tt.want)
			}
			if got.Context != 3 {
				t.Fatalf("Context should be preserved, got %d", got.Context)
			}
			if r.Display != "ls" {
				t.Fatal("WithArguments must not modify the receiver")
			}
		})
	}
}

func TestOutcomeString(t *testing.T) {
	cases := map[Outcome]string{
		CloseSuccess: "close-success",
		CloseFailure: "close-failure",
		Continue:     "continue",
		Outcome(7):   "Outcome(7)",
	}
	for o, want := range cases {
		if got := o.String(); got != want {
			t.Errorf("Outcome(%d).String() = %q, want %q", int(o), got, want)
		}
	}
}
