package browser

import "testing"

func TestToFloat(t *testing.T) {
	tests := []struct {
		name string
		in   interface{}
		want float64
	}{
		{"float64", 12.5, 12.5},
		{"int", 7, 7},
		{"int64", int64(3), 3},
		{"string", "12", 0},
		{"nil", nil, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := toFloat(tt.in); got != tt.want {
				t.Errorf("toFloat(%v) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestGetString(t *testing.T) {
	if got := getString("DIV"); got != "DIV" {
		t.Errorf("getString = %q", got)
	}
	if got := getString(nil); got != "" {
		t.Errorf("getString(nil) = %q, want empty", got)
	}
}

func TestIsClosedError(t *testing.T) {
	if !isClosedError(errString("target closed")) {
		t.Error("expected target closed to be recognized")
	}
	if isClosedError(errString("timeout")) {
		t.Error("timeout is not a closed error")
	}
}

type errString string

func (e errString) Error() string { return string(e) }
