package results

import "testing"

func TestStageOf(t *testing.T) {
	tests := []struct {
		status StatusLabel
		stage  int
	}{
		{StatusPlaced, 0},
		{StatusShipped, 1},
		{StatusOutForDelivery, 2},
		{StatusDelivered, 3},
		{StatusCancelled, 0},
		{"Return Requested", 0},
		{"shipped", 0},
		{"", 0},
	}
	for _, tt := range tests {
		if got := StageOf(tt.status); got != tt.stage {
			t.Fatalf("StageOf(%q) = %d, want %d", tt.status, got, tt.stage)
		}
	}
}

func TestFractionOf(t *testing.T) {
	if got := FractionOf(StageOf(StatusShipped)); got != 1.0/3.0 {
		t.Fatalf("expected exactly 1/3, got %v", got)
	}
	if got := FractionOf(0); got != 0 {
		t.Fatalf("expected 0, got %v", got)
	}
	if got := FractionOf(3); got != 1 {
		t.Fatalf("expected 1, got %v", got)
	}
	if got := FractionOf(-2); got != 0 {
		t.Fatalf("expected clamp to 0, got %v", got)
	}
	if got := FractionOf(9); got != 1 {
		t.Fatalf("expected clamp to 1, got %v", got)
	}
}

func TestTerminalStatuses(t *testing.T) {
	if !StatusDelivered.IsTerminal() || !StatusCancelled.IsTerminal() {
		t.Fatalf("expected delivered and cancelled to be terminal")
	}
	for _, s := range []StatusLabel{StatusPlaced, StatusShipped, StatusOutForDelivery, "Return Requested"} {
		if s.IsTerminal() {
			t.Fatalf("did not expect %q to be terminal", s)
		}
	}
}
