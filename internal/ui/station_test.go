package ui

import (
	"testing"

	"github.com/ktnyt/labmon/internal/operator"
	"github.com/ktnyt/labmon/internal/state"
)

func TestButtonGating(t *testing.T) {
	tests := []struct {
		name       string
		spot       bool
		arm        state.Arm
		wantTake   bool
		wantPut    bool
		wantReboot bool
	}{
		{"idle empty arm, occupied spot", true, state.Arm{Status: "idle"}, true, false, true},
		{"idle empty arm, empty spot", false, state.Arm{Status: "idle"}, false, false, true},
		{"idle loaded arm, occupied spot", true, state.Arm{Status: "idle", Spot: true}, true, true, true},
		{"busy arm", true, state.Arm{Status: "busy", Spot: true}, false, false, false},
		{"unknown status", true, state.Arm{Status: "", Spot: true}, false, false, true},
		{"error status", true, state.Arm{Status: "arm already has a sample", Spot: true}, false, false, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := TakeEnabled(tt.spot, tt.arm); got != tt.wantTake {
				t.Fatalf("TakeEnabled = %v, want %v", got, tt.wantTake)
			}
			if got := PutEnabled(tt.arm); got != tt.wantPut {
				t.Fatalf("PutEnabled = %v, want %v", got, tt.wantPut)
			}
			if got := RebootEnabled(tt.arm); got != tt.wantReboot {
				t.Fatalf("RebootEnabled = %v, want %v", got, tt.wantReboot)
			}
		})
	}
}

func TestStationView_Operations(t *testing.T) {
	v := stationView{
		station: state.Station{Name: "station0", Index: 0, Valid: true, Spots: []bool{true, false}, Status: "idle"},
		arm:     state.Arm{Status: "idle", Spot: true},
	}

	op, ok := v.take(0)
	if !ok || op.String() != operator.Take(0, 0).String() {
		t.Fatalf("take(0) = %v, %v; want take station0/0 enabled", op, ok)
	}
	if _, ok := v.take(1); ok {
		t.Fatalf("take(1) enabled for an empty spot")
	}
	for spot := 0; spot < 2; spot++ {
		op, ok := v.put(spot)
		if !ok || op.String() != operator.Put(0, spot).String() {
			t.Fatalf("put(%d) = %v, %v; want enabled", spot, op, ok)
		}
	}
	if _, ok := v.take(2); ok {
		t.Fatalf("take(2) enabled for a spot the station does not have")
	}
	if _, ok := v.put(-1); ok {
		t.Fatalf("put(-1) enabled")
	}
}

func TestStationView_OperationsUseParsedIndex(t *testing.T) {
	v := stationView{
		station: state.Station{Name: "station12", Index: 12, Valid: true, Spots: []bool{true}},
		arm:     state.Arm{Status: "idle"},
	}
	op, ok := v.take(0)
	if !ok {
		t.Fatalf("take(0) disabled")
	}
	if op.Arg == nil || op.Arg.Station != 12 || op.Arg.Spot != 0 {
		t.Fatalf("take arg = %+v, want station 12 spot 0", op.Arg)
	}
}

func TestStationView_InvalidNameDisablesCommands(t *testing.T) {
	v := stationView{
		station: state.Station{Name: "stationX", Spots: []bool{true}},
		arm:     state.Arm{Status: "idle", Spot: true},
	}
	if _, ok := v.take(0); ok {
		t.Fatalf("take enabled on a station without an index")
	}
	if _, ok := v.put(0); ok {
		t.Fatalf("put enabled on a station without an index")
	}
}

func TestArmView_Reboot(t *testing.T) {
	if op, ok := (armView{arm: state.Arm{Status: "idle"}}).reboot(); !ok || op.String() != operator.Reboot().String() {
		t.Fatalf("reboot = %v, %v; want reboot enabled", op, ok)
	}
	if _, ok := (armView{arm: state.Arm{Status: "busy"}}).reboot(); ok {
		t.Fatalf("reboot enabled while busy")
	}
}

func TestLayoutCards_Wraps(t *testing.T) {
	cards := []string{"aaaa", "bbbb", "cccc"}
	got := layoutCards(cards, 9)
	want := "aaaabbbb\ncccc    "
	if got != want {
		t.Fatalf("layoutCards = %q, want %q", got, want)
	}
	if got := layoutCards(cards, 0); got != "aaaa\nbbbb\ncccc" {
		t.Fatalf("stacked layoutCards = %q", got)
	}
	if got := layoutCards(nil, 80); got != "" {
		t.Fatalf("layoutCards(nil) = %q, want empty", got)
	}
}
