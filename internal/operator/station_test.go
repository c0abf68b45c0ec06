package operator

import (
	"errors"
	"reflect"
	"testing"
)

func TestParseStation(t *testing.T) {
	cases := []struct {
		name    string
		in      string
		want    StationID
		wantErr bool
	}{
		{"zero", "station0", 0, false},
		{"single digit", "station7", 7, false},
		{"multi digit", "station12", 12, false},
		{"leading zero", "station03", 3, false},
		{"arm", "arm", 0, true},
		{"prefix only", "station", 0, true},
		{"negative", "station-1", 0, true},
		{"plus sign", "station+1", 0, true},
		{"trailing junk", "station1a", 0, true},
		{"wrong case", "Station1", 0, true},
		{"empty", "", 0, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ParseStation(tc.in)
			if tc.wantErr {
				if !errors.Is(err, ErrNotStation) {
					t.Fatalf("ParseStation(%q) error = %v, want ErrNotStation", tc.in, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseStation(%q) returned error: %v", tc.in, err)
			}
			if got != tc.want {
				t.Fatalf("ParseStation(%q) = %d, want %d", tc.in, got, tc.want)
			}
		})
	}
}

func TestParseStation_RoundTripsStationName(t *testing.T) {
	for i := 0; i < 50; i++ {
		got, err := ParseStation(StationName(StationID(i)))
		if err != nil {
			t.Fatalf("ParseStation(StationName(%d)) returned error: %v", i, err)
		}
		if int(got) != i {
			t.Fatalf("ParseStation(StationName(%d)) = %d", i, got)
		}
	}
}

func TestFilterStations_PreservesOrder(t *testing.T) {
	got := FilterStations([]string{"arm", "station0", "station1", "other"})
	want := []string{"station0", "station1"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("FilterStations = %v, want %v", got, want)
	}

	got = FilterStations([]string{"station2", "arm", "station10", "station1"})
	want = []string{"station2", "station10", "station1"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("FilterStations = %v, want %v", got, want)
	}

	if got := FilterStations(nil); len(got) != 0 {
		t.Fatalf("FilterStations(nil) = %v, want empty", got)
	}
}

func TestOperationConstructors(t *testing.T) {
	take := Take(2, 1)
	if take.Name != OpTake || take.Arg == nil || take.Arg.Station != 2 || take.Arg.Spot != 1 {
		t.Fatalf("Take(2, 1) = %+v", take)
	}
	put := Put(0, 3)
	if put.Name != OpPut || put.Arg == nil || put.Arg.Station != 0 || put.Arg.Spot != 3 {
		t.Fatalf("Put(0, 3) = %+v", put)
	}
	if r := Reboot(); r.Name != OpReboot || r.Arg != nil {
		t.Fatalf("Reboot() = %+v", r)
	}
	if got := take.String(); got != "take station2/1" {
		t.Fatalf("String() = %q, want %q", got, "take station2/1")
	}
	if got := Reboot().String(); got != "reboot" {
		t.Fatalf("String() = %q, want reboot", got)
	}
}
