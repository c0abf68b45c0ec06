package operator

import "strconv"

// Device names and status labels shared with the operator service.
const (
	ArmName       = "arm"
	StationPrefix = "station"

	StatusIdle = "idle"
	StatusBusy = "busy"
)

// Operation names accepted by POST /driver/arm/operation.
const (
	OpTake   = "take"
	OpPut    = "put"
	OpReboot = "reboot"
)

// SpotRef addresses one spot on one station.
type SpotRef struct {
	Station int `json:"station"`
	Spot    int `json:"spot"`
}

// Operation is a command for the arm. Arg is omitted for reboot.
type Operation struct {
	Name string   `json:"name"`
	Arg  *SpotRef `json:"arg,omitempty"`
}

// Take asks the arm to pick the sample at the given spot.
func Take(station StationID, spot int) Operation {
	return Operation{Name: OpTake, Arg: &SpotRef{Station: int(station), Spot: spot}}
}

// Put asks the arm to place its sample at the given spot.
func Put(station StationID, spot int) Operation {
	return Operation{Name: OpPut, Arg: &SpotRef{Station: int(station), Spot: spot}}
}

// Reboot resets the arm.
func Reboot() Operation {
	return Operation{Name: OpReboot}
}

// String renders the operation for logs.
func (o Operation) String() string {
	if o.Arg == nil {
		return o.Name
	}
	return o.Name + " " + StationName(StationID(o.Arg.Station)) + "/" + strconv.Itoa(o.Arg.Spot)
}
