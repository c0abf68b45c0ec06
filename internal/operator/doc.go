// Package operator provides an HTTP client for the operator service that
// fronts the arm and station drivers.
//
// # Endpoints
//
//   - GET  /driver                   device names
//   - GET  /driver/{name}/state      []bool for stations, bool for the arm
//   - GET  /driver/{name}/status     free-form status label
//   - POST /driver/arm/operation     {"name": ..., "arg": {"station": n, "spot": m}}
//
// Request bodies are encoded and response bodies decoded as JSON text
// explicitly; the client does not trust the Content-Type the operator sends.
//
// # Device names
//
// Stations are the devices whose name starts with "station". The remainder is
// the station index used in take/put arguments:
//
//	id, err := operator.ParseStation("station2") // id == 2
//	_, err = operator.ParseStation("arm")        // errors.Is(err, operator.ErrNotStation)
//
// # Usage
//
//	client, err := operator.NewClient(operator.Config{BaseAddress: "http://localhost:5000"})
//	if err != nil {
//		return err
//	}
//	names, err := client.Devices(ctx)
//	...
//	err = client.Dispatch(ctx, operator.Take(0, 1))
package operator
