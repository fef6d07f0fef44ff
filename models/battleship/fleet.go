package battleship

import "fmt"

// FleetValidator is consulted once per uploaded fleet before the
// game starts. The wire format has no way to report a rejection.
type FleetValidator interface {
	Validate(fleet Grid) error
}

type FleetValidatorFunc func(fleet Grid) error

func (f FleetValidatorFunc) Validate(fleet Grid) error {
	return f(fleet)
}

var _ FleetValidator = (FleetValidatorFunc)(nil)

// TrustAll accepts whatever layout the client sent.
var TrustAll FleetValidator = FleetValidatorFunc(func(Grid) error { return nil })

// ExactShipCells accepts a fleet only if it has exactly n ship cells.
func ExactShipCells(n int) FleetValidator {
	return FleetValidatorFunc(func(fleet Grid) error {
		if got := fleet.Count(CellShip); got != n {
			return fmt.Errorf("expected %d ship cells\tgot: %d", n, got)
		}
		return nil
	})
}
