package menu

import (
	"fmt"

	"github.com/btn0s/prototype-playground/backbone"
)

// Bindings names the inputs that drive a menu. Names are resolved by
// backbone.Normalizer.OnInput: button names bind their Press event, stick
// directions such as "LeftDown" bind the direction.
type Bindings struct {
	Select []string
	Next   []string
	Prev   []string
}

// DefaultBindings selects with A and moves with the D-pad or the left stick.
var DefaultBindings = Bindings{
	Select: []string{"A"},
	Next:   []string{"DPadDown", "LeftDown"},
	Prev:   []string{"DPadUp", "LeftUp"},
}

// Bind registers m's actions on n. Binding again replaces the previous
// registrations for the same inputs.
func Bind(n *backbone.Normalizer, m *Menu, b Bindings) error {
	groups := []struct {
		names []string
		cb    backbone.Callback
	}{
		{b.Select, m.Select},
		{b.Next, m.Next},
		{b.Prev, m.Prev},
	}
	for _, g := range groups {
		for _, name := range g.names {
			if err := n.OnInput(name, backbone.Press, g.cb); err != nil {
				return fmt.Errorf("bind menu: %w", err)
			}
		}
	}
	return nil
}
