// Package pinout resolves symbolic pin aliases in board pinout data. Pin
// definitions may reference other pins by name; chains are followed
// recursively with an explicit visited set so that a cyclic definition
// fails instead of recursing forever.
package pinout

import (
	"fmt"

	esperrors "github.com/mrekin/webesptool/pkg/esp/errors"
)

// Pin is one entry of a board pinout. Either Number is meaningful or Alias
// names another pin to borrow the definition from.
type Pin struct {
	Number int    `json:"number"`
	Alias  string `json:"alias,omitempty"`
	Role   string `json:"role,omitempty"`
}

// Pinout maps pin names to definitions.
type Pinout map[string]Pin

// Resolve follows the alias chain starting at name and returns the final
// concrete pin. A missing name fails with ErrPinNotFound, a cyclic chain
// with ErrAliasCycle naming the pin that closed the cycle.
func (p Pinout) Resolve(name string) (Pin, error) {
	return p.resolve(name, map[string]bool{})
}

func (p Pinout) resolve(name string, visited map[string]bool) (Pin, error) {
	if visited[name] {
		return Pin{}, fmt.Errorf("%w: %q", esperrors.ErrAliasCycle, name)
	}
	visited[name] = true

	pin, ok := p[name]
	if !ok {
		return Pin{}, fmt.Errorf("%w: %q", esperrors.ErrPinNotFound, name)
	}
	if pin.Alias == "" {
		return pin, nil
	}

	resolved, err := p.resolve(pin.Alias, visited)
	if err != nil {
		return Pin{}, err
	}
	// The alias borrows the target's number but keeps its own role when set.
	if pin.Role != "" {
		resolved.Role = pin.Role
	}
	return resolved, nil
}
