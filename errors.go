package scrollview

import (
	"fmt"
	"reflect"
)

// CapabilityError reports that a cell template produced an object that does
// not implement the Cell capability the view requires. This is a structural
// configuration error: the view cannot proceed without valid cells, so the
// failing operation aborts during pool growth and nothing is retried.
type CapabilityError struct {
	// Template is the identifier of the cell template that was instantiated.
	Template string
	// Produced is the concrete type the template returned.
	Produced string
	// ItemType and ContextType name the type parameters of the expected
	// Cell capability.
	ItemType    string
	ContextType string
}

// Error implements the error interface.
func (e *CapabilityError) Error() string {
	return fmt.Sprintf("scrollview: cell template %q produced %s, which does not implement Cell[%s, %s]",
		e.Template, e.Produced, e.ItemType, e.ContextType)
}

// newCapabilityError builds a CapabilityError for the given template and the
// object it produced, naming the expected item and context types.
func newCapabilityError[TItemData, TContext any](template CellTemplate, produced any) *CapabilityError {
	return &CapabilityError{
		Template:    template.Name,
		Produced:    typeName(reflect.TypeOf(produced)),
		ItemType:    typeName(reflect.TypeOf((*TItemData)(nil)).Elem()),
		ContextType: typeName(reflect.TypeOf((*TContext)(nil)).Elem()),
	}
}

func typeName(t reflect.Type) string {
	if t == nil {
		return "<nil>"
	}
	return t.String()
}
