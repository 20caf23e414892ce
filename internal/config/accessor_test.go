package config

import "testing"

// Every accessor id named by the table package must have a function
// behind it before the first dispatch.
func TestDispatchTables_Populated(t *testing.T) {
	for id, fn := range getters {
		if fn == nil {
			t.Errorf("getter %d is nil", id)
		}
	}
	for id, fn := range setters {
		if fn == nil {
			t.Errorf("setter %d is nil", id)
		}
	}
	for id, fn := range printers {
		if fn == nil {
			t.Errorf("printer %d is nil", id)
		}
	}
}
