package normalize

import (
	"reflect"
	"testing"
)

func TestLast4(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []string
	}{
		{"x groups with spaces", "Card Number: XXXX XXXX XXXX 1234", []string{"1234"}},
		{"asterisk run", "4532********9910 primary card", []string{"9910"}},
		{"dash separated", "5239-XXXX-XXXX-0921", []string{"0921"}},
		{"ending phrasing", "card ending 4421 was charged", []string{"4421"}},
		{"ending in phrasing", "card ending in 4421", []string{"4421"}},
		{"multiple cards", "XXXX XXXX XXXX 1234 and addon XXXX XXXX XXXX 5678", []string{"1234", "5678"}},
		{"document order across shapes", "card ending 4421 then addon XXXX XXXX XXXX 1234", []string{"4421", "1234"}},
		{"duplicate collapses", "XXXX XXXX XXXX 1234 ... XXXX XXXX XXXX 1234", []string{"1234"}},
		{"same digits across shapes collapse", "XXXX XXXX XXXX 1234 card ending 1234", []string{"1234"}},
		{"no masked shapes", "Total Amount Due 1,234.50", nil},
		{"bare digits not a card", "invoice 1234 reference 5678", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Last4(tt.input)
			if !reflect.DeepEqual(got, tt.expected) {
				t.Errorf("Last4(%q) = %v, want %v", tt.input, got, tt.expected)
			}
		})
	}
}
