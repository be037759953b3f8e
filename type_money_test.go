package stockfolio

import "testing"

func TestMoneyString(t *testing.T) {
	tests := []struct {
		value    string
		currency string
		want     string
	}{
		{"1520", "USD", "$1,520.00"},
		{"1520.5", "USD", "$1,520.50"},
		{"0", "USD", "$0.00"},
		{"-480", "USD", "-$480.00"},
		{"1520", "EUR", "€1.520,00"},
	}
	for _, tc := range tests {
		t.Run(tc.currency+" "+tc.value, func(t *testing.T) {
			if got := M(d(tc.value), tc.currency).String(); got != tc.want {
				t.Errorf("M(%s, %s) = %q, want %q", tc.value, tc.currency, got, tc.want)
			}
		})
	}
}

func TestMoneyAccessors(t *testing.T) {
	m := M(d("99.5"), "USD")
	if m.Currency() != "USD" {
		t.Errorf("Currency = %q", m.Currency())
	}
	if !m.Decimal().Equal(d("99.5")) {
		t.Errorf("Decimal = %s", m.Decimal())
	}
}
