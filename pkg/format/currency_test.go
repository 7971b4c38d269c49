package format

import "testing"

func TestCurrency(t *testing.T) {
	tests := []struct {
		name     string
		amount   float64
		expected string
	}{
		{"Zero", 0, "$0"},
		{"Small amount", 58, "$58"},
		{"Thousands", 28818, "$28,818"},
		{"Millions", 1037448, "$1,037,448"},
		{"Negative", -2500, "-$2,500"},
		{"Rounds to whole units", 1234.6, "$1,235"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Currency(tt.amount); got != tt.expected {
				t.Errorf("Currency(%v) = %q, expected %q", tt.amount, got, tt.expected)
			}
		})
	}
}

func TestPercent(t *testing.T) {
	tests := []struct {
		rate     float64
		expected string
	}{
		{2.4, "2.40%"},
		{2.427665, "2.43%"},
		{0, "0.00%"},
	}

	for _, tt := range tests {
		if got := Percent(tt.rate); got != tt.expected {
			t.Errorf("Percent(%v) = %q, expected %q", tt.rate, got, tt.expected)
		}
	}
}

func TestNewFormatter(t *testing.T) {
	f, err := New("NT$", "en")
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if got := f.Currency(1500000); got != "NT$1,500,000" {
		t.Errorf("Currency() = %q, expected %q", got, "NT$1,500,000")
	}
	if f.Symbol() != "NT$" {
		t.Errorf("Symbol() = %q, expected NT$", f.Symbol())
	}

	f, err = New("€", "de")
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if got := f.Amount(1234567); got != "1.234.567" {
		t.Errorf("Amount() with de locale = %q, expected %q", got, "1.234.567")
	}

	f, err = New("$", "")
	if err != nil {
		t.Fatalf("New() with empty locale error = %v", err)
	}
	if got := f.Amount(1000); got != "1,000" {
		t.Errorf("Amount() with default locale = %q, expected %q", got, "1,000")
	}

	if _, err := New("$", "not a locale!"); err == nil {
		t.Error("Expected an error for an invalid locale")
	}
}
