package types

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
)

func TestLineAmount(t *testing.T) {
	tests := []struct {
		name string
		qty  Quantity
		rate Money
		want Money
	}{
		{"whole units", NewQuantityFromFloat64(100), MustMoney("50"), MustMoney("5000")},
		{"fractional qty", NewQuantityFromFloat64(2.5), MustMoney("10"), MustMoney("25")},
		{"fractional rate", NewQuantityFromFloat64(3), MustMoney("33.33"), MustMoney("99.99")},
		{"rounding half up", NewQuantityFromFloat64(0.0001), MustMoney("50"), Money(1)},
		{"zero qty", 0, MustMoney("50"), 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := LineAmount(tt.qty, tt.rate)
			if got != tt.want {
				t.Errorf("LineAmount(%v, %v) = %v, want %v", tt.qty, tt.rate, got, tt.want)
			}
		})
	}
}

func TestPercent(t *testing.T) {
	tests := []struct {
		name string
		m    Money
		rate string
		want Money
	}{
		{"gst 5 percent", MustMoney("5000"), "5", MustMoney("250")},
		{"gst 12.5 percent", MustMoney("100"), "12.5", MustMoney("12.50")},
		{"gst 18 percent with rounding", MustMoney("99.99"), "18", MustMoney("18.00")},
		{"zero rate", MustMoney("5000"), "0", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rate, err := decimal.NewFromString(tt.rate)
			if err != nil {
				t.Fatalf("parse rate: %v", err)
			}
			got := Percent(tt.m, rate)
			if got != tt.want {
				t.Errorf("Percent(%v, %s) = %v, want %v", tt.m, tt.rate, got, tt.want)
			}
		})
	}
}

func TestMoneyJSON(t *testing.T) {
	m := MustMoney("5250.75")

	data, err := json.Marshal(m)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(data) != "5250.75" {
		t.Errorf("marshal: got %s, want 5250.75", data)
	}

	var back Money
	if err := json.Unmarshal([]byte(`5250.75`), &back); err != nil {
		t.Fatalf("unmarshal number: %v", err)
	}
	if back != m {
		t.Errorf("unmarshal number: got %v, want %v", back, m)
	}

	if err := json.Unmarshal([]byte(`"5250.75"`), &back); err != nil {
		t.Fatalf("unmarshal string: %v", err)
	}
	if back != m {
		t.Errorf("unmarshal string: got %v, want %v", back, m)
	}
}

func TestMoneyString(t *testing.T) {
	if got := Money(-525).String(); got != "-5.25" {
		t.Errorf("negative: got %s", got)
	}
	if got := Money(5).String(); got != "0.05" {
		t.Errorf("sub-rupee: got %s", got)
	}
}
