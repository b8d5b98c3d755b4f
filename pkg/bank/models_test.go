package bank

import (
	"encoding/json"
	"testing"
	"time"
)

func TestTimestamp_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    time.Time
		wantErr bool
	}{
		{"rfc3339", `"2025-03-01T10:15:30Z"`, time.Date(2025, 3, 1, 10, 15, 30, 0, time.UTC), false},
		{"local date time", `"2025-03-01T10:15:30"`, time.Date(2025, 3, 1, 10, 15, 30, 0, time.UTC), false},
		{"local with fraction", `"2025-03-01T10:15:30.123456"`, time.Date(2025, 3, 1, 10, 15, 30, 123456000, time.UTC), false},
		{"null", `null`, time.Time{}, false},
		{"empty", `""`, time.Time{}, false},
		{"garbage", `"yesterday"`, time.Time{}, true},
		{"number", `12345`, time.Time{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var ts Timestamp
			err := json.Unmarshal([]byte(tt.in), &ts)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !ts.Equal(tt.want) {
				t.Errorf("got %v, want %v", ts.Time, tt.want)
			}
		})
	}
}

func TestAccount_Decode(t *testing.T) {
	payload := `{
		"accountNumber": "ACC1000000001",
		"customerId": 8,
		"customerName": "Hamdy Anmu",
		"accountType": "SAVINGS",
		"status": "ACTIVE",
		"balance": 150.5,
		"createdDate": "2025-06-01T09:00:00"
	}`

	var a Account
	if err := json.Unmarshal([]byte(payload), &a); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if a.AccountNumber != "ACC1000000001" || a.CustomerID != 8 {
		t.Errorf("unexpected account: %+v", a)
	}
	if a.Balance.String() != "150.5" {
		t.Errorf("balance = %s", a.Balance)
	}
	if a.IsClosed() {
		t.Error("account should be active")
	}
}
