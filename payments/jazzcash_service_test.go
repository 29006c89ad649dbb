package payments

import "testing"

func TestSanitizeWalletNumber(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{name: "local format", input: "03001234567", want: "923001234567"},
		{name: "local format with dashes", input: "0300-1234567", want: "923001234567"},
		{name: "missing leading zero", input: "3001234567", want: "923001234567"},
		{name: "international format", input: "923001234567", want: "923001234567"},
		{name: "plus prefix", input: "+92 300 1234567", want: "923001234567"},
		{name: "double zero prefix", input: "00923001234567", want: "923001234567"},
		{name: "too short", input: "0300123", wantErr: true},
		{name: "landline", input: "0211234567", wantErr: true},
		{name: "empty", input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := SanitizeWalletNumber(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Errorf("SanitizeWalletNumber(%q) = %q, want error", tt.input, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("SanitizeWalletNumber(%q) unexpected error: %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("SanitizeWalletNumber(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}
