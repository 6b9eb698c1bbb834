package main

import "testing"

func TestParseFormat(t *testing.T) {
	if _, err := parseFormat("RGB8"); err != nil {
		t.Fatalf("parseFormat(RGB8): %v", err)
	}
	if _, err := parseFormat("nonsense"); err == nil {
		t.Fatal("expected an error for an unrecognized format")
	}
}

func TestParseProfile(t *testing.T) {
	tests := []struct {
		in      string
		wantErr bool
	}{
		{"Light", false},
		{"main", false},
		{"HIGH", true},
		{"bogus", true},
	}
	for _, tt := range tests {
		_, err := parseProfile(tt.in)
		if (err != nil) != tt.wantErr {
			t.Fatalf("parseProfile(%q): err=%v, wantErr=%v", tt.in, err, tt.wantErr)
		}
	}
}
