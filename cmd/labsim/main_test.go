package main

import (
	"reflect"
	"testing"
)

func TestParseSpots(t *testing.T) {
	tests := []struct {
		in      string
		want    []int
		wantErr bool
	}{
		{"2,1,1", []int{2, 1, 1}, false},
		{" 3 , 0 ", []int{3, 0}, false},
		{"4,", []int{4}, false},
		{"", nil, true},
		{"2,x", nil, true},
		{"-1", nil, true},
	}

	for _, tt := range tests {
		got, err := parseSpots(tt.in)
		if (err != nil) != tt.wantErr {
			t.Fatalf("parseSpots(%q) err = %v, wantErr %v", tt.in, err, tt.wantErr)
		}
		if !reflect.DeepEqual(got, tt.want) {
			t.Fatalf("parseSpots(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
