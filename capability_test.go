package mealplan

import (
	"testing"

	"github.com/poiesic/mealplan/storage/directory"
)

func TestDetectDirectoryAccess(t *testing.T) {
	var nilLocal *directory.LocalAccess

	tests := []struct {
		name string
		host any
		want bool
	}{
		{name: "no host", host: nil, want: false},
		{name: "unrelated host", host: struct{}{}, want: false},
		{name: "string host", host: "browser", want: false},
		{name: "nil pointer", host: nilLocal, want: false},
		{name: "local filesystem", host: &directory.LocalAccess{}, want: true},
		{name: "custom host", host: &testHost{}, want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			access, got := DetectDirectoryAccess(tt.host)
			if got != tt.want {
				t.Errorf("DetectDirectoryAccess() = %v, want %v", got, tt.want)
			}
			if got && access == nil {
				t.Error("DetectDirectoryAccess() returned nil access with ok = true")
			}
		})
	}
}
