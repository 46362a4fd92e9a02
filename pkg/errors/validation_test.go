package errors

import (
	"testing"
)

func TestValidateStageName(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"single word", "rooms", false},
		{"dashed", "purge-rooms", false},
		{"three parts", "rasterize-all-tiles", false},

		{"empty", "", true},
		{"too long", string(make([]byte, 100)), true},
		{"uppercase", "Purge-Rooms", true},
		{"trailing dash", "purge-", true},
		{"double dash", "purge--rooms", true},
		{"underscore", "purge_rooms", true},
		{"space", "purge rooms", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateStageName(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateStageName(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeInvalidStage) {
				t.Errorf("ValidateStageName(%q) code = %v, want %v", tt.input, GetCode(err), ErrCodeInvalidStage)
			}
		})
	}
}

func TestValidatePoint(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"integers", "3,4", false},
		{"spaces", " 3 , 4 ", false},
		{"negative", "-1,2", false},
		{"floats", "1.5,2.5", false},

		{"empty", "", true},
		{"one value", "3", true},
		{"three values", "1,2,3", true},
		{"letters", "a,b", true},
		{"semicolon", "1;2", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePoint(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidatePoint(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}

func TestValidatePath(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"relative", "dungeon.toml", false},
		{"nested", "out/rooms.svg", false},
		{"absolute", "/tmp/rooms.dot", false},

		{"empty", "", true},
		{"too long", string(make([]byte, 600)), true},
		{"null byte", "foo\x00bar", true},
		{"newline", "foo\nbar", true},
		{"leading space", " foo.toml", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePath(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidatePath(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}
