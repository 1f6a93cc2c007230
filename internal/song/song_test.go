package song

import (
	"errors"
	"testing"
)

func TestValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		song    Song
		wantErr bool
		missing string
	}{
		{
			name: "valid song",
			song: Song{Title: "A", Order: []string{"V1", "C", "V1"}, Parts: map[string]string{"V1": "x", "C": "y"}},
		},
		{
			name:    "empty title",
			song:    Song{Title: "  ", Order: []string{"V1"}, Parts: map[string]string{"V1": "x"}},
			wantErr: true,
		},
		{
			name:    "empty order",
			song:    Song{Title: "A", Parts: map[string]string{"V1": "x"}},
			wantErr: true,
		},
		{
			name:    "tag with space in parts",
			song:    Song{Title: "A", Order: []string{"V1"}, Parts: map[string]string{"V1": "x", "V 2": "y"}},
			wantErr: true,
		},
		{
			name:    "order references missing part",
			song:    Song{ID: 9, Title: "A", Order: []string{"V1", "B"}, Parts: map[string]string{"V1": "x"}},
			wantErr: true,
			missing: "B",
		},
		{
			name: "unused part is allowed",
			song: Song{Title: "A", Order: []string{"V1"}, Parts: map[string]string{"V1": "x", "E": "y"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := tt.song.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, ErrInvalid) {
				t.Errorf("error %v should wrap ErrInvalid", err)
			}
			if tt.missing != "" {
				var mpe *MissingPartError
				if !errors.As(err, &mpe) {
					t.Fatalf("expected MissingPartError, got %T", err)
				}
				if mpe.Tag != tt.missing || mpe.SongID != tt.song.ID {
					t.Errorf("MissingPartError = %+v", mpe)
				}
			}
		})
	}
}

func TestParseAndFormatOrder(t *testing.T) {
	t.Parallel()

	tags := ParseOrder("  V1 C\tV2  C ")
	want := []string{"V1", "C", "V2", "C"}
	if len(tags) != len(want) {
		t.Fatalf("ParseOrder len = %d, want %d", len(tags), len(want))
	}
	for i := range want {
		if tags[i] != want[i] {
			t.Errorf("tag %d = %q, want %q", i, tags[i], want[i])
		}
	}

	if got := FormatOrder(tags); got != "V1 C V2 C" {
		t.Errorf("FormatOrder = %q", got)
	}
	if got := ParseOrder(""); len(got) != 0 {
		t.Errorf("ParseOrder(\"\") = %v, want empty", got)
	}
}
