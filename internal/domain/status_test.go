package domain

import (
	"errors"
	"testing"
)

func TestStatus_IsValid(t *testing.T) {
	t.Parallel()

	for _, s := range AllStatuses {
		if !s.IsValid() {
			t.Errorf("status %q should be valid", s)
		}
	}
	if Status("banana").IsValid() {
		t.Error("unknown status should be invalid")
	}
	if Status("").IsValid() {
		t.Error("empty status should be invalid")
	}
}

func TestParseStatus(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		in      string
		want    Status
		wantErr bool
	}{
		{name: "exact", in: "Do", want: StatusDo},
		{name: "lowercase", in: "someday", want: StatusSomeday},
		{name: "uppercase", in: "WAITING", want: StatusWaiting},
		{name: "surrounding space", in: "  Done ", want: StatusDone},
		{name: "empty", in: "", wantErr: true},
		{name: "unknown", in: "Later", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := ParseStatus(tt.in)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("ParseStatus(%q) expected error, got %q", tt.in, got)
				}
				if !errors.Is(err, ErrValidation) {
					t.Fatalf("ParseStatus(%q) error should wrap ErrValidation, got %v", tt.in, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseStatus(%q): %v", tt.in, err)
			}
			if got != tt.want {
				t.Fatalf("ParseStatus(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestInboxItem_Claimable(t *testing.T) {
	t.Parallel()

	item := InboxItem{ID: "p1"}
	if !item.Claimable() {
		t.Fatal("item with no marker and no processed time should be claimable")
	}

	item.ProcessedMarker = "processing"
	if item.Claimable() {
		t.Fatal("item with a marker should not be claimable")
	}
}
