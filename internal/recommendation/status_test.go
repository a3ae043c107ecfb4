package recommendation

import "testing"

func TestParseReadStatus(t *testing.T) {
	cases := []struct {
		name string
		raw  string
		want ReadStatus
	}{
		{name: "enum_read", raw: "READ", want: StatusRead},
		{name: "display_read", raw: "Read", want: StatusRead},
		{name: "enum_reading", raw: "reading", want: StatusReading},
		{name: "display_in_progress", raw: "In Progress", want: StatusReading},
		{name: "enum_want", raw: "WANT_TO_READ", want: StatusWantToRead},
		{name: "display_want", raw: "Want to Read", want: StatusWantToRead},
		{name: "padded", raw: "  read  ", want: StatusRead},
		{name: "garbage", raw: "finished???", want: StatusUnknown},
		{name: "empty", raw: "", want: StatusUnknown},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := ParseReadStatus(tc.raw)
			if got != tc.want {
				t.Fatalf("ParseReadStatus(%q)=%v, want %v", tc.raw, got, tc.want)
			}
		})
	}
}

func TestParseFeedbackKind(t *testing.T) {
	cases := []struct {
		name    string
		raw     string
		want    FeedbackKind
		wantErr bool
	}{
		{name: "up_lower", raw: "up", want: FeedbackUp},
		{name: "down_upper", raw: "DOWN", want: FeedbackDown},
		{name: "padded", raw: "  Up ", want: FeedbackUp},
		{name: "maybe", raw: "maybe", wantErr: true},
		{name: "empty", raw: "", wantErr: true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ParseFeedbackKind(tc.raw)
			if tc.wantErr {
				if err == nil {
					t.Fatalf("ParseFeedbackKind(%q) expected error, got %q", tc.raw, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseFeedbackKind(%q) unexpected error: %v", tc.raw, err)
			}
			if got != tc.want {
				t.Fatalf("ParseFeedbackKind(%q)=%q, want %q", tc.raw, got, tc.want)
			}
		})
	}
}
