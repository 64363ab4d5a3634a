package base

import "testing"

func TestRecord_SameRecord(t *testing.T) {
	cases := []struct {
		name string
		a, b Record
		want bool
	}{
		{"same id", Record{ID: 7}, Record{ID: 7, Deleted: true}, true},
		{"different id", Record{ID: 7}, Record{ID: 8}, false},
		{"both new", Record{}, Record{}, false},
	}

	for _, tc := range cases {
		if got := tc.a.SameRecord(tc.b); got != tc.want {
			t.Fatalf("%s: expected %v, got %v", tc.name, tc.want, got)
		}
	}
}

func TestRecord_IsNew(t *testing.T) {
	if !(Record{}).IsNew() {
		t.Fatalf("expected zero record to be new")
	}
	if (Record{ID: 1}).IsNew() {
		t.Fatalf("expected persisted record not to be new")
	}
}
