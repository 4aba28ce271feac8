package domain

import "testing"

func TestParseTaskIDFromURI(t *testing.T) {
	tests := []struct {
		name    string
		uri     string
		wantID  int
		wantErr bool
	}{
		{name: "valid", uri: "task://42", wantID: 42},
		{name: "wrong scheme", uri: "project://42", wantErr: true},
		{name: "missing id", uri: "task://", wantErr: true},
		{name: "placeholder underscore", uri: "task://_", wantErr: true},
		{name: "unexpanded template", uri: "task://{task_id}", wantErr: true},
		{name: "non numeric", uri: "task://abc", wantErr: true},
		{name: "zero", uri: "task://0", wantErr: true},
		{name: "negative", uri: "task://-3", wantErr: true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			id, err := parseTaskIDFromURI(tc.uri)
			if tc.wantErr {
				if err == nil {
					t.Fatalf("expected error for %q", tc.uri)
				}
				return
			}
			if err != nil {
				t.Fatalf("parseTaskIDFromURI(%q): %v", tc.uri, err)
			}
			if id != tc.wantID {
				t.Errorf("expected id %d, got %d", tc.wantID, id)
			}
		})
	}
}
