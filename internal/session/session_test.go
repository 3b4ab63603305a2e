package session

import (
	"encoding/json"
	"testing"
)

func TestData_MergeDoesNotClobber(t *testing.T) {
	current := &Data{UserID: 7, Extra: map[string]string{"theme": "dark"}}
	stored := &Data{UserID: 9, UserName: "Ana", Extra: map[string]string{"theme": "light", "lang": "es"}}

	current.Merge(stored)

	if current.UserID != 7 {
		t.Fatalf("in-request user_id must win, got %d", current.UserID)
	}
	if current.UserName != "Ana" {
		t.Fatalf("unset fields must be populated, got %q", current.UserName)
	}
	if current.Extra["theme"] != "dark" {
		t.Fatalf("in-request extra keys must win, got %q", current.Extra["theme"])
	}
	if current.Extra["lang"] != "es" {
		t.Fatalf("stored extra keys must be merged, got %q", current.Extra["lang"])
	}
}

func TestData_MergeNil(t *testing.T) {
	d := &Data{UserID: 1}
	d.Merge(nil)
	if d.UserID != 1 {
		t.Fatalf("merge with nil must be a no-op")
	}
}

func TestData_JSONRoundTrip(t *testing.T) {
	original := &Data{UserID: 42, UserName: "Ana"}
	original.Set("last_page", "/stats")

	payload, err := json.Marshal(original)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	var restored Data
	if err := json.Unmarshal(payload, &restored); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if restored.UserID != 42 || restored.UserName != "Ana" {
		t.Fatalf("round trip lost identity: %+v", restored)
	}
	if v, ok := restored.Get("last_page"); !ok || v != "/stats" {
		t.Fatalf("round trip lost extra data: %+v", restored.Extra)
	}
}

func TestData_Clear(t *testing.T) {
	d := &Data{UserID: 42, UserName: "Ana", Extra: map[string]string{"k": "v"}}
	d.Clear()
	if d.LoggedIn() || d.UserName != "" || d.Extra != nil {
		t.Fatalf("clear left state behind: %+v", d)
	}
}

func TestNewToken(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		token, err := NewToken()
		if err != nil {
			t.Fatalf("NewToken: %v", err)
		}
		// 32 bytes → 43 chars of unpadded base64.
		if len(token) != 43 {
			t.Fatalf("unexpected token length %d", len(token))
		}
		if seen[token] {
			t.Fatalf("token collision: %s", token)
		}
		seen[token] = true
	}
}
