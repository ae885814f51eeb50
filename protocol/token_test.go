package protocol

import "testing"

func TestMatchTokenExact(t *testing.T) {
	buf := []byte("GET /chat HTTP/1.1\r\n")
	pos, ok := matchToken(buf, len(buf), 0, "GET ", false, false)
	if !ok || pos != len("GET ") {
		t.Fatalf("matchToken GET: pos=%d ok=%v", pos, ok)
	}
}

func TestMatchTokenCaseInsensitive(t *testing.T) {
	buf := []byte("upgrade")
	pos, ok := matchToken(buf, len(buf), 0, "Upgrade", true, false)
	if !ok || pos != len(buf) {
		t.Fatalf("case-insensitive match failed: pos=%d ok=%v", pos, ok)
	}
}

func TestMatchTokenSkipLeadingSP(t *testing.T) {
	buf := []byte(" Upgrade")
	pos, ok := matchToken(buf, len(buf), 0, "Upgrade", false, true)
	if !ok || pos != len(buf) {
		t.Fatalf("skip-leading-sp match failed: pos=%d ok=%v", pos, ok)
	}
}

func TestMatchTokenNoMatchLeavesCursor(t *testing.T) {
	buf := []byte("POST /chat HTTP/1.1\r\n")
	pos, ok := matchToken(buf, len(buf), 0, "GET ", false, false)
	if ok || pos != 0 {
		t.Fatalf("expected NOMATCH with unchanged cursor, got pos=%d ok=%v", pos, ok)
	}
}

func TestMatchTokenRunsPastLimit(t *testing.T) {
	buf := []byte("GET")
	pos, ok := matchToken(buf, len(buf), 0, "GET /", false, false)
	if ok || pos != 0 {
		t.Fatalf("running past limit before token exhausted must be NOMATCH, got pos=%d ok=%v", pos, ok)
	}
}
