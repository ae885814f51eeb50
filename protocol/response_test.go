package protocol

import "testing"

func buildResponse(acceptKey, extra string) []byte {
	return []byte("HTTP/1.1 101 Switching Protocols\r\n" +
		"Upgrade: websocket\r\n" +
		"Connection: Upgrade\r\n" +
		"Sec-WebSocket-Accept: " + acceptKey + "\r\n" +
		extra +
		"\r\n")
}

func TestParseResponseValid(t *testing.T) {
	key := "s3pPLMBiTxaQ9kYGzzhZRbK+xOo="
	resp := buildResponse(key, "Sec-WebSocket-Protocol-Server: x-nanomsg-pair\r\n")
	var out ParsedResponse
	outcome := ParseResponse(resp, len(resp), []byte(key), &out)
	if outcome != Valid {
		t.Fatalf("expected Valid, got %v", outcome)
	}
	if string(out.ProtocolServer.Bytes(resp)) != "x-nanomsg-pair" {
		t.Fatalf("protocol server = %q", out.ProtocolServer.Bytes(resp))
	}
}

func TestParseResponseWrongStatusCode(t *testing.T) {
	resp := []byte("HTTP/1.1 400 Bad Request\r\nUpgrade: websocket\r\nConnection: Upgrade\r\n" +
		"Sec-WebSocket-Accept: abc\r\n\r\n")
	var out ParsedResponse
	outcome := ParseResponse(resp, len(resp), []byte("abc"), &out)
	if outcome != Invalid {
		t.Fatalf("expected Invalid, got %v", outcome)
	}
}

func TestParseResponseBadAcceptKey(t *testing.T) {
	resp := buildResponse("wrongkey==", "")
	var out ParsedResponse
	outcome := ParseResponse(resp, len(resp), []byte("s3pPLMBiTxaQ9kYGzzhZRbK+xOo="), &out)
	if outcome != Invalid {
		t.Fatalf("expected Invalid, got %v", outcome)
	}
}

func TestParseResponseAcceptKeyCaseInsensitive(t *testing.T) {
	key := "s3pPLMBiTxaQ9kYGzzhZRbK+xOo="
	upperKey := "S3PPLMBITXAQ9KYGZZHZRBK+XOO="
	resp := buildResponse(upperKey, "")
	var out ParsedResponse
	outcome := ParseResponse(resp, len(resp), []byte(key), &out)
	if outcome != Valid {
		t.Fatalf("expected Valid (case-insensitive accept key), got %v", outcome)
	}
}

func TestParseResponseMissingUpgrade(t *testing.T) {
	resp := []byte("HTTP/1.1 101 Switching Protocols\r\nConnection: Upgrade\r\n" +
		"Sec-WebSocket-Accept: abc\r\n\r\n")
	var out ParsedResponse
	outcome := ParseResponse(resp, len(resp), []byte("abc"), &out)
	if outcome != Invalid {
		t.Fatalf("expected Invalid for missing Upgrade, got %v", outcome)
	}
}

func TestParseResponseExtensionHeadersNotValidated(t *testing.T) {
	key := "s3pPLMBiTxaQ9kYGzzhZRbK+xOo="
	resp := buildResponse(key, "Sec-WebSocket-Version-Server: garbage-not-13\r\n")
	var out ParsedResponse
	outcome := ParseResponse(resp, len(resp), []byte(key), &out)
	if outcome != Valid {
		t.Fatalf("expected Valid despite nonsense extension header, got %v", outcome)
	}
	if string(out.VersionServer.Bytes(resp)) != "garbage-not-13" {
		t.Fatalf("version server = %q", out.VersionServer.Bytes(resp))
	}
}

func TestParseResponseIncompleteReturnsRecvMore(t *testing.T) {
	key := "s3pPLMBiTxaQ9kYGzzhZRbK+xOo="
	full := buildResponse(key, "")
	for n := 0; n < len(full)-4; n++ {
		var out ParsedResponse
		outcome := ParseResponse(full, n, []byte(key), &out)
		if outcome != RecvMore {
			t.Fatalf("prefix len=%d: expected RecvMore, got %v", n, outcome)
		}
		if out != (ParsedResponse{}) {
			t.Fatalf("prefix len=%d: RecvMore must not mutate out", n)
		}
	}
}
