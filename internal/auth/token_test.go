package auth

import (
	"testing"
	"time"
)

func TestSessionTokenRoundTrip(t *testing.T) {
	token, err := SignSessionToken("01SESSIONID", "secret", time.Hour)
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	sid, err := ParseSessionToken(token, "secret")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if sid != "01SESSIONID" {
		t.Fatalf("expected session id back, got %q", sid)
	}
}

func TestSessionTokenWrongSecret(t *testing.T) {
	token, err := SignSessionToken("01SESSIONID", "secret", time.Hour)
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	if _, err := ParseSessionToken(token, "other-secret"); err == nil {
		t.Fatalf("expected verification failure with the wrong secret")
	}
}

func TestSessionTokenExpired(t *testing.T) {
	token, err := SignSessionToken("01SESSIONID", "secret", -time.Minute)
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	if _, err := ParseSessionToken(token, "secret"); err == nil {
		t.Fatalf("expected expired token to be rejected")
	}
}

func TestSessionTokenGarbage(t *testing.T) {
	if _, err := ParseSessionToken("not-a-token", "secret"); err == nil {
		t.Fatalf("expected parse failure")
	}
}
