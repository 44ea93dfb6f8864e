package i18n

import (
	"context"
	"testing"
)

func TestTranslateAndNegotiate(t *testing.T) {
	Init("ko")

	en := WithLocale(context.Background(), "en")
	if got := T(en, "attendance.status.late"); got != "Late" {
		t.Fatalf("en late = %q", got)
	}
	if got := T(context.Background(), "attendance.status.late"); got != "지각" {
		t.Fatalf("default late = %q", got)
	}
	if got := T(en, "no.such.message"); got != "no.such.message" {
		t.Fatalf("unknown id = %q", got)
	}

	cases := map[string]string{
		"":               "ko",
		"en-US,en;q=0.9": "en",
		"ko-KR":          "ko",
		"fr-FR":          "ko",
		"fr-FR,en;q=0.5": "en",
	}
	for header, want := range cases {
		if got := Negotiate(header); got != want {
			t.Fatalf("Negotiate(%q) = %q, want %q", header, got, want)
		}
	}
}
