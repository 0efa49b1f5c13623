package digest

import "testing"

func TestCaseFoldKeyMatchesRegardlessOfCase(t *testing.T) {
	if CaseFoldKey("Log_Level") != CaseFoldKey("log_level") {
		t.Fatalf("CaseFoldKey(%q) != CaseFoldKey(%q)", "Log_Level", "log_level")
	}
}

func TestCaseFoldKeyDistinguishesDifferentKeys(t *testing.T) {
	if CaseFoldKey("log_level") == CaseFoldKey("log_format") {
		t.Fatalf("CaseFoldKey collapsed two distinct keys")
	}
}
