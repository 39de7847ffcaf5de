package dynref

import "testing"

func TestFindAll_MultipleMarkers(t *testing.T) {
	s := "a {{resolve:ssm:One:1}} b {{resolve:secretsmanager:Two}} c"
	got := FindAll(s)
	want := []string{"{{resolve:ssm:One:1}}", "{{resolve:secretsmanager:Two}}"}
	if len(got) != len(want) {
		t.Fatalf("markers = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("markers[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestFindAll_ShortestMatch(t *testing.T) {
	// a marker ends at the first }}, trailing braces belong to the text
	got := FindAll("{{resolve:ssm:A}}tail}}")
	if len(got) != 1 || got[0] != "{{resolve:ssm:A}}" {
		t.Errorf("markers = %v, want [{{resolve:ssm:A}}]", got)
	}
}

func TestFindAll_NoMarker(t *testing.T) {
	if got := FindAll("plain string without references"); len(got) != 0 {
		t.Errorf("markers = %v, want none", got)
	}
}

func TestParse_KnownServices(t *testing.T) {
	cases := []struct {
		marker  string
		service string
		key     string
	}{
		{"{{resolve:ssm:MyParam:1}}", ServiceSSM, "MyParam:1"},
		{"{{resolve:ssm-secure:MyParam:1}}", ServiceSSMSecure, "MyParam:1"},
		{"{{resolve:secretsmanager:MySecret:SecretString:username}}", ServiceSecretsManager, "MySecret:SecretString:username"},
	}
	for _, c := range cases {
		ref, ok := Parse(c.marker)
		if !ok {
			t.Errorf("Parse(%q) not ok", c.marker)
			continue
		}
		if ref.Service != c.service || ref.Key != c.key {
			t.Errorf("Parse(%q) = %+v, want service %q key %q", c.marker, ref, c.service, c.key)
		}
	}
}

func TestParse_UnrecognizedService(t *testing.T) {
	if _, ok := Parse("{{resolve:other:Key}}"); ok {
		t.Error("expected unrecognized service tag to fail")
	}
}

func TestParse_Malformed(t *testing.T) {
	for _, marker := range []string{"{{resolve:ssm}}", "resolve:ssm:Key", "{{resolve:ssm:}}"} {
		if _, ok := Parse(marker); ok {
			t.Errorf("Parse(%q) = ok, want failure", marker)
		}
	}
}

func TestNormalizeKey_Placeholders(t *testing.T) {
	got := NormalizeKey("${MySecret}:SecretString:${username}")
	if got != "$MySecret:SecretString:$username" {
		t.Errorf("normalized = %q, want $MySecret:SecretString:$username", got)
	}
}

func TestNormalizeKey_StraysStripped(t *testing.T) {
	got := NormalizeKey("MySecret}:SecretString:${username}")
	if got != "MySecret:SecretString:$username" {
		t.Errorf("normalized = %q, want MySecret:SecretString:$username", got)
	}
}

func TestNormalizeKey_NoPlaceholders(t *testing.T) {
	if got := NormalizeKey("Plain:Key:1"); got != "Plain:Key:1" {
		t.Errorf("normalized = %q, want unchanged", got)
	}
}
