package locale

import "testing"

func TestLoadDefault(t *testing.T) {
	c, err := Load(DefaultLanguage)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if c.Language() != "en" {
		t.Errorf("Language = %q", c.Language())
	}
	for _, id := range []string{"greeting", "inspectBarrel", "inspectDoor", "inspectWindow", "inspectClinic", "inspectHouse", "daylightUI"} {
		if got := c.String(id); got == id || got == "" {
			t.Errorf("String(%q) = %q, want a translation", id, got)
		}
	}
}

func TestUnknownIDPassesThrough(t *testing.T) {
	c := New("xx", []byte("msgid \"a\"\nmsgstr \"b\"\n"))
	if got := c.String("a"); got != "b" {
		t.Errorf("String(a) = %q, want b", got)
	}
	if got := c.String("missing"); got != "missing" {
		t.Errorf("String(missing) = %q, want missing", got)
	}
}

func TestLoadUnknownLanguage(t *testing.T) {
	if _, err := Load("zz"); err == nil {
		t.Error("expected error for unknown language")
	}
}
