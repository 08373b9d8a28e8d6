package i18n

import "testing"

func TestDirection(t *testing.T) {
	if got := Direction("en"); got != "ltr" {
		t.Errorf("Direction(en) = %q, want ltr", got)
	}
	if got := Direction("ps"); got != "rtl" {
		t.Errorf("Direction(ps) = %q, want rtl", got)
	}
	if got := Direction("de"); got != "ltr" {
		t.Errorf("Direction(de) = %q, want ltr", got)
	}
}

func TestNormalize(t *testing.T) {
	if got := Normalize("ps"); got != "ps" {
		t.Errorf("Normalize(ps) = %q", got)
	}
	if got := Normalize(""); got != "en" {
		t.Errorf("Normalize(\"\") = %q, want en", got)
	}
	if got := Normalize("fr"); got != "en" {
		t.Errorf("Normalize(fr) = %q, want en", got)
	}
}

func TestTranslationTablesAligned(t *testing.T) {
	en := T("en")
	ps := T("ps")
	if len(en) == 0 || len(ps) == 0 {
		t.Fatal("translation tables must not be empty")
	}
	for key := range en {
		if _, ok := ps[key]; !ok {
			t.Errorf("key %q missing from ps table", key)
		}
	}
	for key := range ps {
		if _, ok := en[key]; !ok {
			t.Errorf("key %q missing from en table", key)
		}
	}
}

func TestTFallsBackToEnglish(t *testing.T) {
	if got := T("xx")["app_name"]; got != "Plant Disease Classifier" {
		t.Errorf("T(xx)[app_name] = %q", got)
	}
}
