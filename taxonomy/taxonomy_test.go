package taxonomy

import "testing"

func TestNumClasses(t *testing.T) {
	if NumClasses() != 8 {
		t.Errorf("NumClasses() = %d, want 8", NumClasses())
	}
	if len(ClassNames["ps"]) != len(ClassNames["en"]) {
		t.Errorf("class lists differ in length: en=%d ps=%d",
			len(ClassNames["en"]), len(ClassNames["ps"]))
	}
}

func TestIsHealthy(t *testing.T) {
	for i := 0; i < NumClasses(); i++ {
		want := i == 1 || i == 4
		if got := IsHealthy(i); got != want {
			t.Errorf("IsHealthy(%d) = %v, want %v", i, got, want)
		}
	}
}

func TestLabel(t *testing.T) {
	if got := Label(0, "en"); got != "Pepper Bell Bacterial Spot" {
		t.Errorf("Label(0, en) = %q", got)
	}
	if got := Label(1, "ps"); got != "مرچ سوکه" {
		t.Errorf("Label(1, ps) = %q", got)
	}
	if got := Label(2, "fr"); got != "Potato Early Blight" {
		t.Errorf("unsupported language should fall back to English, got %q", got)
	}
	if got := Label(99, "en"); got != "Unknown Class" {
		t.Errorf("Label(99, en) = %q, want placeholder", got)
	}
	if got := Label(-1, "en"); got != "Unknown Class" {
		t.Errorf("Label(-1, en) = %q, want placeholder", got)
	}
}

func TestSeverityColor(t *testing.T) {
	cases := []struct {
		severity string
		want     string
	}{
		{"None", "success"},
		{"Low", "info"},
		{"Medium", "warning"},
		{"High", "danger"},
		{"Critical", "dark"},
		{"لوړ", "danger"},
		{"منځنی", "warning"},
		{"bogus", "secondary"},
		{"", "secondary"},
	}
	for _, c := range cases {
		if got := SeverityColor(c.severity); got != c.want {
			t.Errorf("SeverityColor(%q) = %q, want %q", c.severity, got, c.want)
		}
	}
}

func TestDefaultSeverity(t *testing.T) {
	if got := DefaultSeverity(0, "en"); got != "High" {
		t.Errorf("DefaultSeverity(0, en) = %q, want High", got)
	}
	if got := DefaultSeverity(2, "en"); got != "Medium" {
		t.Errorf("DefaultSeverity(2, en) = %q, want Medium", got)
	}
	if got := DefaultSeverity(1, "en"); got != "None" {
		t.Errorf("DefaultSeverity(1, en) = %q, want None", got)
	}
	if got := DefaultSeverity(5, "ps"); got != "لوړ" {
		t.Errorf("DefaultSeverity(5, ps) = %q", got)
	}
	if got := DefaultSeverity(4, "ps"); got != "هیڅ" {
		t.Errorf("DefaultSeverity(4, ps) = %q", got)
	}
}
