package zid

import "testing"

func TestIsValidZettelID(t *testing.T) {
	valid := []string{"1", "12", "1a", "1a1", "1a1b", "21b3", "9z9z"}
	for _, id := range valid {
		if !IsValidZettelID(id) {
			t.Errorf("IsValidZettelID(%q) = false, want true", id)
		}
	}

	invalid := []string{"", "a", "a1", "1A", "1-2", "1.2", "fl:1", "lit:x", "1 a"}
	for _, id := range invalid {
		if IsValidZettelID(id) {
			t.Errorf("IsValidZettelID(%q) = true, want false", id)
		}
	}
}

func TestIsValidFleetingID(t *testing.T) {
	for _, id := range []string{"fl:1", "fl:42", "fl:draft-3"} {
		if !IsValidFleetingID(id) {
			t.Errorf("IsValidFleetingID(%q) = false, want true", id)
		}
	}
	for _, id := range []string{"fl:", "1", "lit:1", "FL:1", "fl:has space"} {
		if IsValidFleetingID(id) {
			t.Errorf("IsValidFleetingID(%q) = true, want false", id)
		}
	}
}

func TestIsValidLiteratureID(t *testing.T) {
	for _, id := range []string{"lit:book", "lit:smith2020", "lit:a-b_c"} {
		if !IsValidLiteratureID(id) {
			t.Errorf("IsValidLiteratureID(%q) = false, want true", id)
		}
	}
	for _, id := range []string{"lit:", "book", "fl:1", "lit:has space"} {
		if IsValidLiteratureID(id) {
			t.Errorf("IsValidLiteratureID(%q) = true, want false", id)
		}
	}
}

func TestDetect(t *testing.T) {
	cases := []struct {
		id   string
		want Kind
	}{
		{"fl:3", KindFleeting},
		{"lit:smith2020", KindLiterature},
		{"1a2", KindZettel},
		{"bare-text", KindZettel},
	}
	for _, c := range cases {
		if got := Detect(c.id); got != c.want {
			t.Errorf("Detect(%q) = %v, want %v", c.id, got, c.want)
		}
	}
}
