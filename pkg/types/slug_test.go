package types

import "testing"

func TestSlugify(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"Abstract Expressionism", "abstract-expressionism"},
		{"O'Keeffe", "o-keeffe"},
		{"  Édouard  Manet ", "edouard-manet"},
		{"Łukasz Górnicki", "ukasz-gornicki"},
		{"Still Life & Flowers", "still-life-flowers"},
		{"---", ""},
		{"", ""},
	}
	for _, c := range cases {
		if got := Slugify(c.in); got != c.want {
			t.Errorf("Slugify(%q): expected %q, got %q", c.in, c.want, got)
		}
	}
}

func TestSlugifyNameDropsIntraWordPunctuation(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"Georgia O'Keeffe", "georgia-okeeffe"},
		{"Jean-Michel Basquiat", "jeanmichel-basquiat"},
		{"Frida Kahlo", "frida-kahlo"},
		{"José María Velasco", "jose-maria-velasco"},
		{"", ""},
	}
	for _, c := range cases {
		if got := SlugifyName(c.in); got != c.want {
			t.Errorf("SlugifyName(%q): expected %q, got %q", c.in, c.want, got)
		}
	}
}

func TestSlugVariantsDiverge(t *testing.T) {
	name := "Georgia O'Keeffe"
	if SlugifyName(name) == Slugify(name) {
		t.Errorf("Expected the two slug forms of %q to differ", name)
	}
}
