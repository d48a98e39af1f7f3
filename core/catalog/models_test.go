package catalog

import (
	"reflect"
	"testing"
)

func TestParsePrice(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want int
	}{
		{name: "decorated", in: "1 200 zł", want: 1200},
		{name: "empty", in: "", want: 0},
		{name: "plain digits", in: "650", want: 650},
		{name: "currency only", in: "zł", want: 0},
		{name: "mixed junk", in: "od 99 zł / os.", want: 99},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ParsePrice(tt.in); got != tt.want {
				t.Errorf("ParsePrice(%q) = %d, want %d", tt.in, got, tt.want)
			}
		})
	}
}

func TestAmountPLN(t *testing.T) {
	c := Course{Price: "1 200 zł"}
	if got := c.AmountPLN(); got != 1200 {
		t.Errorf("AmountPLN() = %d, want 1200", got)
	}

	c.PromoPrice = "990 zł"
	if got := c.AmountPLN(); got != 990 {
		t.Errorf("AmountPLN() with promo = %d, want 990", got)
	}
}

func TestModulesFor(t *testing.T) {
	modules := []CourseModule{
		{ID: "m1", CourseID: "a"},
		{ID: "m2", CourseID: "b"},
		{ID: "m3", CourseID: "a"},
	}

	got := ModulesFor(modules, "a")
	want := []CourseModule{{ID: "m1", CourseID: "a"}, {ID: "m3", CourseID: "a"}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("ModulesFor() = %+v, want %+v", got, want)
	}

	if got := ModulesFor(modules, "zaden"); got != nil {
		t.Errorf("ModulesFor(unknown) = %+v, want nil", got)
	}
}
