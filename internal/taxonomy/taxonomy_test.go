package taxonomy

import (
	"errors"
	"testing"
)

func TestRegistryIsTotal(t *testing.T) {
	all := All()
	if len(all) != 15 {
		t.Fatalf("expected 15 categories, got %d", len(all))
	}
	for i, c := range all {
		e, err := Lookup(c)
		if err != nil {
			t.Fatalf("%s: unexpected error %v", c, err)
		}
		if e.Category != c {
			t.Fatalf("entry %d is %s, want %s", i, e.Category, c)
		}
		if e.Label == "" || e.Color == "" {
			t.Fatalf("%s: empty label or color", c)
		}
		if Index(c) != i {
			t.Fatalf("%s: index %d, want %d", c, Index(c), i)
		}
	}
}

func TestLookupsRejectUnknownKeys(t *testing.T) {
	bad := Category("groceries")
	if _, err := LabelOf(bad); !errors.Is(err, ErrInvalidCategory) {
		t.Fatalf("LabelOf: expected ErrInvalidCategory, got %v", err)
	}
	if _, err := ColorOf(bad); !errors.Is(err, ErrInvalidCategory) {
		t.Fatalf("ColorOf: expected ErrInvalidCategory, got %v", err)
	}
	if _, err := SubcategoriesOf(bad); !errors.Is(err, ErrInvalidCategory) {
		t.Fatalf("SubcategoriesOf: expected ErrInvalidCategory, got %v", err)
	}
	if _, err := Parse("nope"); !errors.Is(err, ErrInvalidCategory) {
		t.Fatalf("Parse: expected ErrInvalidCategory, got %v", err)
	}
	if Index(bad) != -1 {
		t.Fatalf("expected -1 index for unknown key")
	}
}

func TestLabelAndColor(t *testing.T) {
	label, err := LabelOf(Food)
	if err != nil || label != "Food & Dining" {
		t.Fatalf("LabelOf(food) = %q, %v", label, err)
	}
	color, err := ColorOf(Health)
	if err != nil || color != "hsl(0, 84%, 42%)" {
		t.Fatalf("ColorOf(health) = %q, %v", color, err)
	}
	icon, err := IconOf(Travel)
	if err != nil || icon.String() != "Plane" {
		t.Fatalf("IconOf(travel) = %v, %v", icon, err)
	}
}

func TestSubcategoriesAreOrderedCopies(t *testing.T) {
	subs, err := SubcategoriesOf(Loans)
	if err != nil {
		t.Fatal(err)
	}
	want := []string{"Loaned to Friends", "Borrowed", "EMI"}
	if len(subs) != len(want) {
		t.Fatalf("got %v", subs)
	}
	for i := range want {
		if subs[i] != want[i] {
			t.Fatalf("got %v, want %v", subs, want)
		}
	}
	subs[0] = "mutated"
	again, _ := SubcategoriesOf(Loans)
	if again[0] != "Loaned to Friends" {
		t.Fatalf("registry was mutated through returned slice")
	}
}

func TestParseLabel(t *testing.T) {
	cases := []struct {
		in   string
		want Category
		ok   bool
	}{
		{"Food & Dining", Food, true},
		{"  food & dining ", Food, true},
		{"TRAVEL & TICKETS", Travel, true},
		{"Groceries", "", false},
	}
	for _, tc := range cases {
		got, err := ParseLabel(tc.in)
		if tc.ok && (err != nil || got != tc.want) {
			t.Fatalf("%q: got %q, %v", tc.in, got, err)
		}
		if !tc.ok && err == nil {
			t.Fatalf("%q: expected error", tc.in)
		}
	}
}

func TestAllowsSubcategory(t *testing.T) {
	if !AllowsSubcategory(Food, "") {
		t.Fatal("empty subcategory must always be allowed")
	}
	if !AllowsSubcategory(Food, "Lunch") {
		t.Fatal("Lunch should be allowed under food")
	}
	if AllowsSubcategory(Food, "Uber") {
		t.Fatal("Uber should not be allowed under food")
	}
	if AllowsSubcategory(Category("x"), "Lunch") {
		t.Fatal("unknown category must not allow subcategories")
	}
}
