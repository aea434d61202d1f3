// Package taxonomy holds the fixed registry of expense categories: their
// labels, display colors, icons and permitted subcategories.
//
// The registry is compiled in and read-only. Lookups for keys outside the
// enumeration fail with ErrInvalidCategory.
package taxonomy

import (
	"errors"
	"fmt"
	"strings"
)

// Category is the key of an expense category.
type Category string

const (
	Food           Category = "food"
	QuickCommerce  Category = "quickCommerce"
	Transportation Category = "transportation"
	Entertainment  Category = "entertainment"
	OutingSocial   Category = "outingSocial"
	PersonalCare   Category = "personalCare"
	Health         Category = "health"
	Stationery     Category = "stationery"
	Subscriptions  Category = "subscriptions"
	Loans          Category = "loans"
	Travel         Category = "travel"
	Utilities      Category = "utilities"
	Shopping       Category = "shopping"
	Education      Category = "education"
	Miscellaneous  Category = "miscellaneous"
)

// ErrInvalidCategory is returned for keys outside the enumeration.
var ErrInvalidCategory = errors.New("invalid category")

// Icon identifies the glyph rendered next to a category.
type Icon int

const (
	IconUtensils Icon = iota
	IconShoppingCart
	IconCar
	IconGamepad
	IconUsers
	IconSparkles
	IconHeartPulse
	IconPenTool
	IconCreditCard
	IconWallet
	IconPlane
	IconZap
	IconShoppingBag
	IconGraduationCap
	IconMoreHorizontal
)

var iconNames = [...]string{
	IconUtensils:       "UtensilsCrossed",
	IconShoppingCart:   "ShoppingCart",
	IconCar:            "Car",
	IconGamepad:        "Gamepad2",
	IconUsers:          "Users",
	IconSparkles:       "Sparkles",
	IconHeartPulse:     "HeartPulse",
	IconPenTool:        "PenTool",
	IconCreditCard:     "CreditCard",
	IconWallet:         "Wallet",
	IconPlane:          "Plane",
	IconZap:            "Zap",
	IconShoppingBag:    "ShoppingBag",
	IconGraduationCap:  "GraduationCap",
	IconMoreHorizontal: "MoreHorizontal",
}

// String returns the icon's name in the frontend icon set.
func (i Icon) String() string {
	if i < 0 || int(i) >= len(iconNames) {
		return "MoreHorizontal"
	}
	return iconNames[i]
}

// MarshalText encodes the icon by name.
func (i Icon) MarshalText() ([]byte, error) {
	return []byte(i.String()), nil
}

// Entry is the metadata attached to a category.
type Entry struct {
	Category      Category `json:"key"`
	Label         string   `json:"label"`
	Color         string   `json:"color"`
	Icon          Icon     `json:"icon"`
	Subcategories []string `json:"subcategories"`
}

// order is the enumeration order. It doubles as the tie breaker when
// aggregated totals are equal.
var order = [...]Category{
	Food,
	QuickCommerce,
	Transportation,
	Entertainment,
	OutingSocial,
	PersonalCare,
	Health,
	Stationery,
	Subscriptions,
	Loans,
	Travel,
	Utilities,
	Shopping,
	Education,
	Miscellaneous,
}

// entries is indexed by enumeration position and must have the same length
// as order.
var entries = [len(order)]Entry{
	{Food, "Food & Dining", "hsl(35, 91%, 62%)", IconUtensils,
		[]string{"Breakfast", "Lunch", "Dinner", "Snacks", "Desserts", "Drinks"}},
	{QuickCommerce, "Quick Commerce", "hsl(280, 65%, 60%)", IconShoppingCart,
		[]string{"Swiggy Instamart", "Zepto", "Zomato", "BigBasket", "Flipkart Minutes", "JioMart", "Blinkit", "Dunzo"}},
	{Transportation, "Transportation", "hsl(221, 83%, 53%)", IconCar,
		[]string{"Ola", "Uber", "Public Transport", "Fuel", "Bike/Scooter Rental", "Parking"}},
	{Entertainment, "Entertainment", "hsl(340, 82%, 52%)", IconGamepad,
		[]string{"Gaming", "Movies", "Events", "Books", "Music"}},
	{OutingSocial, "Outing & Social", "hsl(142, 76%, 36%)", IconUsers,
		[]string{"Restaurant Dining", "Cafes", "Weekend Trips", "Activities", "Friends Hangout", "Gifts"}},
	{PersonalCare, "Personal Care", "hsl(280, 65%, 60%)", IconSparkles,
		[]string{"Makeup", "Salon/Grooming", "Toiletries", "Clothing", "Footwear", "Accessories"}},
	{Health, "Health & Medical", "hsl(0, 84%, 42%)", IconHeartPulse,
		[]string{"Medicines", "Doctor Visits", "Lab Tests", "Vaccinations", "Gym/Fitness", "Yoga/Wellness"}},
	{Stationery, "Stationery & Office", "hsl(221, 83%, 53%)", IconPenTool,
		[]string{"Writing Materials", "Notebooks", "Printing", "Office Supplies", "Tech Accessories"}},
	{Subscriptions, "Subscriptions", "hsl(142, 76%, 36%)", IconCreditCard,
		[]string{"Phone Recharge", "YouTube Premium", "Spotify", "Netflix", "Disney+ Hotstar", "Amazon Prime", "Zepto Plus", "Zomato Gold", "Swiggy One", "Blinkit Plus"}},
	{Loans, "Loans & Lending", "hsl(35, 91%, 62%)", IconWallet,
		[]string{"Loaned to Friends", "Borrowed", "EMI"}},
	{Travel, "Travel & Tickets", "hsl(221, 83%, 53%)", IconPlane,
		[]string{"Movie Tickets", "Train Tickets", "Flight Tickets", "Bus Tickets", "Hotel Bookings", "Event Tickets"}},
	{Utilities, "Utilities & Bills", "hsl(35, 91%, 62%)", IconZap,
		[]string{"Electricity", "Water", "Internet/WiFi", "Landline", "Rent", "Maintenance"}},
	{Shopping, "Shopping", "hsl(280, 65%, 60%)", IconShoppingBag,
		[]string{"Electronics", "Home Appliances", "Furniture", "Gadgets", "General Shopping"}},
	{Education, "Education", "hsl(142, 76%, 36%)", IconGraduationCap,
		[]string{"Courses", "Books & Materials", "Tuition Fees", "Online Learning", "Certifications"}},
	{Miscellaneous, "Miscellaneous", "hsl(240, 5%, 35%)", IconMoreHorizontal,
		[]string{"Donations", "Bank Charges", "Postal Services", "Repairs", "Household Items"}},
}

var index = func() map[Category]int {
	m := make(map[Category]int, len(order))
	for i, c := range order {
		m[c] = i
	}
	return m
}()

// All returns every category in enumeration order.
func All() []Category {
	out := make([]Category, len(order))
	copy(out, order[:])
	return out
}

// Entries returns a copy of the full registry in enumeration order.
func Entries() []Entry {
	out := make([]Entry, len(entries))
	for i, e := range entries {
		e.Subcategories = append([]string(nil), e.Subcategories...)
		out[i] = e
	}
	return out
}

// Index returns the enumeration position of c, or -1 if c is unknown.
func Index(c Category) int {
	if i, ok := index[c]; ok {
		return i
	}
	return -1
}

// Valid reports whether c belongs to the enumeration.
func (c Category) Valid() bool {
	_, ok := index[c]
	return ok
}

func (c Category) String() string { return string(c) }

// Parse validates a raw category key.
func Parse(key string) (Category, error) {
	c := Category(strings.TrimSpace(key))
	if !c.Valid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidCategory, key)
	}
	return c, nil
}

// ParseLabel resolves a human label (case-insensitive) back to its key.
func ParseLabel(label string) (Category, error) {
	l := strings.TrimSpace(label)
	for _, e := range entries {
		if strings.EqualFold(e.Label, l) {
			return e.Category, nil
		}
	}
	return "", fmt.Errorf("%w: unknown label %q", ErrInvalidCategory, label)
}

// Lookup returns the registry entry for c.
func Lookup(c Category) (Entry, error) {
	i, ok := index[c]
	if !ok {
		return Entry{}, fmt.Errorf("%w: %q", ErrInvalidCategory, string(c))
	}
	e := entries[i]
	e.Subcategories = append([]string(nil), e.Subcategories...)
	return e, nil
}

// LabelOf returns the human label of c.
func LabelOf(c Category) (string, error) {
	e, err := Lookup(c)
	if err != nil {
		return "", err
	}
	return e.Label, nil
}

// ColorOf returns the display color of c.
func ColorOf(c Category) (string, error) {
	e, err := Lookup(c)
	if err != nil {
		return "", err
	}
	return e.Color, nil
}

// IconOf returns the icon of c.
func IconOf(c Category) (Icon, error) {
	e, err := Lookup(c)
	if err != nil {
		return 0, err
	}
	return e.Icon, nil
}

// SubcategoriesOf returns the ordered subcategories of c. The slice may be
// empty and is safe to modify.
func SubcategoriesOf(c Category) ([]string, error) {
	e, err := Lookup(c)
	if err != nil {
		return nil, err
	}
	return e.Subcategories, nil
}

// AllowsSubcategory reports whether sub is empty or listed under c.
func AllowsSubcategory(c Category, sub string) bool {
	if sub == "" {
		return true
	}
	i, ok := index[c]
	if !ok {
		return false
	}
	for _, s := range entries[i].Subcategories {
		if s == sub {
			return true
		}
	}
	return false
}
