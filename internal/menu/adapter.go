package menu

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"
)

var (
	errEmptySource  = errors.New("source has no items")
	errMissingField = errors.New("item is missing id or name")
	errNegative     = errors.New("item has a negative price")
)

// rawDish is the loose on-disk shape shared by every dish list.
type rawDish struct {
	ID          string  `yaml:"id"`
	Name        string  `yaml:"name"`
	Description string  `yaml:"description"`
	Category    string  `yaml:"category"`
	Diet        string  `yaml:"diet"`
	Price       float64 `yaml:"price"`
	Portion     string  `yaml:"portion"`
	Quantity    string  `yaml:"quantity"`
	Serves      int     `yaml:"serves"`
	Premium     bool    `yaml:"premium"`
	Slot        string  `yaml:"slot"`
}

type jainDoc struct {
	Items []rawDish `yaml:"items"`
}

type vegPackageDoc struct {
	PricePerGuest float64   `yaml:"price_per_guest"`
	Standard      []rawDish `yaml:"standard"`
	Premium       []rawDish `yaml:"premium"`
}

type customizationDoc struct {
	Veg    []rawDish `yaml:"veg"`
	NonVeg []rawDish `yaml:"non_veg"`
}

type cocktailDoc struct {
	VegStarters    []rawDish `yaml:"veg_starters"`
	NonVegStarters []rawDish `yaml:"non_veg_starters"`
	Mains          []rawDish `yaml:"mains"`
	Desserts       []rawDish `yaml:"desserts"`
}

type rawPackage struct {
	Key           string   `yaml:"key"`
	Name          string   `yaml:"name"`
	Description   string   `yaml:"description"`
	PricePerGuest float64  `yaml:"price_per_guest"`
	Pax           int      `yaml:"pax"`
	Includes      []string `yaml:"includes"`
	Items         []string `yaml:"items"`
}

type packagesDoc struct {
	Packages []rawPackage `yaml:"packages"`
}

type addonsDoc struct {
	Addons []Addon `yaml:"addons"`
}

// DefaultPackagePax applies when a package row does not state its pax.
const DefaultPackagePax = 20

// adapt turns a raw source document into normalized items for mode.
func adapt(mode Mode, data []byte) ([]Item, error) {
	var (
		items []Item
		err   error
	)

	switch mode {
	case ModeJain:
		items, err = adaptJain(data)
	case ModeVegPackage:
		items, err = adaptVegPackage(data)
	case ModeCustomized:
		items, err = adaptCustomization(data)
	case ModeCocktail:
		items, err = adaptCocktail(data)
	case ModeFixedPackages:
		items, err = adaptPackages(data)
	default:
		return nil, ErrUnknownMode
	}
	if err != nil {
		return nil, err
	}

	if len(items) == 0 {
		return nil, errEmptySource
	}
	return items, checkUnique(items)
}

func adaptJain(data []byte) ([]Item, error) {
	var doc jainDoc
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, err
	}

	items := make([]Item, 0, len(doc.Items))
	for _, raw := range doc.Items {
		item, err := dish(raw, DietJain)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, nil
}

func adaptVegPackage(data []byte) ([]Item, error) {
	var doc vegPackageDoc
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, err
	}

	price := doc.PricePerGuest
	if price <= 0 {
		price = VegPackagePricePerGuest
	}

	items := make([]Item, 0, len(doc.Standard)+len(doc.Premium))
	for _, group := range []struct {
		rows    []rawDish
		premium bool
	}{
		{doc.Standard, false},
		{doc.Premium, true},
	} {
		for _, raw := range group.rows {
			raw.Price = price
			item, err := dish(raw, DietVeg)
			if err != nil {
				return nil, err
			}

			slot, ok := parseSlot(raw.Slot)
			if !ok {
				return nil, fmt.Errorf("item %s: unknown package slot %q", raw.ID, raw.Slot)
			}

			item.Kind = KindPackageDish
			item.Slot = slot
			item.Premium = group.premium
			if item.Category == "" {
				item.Category = slot.Category()
			}
			items = append(items, item)
		}
	}
	return items, nil
}

func adaptCustomization(data []byte) ([]Item, error) {
	var doc customizationDoc
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, err
	}

	items := make([]Item, 0, len(doc.Veg)+len(doc.NonVeg))
	for _, raw := range doc.Veg {
		item, err := dish(raw, DietVeg)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	for _, raw := range doc.NonVeg {
		item, err := dish(raw, DietNonVeg)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, nil
}

func adaptCocktail(data []byte) ([]Item, error) {
	var doc cocktailDoc
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, err
	}

	var items []Item
	add := func(rows []rawDish, category Category, diet func(rawDish) Diet) error {
		for _, raw := range rows {
			item, err := dish(raw, diet(raw))
			if err != nil {
				return err
			}
			item.Category = category
			items = append(items, item)
		}
		return nil
	}

	forced := func(d Diet) func(rawDish) Diet {
		return func(rawDish) Diet { return d }
	}

	if err := add(doc.VegStarters, CategoryStarters, forced(DietVeg)); err != nil {
		return nil, err
	}
	if err := add(doc.NonVegStarters, CategoryStarters, forced(DietNonVeg)); err != nil {
		return nil, err
	}
	if err := add(doc.Mains, CategoryMainCourse, guessDiet); err != nil {
		return nil, err
	}
	if err := add(doc.Desserts, CategoryDesserts, forced(DietVeg)); err != nil {
		return nil, err
	}
	return items, nil
}

func adaptPackages(data []byte) ([]Item, error) {
	var doc packagesDoc
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, err
	}

	items := make([]Item, 0, len(doc.Packages))
	for idx, raw := range doc.Packages {
		if raw.Key == "" || raw.Name == "" {
			return nil, errMissingField
		}
		if raw.PricePerGuest < 0 {
			return nil, errNegative
		}

		pax := raw.Pax
		if pax <= 0 {
			pax = DefaultPackagePax
		}

		items = append(items, Item{
			ID:          fmt.Sprintf("package_%s_%d", raw.Key, idx),
			Kind:        KindFixedPackage,
			Name:        raw.Name,
			Description: raw.Description,
			Category:    CategoryMainCourse,
			Diet:        DietVeg,
			BasePrice:   raw.PricePerGuest,
			Package: &PackageInfo{
				Key:      raw.Key,
				Pax:      pax,
				Includes: raw.Includes,
				Items:    raw.Items,
			},
		})
	}
	return items, nil
}

func adaptAddons(data []byte) ([]Addon, error) {
	var doc addonsDoc
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	if len(doc.Addons) == 0 {
		return nil, errEmptySource
	}

	seen := make(map[string]bool, len(doc.Addons))
	for _, a := range doc.Addons {
		if a.ID == "" || a.Name == "" {
			return nil, errMissingField
		}
		if a.Price < 0 {
			return nil, errNegative
		}
		if seen[a.ID] {
			return nil, fmt.Errorf("duplicate add-on id %q", a.ID)
		}
		seen[a.ID] = true
	}
	return doc.Addons, nil
}

// dish normalizes one raw row. An explicit diet on the row wins over the
// list default, except that jain lists always stay jain.
func dish(raw rawDish, listDiet Diet) (Item, error) {
	if raw.ID == "" || raw.Name == "" {
		return Item{}, errMissingField
	}
	if raw.Price < 0 {
		return Item{}, fmt.Errorf("item %s: %w", raw.ID, errNegative)
	}

	diet := listDiet
	if listDiet != DietJain {
		if d, ok := parseDiet(raw.Diet); ok {
			diet = d
		}
	}

	portion := raw.Portion
	if portion == "" {
		portion = raw.Quantity
	}

	serves := raw.Serves
	if serves < 0 {
		serves = 0
	}

	return Item{
		ID:          raw.ID,
		Kind:        KindDish,
		Name:        strings.TrimSpace(raw.Name),
		Description: raw.Description,
		Category:    parseCategory(raw.Category),
		Diet:        diet,
		BasePrice:   raw.Price,
		Portion:     portion,
		BaseServes:  serves,
		Premium:     raw.Premium,
	}, nil
}

func checkUnique(items []Item) error {
	seen := make(map[string]bool, len(items))
	for _, item := range items {
		if seen[item.ID] {
			return fmt.Errorf("duplicate item id %q", item.ID)
		}
		seen[item.ID] = true
	}
	return nil
}

func parseCategory(raw string) Category {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "starters", "starter":
		return CategoryStarters
	case "main_course", "main course", "mains", "main":
		return CategoryMainCourse
	case "breads", "bread":
		return CategoryBreads
	case "desserts", "dessert":
		return CategoryDesserts
	}
	return ""
}

func parseDiet(raw string) (Diet, bool) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "veg":
		return DietVeg, true
	case "nonveg", "non_veg", "non-veg":
		return DietNonVeg, true
	case "jain":
		return DietJain, true
	}
	return "", false
}

// nonVegWords drives the cocktail fallback for rows without a diet flag.
// It is a name heuristic: unlisted meats are classified as veg.
var nonVegWords = regexp.MustCompile(`(?i)\b(chicken|mutton|fish|prawns?|eggs?|meat|beef|pork|lamb|seekh)\b`)

// LooksNonVeg reports whether a dish name matches the non-veg keyword list.
func LooksNonVeg(name string) bool {
	return nonVegWords.MatchString(name)
}

func guessDiet(raw rawDish) Diet {
	if d, ok := parseDiet(raw.Diet); ok {
		return d
	}
	if LooksNonVeg(raw.Name) {
		return DietNonVeg
	}
	return DietVeg
}
