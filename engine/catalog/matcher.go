// Package catalog resolves free-text device mentions into structured device
// metadata. A pattern matcher extracts brand, model line, and year from the
// text; an optional graph-backed store enriches the match with catalog data.
package catalog

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"github.com/revivatech/diagnose/engine/domain"
)

// Match is one extracted device mention.
type Match struct {
	Brand      string
	Model      string
	Year       int
	Category   domain.DeviceCategory
	Confidence float64
	Span       string
}

// brandAliases maps lowercase mentions and nicknames to canonical brand names.
var brandAliases = map[string]string{
	"apple":      "Apple",
	"macbook":    "Apple",
	"imac":       "Apple",
	"iphone":     "Apple",
	"ipad":       "Apple",
	"dell":       "Dell",
	"hp":         "HP",
	"hewlett":    "HP",
	"lenovo":     "Lenovo",
	"thinkpad":   "Lenovo",
	"asus":       "ASUS",
	"acer":       "Acer",
	"samsung":    "Samsung",
	"galaxy":     "Samsung",
	"microsoft":  "Microsoft",
	"surface":    "Microsoft",
	"msi":        "MSI",
	"toshiba":    "Toshiba",
	"sony":       "Sony",
	"playstation": "Sony",
	"ps5":        "Sony",
	"ps4":        "Sony",
	"google":     "Google",
	"pixel":      "Google",
	"huawei":     "Huawei",
	"razer":      "Razer",
	"xbox":       "Microsoft",
	"nintendo":   "Nintendo",
	"oneplus":    "OnePlus",
	"xiaomi":     "Xiaomi",
	"framework":  "Framework",
}

// brandModels maps canonical brand to known model lines.
var brandModels = map[string][]string{
	"Apple":     {"MacBook Pro", "MacBook Air", "MacBook", "iMac", "Mac Mini", "Mac Studio", "iPhone", "iPad Pro", "iPad Air", "iPad Mini", "iPad"},
	"Dell":      {"XPS", "Inspiron", "Latitude", "Precision", "Alienware", "Vostro", "OptiPlex"},
	"HP":        {"Pavilion", "Envy", "Spectre", "EliteBook", "ProBook", "Omen", "Victus"},
	"Lenovo":    {"ThinkPad", "IdeaPad", "Yoga", "Legion", "ThinkCentre", "ThinkBook"},
	"ASUS":      {"ZenBook", "VivoBook", "ROG", "TUF", "ProArt"},
	"Acer":      {"Aspire", "Swift", "Predator", "Nitro", "Chromebook"},
	"Samsung":   {"Galaxy S", "Galaxy Note", "Galaxy Tab", "Galaxy Book", "Galaxy Z", "Galaxy A"},
	"Microsoft": {"Surface Pro", "Surface Laptop", "Surface Book", "Surface Go", "Xbox Series X", "Xbox Series S", "Xbox One"},
	"MSI":       {"Stealth", "Raider", "Katana", "Prestige", "Modern"},
	"Sony":      {"PlayStation 5", "PlayStation 4", "PS5", "PS4", "Vaio"},
	"Google":    {"Pixel", "Pixelbook", "Pixel Tablet"},
	"Nintendo":  {"Switch OLED", "Switch Lite", "Switch"},
	"OnePlus":   {"OnePlus"},
	"Xiaomi":    {"Redmi", "Mi"},
	"Razer":     {"Blade", "Book"},
	"Huawei":    {"MateBook", "Mate", "P Series"},
	"Toshiba":   {"Satellite", "Portege", "Tecra"},
	"Framework": {"Framework 13", "Framework 16"},
}

// modelCategories infers the device class from the model line. First match by
// prefix wins; brands without an entry fall back to brandCategories.
var modelCategories = []struct {
	prefix   string
	category domain.DeviceCategory
}{
	{"macbook", domain.DeviceLaptop},
	{"imac", domain.DeviceDesktop},
	{"mac mini", domain.DeviceDesktop},
	{"mac studio", domain.DeviceDesktop},
	{"iphone", domain.DevicePhone},
	{"ipad", domain.DeviceTablet},
	{"galaxy tab", domain.DeviceTablet},
	{"galaxy book", domain.DeviceLaptop},
	{"galaxy", domain.DevicePhone},
	{"surface pro", domain.DeviceTablet},
	{"surface go", domain.DeviceTablet},
	{"surface", domain.DeviceLaptop},
	{"xbox", domain.DeviceConsole},
	{"playstation", domain.DeviceConsole},
	{"ps5", domain.DeviceConsole},
	{"ps4", domain.DeviceConsole},
	{"switch", domain.DeviceConsole},
	{"pixel tablet", domain.DeviceTablet},
	{"pixelbook", domain.DeviceLaptop},
	{"pixel", domain.DevicePhone},
	{"optiplex", domain.DeviceDesktop},
	{"thinkcentre", domain.DeviceDesktop},
	{"redmi", domain.DevicePhone},
	{"mi", domain.DevicePhone},
	{"matebook", domain.DeviceLaptop},
	{"mate", domain.DevicePhone},
	{"oneplus", domain.DevicePhone},
}

// brandCategories is the per-brand default when the model line is unknown.
var brandCategories = map[string]domain.DeviceCategory{
	"Dell":      domain.DeviceLaptop,
	"HP":        domain.DeviceLaptop,
	"Lenovo":    domain.DeviceLaptop,
	"ASUS":      domain.DeviceLaptop,
	"Acer":      domain.DeviceLaptop,
	"MSI":       domain.DeviceLaptop,
	"Toshiba":   domain.DeviceLaptop,
	"Razer":     domain.DeviceLaptop,
	"Framework": domain.DeviceLaptop,
	"Apple":     domain.DeviceLaptop,
	"Samsung":   domain.DevicePhone,
	"Google":    domain.DevicePhone,
	"OnePlus":   domain.DevicePhone,
	"Xiaomi":    domain.DevicePhone,
	"Huawei":    domain.DevicePhone,
	"Sony":      domain.DeviceConsole,
	"Nintendo":  domain.DeviceConsole,
	"Microsoft": domain.DeviceLaptop,
}

var (
	brandRe    *regexp.Regexp
	yearFullRe = regexp.MustCompile(`\b(20\d{2}|19\d{2})\b`)
)

func init() {
	names := make([]string, 0, len(brandAliases))
	for alias := range brandAliases {
		names = append(names, regexp.QuoteMeta(alias))
	}
	// Longest alias first so "macbook" beats "mac".
	for i := 0; i < len(names); i++ {
		for j := i + 1; j < len(names); j++ {
			if len(names[j]) > len(names[i]) {
				names[i], names[j] = names[j], names[i]
			}
		}
	}
	brandRe = regexp.MustCompile(`(?i)\b(` + strings.Join(names, "|") + `)(?:'s)?\b`)
}

// Extract finds all device mentions in text, highest confidence first.
func Extract(text string) []Match {
	if text == "" {
		return nil
	}
	var matches []Match
	used := make(map[string]bool)

	for _, loc := range brandRe.FindAllStringSubmatchIndex(text, -1) {
		mention := strings.ToLower(text[loc[2]:loc[3]])
		brand := brandAliases[mention]
		if brand == "" {
			continue
		}

		// The alias itself can name the model line ("macbook", "ps5").
		model, modelEnd := matchModel(brand, text[loc[0]:clampIndex(loc[0]+50, len(text))])
		spanEnd := loc[1]
		if model != "" {
			spanEnd = loc[0] + modelEnd
		}

		year := nearbyYear(text, loc[0], spanEnd)

		conf := 0.6
		if model != "" {
			conf += 0.2
		}
		if year > 0 {
			conf += 0.15
		}

		key := fmt.Sprintf("%s|%s|%d", brand, model, year)
		if used[key] {
			continue
		}
		used[key] = true

		matches = append(matches, Match{
			Brand:      brand,
			Model:      model,
			Year:       year,
			Category:   categorize(brand, model, mention),
			Confidence: conf,
			Span:       strings.TrimSpace(text[loc[0]:spanEnd]),
		})
	}

	for i := 0; i < len(matches); i++ {
		for j := i + 1; j < len(matches); j++ {
			if matches[j].Confidence > matches[i].Confidence {
				matches[i], matches[j] = matches[j], matches[i]
			}
		}
	}
	return matches
}

// ExtractBest returns the single highest-confidence match, or nil.
func ExtractBest(text string) *Match {
	matches := Extract(text)
	if len(matches) == 0 {
		return nil
	}
	return &matches[0]
}

// DeviceInfo converts a match into engine device metadata.
func (m *Match) DeviceInfo() domain.DeviceInfo {
	return domain.DeviceInfo{
		Category: m.Category,
		Brand:    m.Brand,
		Model:    m.Model,
		Year:     m.Year,
	}
}

// matchModel finds the longest known model line at or after the brand mention.
func matchModel(brand, fragment string) (string, int) {
	models := brandModels[brand]
	lower := strings.ToLower(fragment)

	best, bestEnd := "", 0
	for _, model := range models {
		ml := strings.ToLower(model)
		idx := strings.Index(lower, ml)
		if idx < 0 {
			continue
		}
		end := idx + len(ml)
		if end < len(lower) {
			next := rune(lower[end])
			if unicode.IsLetter(next) {
				continue
			}
		}
		if len(ml) > len(best) {
			best, bestEnd = model, end
		}
	}
	if best == "" {
		return "", 0
	}
	return best, bestEnd
}

// nearbyYear looks for a plausible year shortly before the brand mention or
// shortly after the model span.
func nearbyYear(text string, start, end int) int {
	before := text[clampIndex(start-12, len(text)):start]
	if y := parseYear(before); y > 0 {
		return y
	}
	after := text[end:clampIndex(end+16, len(text))]
	return parseYear(after)
}

func parseYear(s string) int {
	m := yearFullRe.FindStringSubmatch(s)
	if m == nil {
		return 0
	}
	y, _ := strconv.Atoi(m[1])
	if y >= 1990 && y <= 2035 {
		return y
	}
	return 0
}

func categorize(brand, model, mention string) domain.DeviceCategory {
	probe := strings.ToLower(model)
	if probe == "" {
		probe = mention
	}
	for _, mc := range modelCategories {
		if strings.HasPrefix(probe, mc.prefix) {
			return mc.category
		}
	}
	if c, ok := brandCategories[brand]; ok {
		return c
	}
	return domain.DeviceOther
}

func clampIndex(i, n int) int {
	if i < 0 {
		return 0
	}
	if i > n {
		return n
	}
	return i
}
