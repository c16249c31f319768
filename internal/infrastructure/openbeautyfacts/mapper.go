package openbeautyfacts

import (
	"regexp"
	"strings"
	"time"

	"github.com/skinsight/backend/internal/domain"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

const (
	ingredientRole = "ingredient"
	ingredientNote = "Parsed from the product's ingredient list"

	unknownBrand = "Unknown Brand"
)

// boilerplateCategorySubstrings are taxonomy noise stripped before a category
// tag is used as part of a synthesized product name
var boilerplateCategorySubstrings = []string{"en:", "open-beauty-facts", "non-food-products"}

// ingredientSplitRegex splits ingredient text on commas and semicolons
var ingredientSplitRegex = regexp.MustCompile(`[,;]`)

// categoryTable maps keyword groups to the closed category set. Order is
// significant: classification scans tag-by-tag and the first keyword hit wins.
var categoryTable = []struct {
	category string
	keywords []string
}{
	{domain.CategoryCleanser, []string{"cleanser", "cleaning", "soap"}},
	{domain.CategoryMoisturizer, []string{"moisturizer", "cream", "lotion"}},
	{domain.CategoryTreatment, []string{"serum", "treatment", "essence"}},
	{domain.CategorySunscreen, []string{"sunscreen", "spf", "sun"}},
	{domain.CategoryToner, []string{"toner", "astringent"}},
	{domain.CategoryMask, []string{"mask", "pack"}},
	{domain.CategoryMakeup, []string{"makeup", "cosmetic"}},
	{domain.CategoryFragrance, []string{"perfume", "fragrance"}},
	{domain.CategoryHairCare, []string{"shampoo", "conditioner"}},
}

// concernTable maps keyword groups to concern labels. Unlike category
// classification, a single tag may fire several concern groups.
var concernTable = []struct {
	concern  domain.Concern
	keywords []string
}{
	{domain.ConcernSensitivity, []string{"sensitive", "hypoallergenic"}},
	{domain.ConcernOiliness, []string{"oily", "sebum"}},
	{domain.ConcernDryness, []string{"dry", "moisturizing"}},
	{domain.ConcernAcne, []string{"acne", "blemish"}},
	{domain.ConcernAging, []string{"aging", "wrinkle"}},
	{domain.ConcernPigmentation, []string{"pigmentation", "dark spot", "brightening", "whitening"}},
	{domain.ConcernRedness, []string{"redness", "irritation"}},
}

// MapToProduct converts a raw Open Beauty Facts record to the canonical
// Product model. It is a pure function: mapping the same record twice yields
// identical products.
func MapToProduct(raw *domain.RawProductRecord) *domain.Product {
	text := ingredientsText(raw)

	return &domain.Product{
		Barcode:         raw.Code,
		Name:            resolveName(raw),
		Brand:           resolveBrand(raw.Brands),
		Category:        classifyCategory(raw.CategoriesTags),
		Ingredients:     parseIngredients(text),
		Concerns:        extractConcerns(raw.CategoriesTags, raw.LabelsTags),
		Rating:          computeRating(raw),
		ImageURL:        selectImageURL(raw),
		Quantity:        raw.Quantity,
		CategoriesTags:  raw.CategoriesTags,
		LabelsTags:      raw.LabelsTags,
		Allergens:       raw.AllergensTags,
		Traces:          raw.TracesTags,
		Additives:       raw.AdditivesTags,
		NutritionGrade:  raw.NutritionGrade,
		IngredientsText: text,
		LastModified:    epochTime(raw.LastModifiedT),
		Created:         epochTime(raw.CreatedT),

		IsFromOpenBeautyFacts: true,
	}
}

// resolveName uses the product name verbatim when present, otherwise
// synthesizes one from brand, cleaned category text and quantity, falling
// back to "Product {code}" when nothing is available.
func resolveName(raw *domain.RawProductRecord) string {
	if name := strings.TrimSpace(raw.ProductName); name != "" {
		return name
	}

	var parts []string
	if brand := strings.TrimSpace(raw.Brands); brand != "" {
		parts = append(parts, brand)
	}
	if len(raw.CategoriesTags) > 0 {
		if category := cleanCategoryText(raw.CategoriesTags[0]); category != "" {
			parts = append(parts, category)
		}
	}
	if quantity := strings.TrimSpace(raw.Quantity); quantity != "" {
		parts = append(parts, quantity)
	}

	if len(parts) == 0 {
		code := raw.Code
		if code == "" {
			code = "Unknown"
		}
		return "Product " + code
	}

	return strings.Join(parts, " ")
}

// cleanCategoryText strips taxonomy boilerplate from a category tag and
// title-cases the remainder if anything was stripped
func cleanCategoryText(tag string) string {
	cleaned := tag
	for _, boilerplate := range boilerplateCategorySubstrings {
		cleaned = strings.ReplaceAll(cleaned, boilerplate, "")
	}
	cleaned = strings.TrimSpace(cleaned)
	if cleaned != tag {
		// cases.Caser carries state, so build one per call
		cleaned = cases.Title(language.English).String(cleaned)
	}
	return cleaned
}

func resolveBrand(brands string) string {
	if brand := strings.TrimSpace(brands); brand != "" {
		return brand
	}
	return unknownBrand
}

// classifyCategory scans category tags in order and returns the first
// keyword-table hit, or "Personal Care" when nothing matches
func classifyCategory(tags []string) string {
	for _, tag := range tags {
		lower := strings.ToLower(tag)
		for _, entry := range categoryTable {
			for _, keyword := range entry.keywords {
				if strings.Contains(lower, keyword) {
					return entry.category
				}
			}
		}
	}
	return domain.CategoryPersonalCare
}

// parseIngredients splits ingredient text on commas and semicolons, dropping
// empty segments. Each surviving segment becomes one Ingredient.
func parseIngredients(text string) []domain.Ingredient {
	if strings.TrimSpace(text) == "" {
		return nil
	}

	pieces := ingredientSplitRegex.Split(text, -1)
	ingredients := make([]domain.Ingredient, 0, len(pieces))
	for _, piece := range pieces {
		piece = strings.TrimSpace(piece)
		if piece == "" {
			continue
		}
		ingredients = append(ingredients, domain.Ingredient{
			INCIName:   piece,
			CommonName: piece,
			Role:       ingredientRole,
			Note:       ingredientNote,
		})
	}
	return ingredients
}

// extractConcerns scans category and label tags against the concern keyword
// table. Matches are de-duplicated; output order follows first appearance.
func extractConcerns(categoryTags, labelTags []string) []domain.Concern {
	seen := make(map[domain.Concern]bool)
	var concerns []domain.Concern

	tags := make([]string, 0, len(categoryTags)+len(labelTags))
	tags = append(tags, categoryTags...)
	tags = append(tags, labelTags...)

	for _, tag := range tags {
		lower := strings.ToLower(tag)
		for _, entry := range concernTable {
			for _, keyword := range entry.keywords {
				if strings.Contains(lower, keyword) {
					if !seen[entry.concern] {
						seen[entry.concern] = true
						concerns = append(concerns, entry.concern)
					}
					break
				}
			}
		}
	}
	return concerns
}

// computeRating averages up to five independent quality signals. With no
// signals present, the rating is absent rather than zero.
func computeRating(raw *domain.RawProductRecord) *float64 {
	var sum float64
	var factors int

	if score, ok := gradeScore(raw.NutritionGrade); ok {
		sum += score
		factors++
	}
	if score, ok := gradeScore(raw.EcoscoreGrade); ok {
		sum += score
		factors++
	}
	if raw.NovaGroup.Valid && raw.NovaGroup.Int >= 1 && raw.NovaGroup.Int <= 4 {
		sum += float64(6 - raw.NovaGroup.Int)
		factors++
	}
	if strings.TrimSpace(ingredientsText(raw)) != "" {
		sum += 3.0
		factors++
	}
	if selectImageURL(raw) != "" {
		sum += 2.0
		factors++
	}

	if factors == 0 {
		return nil
	}

	rating := sum / float64(factors)
	if rating < 1.0 {
		rating = 1.0
	}
	if rating > 5.0 {
		rating = 5.0
	}
	return &rating
}

// gradeScore maps an A-E grade to a 5..1 score
func gradeScore(grade string) (float64, bool) {
	switch strings.ToLower(strings.TrimSpace(grade)) {
	case "a":
		return 5.0, true
	case "b":
		return 4.0, true
	case "c":
		return 3.0, true
	case "d":
		return 2.0, true
	case "e":
		return 1.0, true
	}
	return 0, false
}

// selectImageURL picks the first populated image URL candidate
func selectImageURL(raw *domain.RawProductRecord) string {
	for _, candidate := range []string{raw.ImageURL, raw.ImageSmallURL, raw.ImageFrontURL} {
		if candidate != "" {
			return candidate
		}
	}
	return ""
}

// ingredientsText falls back to the English variant when the plain field is empty
func ingredientsText(raw *domain.RawProductRecord) string {
	if raw.IngredientsText != "" {
		return raw.IngredientsText
	}
	return raw.IngredientsTextEn
}

// epochTime converts Unix seconds to a timestamp; zero/absent stays absent
func epochTime(sec int64) *time.Time {
	if sec <= 0 {
		return nil
	}
	t := time.Unix(sec, 0).UTC()
	return &t
}
