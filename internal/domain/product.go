package domain

import "time"

// Product categories form a closed set: classification always resolves to one
// of these labels, falling back to CategoryPersonalCare when no keyword matches.
const (
	CategoryCleanser     = "Cleanser"
	CategoryMoisturizer  = "Moisturizer"
	CategoryTreatment    = "Treatment"
	CategorySunscreen    = "Sunscreen"
	CategoryToner        = "Toner"
	CategoryMask         = "Mask"
	CategoryMakeup       = "Makeup"
	CategoryFragrance    = "Fragrance"
	CategoryHairCare     = "Hair Care"
	CategoryPersonalCare = "Personal Care"
)

// Concern is a skincare taxonomy label derived heuristically from product tags
type Concern string

const (
	ConcernSensitivity  Concern = "sensitivity"
	ConcernOiliness     Concern = "oiliness"
	ConcernDryness      Concern = "dryness"
	ConcernAcne         Concern = "acne"
	ConcernAging        Concern = "aging"
	ConcernPigmentation Concern = "pigmentation"
	ConcernRedness      Concern = "redness"
)

// Ingredient represents a single ingredient parsed from a product's
// ingredient list text
type Ingredient struct {
	INCIName   string `json:"inciName"`
	CommonName string `json:"commonName"`
	Role       string `json:"role"`
	Note       string `json:"note"`
}

// Product is the canonical product model consumed by the rest of the
// application. It is constructed only by the Open Beauty Facts mapper and is
// immutable after construction; cache merges replace it wholesale by barcode.
type Product struct {
	Barcode         string       `json:"barcode"`
	Name            string       `json:"name"`
	Brand           string       `json:"brand"`
	Category        string       `json:"category"`
	Ingredients     []Ingredient `json:"ingredients"`
	Concerns        []Concern    `json:"concerns"`
	Rating          *float64     `json:"rating,omitempty"` // 1.0-5.0 or absent
	ImageURL        string       `json:"imageUrl,omitempty"`
	Quantity        string       `json:"quantity,omitempty"`
	CategoriesTags  []string     `json:"categoriesTags,omitempty"`
	LabelsTags      []string     `json:"labelsTags,omitempty"`
	Allergens       []string     `json:"allergens,omitempty"`
	Traces          []string     `json:"traces,omitempty"`
	Additives       []string     `json:"additives,omitempty"`
	NutritionGrade  string       `json:"nutritionGrade,omitempty"`
	IngredientsText string       `json:"ingredientsText,omitempty"`
	LastModified    *time.Time   `json:"lastModified,omitempty"`
	Created         *time.Time   `json:"created,omitempty"`

	IsFromOpenBeautyFacts bool `json:"isFromOpenBeautyFacts"`
}
