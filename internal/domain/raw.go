package domain

import (
	"encoding/json"
	"strconv"
	"strings"
)

// FlexInt decodes a JSON field that may arrive as either a number or a
// numeric string (Open Beauty Facts delivers page/page_size/count both ways
// depending on the endpoint). A value that is neither parses to absent rather
// than failing the whole envelope.
type FlexInt struct {
	Int   int
	Valid bool
}

// UnmarshalJSON tries a string-to-integer parse first, then a direct numeric
// decode, and leaves the value absent when both fail.
func (f *FlexInt) UnmarshalJSON(data []byte) error {
	f.Int = 0
	f.Valid = false

	s := strings.TrimSpace(string(data))
	if s == "" || s == "null" {
		return nil
	}

	if strings.HasPrefix(s, `"`) {
		var str string
		if err := json.Unmarshal(data, &str); err != nil {
			return nil
		}
		if n, err := strconv.Atoi(strings.TrimSpace(str)); err == nil {
			f.Int = n
			f.Valid = true
		}
		return nil
	}

	var num float64
	if err := json.Unmarshal(data, &num); err != nil {
		return nil
	}
	f.Int = int(num)
	f.Valid = true
	return nil
}

// MarshalJSON round-trips an absent value as null.
func (f FlexInt) MarshalJSON() ([]byte, error) {
	if !f.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(f.Int)
}

// RawProductRecord is a loosely-typed product payload from the Open Beauty
// Facts API. Every field is optional; consumers must tolerate any subset.
type RawProductRecord struct {
	Code                    string   `json:"code"`
	ProductName             string   `json:"product_name"`
	Brands                  string   `json:"brands"`
	CategoriesTags          []string `json:"categories_tags"`
	LabelsTags              []string `json:"labels_tags"`
	Quantity                string   `json:"quantity"`
	ImageURL                string   `json:"image_url"`
	ImageSmallURL           string   `json:"image_small_url"`
	ImageFrontURL           string   `json:"image_front_url"`
	ImageFrontSmallURL      string   `json:"image_front_small_url"`
	ImageThumbURL           string   `json:"image_thumb_url"`
	ImageFrontThumbURL      string   `json:"image_front_thumb_url"`
	ImageIngredientsURL     string   `json:"image_ingredients_url"`
	ImagePackagingURL       string   `json:"image_packaging_url"`
	IngredientsText         string   `json:"ingredients_text"`
	IngredientsTextEn       string   `json:"ingredients_text_en"`
	IngredientsAnalysisTags []string `json:"ingredients_analysis_tags"`
	AllergensTags           []string `json:"allergens_tags"`
	TracesTags              []string `json:"traces_tags"`
	AdditivesTags           []string `json:"additives_tags"`
	NutritionGrade          string   `json:"nutrition_grades"`
	NovaGroup               FlexInt  `json:"nova_group"`
	EcoscoreGrade           string   `json:"ecoscore_grade"`
	LastModifiedT           int64    `json:"last_modified_t"`
	CreatedT                int64    `json:"created_t"`
	Creator                 string   `json:"creator"`
}

// SearchEnvelope is the top-level response of the Open Beauty Facts search
// endpoint. Products are kept as raw JSON so one malformed record can be
// dropped without failing the whole batch.
type SearchEnvelope struct {
	Products []json.RawMessage `json:"products"`
	Count    FlexInt           `json:"count"`
	Page     FlexInt           `json:"page"`
	PageSize FlexInt           `json:"page_size"`
}

// LookupEnvelope is the top-level response of the barcode lookup endpoint.
// Product is present only when Status == 1.
type LookupEnvelope struct {
	Status  int             `json:"status"`
	Product json.RawMessage `json:"product"`
}
