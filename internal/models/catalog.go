package models

// Listing vocabularies shared by the upload form, the filters and validation.
var (
	Categories = []string{"Tops", "Bottoms", "Dresses", "Outerwear", "Shoes", "Accessories"}
	Sizes      = []string{"XS", "S", "M", "L", "XL", "XXL", "One Size"}
	Conditions = []string{"New", "Used - Like New", "Used - Good", "Used - Fair"}
	StyleTags  = []string{
		"Vintage", "Boho", "Minimalist", "Streetwear", "Formal",
		"Casual", "Designer", "Sustainable", "Handmade", "Trendy", "Athletic",
	}
)

// Points awarded for community activity.
const (
	InterestPoints   = 5
	SwapAcceptPoints = 50
)

// MaxListingImages caps the number of images on a single listing.
const MaxListingImages = 5
