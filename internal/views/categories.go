package views

// CategoryOption is one entry of a category select
type CategoryOption struct {
	Label string
	Value string
}

// FilterCategories feed the admin list filter. Two labels share the
// Lifestyle value and খেলাধুলা filters on Business; stored articles carry
// those values.
var FilterCategories = []CategoryOption{
	{Label: "রাজশাহী", Value: "রাজশাহী"},
	{Label: "খেলাধুলা", Value: "Business"},
	{Label: "বাংলাদেশ", Value: "Lifestyle"},
	{Label: "এডভার্টাইসমেন্ট", Value: "Lifestyle"},
}

// FormCategories feed the article form
var FormCategories = []CategoryOption{
	{Label: "রাজশাহী", Value: "রাজশাহী"},
	{Label: "খেলাধুলা", Value: "খেলাধুলা"},
	{Label: "বাংলাদেশ", Value: "বাংলাদেশ"},
	{Label: "এডভার্টাইসমেন্ট", Value: "এডভার্টাইসমেন্ট"},
}
