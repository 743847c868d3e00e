package app

import "github.com/agrimap/market/internal/catalog/domain"

// SampleProducts is the starter catalog inserted on an empty database.
var SampleProducts = []domain.Product{
	{
		Name:              "Premium Basmati Rice",
		Description:       "Aromatic long-grain basmati rice from Punjab fields",
		Price:             120.0,
		ImageURL:          "https://images.unsplash.com/photo-1586201375761-83865001e31c?w=400",
		Region:            "punjab",
		Category:          "Grains",
		ProducerName:      "Harpreet Singh",
		QuantityAvailable: 1000,
		Unit:              "kg",
	},
	{
		Name:              "Golden Wheat",
		Description:       "High-quality wheat grain perfect for making flour",
		Price:             25.0,
		ImageURL:          "https://images.unsplash.com/photo-1574323347407-f5e1ad6d020b?w=400",
		Region:            "punjab",
		Category:          "Grains",
		ProducerName:      "Sukhdev Kaur",
		QuantityAvailable: 5000,
		Unit:              "kg",
	},
	{
		Name:              "Organic Cotton",
		Description:       "Pure organic cotton from Maharashtra farms",
		Price:             80.0,
		ImageURL:          "https://images.unsplash.com/photo-1544966503-7cc5ac882d5f?w=400",
		Region:            "maharashtra",
		Category:          "Fiber",
		ProducerName:      "Ramesh Patil",
		QuantityAvailable: 2000,
		Unit:              "kg",
	},
	{
		Name:              "Fresh Grapes",
		Description:       "Sweet and juicy grapes from Nashik vineyards",
		Price:             60.0,
		ImageURL:          "https://images.unsplash.com/photo-1537640538966-79f369143f8f?w=400",
		Region:            "maharashtra",
		Category:          "Fruits",
		ProducerName:      "Vineeta Sharma",
		QuantityAvailable: 500,
		Unit:              "kg",
	},
	{
		Name:              "Premium Cardamom",
		Description:       "Aromatic green cardamom from Kerala hills",
		Price:             1200.0,
		ImageURL:          "https://images.unsplash.com/photo-1596040033229-a9821ebd058d?w=400",
		Region:            "kerala",
		Category:          "Spices",
		ProducerName:      "Mohanan Nair",
		QuantityAvailable: 50,
		Unit:              "kg",
	},
	{
		Name:              "Black Pepper",
		Description:       "King of spices - premium black pepper from Western Ghats",
		Price:             800.0,
		ImageURL:          "https://images.unsplash.com/photo-1599940824045-7ac4277b83b4?w=400",
		Region:            "kerala",
		Category:          "Spices",
		ProducerName:      "Priya Menon",
		QuantityAvailable: 100,
		Unit:              "kg",
	},
	{
		Name:              "Fresh Coconuts",
		Description:       "Fresh coconuts rich in water and meat",
		Price:             30.0,
		ImageURL:          "https://images.unsplash.com/photo-1447175008436-054170c2e979?w=400",
		Region:            "kerala",
		Category:          "Fruits",
		ProducerName:      "Ravi Kumar",
		QuantityAvailable: 1000,
		Unit:              "pieces",
	},
	{
		Name:              "Nilgiri Tea",
		Description:       "Premium black tea from Nilgiri mountains",
		Price:             400.0,
		ImageURL:          "https://images.unsplash.com/photo-1594736797933-d0401ba2fe65?w=400",
		Region:            "tamil_nadu",
		Category:          "Beverages",
		ProducerName:      "Murugan Pillai",
		QuantityAvailable: 200,
		Unit:              "kg",
	},
	{
		Name:              "Arabica Coffee Beans",
		Description:       "Premium arabica coffee from Coorg plantations",
		Price:             600.0,
		ImageURL:          "https://images.unsplash.com/photo-1559056199-641a0ac8b55e?w=400",
		Region:            "karnataka",
		Category:          "Beverages",
		ProducerName:      "Chandra Gowda",
		QuantityAvailable: 300,
		Unit:              "kg",
	},
	{
		Name:              "Darjeeling Tea",
		Description:       "World-famous Darjeeling tea with muscatel flavor",
		Price:             800.0,
		ImageURL:          "https://images.unsplash.com/photo-1594736797933-d0401ba2fe65?w=400",
		Region:            "west_bengal",
		Category:          "Beverages",
		ProducerName:      "Bikash Sharma",
		QuantityAvailable: 150,
		Unit:              "kg",
	},
	{
		Name:              "Groundnut Oil",
		Description:       "Pure cold-pressed groundnut oil from Gujarat",
		Price:             150.0,
		ImageURL:          "https://images.unsplash.com/photo-1474979266404-7eaacbcd87c5?w=400",
		Region:            "gujarat",
		Category:          "Oils",
		ProducerName:      "Kiran Patel",
		QuantityAvailable: 500,
		Unit:              "liters",
	},
	{
		Name:              "Mustard Oil",
		Description:       "Pure mustard oil with strong aroma from Rajasthan",
		Price:             120.0,
		ImageURL:          "https://images.unsplash.com/photo-1474979266404-7eaacbcd87c5?w=400",
		Region:            "rajasthan",
		Category:          "Oils",
		ProducerName:      "Ramesh Singh",
		QuantityAvailable: 300,
		Unit:              "liters",
	},
}
