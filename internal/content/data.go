package content

// Default returns the restaurant's own dataset.
func Default() *Store {
	return NewStore(defaultMenu, defaultTestimonials, defaultPhotos)
}

var defaultMenu = []MenuItem{
	{
		Name:        "Salmorejo cordobés",
		Description: "Crema fría de tomate con jamón ibérico y huevo duro.",
		Category:    "Entrantes",
		PriceCents:  750,
		Image:       "/static/images/salmorejo.jpg",
	},
	{
		Name:        "Croquetas caseras",
		Description: "Croquetas cremosas de jamón y de boletus, ocho unidades.",
		Category:    "Entrantes",
		PriceCents:  900,
		Image:       "/static/images/croquetas.jpg",
	},
	{
		Name:        "Paella de marisco",
		Description: "Arroz de la casa con gambas, mejillones y calamar. Mínimo dos personas, precio por persona.",
		Category:    "Principales",
		PriceCents:  1850,
		Image:       "/static/images/paella.jpg",
	},
	{
		Name:        "Secreto ibérico",
		Description: "A la brasa, con patatas panaderas y pimientos de Padrón.",
		Category:    "Principales",
		PriceCents:  1650,
		Image:       "/static/images/secreto.jpg",
	},
	{
		Name:        "Bacalao al pil-pil",
		Description: "Lomo de bacalao confitado en aceite de oliva con ajo y guindilla.",
		Category:    "Principales",
		PriceCents:  1900,
		Image:       "/static/images/bacalao.jpg",
	},
	{
		Name:        "Tarta de queso",
		Description: "Al horno, cremosa por dentro, con frutos rojos.",
		Category:    "Postres",
		PriceCents:  600,
		Image:       "/static/images/tarta.jpg",
	},
	{
		Name:        "Crema catalana",
		Description: "Con azúcar caramelizado al momento.",
		Category:    "Postres",
		PriceCents:  550,
		Image:       "/static/images/crema.jpg",
	},
}

var defaultTestimonials = []Testimonial{
	{Author: "Lucía M.", Quote: "La mejor paella que he probado fuera de Valencia. Volveremos.", Rating: 5},
	{Author: "James P.", Quote: "Friendly staff, great wine list and a lovely terrace.", Rating: 5},
	{Author: "Carlos R.", Quote: "Las croquetas, espectaculares. El servicio, rápido y atento.", Rating: 4},
}

var defaultPhotos = []Photo{
	{Src: "/static/images/foto1.jpg", Alt: "Comedor principal"},
	{Src: "/static/images/foto2.jpg", Alt: "Terraza"},
}
