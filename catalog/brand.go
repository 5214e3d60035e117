package catalog

import "strings"

const placeholderImage = "placeholder.png"

var brandImages = map[string]string{
	"maruti":   "maruti.avif",
	"hyundai":  "hyuandai.avif",
	"mahindra": "mahindra.avif",
	"tata":     "tata.avif",
	"renault":  "renault.avif",
	"ford":     "ford.avif",
	"honda":    "honda.avif",
	"kia":      "kia.avif",
	"skoda":    "skoda.avif",
	"nissan":   "nissen.avif",
	"datsun":   "datsun.avif",
	"tesla":    "tesla.avif",
	"toyota":   "toyota.avif",
}

// BrandImage returns the image path for a car brand.
func BrandImage(brand string) string {
	name, ok := brandImages[strings.ToLower(brand)]
	if !ok {
		name = placeholderImage
	}
	return "/brand/" + name
}
