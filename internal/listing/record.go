package listing

// Record is one data row of the properties sheet.
type Record struct {
	Code            string  `json:"code"`
	Available       string  `json:"available"`
	Location        string  `json:"location"`
	Date            string  `json:"date"`
	Month           Measure `json:"month"`
	Price           string  `json:"price"`
	Beds            Measure `json:"beds"`
	Baths           Measure `json:"baths"`
	Utilities       string  `json:"utilities"`
	Mts             Measure `json:"mts"`
	Street          string  `json:"street"`
	Number          string  `json:"number"`
	Agency          string  `json:"agency"`
	ID              string  `json:"id"`
	Brochure        string  `json:"brochure"`
	Video           string  `json:"video"`
	WhatsappMessage string  `json:"whatsappMessage"`

	// Agent tracking columns.
	Paulina    string `json:"paulina,omitempty"`
	Alessandra string `json:"alessandra,omitempty"`
	Laura      string `json:"laura,omitempty"`

	// Images and AdditionalImages hold a JSON array of URLs as a single cell.
	Images           string `json:"images,omitempty"`
	AdditionalImages string `json:"additionalImages,omitempty"`

	Notes string `json:"notes,omitempty"`
}

// ImageURLs decodes the main image collection.
func (r Record) ImageURLs() []string {
	return ParseImageCollection(r.Images)
}

// AdditionalImageURLs decodes the additional image collection.
func (r Record) AdditionalImageURLs() []string {
	return ParseImageCollection(r.AdditionalImages)
}

// SetImageURLs stores urls as the main image collection.
func (r *Record) SetImageURLs(urls []string) {
	r.Images = FormatImageCollection(urls)
}

// SetAdditionalImageURLs stores urls as the additional image collection.
func (r *Record) SetAdditionalImageURLs(urls []string) {
	r.AdditionalImages = FormatImageCollection(urls)
}
