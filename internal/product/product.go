package product

// Product represents a caftan in the catalog and maps to the `public.product`
// table. JSON tags follow the camelCase convention used elsewhere in the project.
//
// The list-valued attributes (details, images, tags and their English
// counterparts) are stored as JSON-encoded text columns; the repository decodes
// them on every read so handlers only ever see native slices.
type Product struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	NameEn        string `json:"nameEn"`
	Description   string `json:"description"`
	DescriptionEn string `json:"descriptionEn"`
	// Price and PriceEn are free-form display strings ("150 د.ك"). An empty
	// string means "price on request", not zero.
	Price     string   `json:"price"`
	PriceEn   string   `json:"priceEn"`
	Details   []string `json:"details"`
	DetailsEn []string `json:"detailsEn"`
	Images    []string `json:"images"`
	Tags      []string `json:"tags"`
	TagsEn    []string `json:"tagsEn"`
	// Featured marks promotional emphasis and never affects visibility;
	// Active gates storefront visibility.
	Featured  bool   `json:"featured"`
	Active    bool   `json:"active"`
	Views     int    `json:"views"`
	Likes     int    `json:"likes"`
	CreatedAt string `json:"createdAt,omitempty"`
	UpdatedAt string `json:"updatedAt,omitempty"`
}

// Patch carries a merge-patch for an existing product: only fields present in
// the request body are applied. Pointer types keep an explicit `false` or empty
// string distinguishable from an omitted field.
type Patch struct {
	Name          *string   `json:"name"`
	NameEn        *string   `json:"nameEn"`
	Description   *string   `json:"description"`
	DescriptionEn *string   `json:"descriptionEn"`
	Price         *string   `json:"price"`
	PriceEn       *string   `json:"priceEn"`
	Details       *[]string `json:"details"`
	DetailsEn     *[]string `json:"detailsEn"`
	Images        *[]string `json:"images"`
	Tags          *[]string `json:"tags"`
	TagsEn        *[]string `json:"tagsEn"`
	Featured      *bool     `json:"featured"`
	Active        *bool     `json:"active"`
}

// Apply merges the patch into p. Counters and timestamps are never touched
// here; they move only through their dedicated operations.
func (patch Patch) Apply(p *Product) {
	if patch.Name != nil {
		p.Name = *patch.Name
	}
	if patch.NameEn != nil {
		p.NameEn = *patch.NameEn
	}
	if patch.Description != nil {
		p.Description = *patch.Description
	}
	if patch.DescriptionEn != nil {
		p.DescriptionEn = *patch.DescriptionEn
	}
	if patch.Price != nil {
		p.Price = *patch.Price
	}
	if patch.PriceEn != nil {
		p.PriceEn = *patch.PriceEn
	}
	if patch.Details != nil {
		p.Details = *patch.Details
	}
	if patch.DetailsEn != nil {
		p.DetailsEn = *patch.DetailsEn
	}
	if patch.Images != nil {
		p.Images = *patch.Images
	}
	if patch.Tags != nil {
		p.Tags = *patch.Tags
	}
	if patch.TagsEn != nil {
		p.TagsEn = *patch.TagsEn
	}
	if patch.Featured != nil {
		p.Featured = *patch.Featured
	}
	if patch.Active != nil {
		p.Active = *patch.Active
	}
}

// normalizeLists replaces nil slices with empty ones so encoded columns and
// JSON responses always carry arrays.
func (p *Product) normalizeLists() {
	if p.Details == nil {
		p.Details = []string{}
	}
	if p.DetailsEn == nil {
		p.DetailsEn = []string{}
	}
	if p.Images == nil {
		p.Images = []string{}
	}
	if p.Tags == nil {
		p.Tags = []string{}
	}
	if p.TagsEn == nil {
		p.TagsEn = []string{}
	}
}
