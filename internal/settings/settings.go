package settings

// Settings is the single site-wide record: contact details, hero images and
// the bilingual about text. There is exactly one logical row.
type Settings struct {
	Phone           string `json:"phone"`
	Whatsapp        string `json:"whatsapp"`
	Instagram       string `json:"instagram"`
	Email           string `json:"email"`
	HeroImage       string `json:"heroImage"`
	HeroImageMobile string `json:"heroImageMobile"`
	About           string `json:"about"`
	AboutEn         string `json:"aboutEn"`
	UpdatedAt       string `json:"updatedAt,omitempty"`
}

// Patch is a merge-patch over the singleton; omitted fields keep their value.
type Patch struct {
	Phone           *string `json:"phone"`
	Whatsapp        *string `json:"whatsapp"`
	Instagram       *string `json:"instagram"`
	Email           *string `json:"email"`
	HeroImage       *string `json:"heroImage"`
	HeroImageMobile *string `json:"heroImageMobile"`
	About           *string `json:"about"`
	AboutEn         *string `json:"aboutEn"`
}

func (patch Patch) Apply(s *Settings) {
	if patch.Phone != nil {
		s.Phone = *patch.Phone
	}
	if patch.Whatsapp != nil {
		s.Whatsapp = *patch.Whatsapp
	}
	if patch.Instagram != nil {
		s.Instagram = *patch.Instagram
	}
	if patch.Email != nil {
		s.Email = *patch.Email
	}
	if patch.HeroImage != nil {
		s.HeroImage = *patch.HeroImage
	}
	if patch.HeroImageMobile != nil {
		s.HeroImageMobile = *patch.HeroImageMobile
	}
	if patch.About != nil {
		s.About = *patch.About
	}
	if patch.AboutEn != nil {
		s.AboutEn = *patch.AboutEn
	}
}
