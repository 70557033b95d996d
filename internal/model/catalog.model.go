package model

import "time"

// ProductType discriminates the three catalog families. The string values are
// part of the public URL scheme (/orders/{type}/{id}) and must not change.
type ProductType string

const (
	ProductTypeLicence        ProductType = "licence"
	ProductTypeImeiService    ProductType = "service"
	ProductTypeGeneralService ProductType = "service_general"
)

func (t ProductType) IsValid() bool {
	switch t {
	case ProductTypeLicence, ProductTypeImeiService, ProductTypeGeneralService:
		return true
	}
	return false
}

type Category struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

type Licence struct {
	ID          int64     `json:"id"`
	CategoryID  int64     `json:"category_id"`
	Name        string    `json:"name"`
	Price       uint      `json:"price"`
	Description string    `json:"description"`
	ImageURL    string    `json:"image_url,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

type ImeiService struct {
	ID          int64     `json:"id"`
	CategoryID  int64     `json:"category_id"`
	Name        string    `json:"name"`
	Price       uint      `json:"price"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
}

// GeneralService is a catalog service whose buyer-field requirements are
// declared per row instead of being fixed by the product family.
type GeneralService struct {
	ID           int64     `json:"id"`
	CategoryID   int64     `json:"category_id"`
	Name         string    `json:"name"`
	Price        uint      `json:"price"`
	Description  string    `json:"description"`
	ImageURL     string    `json:"image_url,omitempty"`
	NeedEmail    bool      `json:"need_email"`
	NeedUsername bool      `json:"need_username"`
	NeedImei     bool      `json:"need_imei"`
	NeedPhoto    bool      `json:"need_photo"`
	CreatedAt    time.Time `json:"created_at"`
}

// CustomField is an admin-defined extra buyer answer, attached to exactly one
// catalog row or to a whole category.
type CustomField struct {
	ID               int64  `json:"id"`
	Name             string `json:"name"`
	ValueType        string `json:"value_type"`
	Required         bool   `json:"required"`
	CategoryID       *int64 `json:"category_id,omitempty"`
	LicenceID        *int64 `json:"licence_id,omitempty"`
	ImeiServiceID    *int64 `json:"imei_service_id,omitempty"`
	GeneralServiceID *int64 `json:"general_service_id,omitempty"`
}

// Product is the type-agnostic view of a purchasable catalog row. Price and
// name are copied onto the order at creation time.
type Product struct {
	Type        ProductType `json:"type"`
	ID          int64       `json:"id"`
	CategoryID  int64       `json:"category_id"`
	Name        string      `json:"name"`
	Price       uint        `json:"price"`
	Description string      `json:"description"`

	NeedEmail    bool `json:"need_email"`
	NeedUsername bool `json:"need_username"`
	NeedImei     bool `json:"need_imei"`
	NeedPhoto    bool `json:"need_photo"`
}

// Catalog is the public browse/search payload.
type Catalog struct {
	Licences        []*Licence        `json:"licences"`
	ImeiServices    []*ImeiService    `json:"imei_services"`
	GeneralServices []*GeneralService `json:"general_services"`
}
