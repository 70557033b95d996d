package repository

import (
	"time"

	"github.com/skserveur/storefront/internal/model"
)

type CategoryEntity struct {
	ID        int64     `db:"id"         gorm:"primaryKey;autoIncrement;column:id"`
	Name      string    `db:"name"       gorm:"column:name;not null;uniqueIndex"`
	CreatedAt time.Time `db:"created_at" gorm:"column:created_at;autoCreateTime"`
}

func (CategoryEntity) TableName() string {
	return "categories"
}

type LicenceEntity struct {
	ID          int64     `db:"id"          gorm:"primaryKey;autoIncrement;column:id"`
	CategoryID  int64     `db:"category_id" gorm:"column:category_id;not null;index"`
	Name        string    `db:"name"        gorm:"column:name;not null"`
	Price       uint      `db:"price"       gorm:"column:price;not null"`
	Description string    `db:"description" gorm:"column:description"`
	ImageURL    string    `db:"image_url"   gorm:"column:image_url"`
	CreatedAt   time.Time `db:"created_at"  gorm:"column:created_at;autoCreateTime"`
}

func (LicenceEntity) TableName() string {
	return "licences"
}

type ImeiServiceEntity struct {
	ID          int64     `db:"id"          gorm:"primaryKey;autoIncrement;column:id"`
	CategoryID  int64     `db:"category_id" gorm:"column:category_id;not null;index"`
	Name        string    `db:"name"        gorm:"column:name;not null"`
	Price       uint      `db:"price"       gorm:"column:price;not null"`
	Description string    `db:"description" gorm:"column:description"`
	CreatedAt   time.Time `db:"created_at"  gorm:"column:created_at;autoCreateTime"`
}

func (ImeiServiceEntity) TableName() string {
	return "imei_services"
}

type GeneralServiceEntity struct {
	ID           int64     `db:"id"            gorm:"primaryKey;autoIncrement;column:id"`
	CategoryID   int64     `db:"category_id"   gorm:"column:category_id;not null;index"`
	Name         string    `db:"name"          gorm:"column:name;not null"`
	Price        uint      `db:"price"         gorm:"column:price;not null"`
	Description  string    `db:"description"   gorm:"column:description"`
	ImageURL     string    `db:"image_url"     gorm:"column:image_url"`
	NeedEmail    bool      `db:"need_email"    gorm:"column:need_email;not null;default:false"`
	NeedUsername bool      `db:"need_username" gorm:"column:need_username;not null;default:false"`
	NeedImei     bool      `db:"need_imei"     gorm:"column:need_imei;not null;default:false"`
	NeedPhoto    bool      `db:"need_photo"    gorm:"column:need_photo;not null;default:false"`
	CreatedAt    time.Time `db:"created_at"    gorm:"column:created_at;autoCreateTime"`
}

func (GeneralServiceEntity) TableName() string {
	return "general_services"
}

type CustomFieldEntity struct {
	ID               int64  `db:"id"                 gorm:"primaryKey;autoIncrement;column:id"`
	Name             string `db:"name"               gorm:"column:name;not null"`
	ValueType        string `db:"value_type"         gorm:"column:value_type;not null;default:text"`
	Required         bool   `db:"required"           gorm:"column:required;not null;default:true"`
	CategoryID       *int64 `db:"category_id"        gorm:"column:category_id;index"`
	LicenceID        *int64 `db:"licence_id"         gorm:"column:licence_id;index"`
	ImeiServiceID    *int64 `db:"imei_service_id"    gorm:"column:imei_service_id;index"`
	GeneralServiceID *int64 `db:"general_service_id" gorm:"column:general_service_id;index"`
}

func (CustomFieldEntity) TableName() string {
	return "custom_fields"
}

func toCategoryModel(e *CategoryEntity) *model.Category {
	if e == nil {
		return nil
	}
	return &model.Category{ID: e.ID, Name: e.Name, CreatedAt: e.CreatedAt}
}

func toCategoryEntity(m *model.Category) *CategoryEntity {
	if m == nil {
		return nil
	}
	return &CategoryEntity{ID: m.ID, Name: m.Name, CreatedAt: m.CreatedAt}
}

func toLicenceModel(e *LicenceEntity) *model.Licence {
	if e == nil {
		return nil
	}
	return &model.Licence{
		ID:          e.ID,
		CategoryID:  e.CategoryID,
		Name:        e.Name,
		Price:       e.Price,
		Description: e.Description,
		ImageURL:    e.ImageURL,
		CreatedAt:   e.CreatedAt,
	}
}

func toLicenceEntity(m *model.Licence) *LicenceEntity {
	if m == nil {
		return nil
	}
	return &LicenceEntity{
		ID:          m.ID,
		CategoryID:  m.CategoryID,
		Name:        m.Name,
		Price:       m.Price,
		Description: m.Description,
		ImageURL:    m.ImageURL,
		CreatedAt:   m.CreatedAt,
	}
}

func toImeiServiceModel(e *ImeiServiceEntity) *model.ImeiService {
	if e == nil {
		return nil
	}
	return &model.ImeiService{
		ID:          e.ID,
		CategoryID:  e.CategoryID,
		Name:        e.Name,
		Price:       e.Price,
		Description: e.Description,
		CreatedAt:   e.CreatedAt,
	}
}

func toImeiServiceEntity(m *model.ImeiService) *ImeiServiceEntity {
	if m == nil {
		return nil
	}
	return &ImeiServiceEntity{
		ID:          m.ID,
		CategoryID:  m.CategoryID,
		Name:        m.Name,
		Price:       m.Price,
		Description: m.Description,
		CreatedAt:   m.CreatedAt,
	}
}

func toGeneralServiceModel(e *GeneralServiceEntity) *model.GeneralService {
	if e == nil {
		return nil
	}
	return &model.GeneralService{
		ID:           e.ID,
		CategoryID:   e.CategoryID,
		Name:         e.Name,
		Price:        e.Price,
		Description:  e.Description,
		ImageURL:     e.ImageURL,
		NeedEmail:    e.NeedEmail,
		NeedUsername: e.NeedUsername,
		NeedImei:     e.NeedImei,
		NeedPhoto:    e.NeedPhoto,
		CreatedAt:    e.CreatedAt,
	}
}

func toGeneralServiceEntity(m *model.GeneralService) *GeneralServiceEntity {
	if m == nil {
		return nil
	}
	return &GeneralServiceEntity{
		ID:           m.ID,
		CategoryID:   m.CategoryID,
		Name:         m.Name,
		Price:        m.Price,
		Description:  m.Description,
		ImageURL:     m.ImageURL,
		NeedEmail:    m.NeedEmail,
		NeedUsername: m.NeedUsername,
		NeedImei:     m.NeedImei,
		NeedPhoto:    m.NeedPhoto,
		CreatedAt:    m.CreatedAt,
	}
}

func toCustomFieldModel(e *CustomFieldEntity) *model.CustomField {
	if e == nil {
		return nil
	}
	return &model.CustomField{
		ID:               e.ID,
		Name:             e.Name,
		ValueType:        e.ValueType,
		Required:         e.Required,
		CategoryID:       e.CategoryID,
		LicenceID:        e.LicenceID,
		ImeiServiceID:    e.ImeiServiceID,
		GeneralServiceID: e.GeneralServiceID,
	}
}

func toCustomFieldEntity(m *model.CustomField) *CustomFieldEntity {
	if m == nil {
		return nil
	}
	return &CustomFieldEntity{
		ID:               m.ID,
		Name:             m.Name,
		ValueType:        m.ValueType,
		Required:         m.Required,
		CategoryID:       m.CategoryID,
		LicenceID:        m.LicenceID,
		ImeiServiceID:    m.ImeiServiceID,
		GeneralServiceID: m.GeneralServiceID,
	}
}
