package repository

import (
	"context"
	"errors"
	"strings"

	"github.com/skserveur/storefront/internal/model"
	"github.com/skserveur/storefront/pkg/pg"
	"gorm.io/gorm"
)

var (
	ErrProductNotFound     = errors.New("product not found")
	ErrCategoryNotFound    = errors.New("category not found")
	ErrCustomFieldNotFound = errors.New("custom field not found")
)

type CatalogRepository struct {
	*pg.DB
}

func NewCatalogRepository(db *pg.DB) *CatalogRepository {
	return &CatalogRepository{
		db,
	}
}

// Browse returns the whole catalog, or the rows matching q when it is
// non-blank. Matching is case-insensitive on name and description.
func (r *CatalogRepository) Browse(ctx context.Context, q string) (*model.Catalog, error) {
	q = strings.TrimSpace(q)
	pattern := "%" + strings.ToLower(q) + "%"

	filtered := func(db *gorm.DB) *gorm.DB {
		if q == "" {
			return db
		}
		return db.Where("LOWER(name) LIKE ? OR LOWER(description) LIKE ?", pattern, pattern)
	}

	catalog := &model.Catalog{
		Licences:        []*model.Licence{},
		ImeiServices:    []*model.ImeiService{},
		GeneralServices: []*model.GeneralService{},
	}

	var licences []*LicenceEntity
	if err := filtered(r.Read(ctx).WithContext(ctx)).Order("name ASC").Find(&licences).Error; err != nil {
		return nil, err
	}
	for _, e := range licences {
		catalog.Licences = append(catalog.Licences, toLicenceModel(e))
	}

	var imeiServices []*ImeiServiceEntity
	if err := filtered(r.Read(ctx).WithContext(ctx)).Order("name ASC").Find(&imeiServices).Error; err != nil {
		return nil, err
	}
	for _, e := range imeiServices {
		catalog.ImeiServices = append(catalog.ImeiServices, toImeiServiceModel(e))
	}

	var generalServices []*GeneralServiceEntity
	if err := filtered(r.Read(ctx).WithContext(ctx)).Order("name ASC").Find(&generalServices).Error; err != nil {
		return nil, err
	}
	for _, e := range generalServices {
		catalog.GeneralServices = append(catalog.GeneralServices, toGeneralServiceModel(e))
	}

	return catalog, nil
}

// GetProduct loads one purchasable row as the type-agnostic Product view.
// Licences demand email and username, imei services additionally demand an
// imei, and general services carry their own flags.
func (r *CatalogRepository) GetProduct(ctx context.Context, productType model.ProductType, id int64) (*model.Product, error) {
	switch productType {
	case model.ProductTypeLicence:
		var e LicenceEntity
		if err := r.first(ctx, &e, id); err != nil {
			return nil, err
		}
		return &model.Product{
			Type:         productType,
			ID:           e.ID,
			CategoryID:   e.CategoryID,
			Name:         e.Name,
			Price:        e.Price,
			Description:  e.Description,
			NeedEmail:    true,
			NeedUsername: true,
		}, nil

	case model.ProductTypeImeiService:
		var e ImeiServiceEntity
		if err := r.first(ctx, &e, id); err != nil {
			return nil, err
		}
		return &model.Product{
			Type:         productType,
			ID:           e.ID,
			CategoryID:   e.CategoryID,
			Name:         e.Name,
			Price:        e.Price,
			Description:  e.Description,
			NeedEmail:    true,
			NeedUsername: true,
			NeedImei:     true,
		}, nil

	case model.ProductTypeGeneralService:
		var e GeneralServiceEntity
		if err := r.first(ctx, &e, id); err != nil {
			return nil, err
		}
		return &model.Product{
			Type:         productType,
			ID:           e.ID,
			CategoryID:   e.CategoryID,
			Name:         e.Name,
			Price:        e.Price,
			Description:  e.Description,
			NeedEmail:    e.NeedEmail,
			NeedUsername: e.NeedUsername,
			NeedImei:     e.NeedImei,
			NeedPhoto:    e.NeedPhoto,
		}, nil
	}

	return nil, ErrProductNotFound
}

func (r *CatalogRepository) first(ctx context.Context, dest interface{}, id int64) error {
	err := r.Read(ctx).WithContext(ctx).Where("id = ?", id).First(dest).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrProductNotFound
	}
	return err
}

// CustomFieldsFor returns the admin-defined fields attached either to the
// product row itself or to its whole category.
func (r *CatalogRepository) CustomFieldsFor(ctx context.Context, p *model.Product) ([]*model.CustomField, error) {
	var ownerColumn string
	switch p.Type {
	case model.ProductTypeLicence:
		ownerColumn = "licence_id"
	case model.ProductTypeImeiService:
		ownerColumn = "imei_service_id"
	case model.ProductTypeGeneralService:
		ownerColumn = "general_service_id"
	default:
		return nil, ErrProductNotFound
	}

	var entities []*CustomFieldEntity
	err := r.Read(ctx).WithContext(ctx).
		Where(ownerColumn+" = ? OR category_id = ?", p.ID, p.CategoryID).
		Order("id ASC").
		Find(&entities).Error
	if err != nil {
		return nil, err
	}

	fields := make([]*model.CustomField, len(entities))
	for i, e := range entities {
		fields[i] = toCustomFieldModel(e)
	}
	return fields, nil
}

func (r *CatalogRepository) ListCategories(ctx context.Context) ([]*model.Category, error) {
	var entities []*CategoryEntity
	if err := r.Read(ctx).WithContext(ctx).Order("name ASC").Find(&entities).Error; err != nil {
		return nil, err
	}
	categories := make([]*model.Category, len(entities))
	for i, e := range entities {
		categories[i] = toCategoryModel(e)
	}
	return categories, nil
}

func (r *CatalogRepository) GetCategory(ctx context.Context, id int64) (*model.Category, error) {
	var entity CategoryEntity
	err := r.Read(ctx).WithContext(ctx).Where("id = ?", id).First(&entity).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCategoryNotFound
		}
		return nil, err
	}
	return toCategoryModel(&entity), nil
}

func (r *CatalogRepository) CreateCategory(ctx context.Context, c *model.Category) (*model.Category, error) {
	entity := toCategoryEntity(c)
	if err := r.Write(ctx).WithContext(ctx).Create(entity).Error; err != nil {
		return nil, err
	}
	return toCategoryModel(entity), nil
}

func (r *CatalogRepository) UpdateCategory(ctx context.Context, c *model.Category) error {
	result := r.Write(ctx).WithContext(ctx).
		Model(&CategoryEntity{}).
		Where("id = ?", c.ID).
		Update("name", c.Name)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrCategoryNotFound
	}
	return nil
}

func (r *CatalogRepository) DeleteCategory(ctx context.Context, id int64) error {
	result := r.Write(ctx).WithContext(ctx).Delete(&CategoryEntity{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrCategoryNotFound
	}
	return nil
}

func (r *CatalogRepository) CreateLicence(ctx context.Context, l *model.Licence) (*model.Licence, error) {
	entity := toLicenceEntity(l)
	if err := r.Write(ctx).WithContext(ctx).Create(entity).Error; err != nil {
		return nil, err
	}
	return toLicenceModel(entity), nil
}

func (r *CatalogRepository) UpdateLicence(ctx context.Context, l *model.Licence) error {
	result := r.Write(ctx).WithContext(ctx).
		Model(&LicenceEntity{}).
		Where("id = ?", l.ID).
		Updates(map[string]interface{}{
			"category_id": l.CategoryID,
			"name":        l.Name,
			"price":       l.Price,
			"description": l.Description,
			"image_url":   l.ImageURL,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrProductNotFound
	}
	return nil
}

func (r *CatalogRepository) DeleteLicence(ctx context.Context, id int64) error {
	result := r.Write(ctx).WithContext(ctx).Delete(&LicenceEntity{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrProductNotFound
	}
	return nil
}

func (r *CatalogRepository) CreateImeiService(ctx context.Context, s *model.ImeiService) (*model.ImeiService, error) {
	entity := toImeiServiceEntity(s)
	if err := r.Write(ctx).WithContext(ctx).Create(entity).Error; err != nil {
		return nil, err
	}
	return toImeiServiceModel(entity), nil
}

func (r *CatalogRepository) UpdateImeiService(ctx context.Context, s *model.ImeiService) error {
	result := r.Write(ctx).WithContext(ctx).
		Model(&ImeiServiceEntity{}).
		Where("id = ?", s.ID).
		Updates(map[string]interface{}{
			"category_id": s.CategoryID,
			"name":        s.Name,
			"price":       s.Price,
			"description": s.Description,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrProductNotFound
	}
	return nil
}

func (r *CatalogRepository) DeleteImeiService(ctx context.Context, id int64) error {
	result := r.Write(ctx).WithContext(ctx).Delete(&ImeiServiceEntity{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrProductNotFound
	}
	return nil
}

func (r *CatalogRepository) CreateGeneralService(ctx context.Context, s *model.GeneralService) (*model.GeneralService, error) {
	entity := toGeneralServiceEntity(s)
	if err := r.Write(ctx).WithContext(ctx).Create(entity).Error; err != nil {
		return nil, err
	}
	return toGeneralServiceModel(entity), nil
}

func (r *CatalogRepository) UpdateGeneralService(ctx context.Context, s *model.GeneralService) error {
	result := r.Write(ctx).WithContext(ctx).
		Model(&GeneralServiceEntity{}).
		Where("id = ?", s.ID).
		Updates(map[string]interface{}{
			"category_id":   s.CategoryID,
			"name":          s.Name,
			"price":         s.Price,
			"description":   s.Description,
			"image_url":     s.ImageURL,
			"need_email":    s.NeedEmail,
			"need_username": s.NeedUsername,
			"need_imei":     s.NeedImei,
			"need_photo":    s.NeedPhoto,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrProductNotFound
	}
	return nil
}

func (r *CatalogRepository) DeleteGeneralService(ctx context.Context, id int64) error {
	result := r.Write(ctx).WithContext(ctx).Delete(&GeneralServiceEntity{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrProductNotFound
	}
	return nil
}

func (r *CatalogRepository) ListCustomFields(ctx context.Context) ([]*model.CustomField, error) {
	var entities []*CustomFieldEntity
	if err := r.Read(ctx).WithContext(ctx).Order("id ASC").Find(&entities).Error; err != nil {
		return nil, err
	}
	fields := make([]*model.CustomField, len(entities))
	for i, e := range entities {
		fields[i] = toCustomFieldModel(e)
	}
	return fields, nil
}

func (r *CatalogRepository) CreateCustomField(ctx context.Context, f *model.CustomField) (*model.CustomField, error) {
	entity := toCustomFieldEntity(f)
	if err := r.Write(ctx).WithContext(ctx).Create(entity).Error; err != nil {
		return nil, err
	}
	return toCustomFieldModel(entity), nil
}

func (r *CatalogRepository) UpdateCustomField(ctx context.Context, f *model.CustomField) error {
	result := r.Write(ctx).WithContext(ctx).
		Model(&CustomFieldEntity{}).
		Where("id = ?", f.ID).
		Updates(map[string]interface{}{
			"name":               f.Name,
			"value_type":         f.ValueType,
			"required":           f.Required,
			"category_id":        f.CategoryID,
			"licence_id":         f.LicenceID,
			"imei_service_id":    f.ImeiServiceID,
			"general_service_id": f.GeneralServiceID,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrCustomFieldNotFound
	}
	return nil
}

func (r *CatalogRepository) DeleteCustomField(ctx context.Context, id int64) error {
	result := r.Write(ctx).WithContext(ctx).Delete(&CustomFieldEntity{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrCustomFieldNotFound
	}
	return nil
}
