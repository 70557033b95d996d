package services

import (
	"context"
	"errors"
	"strings"

	"github.com/skserveur/storefront/internal/model"
)

var (
	ErrNotFound         = errors.New("not found")
	ErrInvalidOwner     = errors.New("custom field must have exactly one owner")
	ErrInvalidProduct   = errors.New("invalid product data")
	ErrUnknownValueType = errors.New("unknown value type")
	allowedValueTypes   = map[string]bool{"text": true, "email": true, "url": true, "number": true}
)

type CatalogRepository interface {
	Browse(ctx context.Context, q string) (*model.Catalog, error)
	GetProduct(ctx context.Context, productType model.ProductType, id int64) (*model.Product, error)
	CustomFieldsFor(ctx context.Context, p *model.Product) ([]*model.CustomField, error)

	ListCategories(ctx context.Context) ([]*model.Category, error)
	GetCategory(ctx context.Context, id int64) (*model.Category, error)
	CreateCategory(ctx context.Context, c *model.Category) (*model.Category, error)
	UpdateCategory(ctx context.Context, c *model.Category) error
	DeleteCategory(ctx context.Context, id int64) error

	CreateLicence(ctx context.Context, l *model.Licence) (*model.Licence, error)
	UpdateLicence(ctx context.Context, l *model.Licence) error
	DeleteLicence(ctx context.Context, id int64) error

	CreateImeiService(ctx context.Context, s *model.ImeiService) (*model.ImeiService, error)
	UpdateImeiService(ctx context.Context, s *model.ImeiService) error
	DeleteImeiService(ctx context.Context, id int64) error

	CreateGeneralService(ctx context.Context, s *model.GeneralService) (*model.GeneralService, error)
	UpdateGeneralService(ctx context.Context, s *model.GeneralService) error
	DeleteGeneralService(ctx context.Context, id int64) error

	ListCustomFields(ctx context.Context) ([]*model.CustomField, error)
	CreateCustomField(ctx context.Context, f *model.CustomField) (*model.CustomField, error)
	UpdateCustomField(ctx context.Context, f *model.CustomField) error
	DeleteCustomField(ctx context.Context, id int64) error
}

type CatalogService struct {
	catalogRepo CatalogRepository
}

func NewCatalogService(catalogRepo CatalogRepository) *CatalogService {
	return &CatalogService{
		catalogRepo: catalogRepo,
	}
}

func (s *CatalogService) Browse(ctx context.Context, q string) (*model.Catalog, error) {
	return s.catalogRepo.Browse(ctx, q)
}

func (s *CatalogService) GetProduct(ctx context.Context, productType model.ProductType, id int64) (*model.Product, error) {
	if !productType.IsValid() {
		return nil, ErrNotFound
	}
	p, err := s.catalogRepo.GetProduct(ctx, productType, id)
	if err != nil {
		return nil, mapNotFound(err)
	}
	return p, nil
}

// FieldsFor computes the effective buyer-field schema of a product. Both the
// form descriptor endpoint and order submission call this, so the rendered
// form and the validated one are always the same.
func (s *CatalogService) FieldsFor(ctx context.Context, p *model.Product) (model.FieldSet, error) {
	custom, err := s.catalogRepo.CustomFieldsFor(ctx, p)
	if err != nil {
		return nil, err
	}
	return model.ResolveFields(p, custom), nil
}

func (s *CatalogService) ListCategories(ctx context.Context) ([]*model.Category, error) {
	return s.catalogRepo.ListCategories(ctx)
}

func (s *CatalogService) CreateCategory(ctx context.Context, c *model.Category) (*model.Category, error) {
	c.Name = strings.TrimSpace(c.Name)
	if c.Name == "" {
		return nil, ErrInvalidProduct
	}
	return s.catalogRepo.CreateCategory(ctx, c)
}

func (s *CatalogService) UpdateCategory(ctx context.Context, c *model.Category) error {
	c.Name = strings.TrimSpace(c.Name)
	if c.Name == "" {
		return ErrInvalidProduct
	}
	return mapNotFound(s.catalogRepo.UpdateCategory(ctx, c))
}

func (s *CatalogService) DeleteCategory(ctx context.Context, id int64) error {
	return mapNotFound(s.catalogRepo.DeleteCategory(ctx, id))
}

func (s *CatalogService) CreateLicence(ctx context.Context, l *model.Licence) (*model.Licence, error) {
	if err := s.checkProductRow(ctx, l.CategoryID, l.Name); err != nil {
		return nil, err
	}
	return s.catalogRepo.CreateLicence(ctx, l)
}

func (s *CatalogService) UpdateLicence(ctx context.Context, l *model.Licence) error {
	if err := s.checkProductRow(ctx, l.CategoryID, l.Name); err != nil {
		return err
	}
	return mapNotFound(s.catalogRepo.UpdateLicence(ctx, l))
}

func (s *CatalogService) DeleteLicence(ctx context.Context, id int64) error {
	return mapNotFound(s.catalogRepo.DeleteLicence(ctx, id))
}

func (s *CatalogService) CreateImeiService(ctx context.Context, sv *model.ImeiService) (*model.ImeiService, error) {
	if err := s.checkProductRow(ctx, sv.CategoryID, sv.Name); err != nil {
		return nil, err
	}
	return s.catalogRepo.CreateImeiService(ctx, sv)
}

func (s *CatalogService) UpdateImeiService(ctx context.Context, sv *model.ImeiService) error {
	if err := s.checkProductRow(ctx, sv.CategoryID, sv.Name); err != nil {
		return err
	}
	return mapNotFound(s.catalogRepo.UpdateImeiService(ctx, sv))
}

func (s *CatalogService) DeleteImeiService(ctx context.Context, id int64) error {
	return mapNotFound(s.catalogRepo.DeleteImeiService(ctx, id))
}

func (s *CatalogService) CreateGeneralService(ctx context.Context, sv *model.GeneralService) (*model.GeneralService, error) {
	if err := s.checkProductRow(ctx, sv.CategoryID, sv.Name); err != nil {
		return nil, err
	}
	return s.catalogRepo.CreateGeneralService(ctx, sv)
}

func (s *CatalogService) UpdateGeneralService(ctx context.Context, sv *model.GeneralService) error {
	if err := s.checkProductRow(ctx, sv.CategoryID, sv.Name); err != nil {
		return err
	}
	return mapNotFound(s.catalogRepo.UpdateGeneralService(ctx, sv))
}

func (s *CatalogService) DeleteGeneralService(ctx context.Context, id int64) error {
	return mapNotFound(s.catalogRepo.DeleteGeneralService(ctx, id))
}

func (s *CatalogService) ListCustomFields(ctx context.Context) ([]*model.CustomField, error) {
	return s.catalogRepo.ListCustomFields(ctx)
}

func (s *CatalogService) CreateCustomField(ctx context.Context, f *model.CustomField) (*model.CustomField, error) {
	if err := validateCustomField(f); err != nil {
		return nil, err
	}
	return s.catalogRepo.CreateCustomField(ctx, f)
}

func (s *CatalogService) UpdateCustomField(ctx context.Context, f *model.CustomField) error {
	if err := validateCustomField(f); err != nil {
		return err
	}
	return mapNotFound(s.catalogRepo.UpdateCustomField(ctx, f))
}

func (s *CatalogService) DeleteCustomField(ctx context.Context, id int64) error {
	return mapNotFound(s.catalogRepo.DeleteCustomField(ctx, id))
}

func (s *CatalogService) checkProductRow(ctx context.Context, categoryID int64, name string) error {
	if strings.TrimSpace(name) == "" {
		return ErrInvalidProduct
	}
	if _, err := s.catalogRepo.GetCategory(ctx, categoryID); err != nil {
		return mapNotFound(err)
	}
	return nil
}

func validateCustomField(f *model.CustomField) error {
	f.Name = strings.TrimSpace(f.Name)
	if f.Name == "" {
		return ErrInvalidProduct
	}
	if f.ValueType == "" {
		f.ValueType = "text"
	}
	if !allowedValueTypes[f.ValueType] {
		return ErrUnknownValueType
	}

	owners := 0
	for _, owner := range []*int64{f.CategoryID, f.LicenceID, f.ImeiServiceID, f.GeneralServiceID} {
		if owner != nil {
			owners++
		}
	}
	if owners != 1 {
		return ErrInvalidOwner
	}
	return nil
}

func mapNotFound(err error) error {
	if err == nil {
		return nil
	}
	if isRepoNotFound(err) {
		return ErrNotFound
	}
	return err
}
