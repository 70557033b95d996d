package model

import "strings"

// Builtin buyer-field names. These double as POST keys and as the field
// identifier in validation errors.
const (
	FieldEmail    = "email"
	FieldUsername = "service_username"
	FieldImei     = "imei"
	FieldPhoto    = "photo_link"
)

// FieldSpec describes one buyer answer a product demands.
type FieldSpec struct {
	Name          string `json:"name"`
	ValueType     string `json:"value_type"`
	Required      bool   `json:"required"`
	Builtin       bool   `json:"builtin"`
	CustomFieldID int64  `json:"-"`
}

// FieldSet is the effective required-field schema of a product. It is computed
// once per request and shared by the form-render and the submit path, so the
// two can never diverge.
type FieldSet []FieldSpec

// ResolveFields builds the field set for a product: the builtin flags of the
// product family first, then the admin-defined custom fields attached to the
// row or its category, de-duplicated by case-insensitive name.
func ResolveFields(p *Product, custom []*CustomField) FieldSet {
	set := FieldSet{}
	if p.NeedEmail {
		set = append(set, FieldSpec{Name: FieldEmail, ValueType: "email", Required: true, Builtin: true})
	}
	if p.NeedUsername {
		set = append(set, FieldSpec{Name: FieldUsername, ValueType: "text", Required: true, Builtin: true})
	}
	if p.NeedImei {
		set = append(set, FieldSpec{Name: FieldImei, ValueType: "text", Required: true, Builtin: true})
	}
	if p.NeedPhoto {
		set = append(set, FieldSpec{Name: FieldPhoto, ValueType: "url", Required: true, Builtin: true})
	}

	seen := make(map[string]bool, len(set))
	for _, f := range set {
		seen[f.Name] = true
	}
	for _, cf := range custom {
		name := strings.ToLower(strings.TrimSpace(cf.Name))
		if name == "" || seen[name] {
			continue
		}
		seen[name] = true
		vt := cf.ValueType
		if vt == "" {
			vt = "text"
		}
		set = append(set, FieldSpec{
			Name:          name,
			ValueType:     vt,
			Required:      cf.Required,
			CustomFieldID: cf.ID,
		})
	}
	return set
}

// Missing returns the names of required fields that have no non-blank value,
// in schema order.
func (s FieldSet) Missing(values map[string]string) []string {
	var missing []string
	for _, f := range s {
		if !f.Required {
			continue
		}
		if strings.TrimSpace(values[f.Name]) == "" {
			missing = append(missing, f.Name)
		}
	}
	return missing
}

// CustomAnswers extracts the submitted values that map to custom fields of the
// set. Unknown POST keys are dropped.
func (s FieldSet) CustomAnswers(values map[string]string) []OrderFieldValue {
	var answers []OrderFieldValue
	for _, f := range s {
		if f.Builtin {
			continue
		}
		v := strings.TrimSpace(values[f.Name])
		if v == "" {
			continue
		}
		answers = append(answers, OrderFieldValue{
			CustomFieldID: f.CustomFieldID,
			Name:          f.Name,
			Value:         v,
		})
	}
	return answers
}
