package dto

// ProductFilters narrows a store's products. Nil or empty fields are ignored.
type ProductFilters struct {
	StoreID     string
	Name        string // case-insensitive substring
	MinQuantity *int   // inclusive
	MaxQuantity *int   // inclusive
}

// WithName and the other setters return the filter so callers can chain
// them.
func (f *ProductFilters) WithName(name string) *ProductFilters {
	f.Name = name
	return f
}

func (f *ProductFilters) WithMinQuantity(q int) *ProductFilters {
	f.MinQuantity = &q
	return f
}

func (f *ProductFilters) WithMaxQuantity(q int) *ProductFilters {
	f.MaxQuantity = &q
	return f
}

type AdjustQuantityInput struct {
	ProductID   string `json:"productId" validate:"required"`
	NewQuantity int    `json:"newQuantity" validate:"gte=0"`
}
