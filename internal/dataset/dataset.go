// Package dataset loads supplier and product records, either from the embedded
// reference fixtures or from caller-supplied JSON.
package dataset

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"

	"github.com/rshade/greenprocure/internal/supplier"
)

//go:embed data/suppliers.json
var rawSuppliersJSON []byte

//go:embed data/products.json
var rawProductsJSON []byte

// ErrDuplicateID indicates two records sharing an ID in one file.
var ErrDuplicateID = errors.New("duplicate record id")

// Dataset is an immutable set of suppliers and products.
type Dataset struct {
	suppliers     []supplier.Supplier
	products      []supplier.Product
	supplierIndex map[string]int
	productIndex  map[string]int
}

var (
	defaultDataset     *Dataset
	defaultDatasetErr  error
	defaultDatasetOnce sync.Once
)

// Default returns the embedded reference dataset, parsed and validated once.
func Default() (*Dataset, error) {
	defaultDatasetOnce.Do(func() {
		defaultDataset, defaultDatasetErr = Load(
			bytes.NewReader(rawSuppliersJSON),
			bytes.NewReader(rawProductsJSON),
		)
	})
	return defaultDataset, defaultDatasetErr
}

// Load builds a Dataset from supplier and product JSON arrays.
// A nil products reader yields a dataset without products.
func Load(suppliers, products io.Reader) (*Dataset, error) {
	ss, err := LoadSuppliers(suppliers)
	if err != nil {
		return nil, err
	}
	var ps []supplier.Product
	if products != nil {
		if ps, err = LoadProducts(products); err != nil {
			return nil, err
		}
	}
	return New(ss, ps), nil
}

// New wraps already-decoded records. Records are copied; the caller's slices
// are not retained.
func New(suppliers []supplier.Supplier, products []supplier.Product) *Dataset {
	d := &Dataset{
		suppliers:     append([]supplier.Supplier(nil), suppliers...),
		products:      append([]supplier.Product(nil), products...),
		supplierIndex: make(map[string]int, len(suppliers)),
		productIndex:  make(map[string]int, len(products)),
	}
	for i, s := range d.suppliers {
		d.supplierIndex[s.ID] = i
	}
	for i, p := range d.products {
		d.productIndex[p.ID] = i
	}
	return d
}

// LoadSuppliers decodes and validates a JSON array of suppliers.
// Every invalid record is reported, joined into one error.
func LoadSuppliers(r io.Reader) ([]supplier.Supplier, error) {
	var out []supplier.Supplier
	if err := json.NewDecoder(r).Decode(&out); err != nil {
		return nil, fmt.Errorf("decoding suppliers: %w", err)
	}

	seen := make(map[string]bool, len(out))
	var errs []error
	for _, s := range out {
		if err := s.Validate(); err != nil {
			errs = append(errs, err)
		}
		if seen[s.ID] {
			errs = append(errs, fmt.Errorf("%w: supplier %q", ErrDuplicateID, s.ID))
		}
		seen[s.ID] = true
	}
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	return out, nil
}

// LoadProducts decodes and validates a JSON array of products.
func LoadProducts(r io.Reader) ([]supplier.Product, error) {
	var out []supplier.Product
	if err := json.NewDecoder(r).Decode(&out); err != nil {
		return nil, fmt.Errorf("decoding products: %w", err)
	}

	seen := make(map[string]bool, len(out))
	var errs []error
	for _, p := range out {
		if err := p.Validate(); err != nil {
			errs = append(errs, err)
		}
		if seen[p.ID] {
			errs = append(errs, fmt.Errorf("%w: product %q", ErrDuplicateID, p.ID))
		}
		seen[p.ID] = true
	}
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	return out, nil
}

// LoadFiles reads a dataset from disk. An empty path selects the embedded
// fixture for that record kind.
func LoadFiles(suppliersPath, productsPath string, logger zerolog.Logger) (*Dataset, error) {
	if suppliersPath == "" && productsPath == "" {
		return Default()
	}

	def, err := Default()
	if err != nil {
		return nil, err
	}

	ss := def.Suppliers()
	if suppliersPath != "" {
		if ss, err = readFile(suppliersPath, LoadSuppliers); err != nil {
			return nil, err
		}
	}
	ps := def.Products()
	if productsPath != "" {
		if ps, err = readFile(productsPath, LoadProducts); err != nil {
			return nil, err
		}
	}

	logger.Debug().
		Str("suppliers_path", suppliersPath).
		Str("products_path", productsPath).
		Int("suppliers", len(ss)).
		Int("products", len(ps)).
		Msg("loaded dataset")
	return New(ss, ps), nil
}

func readFile[T any](path string, load func(io.Reader) ([]T, error)) ([]T, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	out, err := load(f)
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", path, err)
	}
	return out, nil
}

// Suppliers returns a copy of every supplier in file order.
func (d *Dataset) Suppliers() []supplier.Supplier {
	return append([]supplier.Supplier(nil), d.suppliers...)
}

// Products returns a copy of every product in file order.
func (d *Dataset) Products() []supplier.Product {
	return append([]supplier.Product(nil), d.products...)
}

// Supplier looks up a supplier by ID.
func (d *Dataset) Supplier(id string) (supplier.Supplier, bool) {
	i, ok := d.supplierIndex[id]
	if !ok {
		return supplier.Supplier{}, false
	}
	return d.suppliers[i], true
}

// Product looks up a product by ID.
func (d *Dataset) Product(id string) (supplier.Product, bool) {
	i, ok := d.productIndex[id]
	if !ok {
		return supplier.Product{}, false
	}
	return d.products[i], true
}

// SuppliersByID returns the suppliers with the given IDs, in argument order.
// Unknown IDs are returned as the second value.
func (d *Dataset) SuppliersByID(ids ...string) ([]supplier.Supplier, []string) {
	var found []supplier.Supplier
	var missing []string
	for _, id := range ids {
		if s, ok := d.Supplier(id); ok {
			found = append(found, s)
			continue
		}
		missing = append(missing, id)
	}
	return found, missing
}
