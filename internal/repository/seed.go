package repository

import (
	"bytes"
	"context"
	_ "embed"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"chatbot-service/internal/model"

	"github.com/araddon/dateparse"
	"github.com/gocarina/gocsv"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
	"gorm.io/gorm"
)

//go:embed seed/default.yaml
var defaultSeedYAML []byte

// Seed is a complete dataset: products and the invoices that mention them
type Seed struct {
	Products []model.Product
	Invoices []model.Invoice
}

// productRecord is one product as written in a seed file. Every field is
// text so a bad value can be reported with its row number.
type productRecord struct {
	Name        string `yaml:"name" csv:"name"`
	Stock       string `yaml:"stock" csv:"stock"`
	Price       string `yaml:"price" csv:"price"`
	ExpiryDate  string `yaml:"expiry_date" csv:"expiry_date"`
	ArrivalDate string `yaml:"arrival_date" csv:"arrival_date"`
	LastUpdated string `yaml:"last_updated" csv:"last_updated"`
	Location    string `yaml:"location" csv:"location"`
	Status      string `yaml:"status" csv:"status"`
	Category    string `yaml:"category" csv:"category"`
}

type invoiceRecord struct {
	InvoiceNo   string `yaml:"invoice_no"`
	ProductName string `yaml:"product_name"`
	Amount      string `yaml:"amount"`
	CreatedAt   string `yaml:"created_at"`
	PDFLink     string `yaml:"pdf_link"`
}

type seedFile struct {
	Products []productRecord `yaml:"products"`
	Invoices []invoiceRecord `yaml:"invoices"`
}

// DefaultSeed returns the built-in demo dataset
func DefaultSeed() (Seed, error) {
	return ParseSeedYAML(bytes.NewReader(defaultSeedYAML))
}

// LoadSeed builds the dataset used at startup. An empty seedFile means the
// built-in dataset; a non-empty productsCSV replaces its products.
func LoadSeed(seedFile, productsCSV string) (Seed, error) {
	var (
		seed Seed
		err  error
	)
	if seedFile == "" {
		seed, err = DefaultSeed()
	} else {
		seed, err = LoadSeedFile(seedFile)
	}
	if err != nil {
		return Seed{}, err
	}

	if productsCSV != "" {
		f, err := os.Open(productsCSV)
		if err != nil {
			return Seed{}, fmt.Errorf("open products csv: %w", err)
		}
		defer f.Close()

		products, err := ParseProductsCSV(f)
		if err != nil {
			return Seed{}, fmt.Errorf("%s: %w", productsCSV, err)
		}
		seed.Products = products
	}
	return seed, nil
}

// LoadSeedFile reads a .yaml/.yml seed (products and invoices) or a .csv
// file (products only)
func LoadSeedFile(path string) (Seed, error) {
	f, err := os.Open(path)
	if err != nil {
		return Seed{}, fmt.Errorf("open seed file: %w", err)
	}
	defer f.Close()

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		seed, err := ParseSeedYAML(f)
		if err != nil {
			return Seed{}, fmt.Errorf("%s: %w", path, err)
		}
		return seed, nil
	case ".csv":
		products, err := ParseProductsCSV(f)
		if err != nil {
			return Seed{}, fmt.Errorf("%s: %w", path, err)
		}
		return Seed{Products: products}, nil
	default:
		return Seed{}, fmt.Errorf("unsupported seed file extension %q", ext)
	}
}

// ParseSeedYAML decodes a YAML seed document
func ParseSeedYAML(r io.Reader) (Seed, error) {
	var doc seedFile
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil && err != io.EOF {
		return Seed{}, fmt.Errorf("decode seed yaml: %w", err)
	}

	seed := Seed{
		Products: make([]model.Product, 0, len(doc.Products)),
		Invoices: make([]model.Invoice, 0, len(doc.Invoices)),
	}
	for i, rec := range doc.Products {
		p, err := rec.toProduct()
		if err != nil {
			return Seed{}, fmt.Errorf("product %d: %w", i+1, err)
		}
		seed.Products = append(seed.Products, p)
	}
	for i, rec := range doc.Invoices {
		inv, err := rec.toInvoice()
		if err != nil {
			return Seed{}, fmt.Errorf("invoice %d: %w", i+1, err)
		}
		seed.Invoices = append(seed.Invoices, inv)
	}
	return seed, nil
}

// ParseProductsCSV decodes a products CSV with a header row naming the columns
func ParseProductsCSV(r io.Reader) ([]model.Product, error) {
	var records []*productRecord
	if err := gocsv.Unmarshal(r, &records); err != nil {
		return nil, fmt.Errorf("decode products csv: %w", err)
	}

	products := make([]model.Product, 0, len(records))
	for i, rec := range records {
		p, err := rec.toProduct()
		if err != nil {
			// header is line 1
			return nil, fmt.Errorf("line %d: %w", i+2, err)
		}
		products = append(products, p)
	}
	return products, nil
}

func (rec productRecord) toProduct() (model.Product, error) {
	name := strings.TrimSpace(rec.Name)
	if name == "" {
		return model.Product{}, fmt.Errorf("name is required")
	}

	stock := 0
	if s := strings.TrimSpace(rec.Stock); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil {
			return model.Product{}, fmt.Errorf("%s: invalid stock %q", name, rec.Stock)
		}
		if n < 0 {
			return model.Product{}, fmt.Errorf("%s: stock must not be negative", name)
		}
		stock = n
	}

	price, err := parseAmount(rec.Price)
	if err != nil {
		return model.Product{}, fmt.Errorf("%s: invalid price: %w", name, err)
	}

	status := model.StatusOK
	if s := strings.ToLower(strings.TrimSpace(rec.Status)); s != "" {
		status = model.ProductStatus(s)
		if !status.Valid() {
			return model.Product{}, fmt.Errorf("%s: unknown status %q", name, rec.Status)
		}
	}

	p := model.Product{
		Name:     name,
		Stock:    stock,
		Price:    price,
		Location: strings.TrimSpace(rec.Location),
		Status:   status,
		Category: strings.TrimSpace(rec.Category),
	}
	if p.ExpiryDate, err = parseDate(rec.ExpiryDate); err != nil {
		return model.Product{}, fmt.Errorf("%s: invalid expiry_date: %w", name, err)
	}
	if p.ArrivalDate, err = parseDate(rec.ArrivalDate); err != nil {
		return model.Product{}, fmt.Errorf("%s: invalid arrival_date: %w", name, err)
	}
	if p.LastUpdated, err = parseDate(rec.LastUpdated); err != nil {
		return model.Product{}, fmt.Errorf("%s: invalid last_updated: %w", name, err)
	}
	return p, nil
}

func (rec invoiceRecord) toInvoice() (model.Invoice, error) {
	no := strings.TrimSpace(rec.InvoiceNo)
	if no == "" {
		return model.Invoice{}, fmt.Errorf("invoice_no is required")
	}
	amount, err := parseAmount(rec.Amount)
	if err != nil {
		return model.Invoice{}, fmt.Errorf("%s: invalid amount: %w", no, err)
	}
	created, err := parseDate(rec.CreatedAt)
	if err != nil {
		return model.Invoice{}, fmt.Errorf("%s: invalid created_at: %w", no, err)
	}
	return model.Invoice{
		InvoiceNo:   no,
		ProductName: strings.TrimSpace(rec.ProductName),
		Amount:      amount,
		CreatedAt:   created,
		PDFLink:     strings.TrimSpace(rec.PDFLink),
	}, nil
}

func parseAmount(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero, nil
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, err
	}
	if d.IsNegative() {
		return decimal.Zero, fmt.Errorf("%s is negative", s)
	}
	return d, nil
}

// parseDate accepts any layout dateparse understands; empty means unknown
func parseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, nil
	}
	t, err := dateparse.ParseIn(s, time.UTC)
	if err != nil {
		return time.Time{}, err
	}
	return model.DateOf(t), nil
}

// SeedStore copies the seed into the relational store. Rows that already
// exist (same product name or invoice number) are left untouched, so running
// it on every start is safe.
func SeedStore(ctx context.Context, db *gorm.DB, seed Seed) error {
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, p := range seed.Products {
			p := p
			p.ID = 0
			if err := tx.Where("name = ?", p.Name).FirstOrCreate(&p).Error; err != nil {
				return fmt.Errorf("seed product %s: %w", p.Name, err)
			}
		}
		for _, inv := range seed.Invoices {
			inv := inv
			inv.ID = 0
			if err := tx.Where("invoice_no = ?", inv.InvoiceNo).FirstOrCreate(&inv).Error; err != nil {
				return fmt.Errorf("seed invoice %s: %w", inv.InvoiceNo, err)
			}
		}
		return nil
	})
}
