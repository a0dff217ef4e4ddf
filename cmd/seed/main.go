// seed genera un script SQL con datos de demostración: una empresa, un
// usuario admin (password hasheado con bcrypt), productos y clientes.
//
// Uso: go run ./cmd/seed [password-admin]
// Escribe: internal/infrastructure/postgres/migrations/002_seed_demo.sql
package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

const outPath = "internal/infrastructure/postgres/migrations/002_seed_demo.sql"

type demoProduct struct {
	sku, name, price, taxRate string
}

type demoCustomer struct {
	name, businessName, taxID string
}

var demoProducts = []demoProduct{
	{"CAF-500", "Café 500g", "18500", "19"},
	{"ARR-1000", "Arroz 1kg", "4200", "5"},
	{"PAN-001", "Pan campesino", "3500", "0"},
	{"GAS-350", "Gaseosa 350ml", "2800", "19"},
	{"ACE-900", "Aceite 900ml", "12900", "19"},
}

var demoCustomers = []demoCustomer{
	{"Carlos Pérez", "", "1020304050"},
	{"María Rodríguez", "Distribuciones MR S.A.S.", "900555666-1"},
	{"Juan Gómez", "", "79888999"},
}

func main() {
	password := "admin123"
	if len(os.Args) > 1 {
		password = os.Args[1]
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		fmt.Fprintf(os.Stderr, "hashear password: %v\n", err)
		os.Exit(1)
	}

	companyID := uuid.New().String()
	var b strings.Builder

	b.WriteString("-- Datos de demostración. Generado por cmd/seed.\n\n")
	fmt.Fprintf(&b, `INSERT INTO companies (id, name, tax_id, address, email, phone, round_totals)
VALUES ('%s', 'Comercial La Rebaja S.A.S.', '900123456-7', 'Cra 7 # 45-10, Bogotá', 'ventas@larebaja.co', '3001234567', FALSE);

`, companyID)

	fmt.Fprintf(&b, `INSERT INTO users (id, company_id, email, password_hash, name, role)
VALUES ('%s', '%s', 'admin@larebaja.co', '%s', 'Administrador', 'admin');

`, uuid.New().String(), companyID, string(hash))

	for _, p := range demoProducts {
		fmt.Fprintf(&b, `INSERT INTO products (id, company_id, sku, name, price, tax_rate)
VALUES ('%s', '%s', '%s', '%s', %s, %s);
`, uuid.New().String(), companyID, p.sku, sqlEscape(p.name), p.price, p.taxRate)
	}
	b.WriteString("\n")

	for _, c := range demoCustomers {
		fmt.Fprintf(&b, `INSERT INTO customers (id, company_id, name, business_name, tax_id)
VALUES ('%s', '%s', '%s', '%s', '%s');
`, uuid.New().String(), companyID, sqlEscape(c.name), sqlEscape(c.businessName), c.taxID)
	}

	if err := os.WriteFile(outPath, []byte(b.String()), 0o644); err != nil {
		fmt.Fprintf(os.Stderr, "escribir %s: %v\n", outPath, err)
		os.Exit(1)
	}
	fmt.Printf("Seed generado en %s (empresa %s)\n", outPath, companyID)
}

func sqlEscape(s string) string {
	return strings.ReplaceAll(s, "'", "''")
}
