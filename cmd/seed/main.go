// seed puebla una base de datos recién migrada con los datos mínimos para
// operar: un usuario administrador, la configuración del negocio y unos
// productos de ejemplo con sus cinco niveles de precio.
//
// Uso: go run ./cmd/seed
// La contraseña del admin se toma de SEED_ADMIN_PASSWORD (o "admin123").
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"

	"github.com/dramirezh/puntoventa-api/internal/domain/entity"
	"github.com/dramirezh/puntoventa-api/internal/infrastructure/postgres"
	"github.com/dramirezh/puntoventa-api/pkg/config"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Cargar configuración: %v\n", err)
		os.Exit(1)
	}

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Conexión a PostgreSQL: %v\n", err)
		os.Exit(1)
	}
	defer pool.Close()

	userRepo := postgres.NewUserRepository(pool)
	productRepo := postgres.NewProductRepository(pool)
	configRepo := postgres.NewConfigRepository(pool)

	now := time.Now()

	// Admin: solo si no existe ya.
	adminEmail := "admin@puntoventa.local"
	existing, err := userRepo.FindByEmail(adminEmail)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Buscar admin: %v\n", err)
		os.Exit(1)
	}
	if existing == nil {
		password := os.Getenv("SEED_ADMIN_PASSWORD")
		if password == "" {
			password = "admin123"
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Hash de contraseña: %v\n", err)
			os.Exit(1)
		}
		admin := &entity.User{
			ID:           uuid.NewString(),
			Name:         "Administrador",
			Email:        adminEmail,
			PasswordHash: string(hash),
			Role:         entity.RoleAdministrador,
			MontoInicial: decimal.Zero,
			CreatedAt:    now,
			UpdatedAt:    now,
		}
		if err := userRepo.Create(admin); err != nil {
			fmt.Fprintf(os.Stderr, "Crear admin: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Admin creado: %s\n", adminEmail)
	} else {
		fmt.Printf("Admin ya existe: %s\n", adminEmail)
	}

	// Configuración del negocio (fila única).
	if biz, _ := configRepo.Get(); biz == nil {
		err := configRepo.Save(&entity.Config{
			ID:           uuid.NewString(),
			BusinessName: "Punto de Venta",
			TicketName:   "PUNTO DE VENTA",
			TaxRate:      entity.DefaultTaxRatePercent,
			UpdatedAt:    now,
		})
		if err != nil {
			fmt.Fprintf(os.Stderr, "Guardar configuración: %v\n", err)
			os.Exit(1)
		}
		fmt.Println("Configuración inicial guardada")
	}

	// Productos de ejemplo. Si el código de barras ya está, se omite.
	created := 0
	for _, p := range sampleProducts(now) {
		if found, _ := productRepo.GetByBarcode(p.Barcode); found != nil {
			continue
		}
		if err := productRepo.Create(p); err != nil {
			fmt.Fprintf(os.Stderr, "Crear producto %q: %v\n", p.Name, err)
			os.Exit(1)
		}
		created++
	}
	fmt.Printf("Productos de ejemplo creados: %d\n", created)
}

func dec(s string) decimal.Decimal {
	d, _ := decimal.NewFromString(s)
	return d
}

func sampleProducts(now time.Time) []*entity.Product {
	return []*entity.Product{
		{
			ID:           uuid.NewString(),
			Name:         "Refresco Cola 600ml",
			Category:     "Bebidas",
			Barcode:      "7501000000011",
			Cost:         dec("12.50"),
			PricePieza:   dec("18.00"),
			PriceMayoreo: dec("16.00"),
			PricePaquete: dec("15.00"),
			MinMayoreo:   12,
			MinPaquete:   24,
			Stock:        120,
			StockMin:     24,
			StockMax:     240,
			CreatedAt:    now,
			UpdatedAt:    now,
		},
		{
			ID:           uuid.NewString(),
			Name:         "Agua Natural 1L",
			Category:     "Bebidas",
			Barcode:      "7501000000028",
			Cost:         dec("7.00"),
			PricePieza:   dec("12.00"),
			PriceMayoreo: dec("10.50"),
			MinMayoreo:   12,
			Stock:        200,
			StockMin:     48,
			StockMax:     400,
			CreatedAt:    now,
			UpdatedAt:    now,
		},
		{
			ID:           uuid.NewString(),
			Name:         "Galletas Surtidas 500g",
			Category:     "Abarrotes",
			Barcode:      "7501000000035",
			Cost:         dec("28.00"),
			PricePieza:   dec("42.00"),
			PriceMayoreo: dec("38.00"),
			PriceCuatro:  dec("36.00"),
			PriceCinco:   dec("34.00"),
			MinMayoreo:   10,
			MinCuatro:    4,
			MinCinco:     5,
			Stock:        60,
			StockMin:     12,
			StockMax:     120,
			Discount: entity.Discount{
				Active:      true,
				Amount:      dec("2.00"),
				MinQuantity: 6,
			},
			CreatedAt: now,
			UpdatedAt: now,
		},
		{
			ID:           uuid.NewString(),
			Name:         "Detergente en Polvo 1kg",
			Category:     "Limpieza",
			Barcode:      "7501000000042",
			Cost:         dec("32.00"),
			PricePieza:   dec("48.00"),
			PriceMayoreo: dec("44.00"),
			MinMayoreo:   6,
			Stock:        45,
			StockMin:     10,
			StockMax:     90,
			CreatedAt:    now,
			UpdatedAt:    now,
		},
	}
}
