// seed aplica el esquema de la base, crea el usuario administrador inicial si
// no existe y opcionalmente importa productos desde un CSV.
//
// Uso: go run ./cmd/seed [-csv ruta/productos.csv]
//
// El CSV espera columnas: code,name,price,quantity,minimum_stock. Archivos
// exportados de planillas viejas en ISO-8859-1 se decodifican automáticamente.
package main

import (
	"bufio"
	"context"
	"encoding/csv"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	"github.com/estoque-pro/estoque-api/internal/domain/entity"
	"github.com/estoque-pro/estoque-api/internal/infrastructure/postgres"
	"github.com/estoque-pro/estoque-api/pkg/config"
	"github.com/estoque-pro/estoque-api/pkg/logger"
)

func main() {
	csvPath := flag.String("csv", "", "ruta a un CSV de productos para importar (opcional)")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "cargar configuración: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(logger.Config{Env: cfg.App.Env, Level: "info"})

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	if err := postgres.ApplyMigrations(ctx, pool); err != nil {
		log.Fatal().Err(err).Msg("aplicar esquema")
	}
	log.Info().Msg("esquema aplicado")

	if err := seedAdmin(cfg, pool); err != nil {
		log.Fatal().Err(err).Msg("crear usuario administrador")
	}

	if *csvPath != "" {
		n, err := importProducts(*csvPath, pool)
		if err != nil {
			log.Fatal().Err(err).Str("csv", *csvPath).Msg("importar productos")
		}
		log.Info().Int("productos", n).Msg("importación CSV completada")
	}

	log.Info().Msg("seed completado")
}

// seedAdmin crea el usuario admin inicial con las credenciales de SeedConfig,
// solo si no existe todavía.
func seedAdmin(cfg *config.Config, pool *pgxpool.Pool) error {
	repo := postgres.NewUserRepository(pool)
	existing, err := repo.GetByUsername(cfg.Seed.AdminUsername)
	if err != nil {
		return err
	}
	if existing != nil {
		return nil
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(cfg.Seed.AdminPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	now := time.Now()
	return repo.Create(&entity.User{
		ID:           uuid.NewString(),
		Username:     cfg.Seed.AdminUsername,
		PasswordHash: string(hash),
		Role:         entity.RoleAdmin,
		Active:       true,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
}

// importProducts lee el CSV e inserta los productos que no existan aún (por code).
func importProducts(path string, pool *pgxpool.Pool) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, err
	}
	defer f.Close()

	reader := csv.NewReader(decodeReader(f))
	reader.TrimLeadingSpace = true

	repo := postgres.NewProductRepository(pool)
	count := 0
	first := true
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return count, err
		}
		// Saltar la fila de cabecera si la primera columna no es un código
		if first {
			first = false
			if strings.EqualFold(record[0], "code") || strings.EqualFold(record[0], "codigo") {
				continue
			}
		}
		p, err := parseProductRecord(record)
		if err != nil {
			return count, fmt.Errorf("fila %d: %w", count+1, err)
		}
		existing, err := repo.GetByCode(p.Code)
		if err != nil {
			return count, err
		}
		if existing != nil {
			continue
		}
		if err := repo.Create(p); err != nil {
			return count, err
		}
		count++
	}
	return count, nil
}

// parseProductRecord convierte una fila code,name,price,quantity,minimum_stock en entidad.
func parseProductRecord(record []string) (*entity.Product, error) {
	if len(record) < 2 {
		return nil, fmt.Errorf("se esperan al menos code y name, hay %d columnas", len(record))
	}
	code := strings.TrimSpace(record[0])
	name := strings.TrimSpace(record[1])
	if code == "" || name == "" {
		return nil, fmt.Errorf("code y name no pueden ser vacíos")
	}

	price := decimal.Zero
	if len(record) > 2 && strings.TrimSpace(record[2]) != "" {
		p, err := decimal.NewFromString(strings.TrimSpace(record[2]))
		if err != nil {
			return nil, fmt.Errorf("price inválido %q: %w", record[2], err)
		}
		price = p.Round(2)
	}

	var quantity int64
	if len(record) > 3 && strings.TrimSpace(record[3]) != "" {
		q, err := strconv.ParseInt(strings.TrimSpace(record[3]), 10, 64)
		if err != nil || q < 0 {
			return nil, fmt.Errorf("quantity inválida %q", record[3])
		}
		quantity = q
	}

	minimum := int64(entity.DefaultMinimumStock)
	if len(record) > 4 && strings.TrimSpace(record[4]) != "" {
		m, err := strconv.ParseInt(strings.TrimSpace(record[4]), 10, 64)
		if err != nil || m < 0 {
			return nil, fmt.Errorf("minimum_stock inválido %q", record[4])
		}
		minimum = m
	}

	now := time.Now()
	return &entity.Product{
		ID:              uuid.NewString(),
		Code:            code,
		Name:            name,
		Price:           price,
		QuantityInStock: quantity,
		MinimumStock:    minimum,
		LastUpdated:     now,
		CreatedAt:       now,
	}, nil
}

// decodeReader detecta si el archivo es UTF-8 válido; si no, lo decodifica
// como ISO-8859-1 (exportaciones de planillas viejas).
func decodeReader(f *os.File) io.Reader {
	br := bufio.NewReader(f)
	peek, _ := br.Peek(4096)
	if utf8.Valid(peek) {
		return br
	}
	return transform.NewReader(br, charmap.ISO8859_1.NewDecoder())
}
