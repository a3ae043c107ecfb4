package db

import (
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/readsphere/readsphere-backend/internal/logger"
	"github.com/readsphere/readsphere-backend/internal/types"
	"github.com/readsphere/readsphere-backend/internal/utils"
)

type PostgresService struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewPostgresService(log *logger.Logger) (*PostgresService, error) {
	serviceLog := log.With("service", "PostgresService")

	log.Info("Loading environment variables...")
	postgresHost := utils.GetEnv("POSTGRES_HOST", "localhost", log)
	postgresPort := utils.GetEnv("POSTGRES_PORT", "5432", log)
	postgresUser := utils.GetEnv("POSTGRES_USER", "postgres", log)
	postgresPassword := utils.GetEnv("POSTGRES_PASSWORD", "", log)
	postgresName := utils.GetEnv("POSTGRES_NAME", "readsphere", log)
	log.Debug("Environment variables loaded")

	dsn := fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable", postgresUser, postgresPassword, postgresHost, postgresPort, postgresName)

	log.Info("Connecting to Postgres...")
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		DisableForeignKeyConstraintWhenMigrating: true,
	})
	if err != nil {
		log.Error("Failed to connect to Postgres", "error", err)
		return nil, fmt.Errorf("Failed to connect to Postgres: %w", err)
	}

	return &PostgresService{db: db, log: serviceLog}, nil
}

func (s *PostgresService) AutoMigrateAll() error {
	s.log.Info("Auto migrating postgres tables...")
	err := s.db.AutoMigrate(
		&types.User{},
		&types.Book{},
		&types.CatalogBook{},
		&types.UserBook{},
		&types.Note{},
		&types.Tag{},
		&types.Quote{},
		&types.ReadingLog{},
		&types.RecommendationFeedback{},
	)
	if err != nil {
		s.log.Error("Auto migration failed for postgres tables", "error", err)
		return err
	}
	s.log.Info("Configuring foreign key relationships for postgres tables...")
	constraints := []struct {
		name string
		ddl  string
	}{
		{"fk_books_user_id", `
			ALTER TABLE "books"
			ADD CONSTRAINT "fk_books_user_id"
			FOREIGN KEY ("user_id")
			REFERENCES "users"("id")
			ON DELETE CASCADE`},
		{"fk_user_books_user_id", `
			ALTER TABLE "user_books"
			ADD CONSTRAINT "fk_user_books_user_id"
			FOREIGN KEY ("user_id")
			REFERENCES "users"("id")
			ON DELETE CASCADE`},
		{"fk_user_books_catalog_book_id", `
			ALTER TABLE "user_books"
			ADD CONSTRAINT "fk_user_books_catalog_book_id"
			FOREIGN KEY ("catalog_book_id")
			REFERENCES "book_catalog"("id")
			ON DELETE CASCADE`},
		{"fk_notes_book_id", `
			ALTER TABLE "notes"
			ADD CONSTRAINT "fk_notes_book_id"
			FOREIGN KEY ("book_id")
			REFERENCES "books"("id")
			ON DELETE CASCADE`},
		{"fk_notes_user_book_id", `
				ALTER TABLE "notes"
				ADD CONSTRAINT "fk_notes_user_book_id"
				FOREIGN KEY ("user_book_id")
				REFERENCES "user_books"("id")
				ON DELETE CASCADE`},
		{"fk_quotes_book_id", `
			ALTER TABLE "quotes"
			ADD CONSTRAINT "fk_quotes_book_id"
			FOREIGN KEY ("book_id")
			REFERENCES "books"("id")
			ON DELETE CASCADE`},
		{"fk_quotes_user_book_id", `
				ALTER TABLE "quotes"
				ADD CONSTRAINT "fk_quotes_user_book_id"
				FOREIGN KEY ("user_book_id")
				REFERENCES "user_books"("id")
				ON DELETE CASCADE`},
		{"fk_reading_logs_user_id", `
			ALTER TABLE "reading_logs"
			ADD CONSTRAINT "fk_reading_logs_user_id"
			FOREIGN KEY ("user_id")
			REFERENCES "users"("id")
			ON DELETE CASCADE`},
	}
	for _, fk := range constraints {
		if err := s.db.Exec(fmt.Sprintf(`
			DO $$ BEGIN
				IF NOT EXISTS (SELECT 1 FROM pg_constraint WHERE conname = '%s') THEN
					%s;
				END IF;
			END $$;`, fk.name, fk.ddl)).Error; err != nil {
			return fmt.Errorf("Failed to add %s: %w", fk.name, err)
		}
	}
	return nil
}

func (s *PostgresService) DB() *gorm.DB {
	return s.db
}
