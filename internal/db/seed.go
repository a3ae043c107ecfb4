package db

import (
	"context"
	"fmt"
	"os"

	"golang.org/x/crypto/bcrypt"
	"gopkg.in/yaml.v3"

	"github.com/readsphere/readsphere-backend/internal/logger"
	"github.com/readsphere/readsphere-backend/internal/repos"
	"github.com/readsphere/readsphere-backend/internal/types"
	"github.com/readsphere/readsphere-backend/internal/utils"
)

type seedFile struct {
	Catalog []seedCatalogBook `yaml:"catalog"`
}

type seedCatalogBook struct {
	Title         string   `yaml:"title"`
	Author        string   `yaml:"author"`
	Genre         string   `yaml:"genre"`
	Description   string   `yaml:"description"`
	CoverURL      string   `yaml:"coverUrl"`
	AverageRating *float64 `yaml:"averageRating"`
	TotalPages    *int     `yaml:"totalPages"`
	ISBN          string   `yaml:"isbn"`
	PublishedYear *int     `yaml:"publishedYear"`
}

type Seeder struct {
	log         *logger.Logger
	userRepo    repos.UserRepo
	catalogRepo repos.CatalogBookRepo
}

func NewSeeder(log *logger.Logger, userRepo repos.UserRepo, catalogRepo repos.CatalogBookRepo) *Seeder {
	return &Seeder{
		log:         log.With("service", "Seeder"),
		userRepo:    userRepo,
		catalogRepo: catalogRepo,
	}
}

// Run loads the demo user and the catalog titles on first boot. Both steps
// are no-ops when their data already exists.
func (s *Seeder) Run(ctx context.Context) error {
	if err := s.seedDemoUser(ctx); err != nil {
		return err
	}
	return s.seedCatalog(ctx)
}

func (s *Seeder) seedDemoUser(ctx context.Context) error {
	email := utils.GetEnv("SEED_USER_EMAIL", "demo@readsphere.local", s.log)
	exists, err := s.userRepo.EmailExists(ctx, nil, email)
	if err != nil {
		return fmt.Errorf("check demo user: %w", err)
	}
	if exists {
		return nil
	}
	password := utils.GetEnv("SEED_USER_PASSWORD", "readsphere", s.log)
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash demo password: %w", err)
	}
	user := &types.User{
		Email:    email,
		Password: string(hashed),
		Name:     "Demo Reader",
	}
	if err := s.userRepo.Create(ctx, nil, user); err != nil {
		return fmt.Errorf("create demo user: %w", err)
	}
	s.log.Info("demo user seeded", "email", email)
	return nil
}

func (s *Seeder) seedCatalog(ctx context.Context) error {
	count, err := s.catalogRepo.Count(ctx, nil)
	if err != nil {
		return fmt.Errorf("count catalog: %w", err)
	}
	if count > 0 {
		return nil
	}
	path := utils.GetEnv("SEED_FILE", "seed/catalog.yaml", s.log)
	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			s.log.Warn("seed file missing, catalog stays empty", "path", path)
			return nil
		}
		return fmt.Errorf("read seed file: %w", err)
	}
	var file seedFile
	if err := yaml.Unmarshal(raw, &file); err != nil {
		return fmt.Errorf("parse seed file: %w", err)
	}
	if len(file.Catalog) == 0 {
		s.log.Warn("seed file has no catalog entries", "path", path)
		return nil
	}
	books := make([]types.CatalogBook, 0, len(file.Catalog))
	for _, b := range file.Catalog {
		books = append(books, types.CatalogBook{
			Title:         b.Title,
			Author:        b.Author,
			Genre:         b.Genre,
			Description:   b.Description,
			CoverURL:      b.CoverURL,
			AverageRating: b.AverageRating,
			TotalPages:    b.TotalPages,
			ISBN:          b.ISBN,
			PublishedYear: b.PublishedYear,
		})
	}
	if err := s.catalogRepo.CreateInBatches(ctx, nil, books); err != nil {
		return fmt.Errorf("seed catalog: %w", err)
	}
	s.log.Info("catalog seeded", "titles", len(books))
	return nil
}
