// Command seed-db loads a catalog fixture into PostgreSQL: categories,
// product variants, services, posts, and hero slides. Rows are upserted, so
// re-running against a live database is safe.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"log/slog"
	"os"
	"os/signal"

	"github.com/go-faster/errors"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ngducnhatt/muacode.com/internal/storage/postgres"
)

type fixture struct {
	Categories []categoryJSON `json:"categories"`
	Services   []serviceJSON  `json:"services"`
	Posts      []postJSON     `json:"posts"`
	Hero       []heroJSON     `json:"hero"`
}

type categoryJSON struct {
	ID          string        `json:"id"`
	Name        string        `json:"name"`
	Sold        int64         `json:"sold"`
	Image       string        `json:"image"`
	Description string        `json:"description"`
	Products    []productJSON `json:"products"`
}

type productJSON struct {
	ID     string   `json:"id"`
	Name   string   `json:"name"`
	Price  *int64   `json:"price"`
	Sold   int64    `json:"sold"`
	Sale   *float64 `json:"sale"`
	Save   string   `json:"save"`
	Status *string  `json:"status"`
	Image  string   `json:"image"`
}

type serviceJSON struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Status      string `json:"status"`
	Image       string `json:"image"`
}

type postJSON struct {
	ID      string `json:"id"`
	Title   string `json:"title"`
	Content string `json:"content"`
	Date    string `json:"date"`
}

type heroJSON struct {
	Title       string `json:"title"`
	Subtitle    string `json:"subtitle"`
	Description string `json:"description"`
	Image       string `json:"image"`
	Href        string `json:"href"`
	CTALabel    string `json:"ctaLabel"`
	Priority    int    `json:"priority"`
}

func main() {
	var (
		databaseURL string
		catalogFile string
	)

	flag.StringVar(&databaseURL, "database-url", "", "PostgreSQL connection URL (or DATABASE_URL env)")
	flag.StringVar(&catalogFile, "catalog-file", "db/seed/catalog.json", "path to catalog fixture JSON")
	flag.Parse()

	if databaseURL == "" {
		databaseURL = os.Getenv("DATABASE_URL")
	}
	if databaseURL == "" {
		slog.Error("database URL is required: set --database-url or DATABASE_URL")
		os.Exit(1)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	if err := run(ctx, databaseURL, catalogFile); err != nil {
		slog.Error("seed failed", slog.String("error", err.Error()))
		os.Exit(1)
	}

	slog.Info("seed completed successfully")
}

func run(ctx context.Context, databaseURL, catalogFile string) error {
	slog.Info("reading catalog fixture", slog.String("path", catalogFile))

	data, err := os.ReadFile(catalogFile)
	if err != nil {
		return errors.Wrap(err, "read catalog file")
	}
	var f fixture
	if err := json.Unmarshal(data, &f); err != nil {
		return errors.Wrap(err, "parse catalog JSON")
	}

	slog.Info("connecting to database")

	pool, err := postgres.NewPool(ctx, databaseURL)
	if err != nil {
		return errors.Wrap(err, "connect to database")
	}
	defer pool.Close()

	slog.Info("running migrations")

	if err := postgres.RunMigrations(ctx, pool); err != nil {
		return errors.Wrap(err, "run migrations")
	}

	if err := seedCategories(ctx, pool, f.Categories); err != nil {
		return err
	}
	if err := seedServices(ctx, pool, f.Services); err != nil {
		return err
	}
	if err := seedPosts(ctx, pool, f.Posts); err != nil {
		return err
	}
	if err := seedHero(ctx, pool, f.Hero); err != nil {
		return err
	}
	return nil
}

func seedCategories(ctx context.Context, pool *pgxpool.Pool, cats []categoryJSON) error {
	slog.Info("upserting categories", slog.Int("count", len(cats)))

	for _, c := range cats {
		_, err := pool.Exec(ctx,
			`INSERT INTO categories (id, name, sold, image, description)
			 VALUES ($1, $2, $3, $4, $5)
			 ON CONFLICT (id) DO UPDATE SET
			   name = EXCLUDED.name, sold = EXCLUDED.sold,
			   image = EXCLUDED.image, description = EXCLUDED.description`,
			c.ID, c.Name, c.Sold, c.Image, c.Description)
		if err != nil {
			return errors.Wrapf(err, "upsert category %s", c.ID)
		}

		for _, p := range c.Products {
			_, err := pool.Exec(ctx,
				`INSERT INTO products (id, category_id, name, price, sold, sale, save, status, image)
				 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
				 ON CONFLICT (id) DO UPDATE SET
				   category_id = EXCLUDED.category_id, name = EXCLUDED.name,
				   price = EXCLUDED.price, sold = EXCLUDED.sold,
				   sale = EXCLUDED.sale, save = EXCLUDED.save,
				   status = EXCLUDED.status, image = EXCLUDED.image`,
				p.ID, c.ID, p.Name, p.Price, p.Sold, p.Sale, p.Save, p.Status, p.Image)
			if err != nil {
				return errors.Wrapf(err, "upsert product %s", p.ID)
			}
		}

		slog.Info("upserted category",
			slog.String("id", c.ID), slog.Int("products", len(c.Products)))
	}
	return nil
}

func seedServices(ctx context.Context, pool *pgxpool.Pool, services []serviceJSON) error {
	slog.Info("upserting services", slog.Int("count", len(services)))

	for _, s := range services {
		_, err := pool.Exec(ctx,
			`INSERT INTO services (id, name, description, status, image)
			 VALUES ($1, $2, $3, $4, $5)
			 ON CONFLICT (id) DO UPDATE SET
			   name = EXCLUDED.name, description = EXCLUDED.description,
			   status = EXCLUDED.status, image = EXCLUDED.image`,
			s.ID, s.Name, s.Description, s.Status, s.Image)
		if err != nil {
			return errors.Wrapf(err, "upsert service %s", s.ID)
		}
	}
	return nil
}

func seedPosts(ctx context.Context, pool *pgxpool.Pool, posts []postJSON) error {
	slog.Info("upserting posts", slog.Int("count", len(posts)))

	for _, p := range posts {
		_, err := pool.Exec(ctx,
			`INSERT INTO posts (id, title, content, date)
			 VALUES ($1, $2, $3, $4)
			 ON CONFLICT (id) DO UPDATE SET
			   title = EXCLUDED.title, content = EXCLUDED.content, date = EXCLUDED.date`,
			p.ID, p.Title, p.Content, p.Date)
		if err != nil {
			return errors.Wrapf(err, "upsert post %s", p.ID)
		}
	}
	return nil
}

// seedHero replaces the hero table wholesale: ids are generated, so there is
// no stable conflict target to upsert on.
func seedHero(ctx context.Context, pool *pgxpool.Pool, slides []heroJSON) error {
	if len(slides) == 0 {
		return nil
	}
	slog.Info("replacing hero slides", slog.Int("count", len(slides)))

	if _, err := pool.Exec(ctx, `DELETE FROM hero_sections`); err != nil {
		return errors.Wrap(err, "clear hero sections")
	}
	for _, h := range slides {
		_, err := pool.Exec(ctx,
			`INSERT INTO hero_sections (title, subtitle, description, image, href, ctalabel, priority)
			 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
			h.Title, h.Subtitle, h.Description, h.Image, h.Href, h.CTALabel, h.Priority)
		if err != nil {
			return errors.Wrap(err, "insert hero slide")
		}
	}
	return nil
}
