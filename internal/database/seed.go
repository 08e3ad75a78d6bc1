package database

import (
	"database/sql"
	"fmt"
	"log/slog"

	"golang.org/x/crypto/bcrypt"

	"spiritfolio/internal/sections"
)

// Seed populates the database with initial development data: a default
// admin user, the portfolio page with one section of every homepage
// type, and a sample featured project with a full case study. Section
// content is seeded as {} so the built-in defaults render and the site
// is demoable before a single edit.
//
// Seeding is idempotent: it is skipped entirely once any user exists.
func Seed(db *sql.DB) error {
	var count int
	if err := db.QueryRow("SELECT COUNT(*) FROM users").Scan(&count); err != nil {
		return fmt.Errorf("seed check users: %w", err)
	}

	if count > 0 {
		slog.Info("database already seeded, skipping")
		return nil
	}

	// Default admin. 2FA is not enabled — they must set it up on first login.
	hash, err := bcrypt.GenerateFromPassword([]byte("admin"), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("seed bcrypt: %w", err)
	}

	_, err = db.Exec(`
		INSERT INTO users (email, password_hash, display_name, role, totp_enabled)
		VALUES ($1, $2, $3, $4, $5)
	`, "admin@spiritfolio.local", string(hash), "Admin", "admin", false)
	if err != nil {
		return fmt.Errorf("seed insert admin: %w", err)
	}

	// The portfolio homepage.
	var pageID string
	err = db.QueryRow(`
		INSERT INTO pages (title, slug, is_published)
		VALUES ($1, $2, TRUE)
		RETURNING id
	`, "Portfolio", "portfolio").Scan(&pageID)
	if err != nil {
		return fmt.Errorf("seed insert portfolio page: %w", err)
	}

	for i, typ := range sections.HomeTypes() {
		_, err = db.Exec(`
			INSERT INTO sections (page_id, type, content, order_index, is_published)
			VALUES ($1, $2, '{}'::jsonb, $3, TRUE)
		`, pageID, string(typ), i)
		if err != nil {
			return fmt.Errorf("seed insert %s section: %w", typ, err)
		}
	}

	// A featured sample project so the projects grid and the case-study
	// route have something to show.
	_, err = db.Exec(`
		INSERT INTO projects (title, slug, description, image_url, role, rating, result, link, content, is_featured, is_published)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9::jsonb, TRUE, TRUE)
	`,
		"Whispering Winds",
		"whispering-winds",
		"A Ghibli-inspired digital experience that captures the magic and wonder of hand-drawn storytelling.",
		"/static/img/whispering-winds.png",
		"Lead Product Manager",
		5,
		"87% User Engagement",
		"/case-study/whispering-winds",
		`[
			{"key":"overview","title":"Project Overview","body":"Six months, a team of seven, and one goal: an immersive Ghibli-inspired digital experience.\n\n**87%** engagement increase and a **4.8** average user rating."},
			{"key":"process","title":"Our Creative Process","body":"From early sketches through moodboards to interactive prototypes, every stage kept the *enchanted forest* aesthetic front and center."},
			{"key":"reflection","title":"Looking Back","body":"Balancing an authentic aesthetic with modern UX principles taught us that delight is measurable."}
		]`,
	)
	if err != nil {
		return fmt.Errorf("seed insert sample project: %w", err)
	}

	slog.Info("database seeded with default admin and portfolio page",
		"email", "admin@spiritfolio.local",
		"password", "admin",
	)

	return nil
}
