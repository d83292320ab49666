package repository

import (
	"context"
	"database/sql"
	"fmt"
)

// schemaStatements are applied in order: parents before children so the
// foreign key constraints resolve.
var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id            BIGINT AUTO_INCREMENT PRIMARY KEY,
		username      VARCHAR(80)  NOT NULL UNIQUE,
		email         VARCHAR(120) NOT NULL UNIQUE,
		password_hash VARCHAR(255) NOT NULL,
		created_at    TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at    TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP
	)`,
	`CREATE TABLE IF NOT EXISTS recipes (
		id           BIGINT AUTO_INCREMENT PRIMARY KEY,
		title        VARCHAR(255) NOT NULL,
		ingredients  TEXT NOT NULL,
		instructions TEXT NOT NULL,
		image_url    VARCHAR(512) NOT NULL DEFAULT '',
		user_id      BIGINT NOT NULL,
		created_at   TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at   TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP,
		CONSTRAINT fk_recipes_user FOREIGN KEY (user_id) REFERENCES users (id)
	)`,
	`CREATE TABLE IF NOT EXISTS comments (
		id         BIGINT AUTO_INCREMENT PRIMARY KEY,
		text       TEXT NOT NULL,
		user_id    BIGINT NOT NULL,
		recipe_id  BIGINT NOT NULL,
		created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
		CONSTRAINT fk_comments_user   FOREIGN KEY (user_id)   REFERENCES users (id),
		CONSTRAINT fk_comments_recipe FOREIGN KEY (recipe_id) REFERENCES recipes (id)
	)`,
}

// ApplySchema creates the tables if they do not exist yet. It is idempotent
// and safe to run on every startup.
func ApplySchema(ctx context.Context, db *sql.DB) error {
	for i, stmt := range schemaStatements {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("applying schema statement %d: %w", i, err)
		}
	}
	return nil
}
