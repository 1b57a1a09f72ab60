package migrations

import "newsdesk/internal/core"

// Migration001CreateArticles creates the articles table. Times are unix
// milliseconds so range filters and ordering compare integers.
var Migration001CreateArticles = core.Migration{
	Version:     1,
	Name:        "create_articles",
	Description: "Create the articles table and listing indexes",
	UpSQL: `
	CREATE TABLE IF NOT EXISTS articles (
		id TEXT PRIMARY KEY,
		title TEXT NOT NULL,
		content TEXT NOT NULL,
		excerpt TEXT NOT NULL,
		author_id TEXT,
		category TEXT NOT NULL DEFAULT '',
		publish_date INTEGER NOT NULL,
		last_updated INTEGER NOT NULL,
		featured_image TEXT NOT NULL DEFAULT '',
		views INTEGER NOT NULL DEFAULT 0,
		is_featured BOOLEAN NOT NULL DEFAULT 0,
		trending_score INTEGER NOT NULL DEFAULT 0
	);

	CREATE INDEX IF NOT EXISTS idx_articles_publish_date ON articles(publish_date DESC, id DESC);
	CREATE INDEX IF NOT EXISTS idx_articles_category ON articles(category, publish_date DESC);
	CREATE INDEX IF NOT EXISTS idx_articles_featured ON articles(is_featured, publish_date DESC);`,
	DownSQL: `
	DROP INDEX IF EXISTS idx_articles_featured;
	DROP INDEX IF EXISTS idx_articles_category;
	DROP INDEX IF EXISTS idx_articles_publish_date;
	DROP TABLE IF EXISTS articles;`,
}
