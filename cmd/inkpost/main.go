// Command inkpost runs a blog site with the default views, configured
// entirely from environment variables.
package main

import (
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/inkpost/inkpost"
	"github.com/inkpost/inkpost/views"
)

func main() {
	// Optional .env for local development; real deployments set the
	// environment directly.
	_ = godotenv.Load()

	cfg := inkpost.SiteConfig{
		Name:         inkpost.EnvOr("SITE_NAME", "Blog"),
		URL:          strings.TrimSuffix(inkpost.EnvOr("SITE_URL", "http://localhost:3000"), "/"),
		Description:  inkpost.EnvOr("SITE_DESCRIPTION", ""),
		Author:       inkpost.EnvOr("SITE_AUTHOR", ""),
		Addr:         inkpost.EnvOr("ADDR", ":3000"),
		DatabasePath: inkpost.EnvOr("DATABASE_PATH", "data/posts.db"),

		SessionSecret: inkpost.MustEnv("SESSION_SECRET"),
		CookieSecure:  strings.EqualFold(inkpost.EnvOr("COOKIE_SECURE", ""), "true"),

		PostCacheTTL: 5 * time.Minute,
	}

	app := inkpost.New(cfg, views.Funcs(cfg))
	defer app.Close()

	if err := app.Start(); err != nil {
		log.Fatal(err)
	}
}
