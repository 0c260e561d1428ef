package app

import (
	"database/sql"
	"os"
	"time"

	"github.com/rs/zerolog"

	"salesline/internal/config"
	"salesline/internal/db"
	"salesline/internal/migrate"
	"salesline/internal/repo"
)

// Context bundles the open database, repo, and scenario config for one CLI
// invocation.
type Context struct {
	DB   *sql.DB
	Repo repo.Repo
	Cfg  *config.Config
	Log  zerolog.Logger
}

// Open prepares the workspace: opens the database, applies migrations, and
// loads the scenario config (defaults when no file exists).
func Open(workspace string) (*Context, error) {
	conn, err := db.Open(db.Config{Workspace: workspace})
	if err != nil {
		return nil, err
	}
	if err := migrate.Migrate(conn); err != nil {
		conn.Close()
		return nil, err
	}
	cfg, err := config.Load(workspace)
	if err != nil {
		conn.Close()
		return nil, err
	}
	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen}).
		With().Timestamp().Logger()
	return &Context{
		DB:   conn,
		Repo: repo.Repo{DB: conn},
		Cfg:  cfg,
		Log:  log,
	}, nil
}

func (c *Context) Close() error {
	return c.DB.Close()
}
