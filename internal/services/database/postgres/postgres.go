package postgres

import (
	"database/sql"
	"fmt"

	"github.com/charmbracelet/log"
	_ "github.com/lib/pq"
	"github.com/pressly/goose/v3"

	"github.com/zekurio/herald/internal/models"
	"github.com/zekurio/herald/internal/services/database"
	"github.com/zekurio/herald/internal/services/database/dberr"
	"github.com/zekurio/herald/internal/util/embedded"
)

type Postgres struct {
	db *sql.DB
}

var _ database.Database = (*Postgres)(nil)

func InitPostgres(c models.PostgresConfig) (*Postgres, error) {
	var (
		p   Postgres
		err error
	)

	dsn := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=disable",
		c.Host, c.Port, c.Username, c.Password, c.Database)
	p.db, err = sql.Open("postgres", dsn)
	if err != nil {
		return nil, err
	}

	err = p.db.Ping()
	if err != nil {
		return nil, err
	}

	goose.SetBaseFS(embedded.Migrations)
	goose.SetDialect("postgres")
	goose.SetLogger(log.StandardLog())
	err = goose.Up(p.db, "migrations")
	if err != nil {
		return nil, err
	}

	return &p, nil
}

func (p *Postgres) Close() error {
	return p.db.Close()
}

// PROFILES

func (p *Postgres) GetProfile(userID string) (models.UserAudioProfile, error) {
	var prof models.UserAudioProfile
	err := p.db.QueryRow(`SELECT volume, clip_reference, plays FROM profiles WHERE user_id = $1`, userID).
		Scan(&prof.Volume, &prof.ClipPath, &prof.Plays)
	return prof, p.wrapErr(err)
}

func (p *Postgres) SetProfile(userID string, prof models.UserAudioProfile) error {
	if err := database.ValidateProfile(prof); err != nil {
		return err
	}

	_, err := p.db.Exec(
		`INSERT INTO profiles (user_id, volume, clip_reference, plays) VALUES ($1, $2, $3, $4)
		 ON CONFLICT (user_id) DO UPDATE SET volume = $2, clip_reference = $3, plays = $4`,
		userID, prof.Volume, prof.ClipPath, prof.Plays)
	return err
}

func (p *Postgres) GetProfiles() (map[string]models.UserAudioProfile, error) {
	rows, err := p.db.Query(`SELECT user_id, volume, clip_reference, plays FROM profiles`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	results := make(map[string]models.UserAudioProfile)
	for rows.Next() {
		var (
			userID string
			prof   models.UserAudioProfile
		)
		if err := rows.Scan(&userID, &prof.Volume, &prof.ClipPath, &prof.Plays); err != nil {
			return nil, err
		}
		results[userID] = prof
	}

	return results, rows.Err()
}

func (p *Postgres) AddPlay(userID string) error {
	_, err := p.db.Exec(
		`INSERT INTO profiles (user_id, plays) VALUES ($1, 1)
		 ON CONFLICT (user_id) DO UPDATE SET plays = profiles.plays + 1`,
		userID)
	return err
}

//
// HELPERS
//

func (p *Postgres) wrapErr(err error) error {
	if err != nil && err == sql.ErrNoRows {
		return dberr.ErrNotFound
	}
	return err
}
