// Package seed clears and repopulates the users and documents tables.
package seed

import (
	"context"
	"database/sql"
	"strconv"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/docsession/docsession/internal/database"
	"github.com/docsession/docsession/internal/document/repository"
	"github.com/docsession/docsession/internal/models"
	"github.com/docsession/docsession/internal/users"
	"github.com/docsession/docsession/pkg/logger"
)

// DefaultUsers is the number of users generated when Options.Users is zero.
const DefaultUsers = 25

// SampleDocuments is inserted on every run, in this order.
var SampleDocuments = []models.Document{
	{Title: "Welcome", Content: "This is the first sample document. Log in and edit it."},
	{Title: "Meeting notes", Content: "Agenda: sessions, documents, seeding."},
	{Title: "Shopping list", Content: "Milk\nEggs\nCoffee"},
	{Title: "Draft", Content: ""},
	{Title: "Release checklist", Content: "Run migrations. Reseed. Smoke test /check_session."},
}

type Options struct {
	Users int
	// Faker generates usernames; a nil Faker uses a randomly seeded one.
	Faker *gofakeit.Faker
}

type Result struct {
	DeletedUsers     int64
	DeletedDocuments int64
	Users            []models.User
	Documents        []models.Document
}

// Run deletes every user and document and inserts fresh ones inside a
// single transaction. Nothing is committed if any step fails.
func Run(ctx context.Context, db *sql.DB, opts Options) (*Result, error) {
	n := opts.Users
	if n <= 0 {
		n = DefaultUsers
	}
	faker := opts.Faker
	if faker == nil {
		faker = gofakeit.New(0)
	}
	names := UniqueFirstNames(faker, n)

	res := &Result{}
	err := database.WithTx(ctx, db, func(tx *sql.Tx) error {
		userRepo := users.NewSQLiteRepository(tx)
		docRepo := repository.NewSQLiteRepo(tx)

		var err error
		if res.DeletedUsers, err = userRepo.DeleteAll(ctx); err != nil {
			return err
		}
		if res.DeletedDocuments, err = docRepo.DeleteAll(ctx); err != nil {
			return err
		}
		logger.Infof("seed: cleared users (%d rows) and documents (%d rows)", res.DeletedUsers, res.DeletedDocuments)

		for _, name := range names {
			u := models.User{Username: name}
			if err := userRepo.Insert(ctx, &u); err != nil {
				return err
			}
			res.Users = append(res.Users, u)
		}
		for _, tmpl := range SampleDocuments {
			d := models.Document{Title: tmpl.Title, Content: tmpl.Content}
			if err := docRepo.Insert(ctx, &d); err != nil {
				return err
			}
			res.Documents = append(res.Documents, d)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}

// UniqueFirstNames draws n distinct first names. Once the faker stops
// producing new names a numeric suffix keeps them distinct.
func UniqueFirstNames(f *gofakeit.Faker, n int) []string {
	seen := make(map[string]struct{}, n)
	out := make([]string, 0, n)
	misses := 0
	for len(out) < n {
		name := f.FirstName()
		if _, dup := seen[name]; dup {
			misses++
			if misses < 50 {
				continue
			}
			name = name + strconv.Itoa(len(out)+1)
			if _, dup := seen[name]; dup {
				continue
			}
		}
		misses = 0
		seen[name] = struct{}{}
		out = append(out, name)
	}
	return out
}
