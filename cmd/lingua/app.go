package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/verte-zerg/lingua/internal/account"
	"github.com/verte-zerg/lingua/internal/config"
	"github.com/verte-zerg/lingua/internal/content"
	"github.com/verte-zerg/lingua/internal/ledger"
	"github.com/verte-zerg/lingua/internal/logging"
	"github.com/verte-zerg/lingua/internal/model"
	"github.com/verte-zerg/lingua/internal/store"
)

type settings struct {
	model.Config
	DBPath string
}

// app bundles the services a command needs.
type app struct {
	settings settings
	log      *zap.Logger
	store    *store.Store
	ledger   *ledger.Ledger
	accounts *account.Service
	catalog  *content.Catalog
	loc      *time.Location
	closeLog func()
}

func openApp(cmd *cobra.Command) (*app, error) {
	s, err := loadSettings(cmd)
	if err != nil {
		return nil, err
	}
	log, closeLog, err := logging.New(logging.Config{FilePath: s.LogFile, Level: s.LogLevel})
	if err != nil {
		return nil, fmt.Errorf("failed to open log: %w", err)
	}
	loc, err := config.Location(s.Timezone)
	if err != nil {
		closeLog()
		return nil, err
	}
	catalog, err := loadCatalog(s.Catalog)
	if err != nil {
		closeLog()
		return nil, err
	}
	st, err := store.Open(s.DBPath)
	if err != nil {
		closeLog()
		return nil, fmt.Errorf("failed to open db: %w", err)
	}
	log.Debug("app opened",
		zap.String("command", cmd.Name()),
		zap.String("db", s.DBPath),
		zap.String("timezone", loc.String()))
	return &app{
		settings: s,
		log:      log,
		store:    st,
		ledger: ledger.New(st,
			ledger.WithJournal(st),
			ledger.WithLocation(loc),
			ledger.WithLogger(log.Named("ledger"))),
		accounts: account.New(st, account.WithLogger(log.Named("account"))),
		catalog:  catalog,
		loc:      loc,
		closeLog: closeLog,
	}, nil
}

func loadCatalog(path string) (*content.Catalog, error) {
	if path == "" {
		catalog, err := content.Builtin()
		if err != nil {
			return nil, fmt.Errorf("failed to load built-in catalog: %w", err)
		}
		return catalog, nil
	}
	catalog, err := content.LoadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load catalog %s: %w", path, err)
	}
	return catalog, nil
}

func (a *app) Close() {
	if err := a.store.Close(); err != nil {
		logErrf("failed to close db: %v\n", err)
	}
	a.closeLog()
}

// requireAccount returns the logged-in account or ledger.ErrNotLoggedIn.
func (a *app) requireAccount(ctx context.Context) (model.Account, error) {
	acct, err := a.accounts.Current(ctx)
	if err != nil {
		return model.Account{}, err
	}
	if acct == nil {
		return model.Account{}, ledger.ErrNotLoggedIn
	}
	return *acct, nil
}

// withApp opens the app around fn and closes it afterwards.
func withApp(fn func(cmd *cobra.Command, a *app, args []string) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		a, err := openApp(cmd)
		if err != nil {
			return err
		}
		defer a.Close()
		if err := fn(cmd, a, args); err != nil {
			a.log.Error("command failed", zap.String("command", cmd.Name()), zap.Error(err))
			return userError(err)
		}
		return nil
	}
}
