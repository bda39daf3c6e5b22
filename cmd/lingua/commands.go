package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/term"

	"github.com/verte-zerg/lingua/internal/account"
	"github.com/verte-zerg/lingua/internal/content"
	"github.com/verte-zerg/lingua/internal/games"
	"github.com/verte-zerg/lingua/internal/generator"
	"github.com/verte-zerg/lingua/internal/lesson"
	"github.com/verte-zerg/lingua/internal/model"
	"github.com/verte-zerg/lingua/internal/progressui"
	"github.com/verte-zerg/lingua/internal/stats"
	"github.com/verte-zerg/lingua/internal/store"
	"github.com/verte-zerg/lingua/internal/tui"
	"github.com/verte-zerg/lingua/internal/wordlist"
)

func newRegisterCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create a local account and log in",
		Args:  cobra.NoArgs,
		RunE:  withApp(runRegisterCmd),
	}
	cmd.Flags().StringVar(&registerUsername, "username", "", "display name")
	cmd.Flags().StringVar(&registerEmail, "email", "", "email address")
	cmd.Flags().StringVar(&registerPassword, "password", "", "password")
	return cmd
}

func runRegisterCmd(cmd *cobra.Command, a *app, _ []string) error {
	acct, err := a.accounts.Register(commandContext(cmd), registerUsername, registerEmail, registerPassword)
	if err != nil {
		if errors.Is(err, account.ErrEmailAlreadyExists) {
			logErrf("An account with %s already exists. Log in with: lingua login --email %s\n", registerEmail, registerEmail)
		}
		return err
	}
	_, err = fmt.Fprintf(cmd.OutOrStdout(), "Welcome, %s! You are now logged in.\n", acct.Username)
	return err
}

func newLoginCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in to an existing account",
		Args:  cobra.NoArgs,
		RunE:  withApp(runLoginCmd),
	}
	cmd.Flags().StringVar(&loginEmail, "email", "", "email address")
	cmd.Flags().StringVar(&loginPassword, "password", "", "password")
	return cmd
}

func runLoginCmd(cmd *cobra.Command, a *app, _ []string) error {
	acct, err := a.accounts.Login(commandContext(cmd), loginEmail, loginPassword)
	if err != nil {
		return err
	}
	if acct == nil {
		return fmt.Errorf("invalid credentials")
	}
	_, err = fmt.Fprintf(cmd.OutOrStdout(), "Logged in as %s.\n", acct.Username)
	return err
}

func newLogoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "End the current session",
		Args:  cobra.NoArgs,
		RunE: withApp(func(cmd *cobra.Command, a *app, _ []string) error {
			if err := a.accounts.Logout(commandContext(cmd)); err != nil {
				return err
			}
			_, err := fmt.Fprintln(cmd.OutOrStdout(), "Logged out.")
			return err
		}),
	}
}

func newWhoamiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the logged-in account",
		Args:  cobra.NoArgs,
		RunE: withApp(func(cmd *cobra.Command, a *app, _ []string) error {
			acct, err := a.requireAccount(commandContext(cmd))
			if err != nil {
				return err
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "%s <%s>\n", acct.Username, acct.Email)
			return err
		}),
	}
}

func newLangsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "langs",
		Short: "List available languages",
		Args:  cobra.NoArgs,
		RunE: withApp(func(cmd *cobra.Command, a *app, _ []string) error {
			for _, lang := range a.catalog.Languages() {
				line := fmt.Sprintf("%-3s %s %s (%s)", lang.Code, lang.Flag, lang.Name, lang.NativeName)
				if _, err := fmt.Fprintln(cmd.OutOrStdout(), line); err != nil {
					return fmt.Errorf("failed to write output: %w", err)
				}
			}
			return nil
		}),
	}
}

func newLessonsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "lessons",
		Short: "List lessons for a language",
		Args:  cobra.NoArgs,
		RunE:  withApp(runLessonsCmd),
	}
	cmd.Flags().StringVar(&lessonsLang, "lang", defaultLang, "language code")
	return cmd
}

func runLessonsCmd(cmd *cobra.Command, a *app, _ []string) error {
	ctx := commandContext(cmd)
	code := a.settings.Lang
	if cmd.Flags().Changed("lang") {
		code = strings.ToLower(strings.TrimSpace(lessonsLang))
	}
	lang, ok := a.catalog.Language(code)
	if !ok {
		logErrln("Run: lingua langs")
		return fmt.Errorf("%w %q", content.ErrUnknownLanguage, code)
	}

	completed := model.LessonSet{}
	if acct, err := a.accounts.Current(ctx); err != nil {
		return err
	} else if acct != nil {
		p, err := a.ledger.GetProgress(ctx, acct.ID)
		if err != nil {
			return err
		}
		completed = p.CompletedLessons
	}

	out := cmd.OutOrStdout()
	if _, err := fmt.Fprintf(out, "%s %s\n", lang.Flag, lang.Name); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	for _, l := range a.catalog.LessonsFor(code) {
		mark := " "
		if completed.Has(l.ID) {
			mark = "✓"
		}
		line := fmt.Sprintf("%s %-14s %-24s %-12s %-12s %3d XP", mark, l.ID, l.Title, l.Type, l.Difficulty, l.XPReward)
		if _, err := fmt.Fprintln(out, line); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
	}
	return nil
}

func newLearnCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "learn <lesson-id>",
		Short: "Take a lesson",
		Args:  cobra.ExactArgs(1),
		RunE:  withApp(runLearnCmd),
	}
}

func runLearnCmd(cmd *cobra.Command, a *app, args []string) error {
	ctx := commandContext(cmd)
	acct, err := a.requireAccount(ctx)
	if err != nil {
		return err
	}
	l, err := a.catalog.Lesson(args[0])
	if err != nil {
		logErrf("Run: lingua lessons --lang <code>\n")
		return err
	}
	if err := a.ledger.InitializeLanguage(ctx, acct.ID, l.Lang); err != nil {
		return err
	}

	run := lesson.NewRun(l, a.ledger, acct.ID)
	screen := tui.NewLessonModel(ctx, run, generator.New(), a.log.Named("lesson"))
	program := tea.NewProgram(screen, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}
	if err := screen.Err(); err != nil {
		return err
	}
	if run.Phase() != lesson.PhaseComplete {
		logErrln("Lesson left unfinished; no XP recorded.")
		return nil
	}
	p := run.Progress()
	_, err = fmt.Fprintf(cmd.OutOrStdout(), "%s complete: +%d XP (total %d, streak %d)\n",
		l.Title, run.TotalXP(), p.XP, p.Streak)
	return err
}

func newGamesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "games",
		Short: "List mini-games",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			for _, g := range games.Catalog {
				line := fmt.Sprintf("%-13s %-13s %2d XP  %s", g.ID, g.Title, g.XPReward, g.Description)
				if _, err := fmt.Fprintln(cmd.OutOrStdout(), line); err != nil {
					return fmt.Errorf("failed to write output: %w", err)
				}
			}
			return nil
		},
	}
}

func newPlayCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "play <game>",
		Short: "Play a mini-game",
		Args:  cobra.ExactArgs(1),
		RunE:  withApp(runPlayCmd),
	}
	cmd.Flags().StringVar(&playWords, "words", "", "file of word<TAB>translation pairs (default: built-in)")
	return cmd
}

func runPlayCmd(cmd *cobra.Command, a *app, args []string) error {
	ctx := commandContext(cmd)
	acct, err := a.requireAccount(ctx)
	if err != nil {
		return err
	}
	info, err := games.Lookup(args[0])
	if err != nil {
		logErrln("Run: lingua games")
		return err
	}
	pairs := a.catalog.Pairs()
	if playWords != "" {
		pairs, err = wordlist.LoadPairs(playWords)
		if err != nil {
			return fmt.Errorf("failed to load word list %s: %w", playWords, err)
		}
	}
	screen, err := tui.NewGameModel(ctx, info.ID, pairs, generator.New(), a.ledger, a.store, acct.ID, time.Now, a.log.Named("game"))
	if err != nil {
		return err
	}
	program := tea.NewProgram(screen, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}
	if err := screen.Err(); err != nil {
		return err
	}
	if !screen.Rewarded() {
		return nil
	}
	_, err = fmt.Fprintf(cmd.OutOrStdout(), "%s won: +%d XP (total %d)\n", info.Title, info.XPReward, screen.Progress().XP)
	return err
}

func newAwardCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "award <xp>",
		Short: "Award XP to the logged-in account",
		Args:  cobra.ExactArgs(1),
		RunE:  withApp(runAwardCmd),
	}
	cmd.Flags().StringVar(&awardLang, "lang", "", "language to credit")
	return cmd
}

func runAwardCmd(cmd *cobra.Command, a *app, args []string) error {
	ctx := commandContext(cmd)
	amount, err := strconv.Atoi(strings.TrimSpace(args[0]))
	if err != nil {
		return fmt.Errorf("invalid xp amount %q", args[0])
	}
	acct, err := a.requireAccount(ctx)
	if err != nil {
		return err
	}
	p, err := a.ledger.AwardXP(ctx, acct.ID, amount, awardLang)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(cmd.OutOrStdout(), "+%d XP (total %d, streak %d)\n", amount, p.XP, p.Streak)
	return err
}

func newProgressCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "progress",
		Short: "Show learning progress",
		Args:  cobra.NoArgs,
		RunE:  withApp(runProgressCmd),
	}
	cmd.Flags().BoolVar(&plainReport, "plain", false, "print a text report instead of the dashboard")
	return cmd
}

// reportSource reads progress through the ledger and activity from the store.
type reportSource struct {
	*store.Store
	ledger interface {
		GetProgress(ctx context.Context, accountID string) (model.Progress, error)
	}
}

func (s reportSource) GetProgress(ctx context.Context, accountID string) (model.Progress, error) {
	return s.ledger.GetProgress(ctx, accountID)
}

func runProgressCmd(cmd *cobra.Command, a *app, _ []string) error {
	ctx := commandContext(cmd)
	acct, err := a.requireAccount(ctx)
	if err != nil {
		return err
	}
	names := make(map[string]string)
	for _, lang := range a.catalog.Languages() {
		names[lang.Code] = lang.Name
	}
	src := reportSource{Store: a.store, ledger: a.ledger}
	load := func(ctx context.Context) (stats.Report, error) {
		return stats.BuildReport(ctx, src, acct.ID, time.Now(), a.loc, names)
	}

	if plainReport || !term.IsTerminal(int(os.Stdout.Fd())) {
		report, err := load(ctx)
		if err != nil {
			return err
		}
		return stats.RenderReport(cmd.OutOrStdout(), report, 0)
	}

	titles := make(map[string]string)
	for _, lang := range a.catalog.Languages() {
		for _, l := range a.catalog.LessonsFor(lang.Code) {
			titles[l.ID] = l.Title
		}
	}
	dashboard := progressui.NewModel(load, acct.Username, titles)
	program := tea.NewProgram(dashboard, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run progress TUI: %w", err)
	}
	a.log.Debug("dashboard closed", zap.String("account", acct.ID))
	return nil
}
