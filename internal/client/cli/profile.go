package cli

import (
	"context"
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/dmitrijs2005/cosmospt/internal/client/client"
	"github.com/dmitrijs2005/cosmospt/internal/client/models"
	"github.com/dmitrijs2005/cosmospt/internal/client/state"
	"github.com/spf13/cobra"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

var printer = message.NewPrinter(language.English)

func NewProfileCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "profile",
		Short: "Show points, level and achievements",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			return withSession(ctx, rootOpts, func(e *env, s *models.Session) error {
				u, err := e.state(s.UserID).User.Get(ctx)
				if err != nil {
					return apiError("load profile", err)
				}
				return rootOpts.formatter(cmd).Success(u, func(w io.Writer) { printUser(w, u) })
			})
		},
	}
}

func printUser(w io.Writer, u *models.User) {
	boldColor.Fprintln(w, u.Name)
	fmt.Fprintf(w, "Level %d, %s points\n", u.Level, printer.Sprintf("%v", number.Decimal(u.Points)))
	fmt.Fprintf(w, "Achievements %d/%d\n", u.UnlockedCount(), len(u.Achievements))
	for _, a := range u.Achievements {
		if a.Unlocked {
			okColor.Fprintf(w, "  [x] %s", a.Title)
		} else {
			dimColor.Fprintf(w, "  [ ] %s", a.Title)
		}
		fmt.Fprintf(w, " - %s\n", a.Description)
	}
	fmt.Fprintf(w, "Completed quizzes: %s\n", listOrNone(u.CompletedQuizzes))
	fmt.Fprintf(w, "Visited planets: %s\n", listOrNone(u.VisitedPlanets))
}

func listOrNone(items []string) string {
	if len(items) == 0 {
		return "none"
	}
	return strings.Join(items, ", ")
}

func NewCatalogCommand(rootOpts *RootOptions) *cobra.Command {
	collections := client.CatalogCollections()
	return &cobra.Command{
		Use:       "catalog <collection>",
		Short:     "List a catalog collection",
		Long:      "List a catalog collection: " + strings.Join(collections, ", ") + ".",
		ValidArgs: collections,
		Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			return withSession(ctx, rootOpts, func(e *env, s *models.Session) error {
				return runCatalog(ctx, rootOpts.formatter(cmd), e.state(s.UserID), args[0])
			})
		},
	}
}

func runCatalog(ctx context.Context, f *OutputFormatter, st *state.AppState, collection string) error {
	switch collection {
	case "quizzes":
		return listCatalog(ctx, f, st.Quizzes, func(w io.Writer, q models.Quiz) {
			fmt.Fprintf(w, "%-12s %s ", q.ID, q.Title)
			dimColor.Fprintf(w, "(%s, %d pts, %d questions)\n", q.Difficulty, q.Points, len(q.Questions))
		})
	case "missions":
		return listCatalog(ctx, f, st.Missions, func(w io.Writer, m models.Mission) {
			fmt.Fprintf(w, "%-12s %s ", m.ID, m.Title)
			dimColor.Fprintf(w, "(%s, %s)\n", m.Difficulty, m.Duration)
		})
	case "destinations":
		return listCatalog(ctx, f, st.Destinations, func(w io.Writer, d models.Destination) {
			fmt.Fprintf(w, "%-12s %s ", d.ID, d.Name)
			dimColor.Fprintln(w, printer.Sprintf("%v km", number.Decimal(d.Distance, number.MaxFractionDigits(0))))
		})
	case "vehicles":
		return listCatalog(ctx, f, st.Vehicles, func(w io.Writer, v models.Vehicle) {
			fmt.Fprintf(w, "%-12s %s ", v.ID, v.Name)
			dimColor.Fprintln(w, printer.Sprintf("%v km/s, %vx", number.Decimal(v.Speed, number.MaxFractionDigits(2)), number.Decimal(v.Multiplier, number.MaxFractionDigits(2))))
		})
	case "labs":
		return listCatalog(ctx, f, st.Labs, func(w io.Writer, l models.Lab) {
			fmt.Fprintf(w, "%-12s %s\n", l.Key(), l.Label())
		})
	}
	return NewExitError(ExitCommandError, fmt.Sprintf("unknown collection %q", collection))
}

func listCatalog[T any](ctx context.Context, f *OutputFormatter, src *state.Source[[]T], line func(io.Writer, T)) error {
	items, err := src.Get(ctx)
	if err != nil {
		return apiError("load catalog", err)
	}
	if src.Stale() {
		f.Warn("server unavailable, showing cached data")
	}
	return f.Success(items, func(w io.Writer) {
		if len(items) == 0 {
			fmt.Fprintln(w, "nothing here yet")
			return
		}
		for _, it := range items {
			line(w, it)
		}
	})
}

func NewVisitCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "visit <planet>",
		Short: "Record a planet visit",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			return withSession(ctx, rootOpts, func(e *env, s *models.Session) error {
				before := unlockedIDs(nil)
				st := e.state(s.UserID)
				if prev, err := st.User.Get(ctx); err == nil {
					before = unlockedIDs(prev)
				}

				u, err := e.api.VisitPlanet(ctx, s.UserID, args[0])
				if err != nil {
					return apiError("visit", err)
				}
				return rootOpts.formatter(cmd).Success(u, func(w io.Writer) {
					okColor.Fprintf(w, "Visited %s.", args[0])
					fmt.Fprintf(w, " %d planets so far, level %d.\n", len(u.VisitedPlanets), u.Level)
					printUnlocked(w, before, u)
				})
			})
		},
	}
}

func unlockedIDs(u *models.User) []string {
	if u == nil {
		return nil
	}
	var ids []string
	for _, a := range u.Achievements {
		if a.Unlocked {
			ids = append(ids, a.ID)
		}
	}
	return ids
}

// printUnlocked announces achievements unlocked since before.
func printUnlocked(w io.Writer, before []string, u *models.User) {
	for _, a := range u.Achievements {
		if a.Unlocked && !slices.Contains(before, a.ID) {
			warnColor.Fprintf(w, "Achievement unlocked: %s\n", a.Title)
		}
	}
}
