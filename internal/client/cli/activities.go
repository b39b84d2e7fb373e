package cli

import (
	"fmt"
	"io"

	"github.com/dmitrijs2005/cosmospt/internal/client/models"
	"github.com/spf13/cobra"
)

type quizOptions struct {
	answers []int
}

func NewQuizCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &quizOptions{}
	cmd := &cobra.Command{
		Use:   "quiz <quiz-id>",
		Short: "Show a quiz, or submit answers with --answers",
		Example: `  cosmosctl quiz q1
  cosmosctl quiz q1 --answers 1,0,2`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			f := rootOpts.formatter(cmd)
			return withSession(ctx, rootOpts, func(e *env, s *models.Session) error {
				if !cmd.Flags().Changed("answers") {
					quizzes, err := e.state(s.UserID).Quizzes.Get(ctx)
					if err != nil {
						return apiError("load quizzes", err)
					}
					for _, q := range quizzes {
						if q.ID == args[0] {
							return f.Success(q, func(w io.Writer) { printQuiz(w, q) })
						}
					}
					return NewExitError(ExitFailure, fmt.Sprintf("quiz %q not found", args[0]))
				}

				res, err := e.api.SubmitQuiz(ctx, s.UserID, args[0], opts.answers)
				if err != nil {
					return apiError("submit quiz", err)
				}
				return f.Success(res, func(w io.Writer) {
					fmt.Fprintf(w, "%d/%d correct (%d%%). ", res.Correct, res.Total, res.Percentage)
					if res.EarnedPoints > 0 {
						okColor.Fprintf(w, "+%d points\n", res.EarnedPoints)
					} else {
						dimColor.Fprintln(w, "no points this time")
					}
				})
			})
		},
	}
	cmd.Flags().IntSliceVarP(&opts.answers, "answers", "a", nil, "chosen option index per question, comma separated")
	return cmd
}

func printQuiz(w io.Writer, q models.Quiz) {
	boldColor.Fprintln(w, q.Title)
	dimColor.Fprintf(w, "%s, %s, %d points\n", q.Category, q.Difficulty, q.Points)
	for i, question := range q.Questions {
		fmt.Fprintf(w, "%d. %s\n", i+1, question.Question)
		for j, o := range question.Options {
			fmt.Fprintf(w, "   [%d] %s\n", j, o)
		}
	}
}

type missionOptions struct {
	choices []int
}

func NewMissionCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &missionOptions{}
	cmd := &cobra.Command{
		Use:   "mission <mission-id>",
		Short: "Show a mission, or play it with --choices",
		Example: `  cosmosctl mission lunar-landing
  cosmosctl mission lunar-landing --choices 0,1`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			f := rootOpts.formatter(cmd)
			return withSession(ctx, rootOpts, func(e *env, s *models.Session) error {
				if !cmd.Flags().Changed("choices") {
					missions, err := e.state(s.UserID).Missions.Get(ctx)
					if err != nil {
						return apiError("load missions", err)
					}
					for _, m := range missions {
						if m.ID == args[0] {
							return f.Success(m, func(w io.Writer) { printMission(w, m) })
						}
					}
					return NewExitError(ExitFailure, fmt.Sprintf("mission %q not found", args[0]))
				}

				res, err := e.api.PlayMission(ctx, s.UserID, args[0], opts.choices)
				if err != nil {
					return apiError("play mission", err)
				}
				return f.Success(res, func(w io.Writer) { printMissionResult(w, res) })
			})
		},
	}
	cmd.Flags().IntSliceVar(&opts.choices, "choices", nil, "chosen option index per scenario, comma separated")
	return cmd
}

func printMission(w io.Writer, m models.Mission) {
	boldColor.Fprintln(w, m.Title)
	dimColor.Fprintf(w, "%s, %s\n", m.Difficulty, m.Duration)
	if m.Objective != "" {
		fmt.Fprintf(w, "Objective: %s\n", m.Objective)
	}
	for _, sc := range m.Scenarios {
		fmt.Fprintf(w, "[%s] %s\n", sc.ID, sc.Situation)
		for j, o := range sc.Options {
			fmt.Fprintf(w, "   [%d] %s\n", j, o.Text)
		}
	}
}

func printMissionResult(w io.Writer, res *models.MissionResult) {
	for _, st := range res.Steps {
		fmt.Fprintf(w, "%s: %s", st.ScenarioID, st.Text)
		dimColor.Fprintf(w, " (%+d)\n", st.Points)
		if st.Result != "" {
			fmt.Fprintf(w, "   %s\n", st.Result)
		}
	}

	switch res.Status {
	case "success":
		okColor.Fprintf(w, "Mission accomplished! +%d points\n", res.Awarded)
	case "failed":
		errColor.Fprintf(w, "Mission failed. +%d points\n", res.Awarded)
	default:
		warnColor.Fprintf(w, "Mission in progress at %s, %d points so far\n", res.CurrentScenario, res.TotalPoints)
	}
}

type travelOptions struct {
	from       string
	to         string
	vehicle    string
	multiplier float64
}

func NewTravelCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &travelOptions{}
	cmd := &cobra.Command{
		Use:     "travel",
		Short:   "Estimate travel time between two destinations",
		Example: `  cosmosctl travel --from earth --to mars --vehicle rocket --multiplier 2`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			e, err := openEnv(ctx, rootOpts.Config)
			if err != nil {
				return err
			}
			defer e.Close()

			// the estimate is public, a session only adds the token
			_, _ = e.auth.Session(ctx)

			res, err := e.api.EstimateTravel(ctx, opts.from, opts.to, opts.vehicle, opts.multiplier)
			if err != nil {
				return apiError("estimate travel", err)
			}
			return rootOpts.formatter(cmd).Success(res, func(w io.Writer) {
				fmt.Fprintf(w, "%s -> %s by %s: ", res.From, res.To, res.Vehicle)
				boldColor.Fprintln(w, res.TravelTime)
				dimColor.Fprintf(w, "%s at %s, %s\n", res.DistanceLabel, res.SpeedLabel, res.MultiplierLabel)
			})
		},
	}
	cmd.Flags().StringVar(&opts.from, "from", "", "origin destination id")
	cmd.Flags().StringVar(&opts.to, "to", "", "target destination id")
	cmd.Flags().StringVar(&opts.vehicle, "vehicle", "", "vehicle id")
	cmd.Flags().Float64Var(&opts.multiplier, "multiplier", 1, "speed multiplier")
	_ = cmd.MarkFlagRequired("from")
	_ = cmd.MarkFlagRequired("to")
	_ = cmd.MarkFlagRequired("vehicle")
	return cmd
}
