package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/felixgeelhaar/studiorate/pkg/application"
	"github.com/felixgeelhaar/studiorate/pkg/domain/rating"
)

var submitRatings string

var submitCmd = &cobra.Command{
	Use:   "submit",
	Short: "Send one rating without the interactive dialog",
	Example: `  studiorate submit --ratings 5,4,5,4,5`,
	RunE: func(cmd *cobra.Command, args []string) error {
		scores, err := parseRatings(submitRatings)
		if err != nil {
			return err
		}

		services, _, err := loadServices(nil)
		if err != nil {
			return err
		}
		defer func() { _ = services.Logger.Sync() }()

		var average rating.Average
		handle := application.NewDialogHandle()
		handle.Open()
		dialog, err := services.NewDialog(handle,
			application.WithOnComplete(func(avg rating.Average) { average = avg }),
			application.WithNotifier(rating.NotifierFunc(func(n rating.Notice) {
				fmt.Fprintln(cmd.ErrOrStderr(), n.Message)
			})),
		)
		if err != nil {
			return err
		}
		defer dialog.Detach()

		for i, id := range rating.QuestionIDs {
			if i >= len(scores) {
				break
			}
			if err := dialog.Rate(id, scores[i]); err != nil {
				return err
			}
		}
		if err := dialog.Submit(cmd.Context()); err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Submitted. Average rating: %s\n", average)
		return nil
	},
}

// parseRatings reads a comma separated score list. Fewer than five scores
// is left for the dialog to reject so the notice is the same everywhere.
func parseRatings(raw string) ([]int, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, nil
	}
	parts := strings.Split(raw, ",")
	if len(parts) > rating.QuestionCount {
		return nil, NewCLIError(
			fmt.Sprintf("too many scores: got %d", len(parts)),
			fmt.Sprintf("Pass exactly %d scores, q1 first, e.g. --ratings 5,4,5,4,5", rating.QuestionCount),
			nil,
		)
	}
	scores := make([]int, 0, len(parts))
	for _, p := range parts {
		v, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return nil, fmt.Errorf("%w: %q is not a number", rating.ErrInvalidScore, p)
		}
		scores = append(scores, v)
	}
	return scores, nil
}

func init() {
	submitCmd.Flags().StringVarP(&submitRatings, "ratings", "r", "", "five comma separated scores, q1 first")
	RootCmd.AddCommand(submitCmd)
}
