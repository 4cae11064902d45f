package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nfrund/signupboard/internal/modules/board"
)

// submitFunc is one of the Board submission operations.
type submitFunc func(b *board.Board, ctx context.Context, email, activity string) (board.Outcome, error)

func newSubmitCmd(opts *rootOptions, use, short, example string, submit submitFunc) *cobra.Command {
	var email, activity string

	cmd := &cobra.Command{
		Use:     use,
		Short:   short,
		Example: example,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			b := board.New("cli", opts.client(), board.Options{})
			defer b.Close()

			outcome, err := submit(b, cmd.Context(), email, activity)
			out := cmd.OutOrStdout()
			if err != nil {
				out = cmd.ErrOrStderr()
			}
			fmt.Fprintln(out, renderMessage(outcome.Message))
			return err
		},
	}

	cmd.Flags().StringVarP(&email, "email", "e", "", "student email")
	cmd.Flags().StringVarP(&activity, "activity", "a", "", "activity name")
	return cmd
}

func newSignupCmd(opts *rootOptions) *cobra.Command {
	return newSubmitCmd(opts, "signup", "Sign a student up for an activity",
		`  board-cli signup --email michael@mergington.edu --activity "Chess Club"`,
		(*board.Board).SubmitSignup)
}

func newRemoveCmd(opts *rootOptions) *cobra.Command {
	return newSubmitCmd(opts, "remove", "Unregister a student from an activity",
		`  board-cli remove --email michael@mergington.edu --activity "Chess Club"`,
		(*board.Board).SubmitRemoval)
}
