package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nfrund/signupboard/internal/domain"
	"github.com/nfrund/signupboard/internal/modules/board"
	"github.com/nfrund/signupboard/internal/modules/board/boardview"
)

func newListCmd(opts *rootOptions) *cobra.Command {
	var activity string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "Show every activity with its capacity and participants",
		Example: `  board-cli list
  board-cli list --activity "Chess Club"`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			b := board.New("cli", opts.client(), board.Options{})
			defer b.Close()

			if err := b.LoadActivities(cmd.Context()); err != nil {
				fmt.Fprintln(cmd.ErrOrStderr(), renderView(b.View()))
				return err
			}

			v := b.View()
			if activity != "" {
				snapshot := b.Snapshot()
				a, ok := snapshot.Get(activity)
				if !ok {
					return fmt.Errorf("%w: %s", domain.ErrActivityNotFound, activity)
				}
				single := domain.NewCollection()
				single.Put(activity, a)
				v = boardview.Render(single)
			}

			fmt.Fprintln(cmd.OutOrStdout(), renderView(v))
			return nil
		},
	}

	cmd.Flags().StringVarP(&activity, "activity", "a", "", "show only this activity")
	return cmd
}
