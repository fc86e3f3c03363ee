package cli

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/tOgg1/tchat/internal/store"
	"github.com/tOgg1/tchat/internal/timeline"
)

func newSeedCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "seed FILE",
		Short: "Load users, rooms and messages from a YAML fixture",
		Long: "Load a YAML fixture into the server database and print the access\n" +
			"token of every user it created.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			fx, err := store.LoadFixtureFile(args[0])
			if err != nil {
				return err
			}
			st, err := opts.openStore(cmd.Context())
			if err != nil {
				return err
			}
			defer st.Close()

			tokens, err := st.Seed(cmd.Context(), fx)
			if err != nil {
				return err
			}
			names := make([]string, 0, len(tokens))
			for name := range tokens {
				names = append(names, name)
			}
			sort.Strings(names)
			rows := make([][]string, 0, len(names))
			for _, name := range names {
				rows = append(rows, []string{name, tokens[name]})
			}
			return writeTable(cmd.OutOrStdout(), []string{"USER", "TOKEN"}, rows)
		},
	}
}

func newRoomsCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "rooms",
		Short: "List joined rooms",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			st, c, err := opts.login(cmd.Context())
			if err != nil {
				return err
			}
			defer st.Close()
			defer c.Close()

			rooms, err := c.Rooms(cmd.Context())
			if err != nil {
				return err
			}
			rows := make([][]string, 0, len(rooms))
			for _, room := range rooms {
				rows = append(rows, []string{room.ID, room.Name})
			}
			return writeTable(cmd.OutOrStdout(), []string{"ID", "NAME"}, rows)
		},
	}
}

func newHistoryCmd(opts *rootOptions) *cobra.Command {
	var (
		limit int
		pages int
	)
	cmd := &cobra.Command{
		Use:   "history ROOM",
		Short: "Print recent messages of a room",
		Long: "Fetch history backward page by page, reconcile edits and redactions,\n" +
			"and print the resulting messages oldest first.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			st, c, err := opts.login(cmd.Context())
			if err != nil {
				return err
			}
			defer st.Close()
			defer c.Close()

			if limit <= 0 {
				limit = opts.cfg.Sync.BackfillLimit
			}
			ch := timeline.NewChannel(args[0], "")
			ch.SetSyncPosition(c.SyncPosition())
			for i := 0; i < pages && ch.CanBackfill(); i++ {
				page, err := c.Messages(cmd.Context(), ch.ID, ch.BackfillFrom(), limit)
				if err != nil {
					return err
				}
				ch.ApplyPage(page)
			}

			rows := make([][]string, 0, ch.Len())
			for _, m := range ch.Messages() {
				body := m.Body
				if m.Edited {
					body += " (edited)"
				}
				rows = append(rows, []string{
					time.UnixMilli(m.Timestamp).Format("2006-01-02 15:04"),
					m.Sender,
					body,
					m.ID,
				})
			}
			return writeTable(cmd.OutOrStdout(), []string{"TIME", "SENDER", "MESSAGE", "ID"}, rows)
		},
	}
	cmd.Flags().IntVar(&limit, "limit", 0, "events per page (default sync.backfill_limit)")
	cmd.Flags().IntVar(&pages, "pages", 1, "number of pages to fetch")
	return cmd
}

func newSendCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "send ROOM MESSAGE...",
		Short: "Send a message",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			st, c, err := opts.login(cmd.Context())
			if err != nil {
				return err
			}
			defer st.Close()
			defer c.Close()

			id, err := c.Send(cmd.Context(), args[0], strings.Join(args[1:], " "))
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), id)
			return err
		},
	}
}

func newEditCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "edit ROOM EVENT MESSAGE...",
		Short: "Replace the text of one of your messages",
		Args:  cobra.MinimumNArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			st, c, err := opts.login(cmd.Context())
			if err != nil {
				return err
			}
			defer st.Close()
			defer c.Close()

			id, err := c.Edit(cmd.Context(), args[0], args[1], strings.Join(args[2:], " "))
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), id)
			return err
		},
	}
}

func newRedactCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "redact ROOM EVENT",
		Short: "Remove a message",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			st, c, err := opts.login(cmd.Context())
			if err != nil {
				return err
			}
			defer st.Close()
			defer c.Close()

			return c.Redact(cmd.Context(), args[0], args[1])
		},
	}
}
