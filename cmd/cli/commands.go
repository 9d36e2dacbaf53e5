package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"phonebook/internal/client/websocket"
	"phonebook/internal/models"
	"phonebook/internal/phonebook"
)

var (
	searchQuery string
	assumeYes   bool
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List the contacts on the server",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		s, err := openSession(false)
		if err != nil {
			return err
		}
		defer s.Close()

		c := phonebook.NewController(s.client, phonebook.WithLogger(s.logger))
		defer c.Close()
		if err := c.Load(cmd.Context()); err != nil {
			return fmt.Errorf("could not load contacts from %s: %w", s.client.BaseURL(), err)
		}
		printContacts(cmd.OutOrStdout(), c.Search(searchQuery))
		return nil
	},
}

var addCmd = &cobra.Command{
	Use:   "add NAME NUMBER",
	Short: "Add a contact, or replace the number of an existing one",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withController(cmd, func(ctx context.Context, c *phonebook.Controller) phonebook.State {
			return c.Submit(ctx, args[0], args[1])
		})
	},
}

var deleteCmd = &cobra.Command{
	Use:     "delete ID",
	Aliases: []string{"rm"},
	Short:   "Delete a contact",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withController(cmd, func(ctx context.Context, c *phonebook.Controller) phonebook.State {
			if _, ok := c.State().Contacts.FindByID(args[0]); !ok {
				fmt.Fprintf(cmd.ErrOrStderr(), "no contact with id %s\n", args[0])
				return c.State()
			}
			return c.Delete(ctx, args[0])
		})
	},
}

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Print changes made on the server as they happen",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		s, err := openSession(false)
		if err != nil {
			return err
		}
		defer s.Close()

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		conn, err := websocket.Connect(ctx, s.client.BaseURL())
		if err != nil {
			return err
		}
		defer conn.Close()
		s.logger.Debug("watching", zap.String("server", s.client.BaseURL()))

		out := cmd.OutOrStdout()
		events, errs := conn.Events(ctx)
		for ev := range events {
			fmt.Fprintf(out, "%s  %-7s %s %s\n",
				ev.Timestamp.Format("15:04:05"), ev.Type, ev.Person.Name, ev.Person.Number)
		}
		return <-errs
	},
}

func init() {
	listCmd.Flags().StringVarP(&searchQuery, "search", "s", "", "only show contacts whose name contains this (any case) or whose number contains it as typed")
	addCmd.Flags().BoolVarP(&assumeYes, "yes", "y", false, "replace an existing number without asking")
	deleteCmd.Flags().BoolVarP(&assumeYes, "yes", "y", false, "delete without asking")
	rootCmd.AddCommand(listCmd, addCmd, deleteCmd, watchCmd)
}

// withController loads the list, applies one change and prints the
// resulting notice.
func withController(cmd *cobra.Command, change func(context.Context, *phonebook.Controller) phonebook.State) error {
	s, err := openSession(false)
	if err != nil {
		return err
	}
	defer s.Close()

	ask := askConfirm(cmd.InOrStdin(), cmd.OutOrStdout())
	declined := false
	confirm := func(p phonebook.Confirmation) bool {
		if assumeYes || ask(p) {
			return true
		}
		declined = true
		return false
	}
	c := phonebook.NewController(s.client,
		phonebook.WithConfirm(confirm),
		phonebook.WithLogger(s.logger),
		phonebook.WithNoticeTTL(s.cfg.NoticeTTL),
	)
	defer c.Close()

	ctx := cmd.Context()
	if err := c.Load(ctx); err != nil {
		return fmt.Errorf("could not load contacts from %s: %w", s.client.BaseURL(), err)
	}
	st := change(ctx, c)
	switch {
	case st.Notice.Visible():
		fmt.Fprintln(cmd.OutOrStdout(), st.Notice.Message)
	case declined:
		fmt.Fprintln(cmd.OutOrStdout(), "Cancelled.")
	default:
		return errors.New("nothing changed, see the log for details")
	}
	return nil
}

// askConfirm asks on out and reads a y/N answer from in.
func askConfirm(in io.Reader, out io.Writer) func(phonebook.Confirmation) bool {
	r := bufio.NewReader(in)
	return func(p phonebook.Confirmation) bool {
		fmt.Fprintf(out, "%s [y/N] ", p.Prompt())
		answer, _ := r.ReadString('\n')
		answer = strings.ToLower(strings.TrimSpace(answer))
		return answer == "y" || answer == "yes"
	}
}

func printContacts(out io.Writer, contacts []models.Contact) {
	if len(contacts) == 0 {
		fmt.Fprintln(out, "No contacts.")
		return
	}
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tNUMBER")
	for _, c := range contacts {
		fmt.Fprintf(w, "%s\t%s\t%s\n", c.ID, c.Name, c.Number)
	}
	w.Flush()
}
