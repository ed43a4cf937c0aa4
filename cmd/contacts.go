package cmd

import (
	"errors"
	"fmt"
	"time"

	"github.com/cadencehq/cadence/internal/contract"
	"github.com/cadencehq/cadence/internal/meetstore"
	"github.com/cadencehq/cadence/internal/outwriter"
	"github.com/cadencehq/cadence/schema"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// contactsCmd manages the contact directory.
var contactsCmd = &cobra.Command{
	Use:   "contacts",
	Short: "Manage the contact directory used for attendee matching",
	Long: `Manage the people Cadence tracks.

Contacts are matched to calendar attendees by email (case-insensitive).
Each contact carries an expected meeting cadence in days, which drives
the needs-attention list in 'cadence insights'.

Subcommands:
  list - Show all contacts
  add  - Add a contact

Examples:
  # Add a direct report with a weekly 1:1 cadence
  cadence contacts add --name "Jane Doe" --email jane@example.com --contact-cadence 7

  # List everyone
  cadence contacts list`,
}

// contactsListCmd lists all contacts.
var contactsListCmd = &cobra.Command{
	Use:     "list",
	Short:   "Show all contacts in the directory",
	Args:    cobra.NoArgs,
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		store := meetstore.Manager.Get()
		if store == nil {
			contract.LogFatal("Cannot list contacts", errors.New("meeting store is not initialized"))
		}
		contacts, err := store.Contacts().ListContacts(rootCtx)
		if err != nil {
			contract.LogFatal("Cannot list contacts", err)
		}
		if err := outwriter.WriteContactList(contacts, cfg); err != nil {
			contract.LogFatal("Cannot write contacts", err)
		}
	},
}

// contactsAddCmd adds a single contact.
var contactsAddCmd = &cobra.Command{
	Use:     "add",
	Short:   "Add a contact to the directory",
	Args:    cobra.NoArgs,
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := executeContactAdd(); err != nil {
			contract.LogFatal("Cannot add contact", err)
		}
	},
}

func executeContactAdd() error {
	name := viper.GetString("name")
	if name == "" {
		return errors.New("--name is required")
	}

	store := meetstore.Manager.Get()
	if store == nil {
		return errors.New("meeting store is not initialized")
	}

	contact := schema.Contact{
		ID:          uuid.NewString(),
		Name:        name,
		Email:       viper.GetString("email"),
		CadenceDays: viper.GetInt("contact-cadence"),
		CreatedAt:   time.Now().UTC(),
	}
	if err := store.Contacts().AddContact(rootCtx, contact); err != nil {
		return err
	}

	fmt.Printf("Added contact %s (%s)\n", contact.Name, contact.ID)
	return nil
}
