package outwriter

import (
	"fmt"
	"io"
	"strconv"

	"github.com/cadencehq/cadence/internal/contract"
	"github.com/cadencehq/cadence/schema"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

// WriteContactList outputs the contact directory, dispatching based on the output format configured.
func WriteContactList(contacts []schema.Contact, cfg *contract.Config) error {
	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, contacts)
		}, "Wrote JSON")
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeContactTable(w, contacts)
		}, "Wrote table")
	}
}

func writeContactTable(w io.Writer, contacts []schema.Contact) error {
	if len(contacts) == 0 {
		_, err := fmt.Fprintln(w, "No contacts yet. Add one with: cadence contacts add")
		return err
	}

	table := tablewriter.NewWriter(w)
	table.Header([]string{"ID", "Name", "Email", "Cadence (d)"})
	table.Configure(func(tcfg *tablewriter.Config) {
		tcfg.Row.Alignment.Global = tw.AlignRight
	})

	var data [][]string
	for _, c := range contacts {
		data = append(data, []string{c.ID, c.Name, c.Email, strconv.Itoa(c.CadenceDays)})
	}
	if err := table.Bulk(data); err != nil {
		return err
	}
	return table.Render()
}

// WriteTaskList outputs the task list, dispatching based on the output format configured.
func WriteTaskList(tasks []schema.Task, cfg *contract.Config) error {
	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, tasks)
		}, "Wrote JSON")
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeTaskTable(w, tasks)
		}, "Wrote table")
	}
}

func writeTaskTable(w io.Writer, tasks []schema.Task) error {
	if len(tasks) == 0 {
		_, err := fmt.Fprintln(w, "No tasks yet. Add one with: cadence tasks add")
		return err
	}

	table := tablewriter.NewWriter(w)
	table.Header([]string{"ID", "Contact", "Title", "Due", "Status"})
	table.Configure(func(tcfg *tablewriter.Config) {
		tcfg.Row.Alignment.Global = tw.AlignRight
	})

	var data [][]string
	for _, t := range tasks {
		due := "-"
		if !t.DueAt.IsZero() {
			due = t.DueAt.Format("2006-01-02")
		}
		status := "open"
		if t.Done {
			status = "done"
		}
		data = append(data, []string{t.ID, t.ContactID, t.Title, due, status})
	}
	if err := table.Bulk(data); err != nil {
		return err
	}
	return table.Render()
}
