package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/arjunvn/sahaya/internal/complaint"
	"github.com/arjunvn/sahaya/internal/dispatch"
	"github.com/arjunvn/sahaya/internal/models"
	"github.com/arjunvn/sahaya/internal/notify"
	"github.com/spf13/cobra"
)

func newComplaintCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "complaint",
		Short: "Complaint intake and query commands",
	}

	cmd.AddCommand(newComplaintFileCmd())
	cmd.AddCommand(newComplaintListCmd())
	cmd.AddCommand(newComplaintShowCmd())
	return cmd
}

func newComplaintFileCmd() *cobra.Command {
	var (
		configPath  string
		phone       string
		name        string
		ctype       string
		description string
		location    string
	)

	cmd := &cobra.Command{
		Use:   "file",
		Short: "File a complaint and dispatch volunteers",
		Long: `Records a complaint and immediately dispatches the nearest active
volunteer in each response category (legal, police, mental). Categories with
no active volunteer are left unassigned on the dispatch record.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runComplaintFile(cmd, configPath, complaint.Intake{
				PhoneNo:     phone,
				Name:        name,
				Type:        ctype,
				Description: description,
				Location:    location,
			})
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "sahaya.yaml", "path to Sahaya config file")
	cmd.Flags().StringVar(&phone, "phone", "", "reporter phone number (required)")
	cmd.Flags().StringVar(&name, "name", "", "reporter name")
	cmd.Flags().StringVar(&ctype, "type", "", "complaint type, e.g. harassment (required)")
	cmd.Flags().StringVar(&description, "description", "", "free-text description")
	cmd.Flags().StringVar(&location, "location", "", "incident coordinates as \"lat,lon\" (required)")
	cmd.MarkFlagRequired("phone")
	cmd.MarkFlagRequired("type")
	cmd.MarkFlagRequired("location")
	return cmd
}

func runComplaintFile(cmd *cobra.Command, configPath string, in complaint.Intake) error {
	cfg, gormDB, err := connectFromConfig(configPath)
	if err != nil {
		return err
	}

	record, err := dispatch.Dispatch(gormDB, in)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Filed complaint %s\n", record.ComplaintID)
	fmt.Fprintf(out, "Dispatch record %s:\n", record.ID)
	for _, category := range models.Categories {
		fmt.Fprintf(out, "  %-7s %s\n", category, formatSlot(record.Slot(category)))
	}

	notifier, err := notify.FromConfig(cfg.Notify)
	if err != nil {
		return err
	}
	notify.SendDispatch(notifier, record)
	return nil
}

func newComplaintListCmd() *cobra.Command {
	var (
		configPath string
		status     string
		ctype      string
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List complaints",
		Long:  "Lists complaints newest first. The status filter applies to the derived aggregate status.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runComplaintList(cmd, configPath, complaint.ListFilters{
				Status: status,
				Type:   ctype,
			})
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "sahaya.yaml", "path to Sahaya config file")
	cmd.Flags().StringVar(&status, "status", "", "filter by aggregate status (dispatched, resolved)")
	cmd.Flags().StringVar(&ctype, "type", "", "filter by complaint type")
	return cmd
}

func runComplaintList(cmd *cobra.Command, configPath string, filters complaint.ListFilters) error {
	_, gormDB, err := connectFromConfig(configPath)
	if err != nil {
		return err
	}

	cs, err := complaint.List(gormDB, filters)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if len(cs) == 0 {
		fmt.Fprintln(out, "No complaints found.")
		return nil
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTYPE\tSTATUS\tLOCATION\tREPORTED")
	for _, c := range cs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
			c.ID, truncate(c.Type, 24), c.Status, c.Location,
			c.ReportedAt.Format("2006-01-02 15:04"))
	}
	w.Flush()
	return nil
}

func newComplaintShowCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "show <complaint-id>",
		Short: "Show complaint details and dispatch history",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runComplaintShow(cmd, configPath, args[0])
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "sahaya.yaml", "path to Sahaya config file")
	return cmd
}

func runComplaintShow(cmd *cobra.Command, configPath, id string) error {
	_, gormDB, err := connectFromConfig(configPath)
	if err != nil {
		return err
	}

	c, err := complaint.Get(gormDB, id)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "ID:          %s\n", c.ID)
	fmt.Fprintf(out, "Phone:       %s\n", c.PhoneNo)
	fmt.Fprintf(out, "Name:        %s\n", dash(c.Name))
	fmt.Fprintf(out, "Type:        %s\n", c.Type)
	fmt.Fprintf(out, "Status:      %s\n", c.Status)
	fmt.Fprintf(out, "Location:    %s\n", c.Location)
	fmt.Fprintf(out, "Reported:    %s\n", c.ReportedAt.Format("2006-01-02 15:04:05"))
	if c.Description != "" {
		fmt.Fprintf(out, "Description: %s\n", c.Description)
	}

	if len(c.Dispatches) == 0 {
		fmt.Fprintln(out, "\nNo dispatch records.")
		return nil
	}
	for i := range c.Dispatches {
		r := &c.Dispatches[i]
		fmt.Fprintf(out, "\nDispatch %s (%s):\n", r.ID, r.CreatedAt.Format("2006-01-02 15:04"))
		for _, category := range models.Categories {
			fmt.Fprintf(out, "  %-7s %s\n", category, formatSlot(r.Slot(category)))
		}
	}
	return nil
}
