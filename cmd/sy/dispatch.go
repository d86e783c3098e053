package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/arjunvn/sahaya/internal/dispatch"
	"github.com/arjunvn/sahaya/internal/models"
	"github.com/spf13/cobra"
)

func newDispatchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dispatch",
		Short: "Dispatch record queries",
	}

	cmd.AddCommand(newDispatchListCmd())
	cmd.AddCommand(newDispatchShowCmd())
	return cmd
}

func newDispatchListCmd() *cobra.Command {
	var (
		configPath  string
		complaintID string
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List dispatch records",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDispatchList(cmd, configPath, complaintID)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "sahaya.yaml", "path to Sahaya config file")
	cmd.Flags().StringVar(&complaintID, "complaint", "", "filter by complaint ID")
	return cmd
}

func runDispatchList(cmd *cobra.Command, configPath, complaintID string) error {
	_, gormDB, err := connectFromConfig(configPath)
	if err != nil {
		return err
	}

	var records []models.DispatchRecord
	if complaintID != "" {
		records, err = dispatch.ListByComplaint(gormDB, complaintID)
	} else {
		records, err = dispatch.List(gormDB)
	}
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if len(records) == 0 {
		fmt.Fprintln(out, "No dispatch records found.")
		return nil
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tCOMPLAINT\tLEGAL\tPOLICE\tMENTAL\tCREATED")
	for i := range records {
		r := &records[i]
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
			r.ID, r.ComplaintID,
			formatSlot(r.Slot(models.CategoryLegal)),
			formatSlot(r.Slot(models.CategoryPolice)),
			formatSlot(r.Slot(models.CategoryMental)),
			r.CreatedAt.Format("2006-01-02 15:04"))
	}
	w.Flush()
	return nil
}

func newDispatchShowCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "show <dispatch-id>",
		Short: "Show a dispatch record with assigned volunteers",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDispatchShow(cmd, configPath, args[0])
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "sahaya.yaml", "path to Sahaya config file")
	return cmd
}

func runDispatchShow(cmd *cobra.Command, configPath, id string) error {
	_, gormDB, err := connectFromConfig(configPath)
	if err != nil {
		return err
	}

	r, err := dispatch.Get(gormDB, id)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "ID:        %s\n", r.ID)
	fmt.Fprintf(out, "Complaint: %s\n", r.ComplaintID)
	fmt.Fprintf(out, "Created:   %s\n", r.CreatedAt.Format("2006-01-02 15:04:05"))
	fmt.Fprintf(out, "Aggregate: %s\n", r.AggregateStatus())
	fmt.Fprintln(out)

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "CATEGORY\tVOLUNTEER\tNAME\tSTATUS\tUPDATED")
	for _, category := range models.Categories {
		s := r.Slot(category)
		if s == nil {
			continue
		}
		volID, volName := "-", "-"
		if s.Assigned() {
			volID = *s.VolunteerID
			if s.Volunteer != nil {
				volName = s.Volunteer.Name
			}
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
			category, volID, volName, s.Status, s.UpdatedAt.Format("2006-01-02 15:04"))
	}
	w.Flush()
	return nil
}
