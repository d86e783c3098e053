package notify

import (
	"context"
	"fmt"
	"io"
	"log"
	"time"

	"gorm.io/gorm"
)

// RunDigestLoop posts an open-dispatch digest on the given cron schedule
// until ctx is cancelled. Post failures are logged and the loop keeps
// going; only an invalid schedule is a hard error.
func RunDigestLoop(ctx context.Context, db *gorm.DB, n Notifier, cronExpr string, out io.Writer) error {
	if !ValidCronExpr(cronExpr) {
		return fmt.Errorf("notify: invalid digest schedule %q", cronExpr)
	}

	for {
		wait := nextCronDuration(cronExpr)
		if out != nil {
			fmt.Fprintf(out, "next digest in %s\n", wait.Round(time.Second))
		}

		timer := time.NewTimer(wait)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil
		case <-timer.C:
		}

		report, err := PostDigest(db, n)
		if err != nil {
			log.Printf("notify: digest: %v", err)
			continue
		}
		if out != nil && report != nil {
			fmt.Fprintf(out, "posted digest: %d open complaint(s)\n", report.OpenComplaints)
		}
	}
}
