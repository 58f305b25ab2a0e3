package worker

import (
	"context"
	"fmt"
	"log/slog"

	"scorecard/internal/amqp"
	applog "scorecard/internal/log"
	"scorecard/internal/sheets"
)

// ReportConsumer delivers report export messages from the queue.
type ReportConsumer interface {
	ConsumeReportExports(ctx context.Context, handler func(*amqp.ReportExportMessage) error) error
}

// ExportWorker drains report export messages and writes each one as a row
// in the report sheet.
type ExportWorker struct {
	consumer ReportConsumer
	writer   sheets.ReportWriter
}

func NewExportWorker(consumer ReportConsumer, writer sheets.ReportWriter) *ExportWorker {
	return &ExportWorker{
		consumer: consumer,
		writer:   writer,
	}
}

// Run consumes export messages until ctx is cancelled. A handler error
// requeues the message, so transient sheet failures are retried on
// redelivery.
func (w *ExportWorker) Run(ctx context.Context) error {
	return w.consumer.ConsumeReportExports(ctx, func(msg *amqp.ReportExportMessage) error {
		return w.handleExport(ctx, msg)
	})
}

func (w *ExportWorker) handleExport(ctx context.Context, msg *amqp.ReportExportMessage) error {
	slog.InfoContext(ctx, "Processing report export",
		applog.FieldCandidateID, msg.CandidateID,
		applog.FieldCycle, msg.Cycle)

	rowRef, err := w.writer.AppendReport(ctx, sheets.ReportRow{
		CandidateID:        msg.CandidateID,
		CandidateName:      msg.CandidateName,
		CommitteeID:        msg.CommitteeID,
		Cycle:              msg.Cycle,
		TotalReceipts:      msg.TotalReceipts,
		TotalRaised:        msg.TotalRaised,
		BigMoneyTotal:      msg.BigMoneyTotal,
		GrassrootsTotal:    msg.GrassrootsTotal,
		BigMoneyPercentage: msg.BigMoneyPercentage,
		ExportedAt:         msg.Timestamp,
	})
	if err != nil {
		return fmt.Errorf("append report for candidate %s: %w", msg.CandidateID, err)
	}

	slog.InfoContext(ctx, "Report export written",
		applog.FieldCandidateID, msg.CandidateID,
		applog.FieldBigMoneyPct, msg.BigMoneyPercentage,
		applog.FieldSheetRef, rowRef)
	return nil
}
