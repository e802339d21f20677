package pipeline

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"stock-image-tagger/internal/analysis"
	"stock-image-tagger/internal/config"
	apperrors "stock-image-tagger/internal/errors"
	"stock-image-tagger/internal/logger"
	"stock-image-tagger/internal/observer"
	"stock-image-tagger/internal/storage"
	"stock-image-tagger/internal/synthesis"
	"stock-image-tagger/pkg/models"
	"stock-image-tagger/pkg/validation"
)

// ReportSink receives finished records. Satisfied by report.Writer.
type ReportSink interface {
	Write(record *models.MetadataRecord) error
}

// Summary carries the end-of-run totals.
type Summary struct {
	Total  int
	Failed int
}

// Orchestrator sequences analysis and synthesis for each image of a batch.
// Processing is strictly sequential: the external quota is shared across the
// run, so serializing calls is the simplest correct way to respect it. The
// orchestrator owns the only cross-iteration state — the set of filenames
// already assigned in this batch.
type Orchestrator struct {
	analyzer     analysis.Analyzer
	tables       *config.Tables
	titles       *synthesis.TitleBuilder
	descriptions *synthesis.DescriptionBuilder
	keywords     *synthesis.KeywordExpander
	filenames    *synthesis.FilenameBuilder
	suggester    *synthesis.UseCaseAudienceSuggester
	source       storage.ImageSource
	renamer      storage.Renamer
	report       ReportSink
	events       observer.Subject
	validator    *validation.RecordValidator
	log          *logrus.Entry

	dryRun   bool
	assigned map[string]bool
}

// Option configures the orchestrator.
type Option func(*Orchestrator)

// WithDryRun disables filesystem renames while keeping full record output.
func WithDryRun(dryRun bool) Option {
	return func(o *Orchestrator) { o.dryRun = dryRun }
}

// NewOrchestrator wires the pipeline together.
func NewOrchestrator(
	analyzer analysis.Analyzer,
	tables *config.Tables,
	source storage.ImageSource,
	renamer storage.Renamer,
	report ReportSink,
	events observer.Subject,
	opts ...Option,
) *Orchestrator {
	o := &Orchestrator{
		analyzer:     analyzer,
		tables:       tables,
		titles:       synthesis.NewTitleBuilder(tables),
		descriptions: synthesis.NewDescriptionBuilder(tables),
		keywords:     synthesis.NewKeywordExpander(tables),
		filenames:    synthesis.NewFilenameBuilder(tables),
		suggester:    synthesis.NewUseCaseAudienceSuggester(tables),
		source:       source,
		renamer:      renamer,
		report:       report,
		events:       events,
		validator:    validation.NewRecordValidator(tables),
		log:          logger.WithField("component", "pipeline"),
		assigned:     make(map[string]bool),
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// ProcessImage runs analysis and every synthesis builder for one image and
// assembles the record. It never returns an error: an analysis failure is
// downgraded to the record's Error field and every builder failure is
// contained at the point of use, with that field alone regenerated through
// its default path.
func (o *Orchestrator) ProcessImage(ctx context.Context, path, category, releases string) *models.MetadataRecord {
	base := filepath.Base(path)
	o.publish(ctx, observer.ProcessingEvent{
		EventType: observer.ProcessingStarted,
		Timestamp: time.Now(),
		ImagePath: path,
	})

	result, analysisErr := o.analyzer.Analyze(ctx, path)
	errMsg := ""
	if analysisErr != nil {
		errMsg = analysisErr.Error()
		o.log.WithField("image", path).WithError(analysisErr).Error("Analysis failed; synthesizing from fallbacks")
	}

	title := o.guardString(ctx, path, "title",
		func() string { return o.titles.Build(result, base) },
		func() string { return synthesis.DefaultTitle(base) },
	)
	description := o.guardString(ctx, path, "description",
		func() string { return o.descriptions.Build(result, base) },
		func() string { return synthesis.DefaultDescription(base) },
	)
	keywords := o.guardStrings(ctx, path, "keywords",
		func() []string { return o.keywords.Generate(result, title, description) },
		func() []string { return o.keywords.Generate(nil, title, description) },
	)
	useCases, audiences := o.guardSuggestions(ctx, path, result, title, description)
	newName := o.guardString(ctx, path, "filename",
		func() string { return o.filenames.Build(base, result, o.assigned) },
		func() string { return o.filenames.Build(base, nil, o.assigned) },
	)
	o.assigned[strings.ToLower(newName)] = true

	record := &models.MetadataRecord{
		OriginalFilename: base,
		NewFilename:      newName,
		Title:            title,
		Keywords:         keywords,
		Description:      description,
		UseCases:         useCases,
		Audiences:        audiences,
		Category:         category,
		Releases:         releases,
		Error:            errMsg,
	}
	if result != nil {
		record.RawAnalysis = result.Raw
	}

	if issues := o.validator.Validate(record); len(issues) > 0 {
		o.log.WithFields(logrus.Fields{
			"image":  path,
			"issues": issues,
		}).Warn("Record failed invariant validation")
	}
	return record
}

// Run processes every image under dir in enumeration order, renames the
// files, and streams records to the report. Completed records survive an
// operator interrupt; the loop simply stops before the next image.
func (o *Orchestrator) Run(ctx context.Context, dir, category, releases string) (*Summary, error) {
	images, err := o.source.ListImages(dir)
	if err != nil {
		return nil, err
	}
	if category == "" {
		category = o.tables.DefaultCategory
	}
	if releases == "" {
		releases = o.tables.DefaultReleases
	}

	o.log.WithFields(logrus.Fields{
		"directory": dir,
		"images":    len(images),
		"dry_run":   o.dryRun,
	}).Info("Starting batch")

	summary := &Summary{}
	for _, path := range images {
		if ctx.Err() != nil {
			o.log.WithField("remaining", len(images)-summary.Total).
				Warn("Run interrupted; completed records are preserved")
			break
		}

		record := o.ProcessImage(ctx, path, category, releases)
		o.applyRename(ctx, path, record)

		if err := o.report.Write(record); err != nil {
			o.log.WithField("image", path).WithError(err).Error("Failed to write report row")
		}

		summary.Total++
		eventType := observer.ProcessingCompleted
		if record.Failed() {
			summary.Failed++
			eventType = observer.ProcessingFailed
		}
		o.publish(ctx, observer.ProcessingEvent{
			EventType:    eventType,
			Timestamp:    time.Now(),
			ImagePath:    path,
			Success:      !record.Failed(),
			ErrorMessage: record.Error,
		})
	}

	o.log.WithFields(logrus.Fields{
		"processed": summary.Total,
		"failed":    summary.Failed,
	}).Info("Batch finished")
	return summary, nil
}

// applyRename performs the on-disk rename for a clean record. A rename
// failure marks the record and leaves the original file untouched; it never
// affects other images.
func (o *Orchestrator) applyRename(ctx context.Context, path string, record *models.MetadataRecord) {
	if o.dryRun || record.Failed() || record.NewFilename == record.OriginalFilename {
		return
	}
	if _, err := o.renamer.Rename(path, record.NewFilename); err != nil {
		record.Error = fmt.Sprintf("failed to rename file: %v", err)
		o.log.WithField("image", path).WithError(err).Error("Rename failed; original file preserved")
		return
	}
	o.publish(ctx, observer.ProcessingEvent{
		EventType: observer.ImageRenamed,
		Timestamp: time.Now(),
		ImagePath: path,
		Success:   true,
	})
}

// guardString contains a builder failure to its own field: on panic the
// fallback generator produces the value and the rest of the record is
// unaffected.
func (o *Orchestrator) guardString(ctx context.Context, path, field string, build, fallback func() string) string {
	value, err := tryString(build)
	if err == nil {
		return value
	}
	o.fieldFallback(ctx, path, field, err)
	value, err = tryString(fallback)
	if err != nil {
		o.log.WithField("field", field).WithError(err).Error("Fallback generator failed")
		return ""
	}
	return value
}

func (o *Orchestrator) guardStrings(ctx context.Context, path, field string, build, fallback func() []string) []string {
	value, err := tryStrings(build)
	if err == nil {
		return value
	}
	o.fieldFallback(ctx, path, field, err)
	value, err = tryStrings(fallback)
	if err != nil {
		o.log.WithField("field", field).WithError(err).Error("Fallback generator failed")
		return nil
	}
	return value
}

func (o *Orchestrator) guardSuggestions(ctx context.Context, path string, result *models.AnalysisResult, title, description string) (useCases, audiences []string) {
	defer func() {
		if r := recover(); r != nil {
			o.fieldFallback(ctx, path, "suggestions", apperrors.NewSynthesisError(fmt.Sprintf("builder panicked: %v", r), nil))
			useCases, audiences = o.suggester.Suggest(nil, title, description)
		}
	}()
	useCases, audiences = o.suggester.Suggest(result, title, description)
	return useCases, audiences
}

func (o *Orchestrator) fieldFallback(ctx context.Context, path, field string, err error) {
	o.log.WithFields(logrus.Fields{
		"image": path,
		"field": field,
	}).WithError(err).Warn("Builder failed; using default generator")
	o.publish(ctx, observer.ProcessingEvent{
		EventType:    observer.FallbackUsed,
		Timestamp:    time.Now(),
		ImagePath:    path,
		Field:        field,
		ErrorMessage: err.Error(),
	})
}

func (o *Orchestrator) publish(ctx context.Context, event observer.ProcessingEvent) {
	if o.events != nil {
		o.events.NotifyObservers(ctx, event)
	}
}

func tryString(f func() string) (value string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = apperrors.NewSynthesisError(fmt.Sprintf("builder panicked: %v", r), nil)
		}
	}()
	value = f()
	return value, err
}

func tryStrings(f func() []string) (value []string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = apperrors.NewSynthesisError(fmt.Sprintf("builder panicked: %v", r), nil)
		}
	}()
	value = f()
	return value, err
}
