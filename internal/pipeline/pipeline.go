// Package pipeline orchestrates whole deals: load a raw source
// directory, anonymize every artifact, segment into checkpoints,
// validate, and export. The batch runner processes many deals with a
// bounded worker pool and never lets one bad deal abort the run.
package pipeline

import (
	"context"
	"fmt"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"dealbench/internal/anonymize"
	"dealbench/internal/artifact"
	"dealbench/internal/checkpoint"
	"dealbench/internal/deal"
	"dealbench/internal/export"
	"dealbench/internal/link"
	"dealbench/internal/logging"
	"dealbench/internal/validate"
)

// Artifacts whose effective dates fall within this window are treated
// as one linked activity burst.
const defaultLinkWindowDays = 3

// Options configures a pipeline run.
type Options struct {
	OutputDir  string
	PublicIDs  []string // deal ids exported under public/
	DateOffset int      // whole days added to every date during anonymization
	Workers    int      // max concurrent deals; <1 means 1
}

// Result records one deal's trip through the pipeline. Err is non-nil
// when the deal could not be exported.
type Result struct {
	DealID          string
	Name            string
	Dir             string
	Path            string
	ArtifactCount   int
	CheckpointCount int
	TaskCount       int
	TypeCounts      map[artifact.Type]int
	Warnings        []string
	Err             error
}

// Pipeline holds the shared stages of a run. Safe for concurrent use on
// distinct deals.
type Pipeline struct {
	rewriter  *anonymize.Rewriter
	validator *validate.Validator
	writer    *export.Writer
	opts      Options
	log       *slog.Logger
}

// New builds a Pipeline with the default vocabulary and an export
// writer rooted at opts.OutputDir.
func New(opts Options) (*Pipeline, error) {
	vocab, err := anonymize.DefaultVocabulary()
	if err != nil {
		return nil, fmt.Errorf("pipeline: load vocabulary: %w", err)
	}
	rw, err := anonymize.NewRewriter(vocab)
	if err != nil {
		return nil, fmt.Errorf("pipeline: build rewriter: %w", err)
	}
	w, err := export.NewWriter(opts.OutputDir, opts.PublicIDs)
	if err != nil {
		return nil, err
	}
	return &Pipeline{
		rewriter:  rw,
		validator: validate.New(vocab),
		writer:    w,
		opts:      opts,
		log:       logging.New("pipeline"),
	}, nil
}

// Process runs one deal directory end to end and returns its result.
// Failures are reported in Result.Err, never panicked.
func (p *Pipeline) Process(ctx context.Context, dir string) Result {
	res := Result{Dir: dir}
	if err := ctx.Err(); err != nil {
		res.Err = err
		return res
	}

	src, err := LoadDeal(dir)
	if err != nil {
		res.Err = err
		return res
	}
	res.DealID = src.Manifest.ID
	res.Name = src.Manifest.Name

	anon := make([]artifact.Artifact, 0, len(src.Artifacts))
	for _, a := range src.Artifacts {
		anon = append(anon, p.rewriter.Artifact(a, p.opts.DateOffset))
	}

	groups := link.LinkedGroups(anon, defaultLinkWindowDays)
	p.log.Debug("linked artifacts",
		"deal", src.Manifest.ID, "artifacts", len(anon), "groups", len(groups))

	band := ""
	if src.Manifest.Amount > 0 {
		band = anonymize.Band(src.Manifest.Amount)
	}
	builder := checkpoint.New(checkpoint.Config{
		DealID:           src.Manifest.ID,
		Stage:            src.Manifest.Stage,
		AmountBand:       band,
		FirstContactDate: src.Manifest.FirstContact,
	})
	checkpoints := builder.Build(anon)

	d := &deal.Deal{
		ID:            src.Manifest.ID,
		Name:          p.rewriter.Rewrite(src.Manifest.Name),
		SchemaVersion: deal.SchemaVersion,
		Artifacts:     make(map[string]artifact.Artifact, len(anon)),
		Checkpoints:   checkpoints,
		Outcome:       builder.Outcome(anon),
	}
	for _, a := range anon {
		d.Artifacts[a.Header().ID] = a
	}
	d.Summary = deal.ComputeSummary(d)

	vres := p.validator.Validate(d)
	res.Warnings = vres.Warnings
	res.ArtifactCount = d.Summary.ArtifactCount
	res.CheckpointCount = d.Summary.CheckpointCount
	res.TaskCount = d.Summary.TaskCount
	res.TypeCounts = d.Summary.TypeCounts

	path, err := p.writer.WriteDeal(d, vres)
	if err != nil {
		res.Err = err
		return res
	}
	res.Path = path

	p.log.Info("deal exported",
		"deal", d.ID,
		"artifacts", res.ArtifactCount,
		"checkpoints", res.CheckpointCount,
		"tasks", res.TaskCount,
		"warnings", len(res.Warnings),
		"path", path)
	return res
}

// Run processes every directory with at most opts.Workers deals in
// flight. Per-deal failures land in their Result; the batch always runs
// to completion unless the context is cancelled.
func (p *Pipeline) Run(ctx context.Context, dirs []string) []Result {
	workers := p.opts.Workers
	if workers < 1 {
		workers = 1
	}

	results := make([]Result, len(dirs))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, dir := range dirs {
		i, dir := i, dir
		g.Go(func() error {
			results[i] = p.Process(ctx, dir)
			if results[i].Err != nil {
				p.log.Error("deal failed",
					"dir", dir, "error", results[i].Err)
			}
			return nil
		})
	}
	_ = g.Wait() // errors captured in each Result
	return results
}

// IsPublic reports whether a deal id is on the export allow-list.
func (p *Pipeline) IsPublic(dealID string) bool { return p.writer.IsPublic(dealID) }

// Summarize folds a result set into the run summary document.
func (p *Pipeline) Summarize(runID, generatedAt string, results []Result) *export.RunSummary {
	sum := &export.RunSummary{
		RunID:       runID,
		GeneratedAt: generatedAt,
		TypeCounts:  make(map[artifact.Type]int),
	}
	for _, r := range results {
		rep := export.DealReport{
			DealID:      r.DealID,
			Name:        r.Name,
			Artifacts:   r.ArtifactCount,
			Checkpoints: r.CheckpointCount,
			Tasks:       r.TaskCount,
			Warnings:    len(r.Warnings),
			Public:      p.writer.IsPublic(r.DealID),
		}
		if r.Err != nil {
			rep.Error = r.Err.Error()
		}
		for typ, n := range r.TypeCounts {
			sum.TypeCounts[typ] += n
		}
		sum.Deals = append(sum.Deals, rep)
	}
	return sum
}

// WriteSummary persists the run summary at the output root.
func (p *Pipeline) WriteSummary(s *export.RunSummary) error {
	return p.writer.WriteSummary(s)
}
