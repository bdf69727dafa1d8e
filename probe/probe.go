package probe

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/narek-arsh/aura-trends-dashboard/config"
	"github.com/narek-arsh/aura-trends-dashboard/curation"
	"github.com/narek-arsh/aura-trends-dashboard/rssfeeds"
	"github.com/narek-arsh/aura-trends-dashboard/storage"
	"github.com/narek-arsh/aura-trends-dashboard/types"
)

// Curator is the slice of the curation client the driver needs.
type Curator interface {
	Evaluate(ctx context.Context, a *types.Article) (bool, error)
	Enrich(ctx context.Context, a *types.Article) curation.Enrichment
}

// Filter is an optional probabilistic seen-filter consulted before the
// ledger. Over-skipping is acceptable; it can never cause a remote call.
type Filter interface {
	Seen(id string) (bool, error)
	Add(id string) error
}

// TrendUploader optionally mirrors accepted trends to external storage.
type TrendUploader interface {
	UploadTrend(ctx context.Context, t types.Trend) error
}

// Summary reports what a batch run did.
type Summary struct {
	Fetched   int
	Skipped   int
	Evaluated int
	Accepted  int
	Exhausted bool
	Cancelled bool
}

// Probe drives one curation batch: for each new article, ask the curator
// once, record the outcome, persist immediately. Strictly sequential.
type Probe struct {
	cfg      config.Config
	curator  Curator
	filter   Filter
	uploader TrendUploader
}

// New creates a batch driver. Filter and uploader are optional.
func New(cfg config.Config, curator Curator) *Probe {
	return &Probe{cfg: cfg, curator: curator}
}

// WithFilter attaches the optional seen-filter fast path.
func (p *Probe) WithFilter(f Filter) *Probe {
	p.filter = f
	return p
}

// WithUploader attaches the optional trend mirror.
func (p *Probe) WithUploader(u TrendUploader) *Probe {
	p.uploader = u
	return p
}

// Run evaluates the given articles against the ledger and persists both
// stores after every single decision, so a killed run loses nothing.
// Credential exhaustion stops the loop but is not an error: state is
// flushed and the next invocation resumes from the ledger.
func (p *Probe) Run(ctx context.Context, articles []*types.Article) (Summary, error) {
	summary := Summary{Fetched: len(articles)}

	ledger, err := storage.LoadLedger(p.cfg.LedgerPath())
	if err != nil {
		return summary, err
	}
	trends, err := storage.LoadTrends(p.cfg.TrendsPath())
	if err != nil {
		return summary, err
	}

	log.Printf("[probe] %d articles fetched, %d decisions in ledger, %d trends stored",
		len(articles), ledger.Len(), trends.Len())

	for i, a := range articles {
		if ctx.Err() != nil {
			log.Printf("[probe] run cancelled, flushing and stopping")
			summary.Cancelled = true
			break
		}
		if ledger.Has(a.ID) {
			summary.Skipped++
			continue
		}
		if p.filter != nil {
			seen, err := p.filter.Seen(a.ID)
			if err != nil {
				log.Printf("[probe] seen-filter check failed for %s: %v", a.ID, err)
			} else if seen {
				summary.Skipped++
				continue
			}
		}

		log.Printf("[probe] [%d/%d] evaluating: %.80s", i+1, len(articles), a.Title)
		summary.Evaluated++

		relevant, err := p.curator.Evaluate(ctx, a)
		if errors.Is(err, curation.ErrExhausted) {
			log.Printf("[probe] quota exhausted on every credential, flushing and stopping")
			summary.Exhausted = true
			break
		}
		if err != nil {
			return summary, fmt.Errorf("evaluate %s: %w", a.ID, err)
		}
		if ctx.Err() != nil {
			// A cancelled context aborts the call mid-flight, so the
			// verdict is the absorbed failure, not an answer. Leave the
			// article undecided for the next run.
			log.Printf("[probe] run cancelled during evaluation, discarding verdict for %s", a.ID)
			summary.Evaluated--
			summary.Cancelled = true
			break
		}

		ledger.Record(a.ID, relevant)
		if p.filter != nil {
			if err := p.filter.Add(a.ID); err != nil {
				log.Printf("[probe] seen-filter add failed for %s: %v", a.ID, err)
			}
		}

		if relevant {
			trend := types.Trend{Article: *a, CuratedAt: time.Now()}
			enrichment := p.curator.Enrich(ctx, a)
			trend.WhyItMatters = enrichment.WhyItMatters
			trend.ActivationIdeas = enrichment.ActivationIdeas

			trends.Append(trend)
			summary.Accepted++
			log.Printf("[probe]   ✓ accepted into trends (%s)", a.Category)

			if p.uploader != nil {
				uctx, cancel := context.WithTimeout(ctx, 30*time.Second)
				if err := p.uploader.UploadTrend(uctx, trend); err != nil {
					log.Printf("[probe]   upload failed for %s: %v", a.ID, err)
				}
				cancel()
			}
		}

		// Persist after every article, never batched: the run may be
		// killed by quota or timeout at any point.
		if err := ledger.Save(); err != nil {
			return summary, fmt.Errorf("save ledger: %w", err)
		}
		if err := trends.Save(); err != nil {
			return summary, fmt.Errorf("save trends: %w", err)
		}
	}

	if err := ledger.Save(); err != nil {
		return summary, fmt.Errorf("final ledger save: %w", err)
	}
	if err := trends.Save(); err != nil {
		return summary, fmt.Errorf("final trends save: %w", err)
	}

	log.Printf("[probe] run complete: %d evaluated, %d accepted, %d skipped",
		summary.Evaluated, summary.Accepted, summary.Skipped)
	return summary, nil
}

// RunOnce wires the full batch: load feed config, fetch and normalize
// articles, then drive the curation loop with whatever optional
// integrations the environment enables.
func RunOnce(ctx context.Context, cfg config.Config) (Summary, error) {
	feeds, err := rssfeeds.LoadFeeds(cfg.FeedsPath)
	if err != nil {
		return Summary{}, err
	}

	log.Printf("[probe] collecting %d feed categories", len(feeds))
	articles := rssfeeds.FetchAll(feeds)
	rssfeeds.FillMissingContent(articles)

	if err := writeSnapshot(cfg, articles); err != nil {
		log.Printf("[probe] snapshot write failed: %v", err)
	}

	curator, err := curation.New(cfg)
	if err != nil {
		return Summary{}, err
	}

	p := New(cfg, curator)
	filter, uploader := optionalIntegrations()
	if filter != nil {
		p.WithFilter(filter)
	}
	if uploader != nil {
		p.WithUploader(uploader)
	}

	return p.Run(ctx, articles)
}

// writeSnapshot stores the raw collection pass next to the curated data,
// useful for debugging feed coverage.
func writeSnapshot(cfg config.Config, articles []*types.Article) error {
	result := types.FetchResult{
		FetchedAt:    time.Now(),
		ArticleCount: len(articles),
		Articles:     articles,
	}
	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return err
	}
	path := filepath.Join(cfg.DataDir, "all_articles.json")
	if err := os.MkdirAll(cfg.DataDir, 0755); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
