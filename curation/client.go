package curation

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/narek-arsh/aura-trends-dashboard/config"
	"github.com/narek-arsh/aura-trends-dashboard/types"
)

const relevancePrompt = `¿Este artículo podría interesar a un huésped de un hotel de lujo lifestyle como el ME by Meliá?
Evalúa si aporta valor como experiencia, estilo, cultura, tendencia o curiosidad.

Devuelve únicamente: true o false.

Título: %s
Resumen: %s
Categoría: %s
Fuente: %s`

const enrichmentPrompt = `Eres un curador de noticias para un hotel de lujo lifestyle. Analiza el siguiente artículo:

Título: %s
Resumen: %s

Devuelve únicamente un objeto JSON con esta forma exacta, sin texto adicional:
{"why_it_matters": "una frase explicando por qué es importante", "activation_ideas": ["idea corta para un host de hotel 5*", "otra idea"]}`

// Enrichment holds the optional AI-generated context for an accepted article
type Enrichment struct {
	WhyItMatters    string   `json:"why_it_matters,omitempty"`
	ActivationIdeas []string `json:"activation_ideas,omitempty"`
}

// credState tracks each credential through the run
type credState int

const (
	credActive credState = iota
	credCooling
	credExhausted
)

type credential struct {
	key       string
	state     credState
	coolUntil time.Time
}

// callFunc performs one remote generation call with a specific credential.
// Swappable in tests.
type callFunc func(ctx context.Context, key, prompt string) (string, error)

// Curator decides article relevance via a generative-language API while
// rotating across credentials and absorbing quota pressure. It is not safe
// for concurrent use; the batch driver is strictly sequential.
type Curator struct {
	creds        []*credential
	callInterval time.Duration
	model        string
	endpoint     string
	httpClient   *http.Client

	call  callFunc
	sleep func(time.Duration)
	now   func() time.Time
}

// New builds a Curator from configuration. Returns an error when no
// credential is configured at all.
func New(cfg config.Config) (*Curator, error) {
	if len(cfg.APIKeys) == 0 {
		return nil, fmt.Errorf("curation: no API keys configured (set %s)", "GEMINI_API_KEYS")
	}

	creds := make([]*credential, 0, len(cfg.APIKeys))
	for _, k := range cfg.APIKeys {
		creds = append(creds, &credential{key: k})
	}

	c := &Curator{
		creds:        creds,
		callInterval: cfg.CallInterval,
		model:        cfg.Model,
		endpoint:     cfg.Endpoint,
		httpClient:   &http.Client{Timeout: httpTimeout},
		sleep:        time.Sleep,
		now:          time.Now,
	}
	c.call = c.geminiCall
	return c, nil
}

// Evaluate decides whether the article fits the curation brief.
// Ambiguous or locally failed calls resolve to false; ErrExhausted is the
// only error returned, and means the whole run should flush and stop.
func (c *Curator) Evaluate(ctx context.Context, a *types.Article) (bool, error) {
	prompt := fmt.Sprintf(relevancePrompt, a.Title, a.Summary, a.Category, a.Link)

	text, err := c.generate(ctx, prompt)
	if err != nil {
		if errors.Is(err, ErrExhausted) {
			return false, err
		}
		log.Printf("[curation] call failed for %q: %v (marking not relevant)", a.Title, err)
		return false, nil
	}

	relevant, ambiguous := Relevance(text)
	if ambiguous {
		log.Printf("[curation] unexpected response for %q: %.80q (marking not relevant)", a.Title, text)
	}
	return relevant, nil
}

// Enrich asks the model for why-it-matters and activation ideas. Best
// effort: any failure, including quota exhaustion, yields an empty result
// so enrichment can never abort the relevance path.
func (c *Curator) Enrich(ctx context.Context, a *types.Article) Enrichment {
	prompt := fmt.Sprintf(enrichmentPrompt, a.Title, a.Summary)

	text, err := c.generate(ctx, prompt)
	if err != nil {
		log.Printf("[curation] enrichment skipped for %q: %v", a.Title, err)
		return Enrichment{}
	}
	return parseEnrichment(text)
}

// generate walks the credential rotation strictly forward for one prompt.
// Per-minute quota errors get a bounded wait-and-retry on the same key;
// per-day quota and invalid keys retire the credential for the run;
// transient failures advance without penalty. When every credential is
// retired or cooling, the distinguished exhaustion error is returned.
func (c *Curator) generate(ctx context.Context, prompt string) (string, error) {
	var lastErr error

	for _, cred := range c.creds {
		switch cred.state {
		case credExhausted:
			continue
		case credCooling:
			if c.now().Before(cred.coolUntil) {
				continue
			}
			cred.state = credActive
		}

	attempts:
		for attempt := 1; attempt <= config.AttemptsPerKey; attempt++ {
			text, err := c.call(ctx, cred.key, prompt)
			if err == nil {
				// Unconditional pacing after every successful call,
				// separate from the backoff sleeps below.
				c.sleep(c.callInterval)
				return text, nil
			}
			lastErr = err

			switch classify(err) {
			case classQuotaMinute:
				wait := retryHint(err, config.DefaultRetryWait, config.MaxRetryWait)
				if attempt < config.AttemptsPerKey {
					log.Printf("[curation] per-minute quota on key #%d, retrying in %s", credIndex(c.creds, cred)+1, wait)
					c.sleep(wait)
					continue
				}
				cred.state = credCooling
				cred.coolUntil = c.now().Add(wait)
				log.Printf("[curation] key #%d cooling down until %s", credIndex(c.creds, cred)+1, cred.coolUntil.Format(time.Kitchen))
				break attempts
			case classQuotaDay:
				cred.state = credExhausted
				log.Printf("[curation] key #%d exhausted its daily quota, removing from rotation", credIndex(c.creds, cred)+1)
				break attempts
			case classInvalidKey:
				cred.state = credExhausted
				log.Printf("[curation] key #%d rejected as invalid, removing from rotation", credIndex(c.creds, cred)+1)
				break attempts
			case classTransient:
				log.Printf("[curation] transient failure on key #%d, advancing: %v", credIndex(c.creds, cred)+1, err)
				break attempts
			default:
				return "", fmt.Errorf("unclassified curation failure: %w", err)
			}
		}
	}

	if c.allRetired() {
		return "", ErrExhausted
	}
	if lastErr != nil {
		return "", fmt.Errorf("no credential served the request: %w", lastErr)
	}
	return "", ErrExhausted
}

// allRetired reports whether every credential is exhausted or cooling down.
func (c *Curator) allRetired() bool {
	for _, cred := range c.creds {
		if cred.state == credActive {
			return false
		}
		if cred.state == credCooling && !c.now().Before(cred.coolUntil) {
			return false
		}
	}
	return true
}

func credIndex(creds []*credential, target *credential) int {
	for i, cred := range creds {
		if cred == target {
			return i
		}
	}
	return -1
}
