package rssfeeds

import (
	"log"
	"sync"
	"time"

	readability "github.com/go-shiori/go-readability"

	"github.com/narek-arsh/aura-trends-dashboard/types"
)

const (
	extractWorkers   = 5
	extractorTimeout = 30 * time.Second
)

// FillMissingContent visits articles whose feed entry carried no summary
// or image and fills them from the page itself using a small worker pool.
// Extraction is best effort; failures leave the article untouched.
func FillMissingContent(articles []*types.Article) {
	var pending []*types.Article
	for _, a := range articles {
		if a.Link != "" && (a.Summary == "" || a.ImageURL == "") {
			pending = append(pending, a)
		}
	}
	if len(pending) == 0 {
		return
	}

	var wg sync.WaitGroup
	articleChan := make(chan *types.Article, len(pending))

	for i := 0; i < extractWorkers; i++ {
		go func() {
			for a := range articleChan {
				if err := extract(a); err != nil {
					log.Printf("[rssfeeds] extraction failed for %s: %v", a.Link, err)
				}
				wg.Done()
			}
		}()
	}

	for _, a := range pending {
		wg.Add(1)
		articleChan <- a
	}

	wg.Wait()
	close(articleChan)
}

func extract(a *types.Article) error {
	page, err := readability.FromURL(a.Link, extractorTimeout)
	if err != nil {
		return err
	}

	if a.Summary == "" {
		a.Summary = page.Excerpt
	}
	if a.ImageURL == "" {
		a.ImageURL = page.Image
	}
	return nil
}
