package probe

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/narek-arsh/aura-trends-dashboard/common"
	"github.com/narek-arsh/aura-trends-dashboard/dedup"
	"github.com/narek-arsh/aura-trends-dashboard/types"
)

// optionalIntegrations inspects the environment and wires the Redis
// seen-filter and the S3 trend mirror when their variables are set.
// Neither is required; failures here degrade the run, never abort it.
func optionalIntegrations() (Filter, TrendUploader) {
	var filter Filter
	if f, err := dedup.NewFromEnv(); err != nil {
		log.Printf("[probe] seen-filter unavailable: %v", err)
	} else if f != nil {
		filter = f
	}

	var uploader TrendUploader
	bucket := os.Getenv("S3_BUCKET")
	if bucket != "" {
		s3c, err := common.NewS3(context.Background(), common.S3Config{
			Region: os.Getenv("AWS_REGION"),
		})
		if err != nil {
			log.Printf("[probe] trend mirror unavailable: %v", err)
		} else {
			uploader = &s3Uploader{
				client: s3c,
				bucket: bucket,
				prefix: strings.Trim(os.Getenv("S3_PREFIX"), "/"),
			}
		}
	}

	return filter, uploader
}

// s3Uploader writes each accepted trend as a standalone JSON object so
// downstream consumers can pick them up without parsing the whole file.
type s3Uploader struct {
	client *common.S3
	bucket string
	prefix string
}

func (u *s3Uploader) UploadTrend(ctx context.Context, t types.Trend) error {
	key := u.key(t)

	exists, err := u.client.Exists(ctx, u.bucket, key)
	if err != nil {
		return fmt.Errorf("head %s: %w", key, err)
	}
	if exists {
		return nil
	}

	body, err := json.MarshalIndent(t, "", "  ")
	if err != nil {
		return err
	}
	return u.client.PutJSON(ctx, u.bucket, key, body)
}

func (u *s3Uploader) key(t types.Trend) string {
	key := "trends/" + t.Key() + ".json"
	if u.prefix != "" {
		key = u.prefix + "/" + key
	}
	return key
}
