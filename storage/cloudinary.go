package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"
	"time"

	"checkin-server/config"
	"checkin-server/repo"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"github.com/gammazero/workerpool"
	"github.com/kataras/golog"
)

const destroyTimeout = 30 * time.Second

// Cloudinary stores apartment photos. Deletions run on a bounded worker pool
// so a request never waits on the CDN.
type Cloudinary struct {
	cld        *cloudinary.Cloudinary
	folder     string
	workerPool *workerpool.WorkerPool
	logger     *golog.Logger
}

var _ repo.ImageStore = (*Cloudinary)(nil)

func NewCloudinary(cfg *config.Config, logger *golog.Logger) (*Cloudinary, error) {
	cld, err := cloudinary.NewFromParams(cfg.CloudinaryCloudName, cfg.CloudinaryAPIKey, cfg.CloudinaryAPISecret)
	if err != nil {
		return nil, fmt.Errorf("cloudinary: %w", err)
	}
	workers := cfg.ImageCleanupWorkers
	if workers < 1 {
		workers = 1
	}
	return &Cloudinary{
		cld:        cld,
		folder:     cfg.CloudinaryFolder,
		workerPool: workerpool.New(workers),
		logger:     logger,
	}, nil
}

func (c *Cloudinary) Upload(ctx context.Context, file io.Reader, filename string) (string, error) {
	publicID := strings.TrimSuffix(path.Base(filename), path.Ext(filename))
	res, err := c.cld.Upload.Upload(ctx, file, uploader.UploadParams{
		Folder:   c.folder,
		PublicID: publicID,
	})
	if err != nil {
		return "", fmt.Errorf("cloudinary upload: %w", err)
	}
	if res.Error.Message != "" {
		return "", fmt.Errorf("cloudinary upload: %s", res.Error.Message)
	}
	if res.SecureURL != "" {
		return res.SecureURL, nil
	}
	if res.URL != "" {
		return res.URL, nil
	}
	return "", errors.New("cloudinary upload: no URL returned")
}

func (c *Cloudinary) Delete(ctx context.Context, imageURL string) error {
	publicID, ok := PublicIDFromURL(imageURL)
	if !ok {
		return fmt.Errorf("not a Cloudinary URL: %s", imageURL)
	}
	res, err := c.cld.Upload.Destroy(ctx, uploader.DestroyParams{PublicID: publicID})
	if err != nil {
		return fmt.Errorf("cloudinary destroy: %w", err)
	}
	if res.Error.Message != "" {
		return fmt.Errorf("cloudinary destroy: %s", res.Error.Message)
	}
	if res.Result != "ok" {
		return fmt.Errorf("cloudinary destroy %s: result %q", publicID, res.Result)
	}
	return nil
}

func (c *Cloudinary) ScheduleDelete(urls []string) {
	for _, u := range urls {
		imageURL := u
		if _, ok := PublicIDFromURL(imageURL); !ok {
			// images hosted elsewhere are not ours to delete
			continue
		}
		c.workerPool.Submit(func() {
			ctx, cancel := context.WithTimeout(context.Background(), destroyTimeout)
			defer cancel()
			if err := c.Delete(ctx, imageURL); err != nil {
				c.logger.Warnf("image cleanup failed for %s: %v", imageURL, err)
				return
			}
			c.logger.Debugf("deleted image %s", imageURL)
		})
	}
}

// Close waits for queued deletions to finish.
func (c *Cloudinary) Close() {
	c.workerPool.StopWait()
}

// PublicIDFromURL extracts the public id from a delivery URL of the form
// https://res.cloudinary.com/{cloud}/image/upload/[v{version}/]{public_id}.{ext}
func PublicIDFromURL(imageURL string) (string, bool) {
	if !strings.Contains(imageURL, "res.cloudinary.com") {
		return "", false
	}
	idx := strings.Index(imageURL, "/upload/")
	if idx == -1 {
		return "", false
	}
	rest := imageURL[idx+len("/upload/"):]
	if q := strings.IndexAny(rest, "?#"); q != -1 {
		rest = rest[:q]
	}
	if first, tail, found := strings.Cut(rest, "/"); found && isVersionSegment(first) {
		rest = tail
	}
	rest = strings.TrimSuffix(rest, path.Ext(rest))
	if rest == "" {
		return "", false
	}
	return rest, true
}

func isVersionSegment(s string) bool {
	if len(s) < 2 || s[0] != 'v' {
		return false
	}
	for _, r := range s[1:] {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
