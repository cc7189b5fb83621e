package export

import (
	"bytes"
	"context"
	"image"
	"io"
	"net/http"
	"sync"
	"time"

	// Register decoders for the formats the document writer accepts.
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
)

// fetchedImage is a downloaded, decode-checked image ready for
// embedding. A nil entry means the fetch or decode failed and the row
// gets a placeholder instead.
type fetchedImage struct {
	data []byte
	kind string // fpdf image type: JPG, PNG or GIF
}

type imageFetcher struct {
	client *http.Client
}

func newImageFetcher(client *http.Client) *imageFetcher {
	if client == nil {
		client = &http.Client{Timeout: 15 * time.Second}
	}
	return &imageFetcher{client: client}
}

// fetchAll downloads every URL concurrently and returns one slot per
// input, in order. Failures are per-image and independent; a slot is
// nil when its URL could not be fetched or decoded. All fetches settle
// before the function returns, so layout never starts on partial data.
func (f *imageFetcher) fetchAll(ctx context.Context, urls []string) []*fetchedImage {
	images := make([]*fetchedImage, len(urls))
	var wg sync.WaitGroup
	for i, url := range urls {
		if url == "" {
			continue
		}
		wg.Add(1)
		go func(i int, url string) {
			defer wg.Done()
			images[i] = f.fetch(ctx, url)
		}(i, url)
	}
	wg.Wait()
	return images
}

func (f *imageFetcher) fetch(ctx context.Context, url string) *fetchedImage {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil
	}
	resp, err := f.client.Do(req)
	if err != nil {
		return nil
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, 16<<20))
	if err != nil {
		return nil
	}
	return checkImage(data)
}

// checkImage verifies the bytes decode as a supported format before the
// document writer ever sees them; a corrupt image must degrade to a
// placeholder, not poison the whole document.
func checkImage(data []byte) *fetchedImage {
	_, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil
	}
	switch format {
	case "jpeg":
		return &fetchedImage{data: data, kind: "JPG"}
	case "png":
		return &fetchedImage{data: data, kind: "PNG"}
	case "gif":
		return &fetchedImage{data: data, kind: "GIF"}
	default:
		return nil
	}
}
