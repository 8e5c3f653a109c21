package service

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/sanjay123-Ad/AI-Backend/internal/dto"

	"github.com/patrickmn/go-cache"
)

const (
	pexelsBaseURL = "https://api.pexels.com"

	// maxConcurrentLookups bounds the fan-out so a large batch cannot
	// saturate the upstream API.
	maxConcurrentLookups = 8
)

type IImageService interface {
	LookupImages(ctx context.Context, names []string) (*dto.ImageLookupResponse, error)
}

// imageService resolves display images for arbitrary names. Lookups run
// concurrently and each one degrades to a null URL on any failure; the
// batch itself never fails.
type imageService struct {
	apiKey  string
	baseURL string
	client  *http.Client
	cache   *cache.Cache
}

func NewImageService(apiKey string) IImageService {
	return &imageService{
		apiKey:  apiKey,
		baseURL: pexelsBaseURL,
		client: &http.Client{
			Timeout: 10 * time.Second,
		},
		// Resolved URLs barely change; keep them for a day and purge
		// expired entries hourly.
		cache: cache.New(24*time.Hour, 1*time.Hour),
	}
}

func (s *imageService) LookupImages(ctx context.Context, names []string) (*dto.ImageLookupResponse, error) {
	results := make(map[string]dto.ImageResult, len(names))
	var mu sync.Mutex
	var wg sync.WaitGroup
	sem := make(chan struct{}, maxConcurrentLookups)

	for _, name := range names {
		wg.Add(1)
		go func(name string) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			imageUrl := s.lookup(ctx, name)

			mu.Lock()
			results[name] = dto.ImageResult{Name: name, Url: imageUrl}
			mu.Unlock()
		}(name)
	}
	wg.Wait()

	return &dto.ImageLookupResponse{Images: results}, nil
}

type pexelsSearchResponse struct {
	Photos []struct {
		Src struct {
			Medium string `json:"medium"`
		} `json:"src"`
	} `json:"photos"`
}

// lookup resolves one name to its first search hit. Every failure mode
// collapses to nil so a bad lookup never breaks the batch.
func (s *imageService) lookup(ctx context.Context, name string) *string {
	if val, found := s.cache.Get(name); found {
		cached := val.(string)
		return &cached
	}

	endpoint := fmt.Sprintf("%s/v1/search?query=%s&per_page=1", s.baseURL, url.QueryEscape(name))
	req, err := http.NewRequestWithContext(ctx, "GET", endpoint, nil)
	if err != nil {
		return nil
	}
	req.Header.Set("Authorization", s.apiKey)

	resp, err := s.client.Do(req)
	if err != nil {
		return nil
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil
	}

	var search pexelsSearchResponse
	if err := json.Unmarshal(body, &search); err != nil {
		return nil
	}
	if len(search.Photos) == 0 || search.Photos[0].Src.Medium == "" {
		return nil
	}

	imageUrl := search.Photos[0].Src.Medium
	s.cache.Set(name, imageUrl, cache.DefaultExpiration)
	return &imageUrl
}
