package loam

import (
	"context"
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/aretw0/loam"
	"github.com/aretw0/waypoint/pkg/domain"
	"github.com/aretw0/waypoint/pkg/ports"
	"github.com/mitchellh/mapstructure"
)

// Loader adapts a Loam repository of tour documents to ports.TourLoader.
type Loader struct {
	Repo *loam.TypedRepository[TourMetadata]
}

var _ ports.TourLoader = (*Loader)(nil)

// New creates a new Loam adapter.
func New(repo *loam.TypedRepository[TourMetadata]) *Loader {
	return &Loader{
		Repo: repo,
	}
}

// GetTour loads and decodes a tour. The id may omit the file extension.
func (l *Loader) GetTour(id string) (domain.Tour, error) {
	ctx := context.Background()

	doc, err := l.Repo.Get(ctx, id)
	if err != nil {
		return domain.Tour{}, fmt.Errorf("%w: %s: %v", domain.ErrTourNotFound, id, err)
	}

	rawID := doc.Data.ID
	if rawID == "" {
		rawID = doc.ID
	}

	steps, err := decodeSteps(doc.Data.Steps)
	if err != nil {
		return domain.Tour{}, fmt.Errorf("%w: %s: %v", domain.ErrInvalidTour, id, err)
	}

	return domain.Tour{
		ID:          trimExtension(rawID),
		Title:       doc.Data.Title,
		Description: strings.TrimSpace(doc.Content),
		Theme:       domain.ParseTheme(doc.Data.Theme),
		AutoScroll:  doc.Data.AutoScroll,
		Steps:       steps,
	}, nil
}

// ListTours returns the sorted IDs of every tour document.
func (l *Loader) ListTours() ([]string, error) {
	ctx := context.Background()
	docs, err := l.Repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("loam list failed: %w", err)
	}

	seen := make(map[string]string)
	ids := make([]string, 0, len(docs))
	for _, doc := range docs {
		rawID := doc.Data.ID
		if rawID == "" {
			rawID = doc.ID
		}
		id := trimExtension(rawID)

		if existingPath, ok := seen[id]; ok {
			return nil, fmt.Errorf("collision detected: ID '%s' is defined in both '%s' and '%s'", id, existingPath, doc.ID)
		}
		seen[id] = doc.ID
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids, nil
}

// Watch emits the ID of every tour document that changes.
func (l *Loader) Watch(ctx context.Context) (<-chan string, error) {
	events, err := l.Repo.Watch(ctx, "**/*.{md,json,yaml,yml}")
	if err != nil {
		return nil, fmt.Errorf("failed to start loam watcher: %w", err)
	}

	ch := make(chan string, 1)
	go func() {
		defer close(ch)
		for {
			select {
			case <-ctx.Done():
				return
			case evt, ok := <-events:
				if !ok {
					return
				}
				select {
				case ch <- trimExtension(evt.ID):
				case <-ctx.Done():
					return
				}
			}
		}
	}()
	return ch, nil
}

func decodeSteps(raw []any) ([]domain.Step, error) {
	if len(raw) == 0 {
		return nil, nil
	}

	var steps []domain.Step
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:      &steps,
		TagName:     "mapstructure",
		ErrorUnused: true,
	})
	if err != nil {
		return nil, err
	}
	if err := dec.Decode(raw); err != nil {
		return nil, fmt.Errorf("decode steps: %w", err)
	}
	return steps, nil
}

func trimExtension(id string) string {
	ext := filepath.Ext(id)
	if ext != "" {
		return filepath.ToSlash(strings.TrimSuffix(id, ext))
	}
	return filepath.ToSlash(id)
}
