package registry

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"codeberg.org/snonux/phonobridge/internal/model"
)

// artifact files are ONNX exports with a JSON config sidecar
const artifactExt = ".onnx"

// VocabularyMismatchError reports an artifact whose declared vocabulary
// sizes disagree with the active tokenizers. Using such an artifact would
// corrupt every downstream index lookup, so it is excluded, never coerced.
type VocabularyMismatchError struct {
	Artifact       string
	DeclaredInput  int
	DeclaredOutput int
	ActualInput    int
	ActualOutput   int
}

func (e *VocabularyMismatchError) Error() string {
	return fmt.Sprintf("artifact %s declares vocab sizes input=%d output=%d, active tokenizers have input=%d output=%d",
		e.Artifact, e.DeclaredInput, e.DeclaredOutput, e.ActualInput, e.ActualOutput)
}

// ErrNoArtifact is wrapped by Select when nothing matches
var ErrNoArtifact = fmt.Errorf("no model artifact available")

// Preference narrows selection to artifacts matching the given fields.
// Empty fields match everything.
type Preference struct {
	Architecture string
	ConfigHash   string
}

// Config configures a registry instance
type Config struct {
	// Dir is the artifact repository directory
	Dir string

	// CacheCapacity bounds the number of live artifacts (default 4)
	CacheCapacity int

	// Loader loads an artifact into a predictor (default: ONNX with a
	// circuit breaker)
	Loader model.Loader
}

// Registry catalogs the trained artifacts of a repository directory. It is
// an explicit component instance: configuration is injected, nothing is
// process-global.
type Registry struct {
	dir    string
	loader model.Loader
	cache  *artifactCache

	// mu guards the catalog only; artifact loads coordinate through the
	// cache's own per-key mechanism
	mu          sync.RWMutex
	descriptors []Descriptor
	excluded    map[string]string
}

// New creates a registry for an artifact repository
func New(config *Config) (*Registry, error) {
	if config == nil || config.Dir == "" {
		return nil, fmt.Errorf("registry requires a repository directory")
	}

	loader := config.Loader
	if loader == nil {
		loader = func(ctx context.Context, path string) (model.Predictor, error) {
			predictor, err := model.LoadONNX(ctx, path)
			if err != nil {
				return nil, err
			}
			return model.WithBreaker(filepath.Base(path), predictor), nil
		}
	}

	return &Registry{
		dir:      config.Dir,
		loader:   loader,
		cache:    newArtifactCache(config.CacheCapacity),
		excluded: make(map[string]string),
	}, nil
}

// Discover enumerates the repository's artifacts. Malformed names and
// unreadable sidecars are skipped with a warning; they never abort
// discovery.
func (r *Registry) Discover() ([]Descriptor, error) {
	entries, err := os.ReadDir(r.dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read artifact repository: %w", err)
	}

	var discovered []Descriptor
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), artifactExt) {
			continue
		}

		name := strings.TrimSuffix(entry.Name(), artifactExt)
		desc, err := ParseArtifactName(name)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: skipping artifact: %v\n", err)
			continue
		}

		desc.Path = filepath.Join(r.dir, entry.Name())
		if info, err := entry.Info(); err == nil {
			desc.ModTime = info.ModTime()
		}

		cfg, err := model.LoadConfig(filepath.Join(r.dir, name+".json"))
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: skipping artifact %s: %v\n", name, err)
			continue
		}
		desc.Config = cfg

		if cfg.Hash() != desc.ConfigHash {
			fmt.Fprintf(os.Stderr, "Warning: artifact %s: sidecar hash %s does not match name\n",
				name, cfg.Hash())
		}

		discovered = append(discovered, desc)
	}

	r.mu.Lock()
	r.descriptors = discovered
	r.mu.Unlock()
	return discovered, nil
}

// Select chooses the best artifact for a language and direction. Preference
// order: highest epoch count, then lowest validation loss, then most recent
// artifact (latest architecture revision wins). Excluded artifacts are
// never returned.
func (r *Registry) Select(language string, direction Direction, pref Preference) (Descriptor, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var candidates []Descriptor
	for _, d := range r.descriptors {
		if d.Language != language || d.Direction != direction {
			continue
		}
		if _, excluded := r.excluded[d.Name]; excluded {
			continue
		}
		if pref.Architecture != "" && d.Architecture != pref.Architecture {
			continue
		}
		if pref.ConfigHash != "" && d.ConfigHash != pref.ConfigHash {
			continue
		}
		candidates = append(candidates, d)
	}

	if len(candidates) == 0 {
		return Descriptor{}, fmt.Errorf("%w for %s/%s", ErrNoArtifact, language, direction)
	}

	sort.Slice(candidates, func(i, j int) bool {
		a, b := candidates[i], candidates[j]
		if a.Epoch != b.Epoch {
			return a.Epoch > b.Epoch
		}
		if a.Loss != b.Loss {
			return a.Loss < b.Loss
		}
		return a.ModTime.After(b.ModTime)
	})

	return candidates[0], nil
}

// CheckCompatible verifies the descriptor's declared vocabulary sizes
// against the active tokenizers. A mismatch is reported as a typed error,
// never silently coerced.
func (r *Registry) CheckCompatible(d Descriptor, inputVocabSize, outputVocabSize int) error {
	declared := d.Config.VocabSizes
	if declared.Input != inputVocabSize || declared.Output != outputVocabSize {
		return &VocabularyMismatchError{
			Artifact:       d.Name,
			DeclaredInput:  declared.Input,
			DeclaredOutput: declared.Output,
			ActualInput:    inputVocabSize,
			ActualOutput:   outputVocabSize,
		}
	}
	return nil
}

// Exclude removes an artifact from future Select results. Other artifacts
// remain usable.
func (r *Registry) Exclude(d Descriptor, reason string) {
	r.mu.Lock()
	r.excluded[d.Name] = reason
	r.mu.Unlock()
	fmt.Fprintf(os.Stderr, "Warning: excluding artifact %s: %s\n", d.Name, reason)
}

// Load returns the live predictor for a descriptor, loading it at most once
// per artifact identity across concurrent callers
func (r *Registry) Load(ctx context.Context, d Descriptor) (model.Predictor, error) {
	return r.cache.getOrLoad(ctx, d.Key(), func() (model.Predictor, error) {
		return r.loader(context.Background(), d.Path)
	})
}

// Descriptors returns the artifacts found by the last Discover call
func (r *Registry) Descriptors() []Descriptor {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.descriptors
}
