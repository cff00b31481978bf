package pipeline

import (
	"context"
	"errors"
	"fmt"

	"codeberg.org/snonux/phonobridge/internal/correspondence"
	"codeberg.org/snonux/phonobridge/internal/dictionary"
	"codeberg.org/snonux/phonobridge/internal/model"
	"codeberg.org/snonux/phonobridge/internal/registry"
	"codeberg.org/snonux/phonobridge/internal/tokenizer"
)

// Origin records which resolution path produced a stage's output
type Origin string

const (
	OriginDictionary     Origin = "DICTIONARY_HIT"
	OriginModel          Origin = "MODEL_INFER"
	OriginCorrespondence Origin = "CORRESPONDENCE_MAP"
)

// StageRecord is one entry of a result's provenance trail
type StageRecord struct {
	Stage  Stage
	Origin Origin

	// Model names the artifact descriptor when Origin is MODEL_INFER
	Model string

	Detail string
}

// Request describes one translation
type Request struct {
	Word           string
	SourceLanguage string
	TargetLanguage string

	// Preference narrows model selection (optional hints)
	Preference registry.Preference

	// DictionaryOnly disables the model fallback; a dictionary miss then
	// surfaces as UnknownWordError
	DictionaryOnly bool
}

// Result is the terminal outcome of a successful translation. The
// provenance trail is a required output for diagnosability, not incidental
// logging.
type Result struct {
	Request        Request
	SourceIPA      string
	TargetIPA      string
	TargetSpelling string
	Provenance     []StageRecord
	Warnings       []string
}

// Language bundles the per-language resources the pipeline draws on. A nil
// dictionary or tokenizer simply disables the corresponding resolution
// path.
type Language struct {
	Code       string
	Dictionary dictionary.Resolver
	Spelling   *tokenizer.Tokenizer
	IPA        *tokenizer.Tokenizer
}

// Config wires an orchestrator. The registry instance is passed in
// explicitly; the pipeline holds no process-wide state.
type Config struct {
	Registry  *registry.Registry
	Engine    Mapper
	Languages []*Language
}

// Mapper is the correspondence engine contract the orchestrator needs
type Mapper interface {
	MapSequence(ctx context.Context, ipa string) (correspondence.MapResult, error)
	SupportsAlternatives() bool
}

// Orchestrator runs translation requests. It is safe for concurrent use:
// all mutable state lives in the registry's artifact cache.
type Orchestrator struct {
	registry  *registry.Registry
	engine    Mapper
	languages map[string]*Language
}

// New creates an orchestrator
func New(config *Config) (*Orchestrator, error) {
	if config == nil || config.Registry == nil || config.Engine == nil {
		return nil, fmt.Errorf("orchestrator requires a registry and a correspondence engine")
	}

	languages := make(map[string]*Language, len(config.Languages))
	for _, lang := range config.Languages {
		if lang.Code == "" {
			return nil, fmt.Errorf("language with empty code")
		}
		languages[lang.Code] = lang
	}

	return &Orchestrator{
		registry:  config.Registry,
		engine:    config.Engine,
		languages: languages,
	}, nil
}

// Translate runs the five-stage pipeline for one request
func (o *Orchestrator) Translate(ctx context.Context, req Request) (*Result, error) {
	if req.Word == "" {
		return nil, fmt.Errorf("empty word")
	}

	source, ok := o.languages[req.SourceLanguage]
	if !ok {
		return nil, fmt.Errorf("source language %s not configured", req.SourceLanguage)
	}
	target, ok := o.languages[req.TargetLanguage]
	if !ok {
		return nil, fmt.Errorf("target language %s not configured", req.TargetLanguage)
	}

	result := &Result{Request: req}

	if err := o.resolveSource(ctx, source, req, result); err != nil {
		return nil, err
	}
	if err := o.mapCorrespondence(ctx, req, result); err != nil {
		return nil, err
	}
	if err := o.resolveTarget(ctx, target, req, result); err != nil {
		return nil, err
	}

	return result, nil
}

// resolveSource turns the source word into source-language IPA. The
// dictionary is ground truth and strictly preferred; the to-IPA model is
// the fallback.
func (o *Orchestrator) resolveSource(ctx context.Context, source *Language, req Request, result *Result) error {
	if source.Dictionary != nil {
		if ipa, ok := source.Dictionary.Resolve(req.Word); ok {
			result.SourceIPA = ipa
			result.Provenance = append(result.Provenance, StageRecord{
				Stage:  StageSourceResolve,
				Origin: OriginDictionary,
			})
			return nil
		}
	}

	if req.DictionaryOnly {
		return &UnknownWordError{Word: req.Word, Language: req.SourceLanguage}
	}

	desc, predictor, err := o.acquireModel(ctx, source, registry.DirectionToIPA, req.Preference)
	if err != nil {
		return o.wrapModelError(err, source.Code, registry.DirectionToIPA, StageSourceResolve)
	}

	ids, err := predictor.Predict(ctx, source.Spelling.Encode(req.Word, true))
	if err != nil {
		return fmt.Errorf("to-IPA inference failed for %q: %w", req.Word, err)
	}

	result.SourceIPA = source.IPA.Decode(ids, true)
	result.Provenance = append(result.Provenance, StageRecord{
		Stage:  StageSourceResolve,
		Origin: OriginModel,
		Model:  desc.Name,
	})
	return nil
}

// mapCorrespondence remaps the source IPA onto the target language's
// inventory. An entirely-unmapped result is a warning, never fatal:
// best-effort output is still returned.
func (o *Orchestrator) mapCorrespondence(ctx context.Context, req Request, result *Result) error {
	outcome, err := o.engine.MapSequence(ctx, result.SourceIPA)
	if err != nil {
		return fmt.Errorf("correspondence mapping failed: %w", err)
	}

	result.TargetIPA = outcome.TargetIPA

	record := StageRecord{
		Stage:  StageCorrespondenceMap,
		Origin: OriginCorrespondence,
		Detail: fmt.Sprintf("%d symbols unmapped", len(outcome.Unmapped)),
	}
	result.Provenance = append(result.Provenance, record)

	if outcome.TargetIPA == "" {
		result.Warnings = append(result.Warnings, "correspondence mapping produced empty target IPA")
	} else if len(outcome.Unmapped) > 0 && allUnmapped(result.SourceIPA, outcome) {
		result.Warnings = append(result.Warnings,
			"no source symbol had a correspondence entry; target IPA is a pass-through")
	}

	return nil
}

// resolveTarget turns the mapped IPA into a target-language spelling,
// preferring an exact reverse dictionary match over the from-IPA model
func (o *Orchestrator) resolveTarget(ctx context.Context, target *Language, req Request, result *Result) error {
	if target.Dictionary != nil {
		if word, ok := target.Dictionary.ReverseResolve(result.TargetIPA); ok {
			result.TargetSpelling = word
			result.Provenance = append(result.Provenance, StageRecord{
				Stage:  StageTargetResolve,
				Origin: OriginDictionary,
			})
			return nil
		}
	}

	desc, predictor, err := o.acquireModel(ctx, target, registry.DirectionFromIPA, req.Preference)
	if err != nil {
		return o.wrapModelError(err, target.Code, registry.DirectionFromIPA, StageTargetResolve)
	}

	ids, err := predictor.Predict(ctx, target.IPA.Encode(result.TargetIPA, true))
	if err != nil {
		return fmt.Errorf("from-IPA inference failed for %q: %w", result.TargetIPA, err)
	}

	result.TargetSpelling = target.Spelling.Decode(ids, true)
	result.Provenance = append(result.Provenance, StageRecord{
		Stage:  StageTargetResolve,
		Origin: OriginModel,
		Model:  desc.Name,
	})
	return nil
}

// acquireModel selects, compatibility-checks and loads a model for a
// language and direction. Incompatible artifacts are excluded and
// selection retried until a usable artifact remains.
func (o *Orchestrator) acquireModel(ctx context.Context, lang *Language, direction registry.Direction, pref registry.Preference) (registry.Descriptor, model.Predictor, error) {
	if lang.Spelling == nil || lang.IPA == nil {
		return registry.Descriptor{}, nil,
			fmt.Errorf("%w: no tokenizers loaded for %s", registry.ErrNoArtifact, lang.Code)
	}

	inputSize, outputSize := lang.Spelling.VocabSize(), lang.IPA.VocabSize()
	if direction == registry.DirectionFromIPA {
		inputSize, outputSize = outputSize, inputSize
	}

	for {
		desc, err := o.registry.Select(lang.Code, direction, pref)
		if err != nil {
			return registry.Descriptor{}, nil, err
		}

		if err := o.registry.CheckCompatible(desc, inputSize, outputSize); err != nil {
			o.registry.Exclude(desc, err.Error())
			continue
		}

		predictor, err := o.registry.Load(ctx, desc)
		if err != nil {
			return registry.Descriptor{}, nil, fmt.Errorf("failed to load %s: %w", desc.Name, err)
		}
		return desc, predictor, nil
	}
}

// wrapModelError maps registry-level failures onto the pipeline taxonomy
func (o *Orchestrator) wrapModelError(err error, language string, direction registry.Direction, stage Stage) error {
	if errors.Is(err, registry.ErrNoArtifact) {
		return &NoModelAvailableError{
			Language:  language,
			Direction: direction,
			Stage:     stage,
			Err:       err,
		}
	}
	return err
}

// allUnmapped reports whether every segmented source symbol fell back to
// identity
func allUnmapped(sourceIPA string, outcome correspondence.MapResult) bool {
	return outcome.TargetIPA == sourceIPA && len(outcome.Unmapped) > 0
}
