package registry

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"codeberg.org/snonux/phonobridge/internal/model"
)

// Direction of a model relative to IPA
type Direction string

const (
	// DirectionToIPA models translate spelling to IPA (grapheme-to-phoneme)
	DirectionToIPA Direction = "g2p"

	// DirectionFromIPA models translate IPA to spelling (phoneme-to-grapheme)
	DirectionFromIPA Direction = "p2g"
)

// ParseDirection validates a direction token from an artifact name
func ParseDirection(s string) (Direction, error) {
	switch Direction(s) {
	case DirectionToIPA, DirectionFromIPA:
		return Direction(s), nil
	default:
		return "", fmt.Errorf("unknown direction %q", s)
	}
}

// MalformedArtifactNameError reports an artifact whose name does not follow
// the naming convention. Discovery skips such artifacts with a warning.
type MalformedArtifactNameError struct {
	Name   string
	Reason string
}

func (e *MalformedArtifactNameError) Error() string {
	return fmt.Sprintf("malformed artifact name %q: %s", e.Name, e.Reason)
}

// Descriptor is the immutable identity of a discovered model artifact,
// parsed from its name and sidecar configuration
type Descriptor struct {
	Name         string
	Path         string
	Language     string
	Direction    Direction
	Architecture string
	ConfigHash   string
	Epoch        int
	Loss         float64
	ModTime      time.Time
	Config       model.Config
}

// Key returns the cache identity of the artifact
func (d Descriptor) Key() Key {
	return Key{Language: d.Language, Direction: d.Direction, ConfigHash: d.ConfigHash}
}

// Key identifies an artifact for caching: two artifacts with the same key
// are interchangeable.
type Key struct {
	Language   string
	Direction  Direction
	ConfigHash string
}

func (k Key) String() string {
	return fmt.Sprintf("%s/%s/%s", k.Language, k.Direction, k.ConfigHash)
}

// ParseArtifactName parses the naming convention
// {language}_{direction}_{architecture}_{config_hash}_{epoch}ep_{loss}loss.
// Language codes may themselves contain underscores (en_US), so the fixed
// fields are taken from the right.
func ParseArtifactName(name string) (Descriptor, error) {
	parts := strings.Split(name, "_")
	if len(parts) < 6 {
		return Descriptor{}, &MalformedArtifactNameError{Name: name, Reason: "too few fields"}
	}

	lossPart := parts[len(parts)-1]
	epochPart := parts[len(parts)-2]
	hashPart := parts[len(parts)-3]
	archPart := parts[len(parts)-4]
	dirPart := parts[len(parts)-5]
	language := strings.Join(parts[:len(parts)-5], "_")

	if !strings.HasSuffix(lossPart, "loss") {
		return Descriptor{}, &MalformedArtifactNameError{Name: name, Reason: "missing loss field"}
	}
	loss, err := strconv.ParseFloat(strings.TrimSuffix(lossPart, "loss"), 64)
	if err != nil {
		return Descriptor{}, &MalformedArtifactNameError{Name: name, Reason: "invalid loss value"}
	}

	if !strings.HasSuffix(epochPart, "ep") {
		return Descriptor{}, &MalformedArtifactNameError{Name: name, Reason: "missing epoch field"}
	}
	epoch, err := strconv.Atoi(strings.TrimSuffix(epochPart, "ep"))
	if err != nil {
		return Descriptor{}, &MalformedArtifactNameError{Name: name, Reason: "invalid epoch value"}
	}

	direction, err := ParseDirection(dirPart)
	if err != nil {
		return Descriptor{}, &MalformedArtifactNameError{Name: name, Reason: err.Error()}
	}

	if language == "" || archPart == "" || hashPart == "" {
		return Descriptor{}, &MalformedArtifactNameError{Name: name, Reason: "empty field"}
	}

	return Descriptor{
		Name:         name,
		Language:     language,
		Direction:    direction,
		Architecture: archPart,
		ConfigHash:   hashPart,
		Epoch:        epoch,
		Loss:         loss,
	}, nil
}

// ArtifactName formats the canonical artifact name for a descriptor
func ArtifactName(language string, direction Direction, architecture, configHash string, epoch int, loss float64) string {
	return fmt.Sprintf("%s_%s_%s_%s_%dep_%.4floss",
		language, direction, architecture, configHash, epoch, loss)
}
