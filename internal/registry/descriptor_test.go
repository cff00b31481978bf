package registry

import (
	"errors"
	"testing"
)

func TestParseArtifactName(t *testing.T) {
	desc, err := ParseArtifactName("de_g2p_gru_ab12cd34_15ep_0.0500loss")
	if err != nil {
		t.Fatalf("ParseArtifactName failed: %v", err)
	}

	if desc.Language != "de" {
		t.Errorf("Expected language 'de', got '%s'", desc.Language)
	}
	if desc.Direction != DirectionToIPA {
		t.Errorf("Expected direction g2p, got '%s'", desc.Direction)
	}
	if desc.Architecture != "gru" {
		t.Errorf("Expected architecture 'gru', got '%s'", desc.Architecture)
	}
	if desc.ConfigHash != "ab12cd34" {
		t.Errorf("Expected hash 'ab12cd34', got '%s'", desc.ConfigHash)
	}
	if desc.Epoch != 15 {
		t.Errorf("Expected epoch 15, got %d", desc.Epoch)
	}
	if desc.Loss != 0.05 {
		t.Errorf("Expected loss 0.05, got %g", desc.Loss)
	}
}

func TestParseArtifactName_LanguageWithUnderscore(t *testing.T) {
	desc, err := ParseArtifactName("en_US_p2g_lstm_deadbeef_20ep_0.1200loss")
	if err != nil {
		t.Fatalf("ParseArtifactName failed: %v", err)
	}

	if desc.Language != "en_US" {
		t.Errorf("Expected language 'en_US', got '%s'", desc.Language)
	}
	if desc.Direction != DirectionFromIPA {
		t.Errorf("Expected direction p2g, got '%s'", desc.Direction)
	}
}

func TestParseArtifactName_Malformed(t *testing.T) {
	malformed := []string{
		"",
		"de_g2p_gru",
		"de_g2p_gru_ab12cd34_15ep_badloss",
		"de_g2p_gru_ab12cd34_xep_0.05loss",
		"de_g2p_gru_ab12cd34_15ep_0.05",
		"de_sideways_gru_ab12cd34_15ep_0.05loss",
		"de_g2p_gru_ab12cd34_15_0.05loss",
	}

	for _, name := range malformed {
		_, err := ParseArtifactName(name)
		if err == nil {
			t.Errorf("Expected error for %q", name)
			continue
		}

		var malformedErr *MalformedArtifactNameError
		if !errors.As(err, &malformedErr) {
			t.Errorf("Expected MalformedArtifactNameError for %q, got %T", name, err)
		}
	}
}

func TestArtifactName_RoundTrip(t *testing.T) {
	name := ArtifactName("es", DirectionFromIPA, "gru", "cafe0123", 30, 0.0817)
	if name != "es_p2g_gru_cafe0123_30ep_0.0817loss" {
		t.Errorf("Unexpected artifact name: %s", name)
	}

	desc, err := ParseArtifactName(name)
	if err != nil {
		t.Fatalf("ParseArtifactName failed: %v", err)
	}
	if desc.Language != "es" || desc.Epoch != 30 || desc.Loss != 0.0817 {
		t.Errorf("Round-trip mismatch: %+v", desc)
	}
}

func TestKeyString(t *testing.T) {
	key := Key{Language: "de", Direction: DirectionToIPA, ConfigHash: "ab12cd34"}
	if key.String() != "de/g2p/ab12cd34" {
		t.Errorf("Unexpected key string: %s", key.String())
	}
}
